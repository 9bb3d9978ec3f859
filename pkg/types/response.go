package types

// SuccessMarker is the payload returned by write endpoints.
type SuccessMarker struct {
	Success bool `json:"success"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
