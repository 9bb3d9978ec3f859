package messages

// Message is a guestbook entry as listed on the site.
type Message struct {
	Name      string `json:"name"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// NewMessage is a guest submission.
type NewMessage struct {
	Name string
	Body string
}
