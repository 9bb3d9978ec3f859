package rsvp

// Response is one RSVP form submission.
type Response struct {
	Name       string
	Phone      string
	Email      string
	Attending  bool
	GuestCount int
	Notes      string
}
