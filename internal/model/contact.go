package model

import (
	"strings"
	"time"
)

// ContactSubmission is a message left through the public contact form.
// Submissions are written only; the site never reads them back.
type ContactSubmission struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Validate checks the required contact fields. A field holding only
// whitespace counts as empty; the values themselves are left as entered.
func (c *ContactSubmission) Validate() error {
	switch {
	case blank(c.Name):
		return &ValidationError{Field: "name", Message: "Your name is required."}
	case blank(c.Email):
		return &ValidationError{Field: "email", Message: "Email address is required."}
	case blank(c.Service):
		return &ValidationError{Field: "service", Message: "Please select a service."}
	case blank(c.Message):
		return &ValidationError{Field: "message", Message: "Message is required."}
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
