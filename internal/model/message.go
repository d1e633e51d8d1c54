package model

import "time"

// Status is the triage state of an inquiry.
type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusResolved Status = "resolved"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied, StatusResolved:
		return true
	}
	return false
}

// Message represents an inquiry submitted via the contact form.
type Message struct {
	ID        string     `json:"id"`
	UserID    *string    `json:"user_id,omitempty"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	// RepliedAt is stamped whenever the message transitions to "replied"
	// and is never cleared by later transitions.
	RepliedAt *time.Time `json:"replied_at,omitempty"`
}
