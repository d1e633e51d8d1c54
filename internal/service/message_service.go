package service

import (
	"context"

	"github.com/farmdesk/backend/internal/model"
)

// CreateMessageInput carries the fields of a contact form submission.
// UserID is set when the submitter was logged in; nil for anonymous.
type CreateMessageInput struct {
	FirstName string
	LastName  string
	Email     string
	Subject   string
	Message   string
	UserID    *string
}

// MessageService defines the business logic for inquiry messages.
type MessageService interface {
	// Create validates the input and stores a new message with status "new".
	// Returns the generated message id.
	Create(ctx context.Context, in CreateMessageInput) (string, error)

	// List returns all messages, newest first.
	List(ctx context.Context) ([]*model.Message, error)

	// UpdateStatus sets the status of a message. A transition to "replied"
	// also stamps replied_at. Returns *ValidationError for an unknown status.
	UpdateStatus(ctx context.Context, id string, status model.Status) error

	// Delete removes a message. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}
