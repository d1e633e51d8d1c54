package service

import (
	"context"
	"strings"

	"github.com/farmdesk/backend/internal/model"
	"github.com/farmdesk/backend/internal/repository"
	"github.com/google/uuid"
)

// maxMessageLength caps the free-text body, matching the contact form limit.
const maxMessageLength = 5000

// messageServiceImpl is the production implementation of MessageService.
type messageServiceImpl struct {
	repo repository.MessageRepository
}

// NewMessageService creates a MessageService backed by the given repository.
func NewMessageService(repo repository.MessageRepository) MessageService {
	return &messageServiceImpl{repo: repo}
}

// Create validates the submission, assigns a fresh id and persists the
// message with status "new". The submitter reference is stored as-is (nil
// for anonymous submissions).
func (s *messageServiceImpl) Create(ctx context.Context, in CreateMessageInput) (string, error) {
	if err := validateCreate(in); err != nil {
		return "", err
	}

	msg := &model.Message{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    model.StatusNew,
	}
	if err := s.repo.Insert(ctx, msg); err != nil {
		return "", err
	}
	return msg.ID, nil
}

func validateCreate(in CreateMessageInput) error {
	required := []struct {
		field, value string
	}{
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"email", in.Email},
		{"subject", in.Subject},
		{"message", in.Message},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Reason: ReasonRequired}
		}
	}
	if len([]rune(in.Message)) > maxMessageLength {
		return &ValidationError{Field: "message", Reason: ReasonTooLong}
	}
	return nil
}

// List returns all messages, newest first.
func (s *messageServiceImpl) List(ctx context.Context) ([]*model.Message, error) {
	return s.repo.List(ctx)
}

// UpdateStatus changes the status of a message after checking the enum.
// The repository stamps replied_at when the new status is "replied".
func (s *messageServiceImpl) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Reason: ReasonInvalid}
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// Delete removes a message by id.
func (s *messageServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
