package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/farmdesk/backend/internal/metrics"
	"github.com/farmdesk/backend/internal/model"
	"github.com/farmdesk/backend/internal/service"
)

// MessageHandler handles contact form submission and admin inbox operations.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a MessageHandler with the given service.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// createRequest is the expected JSON body for POST /api/messages.
type createRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Subject   string  `json:"subject"`
	Message   string  `json:"message"`
	UserID    *string `json:"userId"`
}

// createResponse is the JSON response for a successful submission.
type createResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// mutationResponse is the JSON response for status updates and deletes.
type mutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Create handles POST /api/messages. Open to anonymous callers; all fields
// except userId are required.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	id, err := h.messageService.Create(r.Context(), service.CreateMessageInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		UserID:    req.UserID,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": verr.Code()})
			return
		}
		slog.Error("message create failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "submit_failed"})
		return
	}

	metrics.MessagesSubmitted.Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(createResponse{
		Success: true,
		Message: "Message sent successfully",
		ID:      id,
	})
}

// List handles GET /api/messages (admin-only, enforced by middleware).
// Returns all messages newest first, as a bare JSON array.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messageService.List(r.Context())
	if err != nil {
		slog.Error("message list failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.Message{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(messages)
}

// updateStatusRequest is the expected JSON body for PUT /api/messages/{id}/status.
type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/messages/{id}/status (admin-only).
func (h *MessageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	if err := h.messageService.UpdateStatus(r.Context(), id, model.Status(req.Status)); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": verr.Code()})
			return
		}
		slog.Error("message status update failed", "error", err, "id", id)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	metrics.MessageStatusUpdates.WithLabelValues(req.Status).Inc()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(mutationResponse{
		Success: true,
		Message: "Message status updated",
	})
}

// Delete handles DELETE /api/messages/{id} (admin-only). Deleting an id that
// does not exist still reports success.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.messageService.Delete(r.Context(), id); err != nil {
		slog.Error("message delete failed", "error", err, "id", id)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "delete_failed"})
		return
	}

	metrics.MessagesDeleted.Inc()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(mutationResponse{
		Success: true,
		Message: "Message deleted",
	})
}
