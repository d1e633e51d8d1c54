// Package farmapi provides a client for the FarmDesk backend API.
// It is the programmatic surface the contact form and admin inbox bind to.
package farmapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrorKind classifies an API failure so callers can branch without
// string-matching messages.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindInternal     ErrorKind = "internal"
)

// APIError is returned for any non-success response from the server.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("farmapi: %s (%d): %s", e.Kind, e.StatusCode, e.Message)
}

// ErrNoToken is returned before any network I/O when an authenticated call
// is attempted without a stored token.
var ErrNoToken = errors.New("farmapi: no token stored")

// Client is a FarmDesk API client. BaseURL is the API root, e.g.
// "http://localhost:8080/api".
type Client struct {
	BaseURL    string
	Tokens     TokenStore
	HTTPClient *http.Client
}

// NewClient creates a Client using the given token store.
func NewClient(baseURL string, tokens TokenStore) *Client {
	return &Client{
		BaseURL:    baseURL,
		Tokens:     tokens,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do performs an HTTP request. The body is JSON-encoded for non-GET methods;
// authed calls attach the stored bearer token and fail locally with
// ErrNoToken when none is present.
func (c *Client) do(ctx context.Context, method, path string, body any, authed bool, out any) error {
	var token string
	if authed {
		t, ok := c.Tokens.Token()
		if !ok {
			return ErrNoToken
		}
		token = t
	}

	var reqBody io.Reader
	if body != nil && method != http.MethodGet {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, respBody)
	}

	if out != nil {
		return json.Unmarshal(respBody, out)
	}
	return nil
}

// apiError maps a failed response to an APIError, falling back to a generic
// message when the body is not the expected error shape.
func apiError(status int, body []byte) *APIError {
	var kind ErrorKind
	switch status {
	case http.StatusBadRequest:
		kind = KindValidation
	case http.StatusUnauthorized:
		kind = KindUnauthorized
	case http.StatusForbidden:
		kind = KindForbidden
	default:
		kind = KindInternal
	}

	var payload struct {
		Error string `json:"error"`
	}
	message := fmt.Sprintf("API error: %d", status)
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	return &APIError{Kind: kind, StatusCode: status, Message: message}
}

// Message mirrors the server-side inquiry record.
type Message struct {
	ID        string     `json:"id"`
	UserID    *string    `json:"user_id,omitempty"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	RepliedAt *time.Time `json:"replied_at,omitempty"`
}

// User mirrors the server-side account record.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResponse is the response from POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Login authenticates and stores the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, false, &resp); err != nil {
		return nil, err
	}
	if err := c.Tokens.SetToken(resp.Token); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout discards the stored token.
func (c *Client) Logout() error {
	return c.Tokens.ClearToken()
}

// CreateMessageParams carries a contact form submission.
type CreateMessageParams struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Subject   string  `json:"subject"`
	Message   string  `json:"message"`
	UserID    *string `json:"userId,omitempty"`
}

// CreateMessageResponse is the response from POST /messages.
type CreateMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// CreateMessage submits a new inquiry. No credential is required.
func (c *Client) CreateMessage(ctx context.Context, params CreateMessageParams) (*CreateMessageResponse, error) {
	var resp CreateMessageResponse
	if err := c.do(ctx, http.MethodPost, "/messages", params, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListMessages returns all inquiries, newest first. Admin only.
func (c *Client) ListMessages(ctx context.Context) ([]Message, error) {
	var messages []Message
	if err := c.do(ctx, http.MethodGet, "/messages", nil, true, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MutationResponse is the response from status updates and deletes.
type MutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UpdateMessageStatus sets the status of an inquiry. Admin only.
func (c *Client) UpdateMessageStatus(ctx context.Context, id, status string) (*MutationResponse, error) {
	body := map[string]string{"status": status}
	var resp MutationResponse
	if err := c.do(ctx, http.MethodPut, "/messages/"+id+"/status", body, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteMessage removes an inquiry. Admin only.
func (c *Client) DeleteMessage(ctx context.Context, id string) (*MutationResponse, error) {
	var resp MutationResponse
	if err := c.do(ctx, http.MethodDelete, "/messages/"+id, nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the identity behind the stored token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/me", nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
