package service

import (
	"context"
	"errors"

	"github.com/farmdesk/backend/internal/model"
	"github.com/farmdesk/backend/pkg/auth"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a
// wrong password. Callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues bearer tokens and resolves them back to identities.
type AuthService interface {
	// Login verifies email/password and returns a signed token plus the user.
	Login(ctx context.Context, email, password string) (string, *model.User, error)

	// ResolveIdentity maps a verified user id to a stored identity.
	// Returns auth.ErrIdentityNotFound when the account no longer exists.
	ResolveIdentity(ctx context.Context, userID string) (auth.Identity, error)
}
