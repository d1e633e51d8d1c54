package service

import (
	"context"
	"errors"
	"time"

	"github.com/farmdesk/backend/internal/model"
	"github.com/farmdesk/backend/internal/repository"
	"github.com/farmdesk/backend/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

// authServiceImpl is the production implementation of AuthService.
type authServiceImpl struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates an AuthService signing tokens with the given secret.
func NewAuthService(userRepo repository.UserRepository, secret []byte, tokenTTL time.Duration) AuthService {
	return &authServiceImpl{userRepo: userRepo, secret: secret, tokenTTL: tokenTTL}
}

var _ auth.IdentityResolver = (AuthService)(nil)

// Login verifies the password against the stored bcrypt hash and issues a token.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.CreateToken(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ResolveIdentity loads the user behind a verified token subject. A missing
// row means the account was deleted after the token was issued.
func (s *authServiceImpl) ResolveIdentity(ctx context.Context, userID string) (auth.Identity, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return auth.Identity{}, auth.ErrIdentityNotFound
		}
		return auth.Identity{}, err
	}
	return auth.Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}, nil
}
