package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Stub IdentityResolver
// ---------------------------------------------------------------------------

type stubResolver struct {
	identities map[string]Identity
	err        error
}

func (s *stubResolver) ResolveIdentity(ctx context.Context, userID string) (Identity, error) {
	if s.err != nil {
		return Identity{}, s.err
	}
	id, ok := s.identities[userID]
	if !ok {
		return Identity{}, ErrIdentityNotFound
	}
	return id, nil
}

func okHandler(sawIdentity *Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := IdentityFromContext(r.Context()); ok && sawIdentity != nil {
			*sawIdentity = id
		}
		w.WriteHeader(http.StatusOK)
	})
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

// ---------------------------------------------------------------------------
// RequireAuth
// ---------------------------------------------------------------------------

func TestRequireAuth_NoHeader(t *testing.T) {
	mw := RequireAuth(testSecret, &stubResolver{})
	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	rec := httptest.NewRecorder()

	mw(okHandler(nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "unauthorized" {
		t.Errorf("expected error=unauthorized, got %q", code)
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	mw := RequireAuth(testSecret, &stubResolver{})

	for _, header := range []string{"Basic abc", "Bearer", "Bearer   "} {
		req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		mw(okHandler(nil)).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	mw := RequireAuth(testSecret, &stubResolver{})
	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()

	mw(okHandler(nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "invalid_token" {
		t.Errorf("expected error=invalid_token, got %q", code)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	token, err := CreateToken("user-1", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	mw := RequireAuth(testSecret, &stubResolver{})
	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw(okHandler(nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "token_expired" {
		t.Errorf("expected error=token_expired, got %q", code)
	}
}

// A structurally valid token whose account has since been deleted must be
// treated as unauthenticated, not as an internal error.
func TestRequireAuth_DeletedAccount(t *testing.T) {
	token, err := CreateToken("ghost", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	mw := RequireAuth(testSecret, &stubResolver{identities: map[string]Identity{}})
	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw(okHandler(nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted account, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "unknown_user" {
		t.Errorf("expected error=unknown_user, got %q", code)
	}
}

func TestRequireAuth_ResolverError(t *testing.T) {
	token, err := CreateToken("user-1", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	mw := RequireAuth(testSecret, &stubResolver{err: errors.New("db down")})
	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw(okHandler(nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on resolver failure, got %d", rec.Code)
	}
}

func TestRequireAuth_AttachesIdentity(t *testing.T) {
	token, err := CreateToken("user-1", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	resolver := &stubResolver{identities: map[string]Identity{
		"user-1": {ID: "user-1", Email: "u@example.com", Name: "U", Role: "user"},
	}}
	var saw Identity
	mw := RequireAuth(testSecret, resolver)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw(okHandler(&saw)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if saw.ID != "user-1" || saw.Email != "u@example.com" {
		t.Errorf("identity not attached to context: %+v", saw)
	}
}

// ---------------------------------------------------------------------------
// RequireAdmin
// ---------------------------------------------------------------------------

func TestRequireAdmin_NonAdmin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{ID: "u1", Role: "user"}))
	rec := httptest.NewRecorder()

	RequireAdmin(okHandler(nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "forbidden" {
		t.Errorf("expected error=forbidden, got %q", code)
	}
}

func TestRequireAdmin_Admin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{ID: "a1", Role: RoleAdmin}))
	rec := httptest.NewRecorder()

	RequireAdmin(okHandler(nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
}

func TestRequireAdmin_NoIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	rec := httptest.NewRecorder()

	RequireAdmin(okHandler(nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when no identity attached, got %d", rec.Code)
	}
}
