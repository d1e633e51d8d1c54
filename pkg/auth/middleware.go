package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// IdentityResolver resolves a verified user id to a stored identity.
// ErrIdentityNotFound must be returned when the account no longer exists.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (Identity, error)
}

// ErrIdentityNotFound はトークンが指すアカウントが存在しないことを示す
var ErrIdentityNotFound = errors.New("identity not found")

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

// RequireAuth は認証必須ミドルウェア。Bearer トークンを検証し、トークンが
// 指すユーザーが現存することを確認した上で Identity を context にセットする。
// 署名が正しくてもアカウントが削除済みなら 401（unknown_user）となる
func RequireAuth(secret []byte, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			userID, err := VerifyToken(token, secret)
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					writeError(w, http.StatusUnauthorized, "token_expired")
					return
				}
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}

			identity, err := resolver.ResolveIdentity(r.Context(), userID)
			if err != nil {
				if errors.Is(err, ErrIdentityNotFound) {
					writeError(w, http.StatusUnauthorized, "unknown_user")
					return
				}
				writeError(w, http.StatusInternalServerError, "auth_failed")
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin は管理者ロール必須ミドルウェア。RequireAuth の後段に置く
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !identity.IsAdmin() {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
