package auth

import "context"

type contextKey string

const identityKey contextKey = "identity"

// RoleAdmin は管理者ロール
const RoleAdmin = "admin"

// Identity は認証済みユーザーの情報
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// IsAdmin returns true if the identity holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// WithIdentity は context に Identity をセットする
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext は context から Identity を取得する
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(identityKey).(Identity)
	return v, ok
}
