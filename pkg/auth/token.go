package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	// ErrTokenExpired はトークンの有効期限切れを示す
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidToken は形式不正・署名不正のトークンを示す
	ErrInvalidToken = errors.New("invalid token")
)

// CreateToken はユーザーIDを subject に持つ HS256 署名付きトークンを生成する
func CreateToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Subject:   userID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyToken はトークンを検証し subject（ユーザーID）を返す。
// 期限切れは ErrTokenExpired、それ以外の検証失敗は ErrInvalidToken を返す
func VerifyToken(token string, secret []byte) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.StandardClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.StandardClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

const minSecretLen = 32

// SecretBytes は文字列からトークン署名用のバイト列を生成する（最低32バイト）
func SecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
