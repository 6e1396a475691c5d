package supabase

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xavierca1/quotedesk/internal/entity"
)

var ErrInvalidSession = errors.New("invalid session token")

type sessionClaims struct {
	Email       string         `json:"email"`
	AppMetadata map[string]any `json:"app_metadata"`
	jwt.RegisteredClaims
}

// SessionVerifier checks access tokens signed with the project's JWT secret.
type SessionVerifier struct {
	secret []byte
}

func NewSessionVerifier(secret string) *SessionVerifier {
	return &SessionVerifier{secret: []byte(secret)}
}

// Verify returns the caller for a valid token. Admins carry
// app_metadata.role = "admin".
func (v *SessionVerifier) Verify(tokenString string) (entity.Principal, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return entity.Principal{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	if claims.Subject == "" {
		return entity.Principal{}, fmt.Errorf("%w: missing subject", ErrInvalidSession)
	}

	role, _ := claims.AppMetadata["role"].(string)
	return entity.Principal{UserID: claims.Subject, IsAdmin: role == "admin"}, nil
}
