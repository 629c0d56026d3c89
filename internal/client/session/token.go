package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/possoft/posadmin/internal/client/models"
)

// ErrInvalidToken covers every way a persisted token can be unusable:
// bad signature, wrong algorithm, malformed claims.
var ErrInvalidToken = errors.New("invalid session token")

// sessionClaims is the JWT payload a session is persisted as. Subject
// carries the username. No expiry claim is issued: sessions are valid
// until explicit logout.
type sessionClaims struct {
	Name        string      `json:"name"`
	Role        models.Role `json:"role"`
	Permissions []string    `json:"permissions"`
	jwt.RegisteredClaims
}

// signToken serializes the user into a signed HS256 token.
func signToken(user *models.User, key []byte) (string, error) {
	claims := sessionClaims{
		Name:        user.Name,
		Role:        user.Role,
		Permissions: user.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.Username,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// parseToken verifies the signature and rebuilds the user. Any defect
// maps to ErrInvalidToken so callers can treat all of them as "no session".
func parseToken(raw string, key []byte) (*models.User, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	return &models.User{
		Username:    claims.Subject,
		Role:        claims.Role,
		Name:        claims.Name,
		Permissions: claims.Permissions,
	}, nil
}
