// Package credentials implements the credential verifier the session
// manager authenticates against. The static store stands in for a real
// identity provider; the Verifier interface is the stable seam a
// production deployment would swap.
package credentials

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/possoft/posadmin/internal/client/models"
)

// ErrNoMatch is returned for any username/password pair the store does not
// recognize. Unknown user and wrong password are deliberately
// indistinguishable.
var ErrNoMatch = errors.New("credentials do not match")

// Verifier checks a username/password pair and returns the matching
// credential, or ErrNoMatch.
type Verifier interface {
	Verify(username, password string) (*models.Credential, error)
}

// StaticStore is an in-memory credential table keyed by username.
type StaticStore struct {
	byUsername map[string]models.Credential
}

// NewStaticStore builds a store from the given credential rows.
func NewStaticStore(creds []models.Credential) *StaticStore {
	m := make(map[string]models.Credential, len(creds))
	for _, c := range creds {
		m[c.Username] = c
	}
	return &StaticStore{byUsername: m}
}

// NewSeededStore returns the store loaded with the built-in demo accounts:
// admin/admin123, cashier/cashier123, and user/user123.
func NewSeededStore() *StaticStore {
	return NewStaticStore([]models.Credential{
		{
			Username:     "admin",
			PasswordHash: mustHash("admin123"),
			Role:         models.RoleAdmin,
			Name:         "Administrator",
			Permissions: []string{
				"customers.view", "customers.manage",
				"suppliers.view", "suppliers.manage",
				"reports.view", "users.manage",
			},
		},
		{
			Username:     "cashier",
			PasswordHash: mustHash("cashier123"),
			Role:         models.RoleCashier,
			Name:         "Cashier",
			Permissions:  []string{"customers.view", "customers.manage"},
		},
		{
			Username:     "user",
			PasswordHash: mustHash("user123"),
			Role:         models.RoleUser,
			Name:         "General User",
			Permissions:  []string{"customers.view", "suppliers.view"},
		},
	})
}

// Verify compares the password against the stored bcrypt hash for username.
// Any miss, on either the username or the password, yields ErrNoMatch.
func (s *StaticStore) Verify(username, password string) (*models.Credential, error) {
	c, ok := s.byUsername[username]
	if !ok {
		return nil, ErrNoMatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, ErrNoMatch
	}
	out := c
	return &out, nil
}

func mustHash(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}
