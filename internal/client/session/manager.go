// Package session owns the client's authentication state: exactly one of
// {unauthenticated, authenticated}, entered via Login or Restore and left
// only via Logout. The session survives restarts as a signed token in the
// local sqlite store.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/possoft/posadmin/internal/client/credentials"
	"github.com/possoft/posadmin/internal/client/models"
	"github.com/possoft/posadmin/internal/client/repositories/localstate"
	"github.com/possoft/posadmin/internal/dbx"
	"github.com/possoft/posadmin/internal/logging"
)

var (
	// ErrMissingFields is returned before the verifier is consulted when
	// either login field is blank.
	ErrMissingFields = errors.New("username and password are required")

	// ErrInvalidCredentials deliberately does not distinguish an unknown
	// user from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Storage keys for the persisted session.
const (
	tokenKey     = "session_token"
	lastLoginKey = "last_login"
)

// Manager is the single process-wide session authority. It is constructed
// at startup and injected into whichever component needs auth state;
// nothing else mutates the session.
type Manager struct {
	verifier   credentials.Verifier
	db         *sql.DB
	signingKey []byte
	log        logging.Logger

	user  *models.User
	token string
}

// NewManager wires the session manager to its collaborators. The sqlite
// handle must already have the localstate table migrated.
func NewManager(verifier credentials.Verifier, db *sql.DB, signingKey []byte, log logging.Logger) *Manager {
	return &Manager{verifier: verifier, db: db, signingKey: signingKey, log: log}
}

func (m *Manager) store() localstate.Repository {
	return localstate.NewSQLiteRepository(m.db)
}

// Restore loads a previously persisted session, if any. Malformed or
// missing data is treated as "no session"; Restore never fails.
func (m *Manager) Restore(ctx context.Context) {
	raw, err := m.store().Get(ctx, tokenKey)
	if err != nil {
		m.log.Warn(ctx, "session restore: reading local store", "err", err)
		return
	}
	if raw == nil {
		return
	}

	user, err := parseToken(string(raw), m.signingKey)
	if err != nil {
		m.log.Warn(ctx, "session restore: discarding unusable token")
		return
	}

	m.user = user
	m.token = string(raw)
	m.log.Info(ctx, "session restored", "username", user.Username, "role", user.Role)
}

// Login verifies the credentials and, on success, replaces the current
// session and persists it. On any failure the prior session is untouched.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return ErrMissingFields
	}

	cred, err := m.verifier.Verify(username, password)
	if err != nil {
		if errors.Is(err, credentials.ErrNoMatch) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("verifying credentials: %w", err)
	}

	user := &models.User{
		Username:    cred.Username,
		Role:        cred.Role,
		Name:        cred.Name,
		Permissions: cred.Permissions,
	}

	token, err := signToken(user, m.signingKey)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localstate.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, tokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, lastLoginKey, []byte(time.Now().UTC().Format(time.RFC3339)))
	})
	if err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	m.user = user
	m.token = token
	m.log.Info(ctx, "logged in", "username", user.Username, "role", user.Role)
	return nil
}

// Logout clears the in-memory session and removes the persisted copy.
// Idempotent: logging out while unauthenticated is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.user = nil
	m.token = ""

	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localstate.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, tokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, lastLoginKey)
	})
	if err != nil {
		return fmt.Errorf("clearing persisted session: %w", err)
	}
	return nil
}

// Current returns the authenticated user, or nil.
func (m *Manager) Current() *models.User {
	return m.user
}

// IsAuthenticated holds exactly when a user is present.
func (m *Manager) IsAuthenticated() bool {
	return m.user != nil
}

// HasPermission is false when unauthenticated, otherwise a membership
// test against the user's permission set.
func (m *Manager) HasPermission(p string) bool {
	if m.user == nil {
		return false
	}
	return m.user.HasPermission(p)
}

func (m *Manager) IsAdmin() bool   { return m.user != nil && m.user.Role == models.RoleAdmin }
func (m *Manager) IsCashier() bool { return m.user != nil && m.user.Role == models.RoleCashier }
func (m *Manager) IsUser() bool    { return m.user != nil && m.user.Role == models.RoleUser }

// Token exposes the signed session token for outgoing API calls.
// Empty when unauthenticated.
func (m *Manager) Token() string {
	return m.token
}
