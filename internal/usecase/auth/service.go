// Package auth backs the admin gate: administrators trade their credentials
// for a bearer token, and the gate resolves that token back to a subject and
// a role.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	domuser "example.com/catalog-service/internal/domain/user"
)

// Claims is everything the gate reads from a token.
type Claims struct {
	UserID int64
	Role   domuser.RoleCode
}

type TokenIssuer interface {
	Issue(c Claims) (token string, expiresAt time.Time, err error)
	Verify(token string) (*Claims, error)
}

type CredentialChecker interface {
	Compare(hash string, password string) error
}

type Service struct {
	users  domuser.Repository
	creds  CredentialChecker
	tokens TokenIssuer
}

func NewService(users domuser.Repository, creds CredentialChecker, tokens TokenIssuer) *Service {
	return &Service{users: users, creds: creds, tokens: tokens}
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	Admin     *domuser.User
}

// SignIn exchanges the credentials of an account created with
// `catalog admin create` for a session token. Accounts without the ADMIN role
// are refused with ErrNotAdmin since no gated route would accept their token.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domuser.ErrInvalidCredential
	}

	u, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domuser.ErrUserNotFound):
		return nil, domuser.ErrUnauthorized
	case err != nil:
		return nil, err
	}
	if err := s.creds.Compare(u.PasswordHash, password); err != nil {
		return nil, domuser.ErrUnauthorized
	}
	if !u.RoleCode.IsAdmin() {
		return nil, domuser.ErrNotAdmin
	}

	token, expiresAt, err := s.tokens.Issue(Claims{UserID: u.ID, Role: u.RoleCode})
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, Admin: u}, nil
}

// Verify resolves a bearer token without touching the database.
func (s *Service) Verify(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}

// Whoami loads the account a verified token was issued to. A token whose
// account is gone, or whose role has changed since issue, no longer identifies
// anyone.
func (s *Service) Whoami(ctx context.Context, c *Claims) (*domuser.User, error) {
	u, err := s.users.GetByID(ctx, c.UserID)
	switch {
	case errors.Is(err, domuser.ErrUserNotFound):
		return nil, domuser.ErrUnauthorized
	case err != nil:
		return nil, err
	}
	if u.RoleCode != c.Role {
		return nil, domuser.ErrUnauthorized
	}
	return u, nil
}
