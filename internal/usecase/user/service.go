package user

import (
	"context"
	"errors"
	"strings"

	dom "example.com/catalog-service/internal/domain/user"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Service struct {
	repo   dom.Repository
	hasher PasswordHasher
}

func NewService(repo dom.Repository, hasher PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	RoleCode dom.RoleCode
}

// CreateUser registers an account. It backs the `admin create` command, which
// is how the first administrator is provisioned.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*dom.User, error) {
	if !in.RoleCode.IsValid() {
		return nil, dom.ErrInvalidRoleCode
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, dom.ErrInvalidCredential
	}

	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, dom.ErrEmailAlreadyUsed
	case !errors.Is(err, dom.ErrUserNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &dom.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		RoleCode:     in.RoleCode,
	})
}
