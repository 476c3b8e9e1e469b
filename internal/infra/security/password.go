package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	domuser "example.com/catalog-service/internal/domain/user"
)

// BcryptService hashes account passwords. A cost below bcrypt.MinCost selects
// bcrypt.DefaultCost.
type BcryptService struct {
	cost int
}

func NewBcryptService(cost int) *BcryptService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptService{cost: cost}
}

func (s *BcryptService) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare reports domuser.ErrInvalidCredential when password does not match.
func (s *BcryptService) Compare(hash string, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domuser.ErrInvalidCredential
	}
	return err
}
