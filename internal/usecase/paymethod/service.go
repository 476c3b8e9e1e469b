package paymethod

import (
	"context"
	"errors"
	"strings"

	dom "example.com/catalog-service/internal/domain/paymethod"
	"example.com/catalog-service/internal/domain/softdelete"
	"example.com/catalog-service/internal/errs"
)

const (
	msgNotFound       = "Payment method not found"
	msgIsDeleted      = "The payment method is deleted - (soft deleted)"
	msgAlreadyDeleted = "The payment method is already deleted"
	msgNotDeleted     = "The payment method is not deleted"
	msgNotDeletable   = "The payment method could not be deleted"
	msgNotRestorable  = "The payment method could not be restored"
	msgNotRegistered  = "The payment method could not be registered"
	msgNotUpdatable   = "The payment method could not be updated"
	msgNoUpdateData   = "No data was sent - The payment method could not be updated"
	msgAlreadyExists  = "The payment method already exists"
	msgNameRequired   = "The payment method name is required"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name      string
	Code      string
	Available *bool
}

type UpdateInput struct {
	ID        int64
	Name      string
	Code      string
	Available *bool
}

func (in UpdateInput) empty() bool {
	return in.Name == "" && in.Code == "" && (in.Available == nil || !*in.Available)
}

// EnsureNameFree fails when any payment method, deleted or not, already uses name.
func (s *Service) EnsureNameFree(ctx context.Context, name string) error {
	_, err := s.repo.GetByName(ctx, strings.TrimSpace(name), softdelete.WithTrashed)
	switch {
	case err == nil:
		return errs.BadRequest(msgAlreadyExists)
	case errors.Is(err, dom.ErrPayMethodNotFound):
		return nil
	default:
		return errs.Internal(err)
	}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*dom.PayMethod, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errs.BadRequest(msgNameRequired)
	}
	if err := s.EnsureNameFree(ctx, name); err != nil {
		return nil, err
	}

	m := &dom.PayMethod{
		Name:      name,
		Code:      strings.ToUpper(strings.TrimSpace(in.Code)),
		Available: in.Available != nil && *in.Available,
	}
	if !m.Available {
		m.Available = true
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		if errors.Is(err, dom.ErrPayMethodNameTaken) {
			return nil, errs.BadRequest(msgAlreadyExists)
		}
		return nil, errs.Internal(err)
	}
	if created == nil {
		return nil, errs.NotFound(msgNotRegistered)
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*dom.PayMethod, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.IsDeleted() {
		return nil, errs.NotFound(msgIsDeleted)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, filter dom.ListFilter) ([]*dom.PayMethod, error) {
	methods, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if methods == nil {
		methods = []*dom.PayMethod{}
	}
	return methods, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (*dom.PayMethod, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.IsDeleted() {
		return nil, errs.NotFound(msgAlreadyDeleted)
	}

	snapshot := m.Snapshot()
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, dom.ErrPayMethodNotFound) {
			return nil, errs.NotFound(msgNotDeletable)
		}
		return nil, errs.Internal(err)
	}
	return snapshot, nil
}

func (s *Service) Restore(ctx context.Context, id int64) (*dom.PayMethod, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.IsDeleted() {
		return nil, errs.NotFound(msgNotDeleted)
	}

	snapshot := m.Snapshot()
	if err := s.repo.Restore(ctx, id); err != nil {
		if errors.Is(err, dom.ErrPayMethodNotFound) {
			return nil, errs.NotFound(msgNotRestorable)
		}
		return nil, errs.Internal(err)
	}
	return snapshot, nil
}

// Update follows the product rules: Name and Code keep their stored value
// when blank, Available is always written.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*UpdateInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	if in.empty() {
		return nil, errs.BadRequest(msgNoUpdateData)
	}

	existed, err := s.repo.GetByID(ctx, in.ID, softdelete.Default)
	if err != nil {
		if errors.Is(err, dom.ErrPayMethodNotFound) {
			return nil, errs.NotFound(msgNotFound)
		}
		return nil, errs.Internal(err)
	}

	if in.Name != "" {
		existed.Name = in.Name
	}
	if in.Code != "" {
		existed.Code = strings.ToUpper(in.Code)
	}
	existed.Available = in.Available != nil && *in.Available

	updated, err := s.repo.Update(ctx, existed)
	if err != nil {
		if errors.Is(err, dom.ErrPayMethodNotFound) {
			return nil, errs.NotFound(msgNotUpdatable)
		}
		if errors.Is(err, dom.ErrPayMethodNameTaken) {
			return nil, errs.BadRequest(msgAlreadyExists)
		}
		return nil, errs.Internal(err)
	}
	if updated == nil {
		return nil, errs.NotFound(msgNotUpdatable)
	}

	echo := in
	return &echo, nil
}

func (s *Service) find(ctx context.Context, id int64) (*dom.PayMethod, error) {
	m, err := s.repo.GetByID(ctx, id, softdelete.WithTrashed)
	if err != nil {
		if errors.Is(err, dom.ErrPayMethodNotFound) {
			return nil, errs.NotFound(msgNotFound)
		}
		return nil, errs.Internal(err)
	}
	return m, nil
}
