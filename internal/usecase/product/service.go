package product

import (
	"context"
	"errors"

	dom "example.com/catalog-service/internal/domain/product"
	"example.com/catalog-service/internal/domain/softdelete"
	"example.com/catalog-service/internal/errs"
)

const (
	msgNotFound       = "Product not found"
	msgIsDeleted      = "The Product is deleted - (soft deleted)"
	msgAlreadyDeleted = "The product is already deleted"
	msgNotDeleted     = "The product is not deleted"
	msgNotDeletable   = "The product could not be deleted"
	msgNotRestorable  = "The product could not be restored"
	msgNotRegistered  = "The product could not be registered"
	msgNotUpdatable   = "The product could not be updated"
	msgNoUpdateData   = "No data was sent - The product could not be updated"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name      string
	Price     float64
	Image     string
	Available *bool
}

// UpdateInput carries the fields of a partial update. Zero values mean
// "not sent" for Name, Price and Image; Available is nil when not sent.
type UpdateInput struct {
	ID        int64
	Name      string
	Price     float64
	Image     string
	Available *bool
}

func (in UpdateInput) empty() bool {
	return in.Name == "" && in.Price == 0 && in.Image == "" && (in.Available == nil || !*in.Available)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*dom.Product, error) {
	p := &dom.Product{
		Name:      in.Name,
		Price:     in.Price,
		Image:     in.Image,
		Available: in.Available != nil && *in.Available,
	}
	if !p.Available {
		p.Available = true
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if created == nil {
		return nil, errs.NotFound(msgNotRegistered)
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*dom.Product, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsDeleted() {
		return nil, errs.NotFound(msgIsDeleted)
	}
	return p, nil
}

// List never reports an empty catalog as an error; callers get an empty slice.
func (s *Service) List(ctx context.Context, filter dom.ListFilter) ([]*dom.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if products == nil {
		products = []*dom.Product{}
	}
	return products, nil
}

// Delete soft-deletes the product and returns its state from before the call.
func (s *Service) Delete(ctx context.Context, id int64) (*dom.Product, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsDeleted() {
		return nil, errs.NotFound(msgAlreadyDeleted)
	}

	snapshot := p.Snapshot()
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, dom.ErrProductNotFound) {
			return nil, errs.NotFound(msgNotDeletable)
		}
		return nil, errs.Internal(err)
	}
	return snapshot, nil
}

func (s *Service) Restore(ctx context.Context, id int64) (*dom.Product, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsDeleted() {
		return nil, errs.NotFound(msgNotDeleted)
	}

	snapshot := p.Snapshot()
	if err := s.repo.Restore(ctx, id); err != nil {
		if errors.Is(err, dom.ErrProductNotFound) {
			return nil, errs.NotFound(msgNotRestorable)
		}
		return nil, errs.Internal(err)
	}
	return snapshot, nil
}

// Update applies a partial update and echoes the input back. Name, Price and
// Image keep their stored value when the input is zero; Available is always
// written, so an absent value stores false.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*UpdateInput, error) {
	if in.empty() {
		return nil, errs.BadRequest(msgNoUpdateData)
	}

	existed, err := s.repo.GetByID(ctx, in.ID, softdelete.Default)
	if err != nil {
		if errors.Is(err, dom.ErrProductNotFound) {
			return nil, errs.NotFound(msgNotFound)
		}
		return nil, errs.Internal(err)
	}

	if in.Name != "" {
		existed.Name = in.Name
	}
	if in.Price != 0 {
		existed.Price = in.Price
	}
	if in.Image != "" {
		existed.Image = in.Image
	}
	existed.Available = in.Available != nil && *in.Available

	updated, err := s.repo.Update(ctx, existed)
	if err != nil {
		if errors.Is(err, dom.ErrProductNotFound) {
			return nil, errs.NotFound(msgNotUpdatable)
		}
		return nil, errs.Internal(err)
	}
	if updated == nil {
		return nil, errs.NotFound(msgNotUpdatable)
	}

	echo := in
	return &echo, nil
}

func (s *Service) find(ctx context.Context, id int64) (*dom.Product, error) {
	p, err := s.repo.GetByID(ctx, id, softdelete.WithTrashed)
	if err != nil {
		if errors.Is(err, dom.ErrProductNotFound) {
			return nil, errs.NotFound(msgNotFound)
		}
		return nil, errs.Internal(err)
	}
	return p, nil
}
