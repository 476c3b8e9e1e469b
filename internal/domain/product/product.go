package product

import (
	"time"

	"example.com/catalog-service/internal/domain/softdelete"
)

type Product struct {
	ID        int64
	Name      string
	Price     float64
	Image     string
	Available bool
	DeletedAt *time.Time
}

func (p *Product) IsDeleted() bool {
	return softdelete.IsDeleted(p.DeletedAt)
}

// Snapshot copies the public fields so they survive a later mutation of p.
func (p *Product) Snapshot() *Product {
	return &Product{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Available: p.Available,
	}
}

type ListFilter struct {
	Search        string
	OnlyAvailable bool
}
