package paymethod

import (
	"time"

	"example.com/catalog-service/internal/domain/softdelete"
)

type PayMethod struct {
	ID        int64
	Name      string
	Code      string
	Available bool
	DeletedAt *time.Time
}

func (m *PayMethod) IsDeleted() bool {
	return softdelete.IsDeleted(m.DeletedAt)
}

func (m *PayMethod) Snapshot() *PayMethod {
	return &PayMethod{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		Available: m.Available,
	}
}

type ListFilter struct {
	Search        string
	OnlyAvailable bool
}
