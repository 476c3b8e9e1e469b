package product

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domproduct "example.com/catalog-service/internal/domain/product"
	"example.com/catalog-service/internal/domain/softdelete"
	"example.com/catalog-service/internal/errs"
)

type mockProductRepository struct {
	products  map[int64]*domproduct.Product
	nextID    int64
	calls     int
	created   *domproduct.Product
	updated   *domproduct.Product
	createErr error
	getErr    error
	listErr   error
	deleteErr error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[int64]*domproduct.Product),
		nextID:   1,
	}
}

func (m *mockProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	m.calls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	p.ID = m.nextID
	m.nextID++
	cloned := *p
	m.products[p.ID] = &cloned
	m.created = p
	return p, nil
}

func (m *mockProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	m.calls++
	existing, ok := m.products[p.ID]
	if !ok || existing.IsDeleted() {
		return nil, domproduct.ErrProductNotFound
	}
	cloned := *p
	m.products[p.ID] = &cloned
	m.updated = &cloned
	return p, nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64, scope softdelete.Scope) (*domproduct.Product, error) {
	m.calls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.products[id]
	if !ok || (p.IsDeleted() && !scope.IncludesTrashed()) {
		return nil, domproduct.ErrProductNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (m *mockProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	m.calls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*domproduct.Product
	for _, p := range m.products {
		if p.IsDeleted() {
			continue
		}
		if filter.OnlyAvailable && !p.Available {
			continue
		}
		if filter.Search != "" && !strings.Contains(p.Name, filter.Search) {
			continue
		}
		cloned := *p
		result = append(result, &cloned)
	}
	return result, nil
}

func (m *mockProductRepository) SoftDelete(ctx context.Context, id int64) error {
	m.calls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	p, ok := m.products[id]
	if !ok || p.IsDeleted() {
		return domproduct.ErrProductNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

func (m *mockProductRepository) Restore(ctx context.Context, id int64) error {
	m.calls++
	p, ok := m.products[id]
	if !ok || !p.IsDeleted() {
		return domproduct.ErrProductNotFound
	}
	p.DeletedAt = nil
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}

func requireKind(t *testing.T, err error, kind errs.Kind, message string) {
	t.Helper()
	var e *errs.Error
	require.True(t, errors.As(err, &e), "expected *errs.Error, got %v", err)
	require.Equal(t, kind, e.Kind)
	if message != "" {
		require.Equal(t, message, e.Message)
	}
}

func seedProduct(t *testing.T, svc *Service) *domproduct.Product {
	t.Helper()
	p, err := svc.Create(context.Background(), CreateInput{Name: "Widget", Price: 9.99})
	require.NoError(t, err)
	return p
}

func TestCreateProduct_DefaultsAvailable(t *testing.T) {
	tests := []struct {
		name      string
		available *bool
	}{
		{name: "Omitted", available: nil},
		{name: "Explicit false", available: boolPtr(false)},
		{name: "Explicit true", available: boolPtr(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockProductRepository()
			svc := NewService(repo)

			p, err := svc.Create(context.Background(), CreateInput{
				Name:      "Widget",
				Price:     9.99,
				Available: tt.available,
			})

			require.NoError(t, err)
			require.True(t, p.Available)
			require.True(t, repo.products[p.ID].Available, "stored value should be true")
			require.Nil(t, p.DeletedAt)
		})
	}
}

func TestCreateProduct_RepositoryFailure(t *testing.T) {
	repo := newMockProductRepository()
	repo.createErr = errors.New("connection reset")
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), CreateInput{Name: "Widget", Price: 9.99})

	require.Nil(t, p)
	requireKind(t, err, errs.KindInternal, errs.InternalMessage)
	require.ErrorContains(t, err, "connection reset")
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := NewService(newMockProductRepository())

	p, err := svc.GetByID(context.Background(), 999)

	require.Nil(t, p)
	requireKind(t, err, errs.KindNotFound, "Product not found")
}

func TestGetProduct_SoftDeleted(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)
	created := seedProduct(t, svc)
	_, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)

	p, err := svc.GetByID(context.Background(), created.ID)

	require.Nil(t, p)
	requireKind(t, err, errs.KindNotFound, "The Product is deleted - (soft deleted)")
}

func TestGetProduct_Found(t *testing.T) {
	svc := NewService(newMockProductRepository())
	created := seedProduct(t, svc)

	p, err := svc.GetByID(context.Background(), created.ID)

	require.NoError(t, err)
	require.Equal(t, "Widget", p.Name)
	require.Equal(t, 9.99, p.Price)
}

func TestGetProduct_RepositoryFailure(t *testing.T) {
	repo := newMockProductRepository()
	repo.getErr = errors.New("timeout")
	svc := NewService(repo)

	_, err := svc.GetByID(context.Background(), 1)

	requireKind(t, err, errs.KindInternal, errs.InternalMessage)
}

func TestListProducts_ExcludesDeleted(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)
	keep := seedProduct(t, svc)
	gone := seedProduct(t, svc)
	_, err := svc.Delete(context.Background(), gone.ID)
	require.NoError(t, err)

	products, err := svc.List(context.Background(), domproduct.ListFilter{})

	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, keep.ID, products[0].ID)
}

func TestListProducts_EmptyIsNotAnError(t *testing.T) {
	svc := NewService(newMockProductRepository())

	products, err := svc.List(context.Background(), domproduct.ListFilter{})

	require.NoError(t, err)
	require.NotNil(t, products)
	require.Empty(t, products)
}

func TestListProducts_RepositoryFailure(t *testing.T) {
	repo := newMockProductRepository()
	repo.listErr = errors.New("syntax error")
	svc := NewService(repo)

	products, err := svc.List(context.Background(), domproduct.ListFilter{})

	require.Nil(t, products)
	requireKind(t, err, errs.KindInternal, "")
}

func TestDeleteProduct_ReturnsSnapshot(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)
	created := seedProduct(t, svc)

	deleted, err := svc.Delete(context.Background(), created.ID)

	require.NoError(t, err)
	require.Equal(t, created.ID, deleted.ID)
	require.Equal(t, "Widget", deleted.Name)
	require.Equal(t, 9.99, deleted.Price)
	require.True(t, deleted.Available)
	require.Empty(t, deleted.Image)
	require.Nil(t, deleted.DeletedAt, "payload is the pre-delete snapshot")
	require.True(t, repo.products[created.ID].IsDeleted())
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc := NewService(newMockProductRepository())

	p, err := svc.Delete(context.Background(), 999)

	require.Nil(t, p)
	requireKind(t, err, errs.KindNotFound, "Product not found")
}

func TestDeleteProduct_AlreadyDeleted(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)
	created := seedProduct(t, svc)
	_, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	deletedAt := *repo.products[created.ID].DeletedAt

	_, err = svc.Delete(context.Background(), created.ID)

	requireKind(t, err, errs.KindNotFound, "The product is already deleted")
	require.Equal(t, deletedAt, *repo.products[created.ID].DeletedAt, "state must not change")
}

func TestDeleteProduct_RaceLost(t *testing.T) {
	repo := newMockProductRepository()
	repo.deleteErr = domproduct.ErrProductNotFound
	svc := NewService(repo)
	created := seedProduct(t, svc)

	_, err := svc.Delete(context.Background(), created.ID)

	requireKind(t, err, errs.KindNotFound, "The product could not be deleted")
}

func TestRestoreProduct_NotFound(t *testing.T) {
	svc := NewService(newMockProductRepository())

	p, err := svc.Restore(context.Background(), 999)

	require.Nil(t, p)
	requireKind(t, err, errs.KindNotFound, "Product not found")
}

func TestRestoreProduct_NotDeleted(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)
	created := seedProduct(t, svc)

	_, err := svc.Restore(context.Background(), created.ID)

	requireKind(t, err, errs.KindNotFound, "The product is not deleted")
	require.False(t, repo.products[created.ID].IsDeleted())
}

func TestDeleteThenRestore_Lifecycle(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)
	created := seedProduct(t, svc)

	_, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), created.ID)
	requireKind(t, err, errs.KindNotFound, "The Product is deleted - (soft deleted)")

	restored, err := svc.Restore(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, restored.ID)
	require.Equal(t, "Widget", restored.Name)

	p, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.False(t, p.IsDeleted())
}

func TestUpdateProduct_NoFields(t *testing.T) {
	tests := []struct {
		name  string
		input UpdateInput
	}{
		{name: "Nothing sent", input: UpdateInput{ID: 1}},
		{name: "Only available false", input: UpdateInput{ID: 1, Available: boolPtr(false)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockProductRepository()
			svc := NewService(repo)

			out, err := svc.Update(context.Background(), tt.input)

			require.Nil(t, out)
			requireKind(t, err, errs.KindBadRequest, "No data was sent - The product could not be updated")
			require.Zero(t, repo.calls, "repository must not be touched")
		})
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc := NewService(newMockProductRepository())

	_, err := svc.Update(context.Background(), UpdateInput{ID: 999, Name: "Gadget"})

	requireKind(t, err, errs.KindNotFound, "Product not found")
}

func TestUpdateProduct_SoftDeletedIsNotFound(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)
	created := seedProduct(t, svc)
	_, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), UpdateInput{ID: created.ID, Name: "Gadget"})

	requireKind(t, err, errs.KindNotFound, "Product not found")
}

func TestUpdateProduct_PartialUpdate(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), CreateInput{
		Name:  "Widget",
		Price: 9.99,
		Image: "widget.png",
	})
	require.NoError(t, err)

	out, err := svc.Update(context.Background(), UpdateInput{
		ID:        created.ID,
		Price:     12.5,
		Available: boolPtr(true),
	})

	require.NoError(t, err)
	require.Equal(t, created.ID, out.ID)
	require.Equal(t, 12.5, out.Price)
	require.Empty(t, out.Name, "response echoes the input, not the stored row")

	stored := repo.products[created.ID]
	require.Equal(t, "Widget", stored.Name, "name should remain unchanged")
	require.Equal(t, "widget.png", stored.Image, "image should remain unchanged")
	require.Equal(t, 12.5, stored.Price)
	require.True(t, stored.Available)
}

func TestUpdateProduct_AvailableAlwaysOverwritten(t *testing.T) {
	tests := []struct {
		name      string
		available *bool
		want      bool
	}{
		{name: "Explicit false", available: boolPtr(false), want: false},
		{name: "Omitted", available: nil, want: false},
		{name: "Explicit true", available: boolPtr(true), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockProductRepository()
			svc := NewService(repo)
			created := seedProduct(t, svc)

			_, err := svc.Update(context.Background(), UpdateInput{
				ID:        created.ID,
				Name:      "Gadget",
				Available: tt.available,
			})

			require.NoError(t, err)
			require.Equal(t, tt.want, repo.products[created.ID].Available)
			require.Equal(t, "Gadget", repo.products[created.ID].Name)
		})
	}
}
