package paymethod

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dompaymethod "example.com/catalog-service/internal/domain/paymethod"
	"example.com/catalog-service/internal/domain/softdelete"
	"example.com/catalog-service/internal/errs"
)

type mockPayMethodRepository struct {
	methods   map[int64]*dompaymethod.PayMethod
	nextID    int64
	calls     int
	createErr error
	nameErr   error
}

func newMockPayMethodRepository() *mockPayMethodRepository {
	return &mockPayMethodRepository{
		methods: make(map[int64]*dompaymethod.PayMethod),
		nextID:  1,
	}
}

func (m *mockPayMethodRepository) Create(ctx context.Context, pm *dompaymethod.PayMethod) (*dompaymethod.PayMethod, error) {
	m.calls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	pm.ID = m.nextID
	m.nextID++
	cloned := *pm
	m.methods[pm.ID] = &cloned
	return pm, nil
}

func (m *mockPayMethodRepository) Update(ctx context.Context, pm *dompaymethod.PayMethod) (*dompaymethod.PayMethod, error) {
	m.calls++
	existing, ok := m.methods[pm.ID]
	if !ok || existing.IsDeleted() {
		return nil, dompaymethod.ErrPayMethodNotFound
	}
	cloned := *pm
	m.methods[pm.ID] = &cloned
	return pm, nil
}

func (m *mockPayMethodRepository) GetByID(ctx context.Context, id int64, scope softdelete.Scope) (*dompaymethod.PayMethod, error) {
	m.calls++
	pm, ok := m.methods[id]
	if !ok || (pm.IsDeleted() && !scope.IncludesTrashed()) {
		return nil, dompaymethod.ErrPayMethodNotFound
	}
	cloned := *pm
	return &cloned, nil
}

func (m *mockPayMethodRepository) GetByName(ctx context.Context, name string, scope softdelete.Scope) (*dompaymethod.PayMethod, error) {
	m.calls++
	if m.nameErr != nil {
		return nil, m.nameErr
	}
	for _, pm := range m.methods {
		if pm.Name != name {
			continue
		}
		if pm.IsDeleted() && !scope.IncludesTrashed() {
			continue
		}
		cloned := *pm
		return &cloned, nil
	}
	return nil, dompaymethod.ErrPayMethodNotFound
}

func (m *mockPayMethodRepository) List(ctx context.Context, filter dompaymethod.ListFilter) ([]*dompaymethod.PayMethod, error) {
	m.calls++
	var result []*dompaymethod.PayMethod
	for _, pm := range m.methods {
		if pm.IsDeleted() {
			continue
		}
		cloned := *pm
		result = append(result, &cloned)
	}
	return result, nil
}

func (m *mockPayMethodRepository) SoftDelete(ctx context.Context, id int64) error {
	m.calls++
	pm, ok := m.methods[id]
	if !ok || pm.IsDeleted() {
		return dompaymethod.ErrPayMethodNotFound
	}
	now := time.Now()
	pm.DeletedAt = &now
	return nil
}

func (m *mockPayMethodRepository) Restore(ctx context.Context, id int64) error {
	m.calls++
	pm, ok := m.methods[id]
	if !ok || !pm.IsDeleted() {
		return dompaymethod.ErrPayMethodNotFound
	}
	pm.DeletedAt = nil
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

func TestCreatePayMethod_Valid(t *testing.T) {
	repo := newMockPayMethodRepository()
	svc := NewService(repo)

	pm, err := svc.Create(context.Background(), CreateInput{Name: " Credit card ", Code: "card"})

	require.NoError(t, err)
	require.NotZero(t, pm.ID)
	require.Equal(t, "Credit card", pm.Name)
	require.Equal(t, "CARD", pm.Code)
	require.True(t, pm.Available)
}

func TestCreatePayMethod_DuplicateName(t *testing.T) {
	tests := []struct {
		name          string
		deleteExisted bool
	}{
		{name: "Active duplicate"},
		{name: "Soft-deleted duplicate", deleteExisted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockPayMethodRepository()
			svc := NewService(repo)
			existed, err := svc.Create(context.Background(), CreateInput{Name: "Cash"})
			require.NoError(t, err)
			if tt.deleteExisted {
				_, err = svc.Delete(context.Background(), existed.ID)
				require.NoError(t, err)
			}

			pm, err := svc.Create(context.Background(), CreateInput{Name: "Cash"})

			require.Nil(t, pm)
			requireKind(t, err, errs.KindBadRequest, "The payment method already exists")
			require.Len(t, repo.methods, 1)
		})
	}
}

func TestCreatePayMethod_LookupFailure(t *testing.T) {
	repo := newMockPayMethodRepository()
	repo.nameErr = errors.New("deadlock")
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Cash"})

	requireKind(t, err, errs.KindInternal, errs.InternalMessage)
	require.Empty(t, repo.methods)
}

func TestGetPayMethod_States(t *testing.T) {
	repo := newMockPayMethodRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), CreateInput{Name: "Cash"})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 999)
	requireKind(t, err, errs.KindNotFound, "Payment method not found")

	pm, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Cash", pm.Name)

	_, err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), created.ID)
	requireKind(t, err, errs.KindNotFound, "The payment method is deleted - (soft deleted)")
}

func TestDeletePayMethod_AlreadyDeleted(t *testing.T) {
	repo := newMockPayMethodRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), CreateInput{Name: "Cash"})
	require.NoError(t, err)

	snapshot, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Cash", snapshot.Name)
	require.Nil(t, snapshot.DeletedAt)

	_, err = svc.Delete(context.Background(), created.ID)
	requireKind(t, err, errs.KindNotFound, "The payment method is already deleted")
}

func TestRestorePayMethod(t *testing.T) {
	repo := newMockPayMethodRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), CreateInput{Name: "Cash"})
	require.NoError(t, err)

	_, err = svc.Restore(context.Background(), created.ID)
	requireKind(t, err, errs.KindNotFound, "The payment method is not deleted")

	_, err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)

	restored, err := svc.Restore(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, restored.ID)
	require.False(t, repo.methods[created.ID].IsDeleted())

	_, err = svc.Restore(context.Background(), 999)
	requireKind(t, err, errs.KindNotFound, "Payment method not found")
}

func TestListPayMethods_Empty(t *testing.T) {
	svc := NewService(newMockPayMethodRepository())

	methods, err := svc.List(context.Background(), dompaymethod.ListFilter{})

	require.NoError(t, err)
	require.NotNil(t, methods)
	require.Empty(t, methods)
}

func TestUpdatePayMethod(t *testing.T) {
	repo := newMockPayMethodRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), CreateInput{Name: "Cash", Code: "CASH"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), UpdateInput{ID: created.ID})
	requireKind(t, err, errs.KindBadRequest, "No data was sent - The payment method could not be updated")

	out, err := svc.Update(context.Background(), UpdateInput{
		ID:        created.ID,
		Name:      "Cash on delivery",
		Available: boolPtr(false),
	})
	require.NoError(t, err)
	require.Equal(t, "Cash on delivery", out.Name)
	require.Empty(t, out.Code)

	stored := repo.methods[created.ID]
	require.Equal(t, "Cash on delivery", stored.Name)
	require.Equal(t, "CASH", stored.Code, "code should remain unchanged")
	require.False(t, stored.Available)

	_, err = svc.Update(context.Background(), UpdateInput{ID: 999, Code: "X"})
	requireKind(t, err, errs.KindNotFound, "Payment method not found")
}

func TestCreatePayMethod_NameTakenByConcurrentInsert(t *testing.T) {
	repo := newMockPayMethodRepository()
	repo.createErr = dompaymethod.ErrPayMethodNameTaken
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Cash"})

	requireKind(t, err, errs.KindBadRequest, "The payment method already exists")
}

func TestCreatePayMethod_BlankName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t"} {
		repo := newMockPayMethodRepository()
		svc := NewService(repo)

		pm, err := svc.Create(context.Background(), CreateInput{Name: name})

		require.Nil(t, pm)
		requireKind(t, err, errs.KindBadRequest, "The payment method name is required")
		require.Empty(t, repo.methods)
	}
}

func TestUpdatePayMethod_BlankNameKeepsStored(t *testing.T) {
	repo := newMockPayMethodRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), CreateInput{Name: "Cash"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), UpdateInput{ID: created.ID, Name: "  "})
	requireKind(t, err, errs.KindBadRequest, "No data was sent - The payment method could not be updated")

	_, err = svc.Update(context.Background(), UpdateInput{ID: created.ID, Name: "  ", Code: "cod"})
	require.NoError(t, err)
	require.Equal(t, "Cash", repo.methods[created.ID].Name)
	require.Equal(t, "COD", repo.methods[created.ID].Code)
}
