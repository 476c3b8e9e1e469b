package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"example.com/catalog-service/internal/config"
	"example.com/catalog-service/internal/database"
	domuser "example.com/catalog-service/internal/domain/user"
	"example.com/catalog-service/internal/infra/persistence/sqldb"
	"example.com/catalog-service/internal/infra/security"
	authuc "example.com/catalog-service/internal/usecase/auth"
	paymethoduc "example.com/catalog-service/internal/usecase/paymethod"
	productuc "example.com/catalog-service/internal/usecase/product"
	useruc "example.com/catalog-service/internal/usecase/user"
)

const testSecret = "test-secret-0123456789"

type testEnv struct {
	router chi.Router
	db     *database.Database
	tokens *security.JWTService
	users  *useruc.Service
}

func setupAPI(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(context.Background(), config.DatabaseConfig{
		Driver:       database.DriverSQLite,
		DSN:          ":memory:",
		MaxOpenConns: 1,
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { _ = db.Close() })

	tokenSvc := security.NewJWTService(testSecret, time.Hour)
	passwords := security.NewBcryptService(bcrypt.MinCost)
	userRepo := sqldb.NewUserRepository(db)

	api := NewAPI(Dependencies{
		AuthService:      authuc.NewService(userRepo, passwords, tokenSvc),
		ProductService:   productuc.NewService(sqldb.NewProductRepository(db)),
		PayMethodService: paymethoduc.NewService(sqldb.NewPayMethodRepository(db)),
		DB:               db,
		Logger:           zerolog.Nop(),
	})

	return &testEnv{
		router: api.Router(),
		db:     db,
		tokens: tokenSvc,
		users:  useruc.NewService(userRepo, passwords),
	}
}

func (e *testEnv) token(t *testing.T, role domuser.RoleCode) string {
	t.Helper()
	token, _, err := e.tokens.Issue(authuc.Claims{UserID: 1, Role: role})
	require.NoError(t, err)
	return token
}

type envelopeBody struct {
	OK      bool           `json:"ok"`
	Data    map[string]any `json:"data"`
	Message string         `json:"message"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, envelopeBody) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelopeBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func nested(t *testing.T, data map[string]any, key string) map[string]any {
	t.Helper()
	v, ok := data[key].(map[string]any)
	require.True(t, ok, "data.%s should be an object, got %v", key, data[key])
	return v
}
