package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	authuc "example.com/catalog-service/internal/usecase/auth"
	paymethoduc "example.com/catalog-service/internal/usecase/paymethod"
	productuc "example.com/catalog-service/internal/usecase/product"
)

// Pinger is satisfied by the database handle; the health route uses it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type API struct {
	authSvc      *authuc.Service
	productSvc   *productuc.Service
	payMethodSvc *paymethoduc.Service
	db           Pinger
	log          zerolog.Logger
	validator    *validator.Validate
}

type Dependencies struct {
	AuthService      *authuc.Service
	ProductService   *productuc.Service
	PayMethodService *paymethoduc.Service
	DB               Pinger
	Logger           zerolog.Logger
}

func NewAPI(deps Dependencies) *API {
	validate := validator.New()
	return &API{
		authSvc:      deps.AuthService,
		productSvc:   deps.ProductService,
		payMethodSvc: deps.PayMethodService,
		db:           deps.DB,
		log:          deps.Logger,
		validator:    validate,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(hlog.NewHandler(a.log))
	r.Use(requestIDLogger)
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(a.recoverer)
	r.Use(requireJSON)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusNotFound, nil, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusMethodNotAllowed, nil, "Method not allowed")
	})

	r.Get("/health", a.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", a.handleLogin)
		r.With(a.authMiddleware).Get("/auth/me", a.handleWhoami)

		r.Route("/products", func(rr chi.Router) {
			rr.Put("/", a.handleUpdateProduct)
			rr.Put("/{id}", a.handleRestoreProduct)

			rr.Group(func(ar chi.Router) {
				ar.Use(a.authMiddleware)
				ar.Use(a.requireAdmin)
				ar.Post("/", a.handleCreateProduct)
				ar.Get("/", a.handleListProducts)
				ar.Get("/{id}", a.handleGetProduct)
				ar.Delete("/{id}", a.handleDeleteProduct)
			})
		})

		r.Route("/paymethods", func(rr chi.Router) {
			rr.Put("/", a.handleUpdatePayMethod)
			rr.Put("/{id}", a.handleRestorePayMethod)

			rr.Group(func(ar chi.Router) {
				ar.Use(a.authMiddleware)
				ar.Use(a.requireAdmin)
				ar.Post("/", a.handleCreatePayMethod)
				ar.Get("/", a.handleListPayMethods)
				ar.Get("/{id}", a.handleGetPayMethod)
				ar.Delete("/{id}", a.handleDeletePayMethod)
			})
		})
	})

	return r
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"status": "ok", "database": "ok"}
	if a.db == nil {
		data["database"] = "not configured"
		respond(w, http.StatusOK, data, "Service is healthy")
		return
	}
	if err := a.db.PingContext(r.Context()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("health check failed")
		data["status"] = "degraded"
		data["database"] = err.Error()
		respond(w, http.StatusServiceUnavailable, data, "Database unreachable")
		return
	}
	respond(w, http.StatusOK, data, "Service is healthy")
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errMalformedBody
	}
	return a.validator.Struct(dst)
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

const msgInvalidID = "The id must be a number"

// queryFlag reports whether a query parameter is set to 1 or true.
func queryFlag(r *http.Request, key string) bool {
	v := r.URL.Query().Get(key)
	return v == "1" || v == "true"
}
