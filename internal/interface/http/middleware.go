package http

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"example.com/catalog-service/internal/errs"
	authuc "example.com/catalog-service/internal/usecase/auth"
)

type ctxKey struct{}

var ctxUserKey = ctxKey{}

const (
	msgUnauthenticated = "unauthenticated"
	msgForbidden       = "forbidden"
	msgUnsupportedType = "Content-Type must be application/json"
)

func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respond(w, http.StatusUnauthorized, nil, msgUnauthenticated)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := a.authSvc.Verify(token)
		if err != nil {
			hlog.FromRequest(r).Debug().Err(err).Msg("rejected bearer token")
			respond(w, http.StatusUnauthorized, nil, msgUnauthenticated)
			return
		}

		zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", claims.UserID)
		})

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey, claims)))
	})
}

func (a *API) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := sessionClaims(r.Context())
		if claims == nil {
			respond(w, http.StatusUnauthorized, nil, msgUnauthenticated)
			return
		}
		if !claims.Role.IsAdmin() {
			respond(w, http.StatusForbidden, nil, msgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionClaims(ctx context.Context) *authuc.Claims {
	claims, _ := ctx.Value(ctxUserKey).(*authuc.Claims)
	return claims
}

// requireJSON answers a request whose body is not declared as JSON with a 415
// envelope. Bodiless requests pass through.
func requireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			respond(w, http.StatusUnsupportedMediaType, nil, msgUnsupportedType)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestIDLogger tags the request logger with chi's request id.
func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("request_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	logger := hlog.FromRequest(r)

	var e *zerolog.Event
	switch {
	case status >= 500:
		e = logger.Error()
	case status >= 400:
		e = logger.Warn()
	default:
		e = logger.Info()
	}

	e.Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("latency", duration).
		Msg("API")
}

// recoverer turns a panic into a 500 envelope.
func (a *API) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			hlog.FromRequest(r).Error().
				Str("stack", string(debug.Stack())).
				Msgf("panic: %v", rec)
			respondError(w, r, errs.Internal(fmt.Errorf("panic: %v", rec)))
		}()
		next.ServeHTTP(w, r)
	})
}
