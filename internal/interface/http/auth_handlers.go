package http

import (
	"errors"
	"net/http"
	"time"

	domuser "example.com/catalog-service/internal/domain/user"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadInput(w, err)
		return
	}

	session, err := a.authSvc.SignIn(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, domuser.ErrInvalidCredential):
		respond(w, http.StatusBadRequest, nil, "Email and password are required")
		return
	case errors.Is(err, domuser.ErrUnauthorized):
		respond(w, http.StatusUnauthorized, nil, "Invalid email or password")
		return
	case errors.Is(err, domuser.ErrNotAdmin):
		respond(w, http.StatusForbidden, nil, msgForbidden)
		return
	case err != nil:
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"token":     session.Token,
		"expiresAt": session.ExpiresAt.UTC().Format(time.RFC3339),
		"user":      mapUser(session.Admin),
	}, "Successfully logged in")
}

// handleWhoami serves the account behind the bearer token.
func (a *API) handleWhoami(w http.ResponseWriter, r *http.Request) {
	u, err := a.authSvc.Whoami(r.Context(), sessionClaims(r.Context()))
	switch {
	case errors.Is(err, domuser.ErrUnauthorized):
		respond(w, http.StatusUnauthorized, nil, msgUnauthenticated)
		return
	case err != nil:
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"user": mapUser(u)}, "Successfully recovered User")
}

func mapUser(u *domuser.User) map[string]any {
	return map[string]any{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"role_code": u.RoleCode,
	}
}
