package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/hlog"

	"example.com/catalog-service/internal/errs"
)

var errMalformedBody = errors.New("Malformed JSON body")

// envelope is the body of every response. The HTTP status mirrors code.
type envelope struct {
	OK      bool   `json:"ok"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respond(w http.ResponseWriter, code int, data any, message string) {
	if data == nil {
		data = map[string]any{}
	}
	writeJSON(w, code, envelope{
		OK:      code >= 200 && code < 300,
		Data:    data,
		Message: message,
	})
}

// respondError renders a service failure. Internal failures carry their cause
// in data.error and are logged with the request logger.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	e := errs.As(err)
	status := statusOf(e)
	if e.Kind != errs.KindInternal {
		respond(w, status, nil, e.Message)
		return
	}

	hlog.FromRequest(r).Error().Err(e.Err).Msg("request failed")
	cause := e.Message
	if e.Err != nil {
		cause = e.Err.Error()
	}
	respond(w, status, map[string]any{"error": cause}, e.Message)
}

func statusOf(e *errs.Error) int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondBadInput renders a decode or validation failure as a 400 envelope
// listing the offending fields.
func respondBadInput(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respond(w, http.StatusBadRequest, nil, err.Error())
		return
	}

	fields := make(map[string]string, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		fields[name] = fieldMessage(fe)
		names = append(names, name)
	}
	respond(w, http.StatusBadRequest, map[string]any{"fields": fields},
		"Missing or invalid fields: "+strings.Join(names, ", "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return "is invalid"
	}
}
