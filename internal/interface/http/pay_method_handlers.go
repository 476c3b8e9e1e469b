package http

import (
	"fmt"
	"net/http"

	dompaymethod "example.com/catalog-service/internal/domain/paymethod"
	paymethoduc "example.com/catalog-service/internal/usecase/paymethod"
)

type createPayMethodRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Code      string `json:"code" validate:"max=64"`
	Available *bool  `json:"available"`
}

type updatePayMethodRequest struct {
	ID        int64  `json:"id"`
	Name      string `json:"name" validate:"max=255"`
	Code      string `json:"code" validate:"max=64"`
	Available *bool  `json:"available"`
}

func (a *API) handleCreatePayMethod(w http.ResponseWriter, r *http.Request) {
	var req createPayMethodRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadInput(w, err)
		return
	}

	m, err := a.payMethodSvc.Create(r.Context(), paymethoduc.CreateInput{
		Name:      req.Name,
		Code:      req.Code,
		Available: req.Available,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"payMethod": mapPayMethod(m)}, "Payment method was successfully registered")
}

func (a *API) handleListPayMethods(w http.ResponseWriter, r *http.Request) {
	filter := dompaymethod.ListFilter{
		Search:        r.URL.Query().Get("q"),
		OnlyAvailable: queryFlag(r, "available"),
	}

	methods, err := a.payMethodSvc.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := make([]map[string]any, 0, len(methods))
	for _, m := range methods {
		resp = append(resp, mapPayMethod(m))
	}
	respond(w, http.StatusOK, map[string]any{"payMethods": resp}, "Successfully recovered Payment methods")
}

func (a *API) handleGetPayMethod(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respond(w, http.StatusBadRequest, nil, msgInvalidID)
		return
	}
	m, err := a.payMethodSvc.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"payMethod": mapPayMethod(m)}, "Successfully recovered Payment method")
}

func (a *API) handleRestorePayMethod(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respond(w, http.StatusBadRequest, nil, msgInvalidID)
		return
	}
	m, err := a.payMethodSvc.Restore(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"payMethod": mapPayMethod(m)},
		fmt.Sprintf("Payment method with Id: %d successfully restored", id))
}

func (a *API) handleUpdatePayMethod(w http.ResponseWriter, r *http.Request) {
	var req updatePayMethodRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadInput(w, err)
		return
	}

	out, err := a.payMethodSvc.Update(r.Context(), paymethoduc.UpdateInput{
		ID:        req.ID,
		Name:      req.Name,
		Code:      req.Code,
		Available: req.Available,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	data := map[string]any{"id": out.ID}
	if out.Name != "" {
		data["name"] = out.Name
	}
	if out.Code != "" {
		data["code"] = out.Code
	}
	if out.Available != nil {
		data["available"] = *out.Available
	}
	respond(w, http.StatusOK, map[string]any{"payMethod": data},
		fmt.Sprintf("Successfully updated payment method with ID = %d", out.ID))
}

func (a *API) handleDeletePayMethod(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respond(w, http.StatusBadRequest, nil, msgInvalidID)
		return
	}
	m, err := a.payMethodSvc.Delete(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"payMethod": mapPayMethod(m)},
		fmt.Sprintf("Payment method with Id: %d successfully deleted - (soft deleted)", id))
}

func mapPayMethod(m *dompaymethod.PayMethod) map[string]any {
	return map[string]any{
		"id":        m.ID,
		"name":      m.Name,
		"code":      m.Code,
		"available": m.Available,
	}
}
