package http

import (
	"fmt"
	"net/http"

	domproduct "example.com/catalog-service/internal/domain/product"
	productuc "example.com/catalog-service/internal/usecase/product"
)

type createProductRequest struct {
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Image     string  `json:"image"`
	Available *bool   `json:"available"`
}

type updateProductRequest struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price" validate:"gte=0"`
	Image     string  `json:"image"`
	Available *bool   `json:"available"`
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadInput(w, err)
		return
	}

	p, err := a.productSvc.Create(r.Context(), productuc.CreateInput{
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
		Available: req.Available,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"product": mapProduct(p)}, "Product was successfully registered")
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	filter := domproduct.ListFilter{
		Search:        r.URL.Query().Get("q"),
		OnlyAvailable: queryFlag(r, "available"),
	}

	products, err := a.productSvc.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := make([]map[string]any, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p))
	}
	respond(w, http.StatusOK, map[string]any{"products": resp}, "Successfully recovered Products")
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respond(w, http.StatusBadRequest, nil, msgInvalidID)
		return
	}
	p, err := a.productSvc.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"product": mapProduct(p)}, "Successfully recovered Product")
}

func (a *API) handleRestoreProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respond(w, http.StatusBadRequest, nil, msgInvalidID)
		return
	}
	p, err := a.productSvc.Restore(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"product": mapProduct(p)},
		fmt.Sprintf("Product with Id: %d successfully restored", id))
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadInput(w, err)
		return
	}

	out, err := a.productSvc.Update(r.Context(), productuc.UpdateInput{
		ID:        req.ID,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
		Available: req.Available,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"product": mapProductUpdate(out)},
		fmt.Sprintf("Successfully updated product with ID = %d", out.ID))
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respond(w, http.StatusBadRequest, nil, msgInvalidID)
		return
	}
	p, err := a.productSvc.Delete(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"product": mapProduct(p)},
		fmt.Sprintf("Product with Id: %d successfully deleted - (soft deleted)", id))
}

// mapProduct leaves image out when it is empty.
func mapProduct(p *domproduct.Product) map[string]any {
	m := map[string]any{
		"id":        p.ID,
		"name":      p.Name,
		"price":     p.Price,
		"available": p.Available,
	}
	if p.Image != "" {
		m["image"] = p.Image
	}
	return m
}

func mapProductUpdate(in *productuc.UpdateInput) map[string]any {
	m := map[string]any{"id": in.ID}
	if in.Name != "" {
		m["name"] = in.Name
	}
	if in.Price != 0 {
		m["price"] = in.Price
	}
	if in.Image != "" {
		m["image"] = in.Image
	}
	if in.Available != nil {
		m["available"] = *in.Available
	}
	return m
}
