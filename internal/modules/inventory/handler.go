package inventory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/autoservice-backend/internal/platform/httpx"
)

// Handler exposes inventory HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/inventory", func(r chi.Router) {
		r.Post("/components", h.createComponent)                // POST   /api/v1/inventory/components
		r.Get("/components", h.listComponents)                  // GET    /api/v1/inventory/components?company_id=&q=
		r.Get("/components/{id}", h.getComponent)               // GET    /api/v1/inventory/components/{id}
		r.Patch("/components/{id}/price", h.updatePrice)        // PATCH  /api/v1/inventory/components/{id}/price
		r.Get("/components/{id}/price-history", h.priceHistory) // GET    /api/v1/inventory/components/{id}/price-history
		r.Patch("/components/{id}/stock", h.updateStock)        // PATCH  /api/v1/inventory/components/{id}/stock
		r.Get("/low-stock", h.lowStock)                         // GET    /api/v1/inventory/low-stock?company_id=
	})
}

func (h *Handler) createComponent(w http.ResponseWriter, r *http.Request) {
	var req CreateComponentRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	c, err := h.service.CreateComponent(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, c)
}

func (h *Handler) listComponents(w http.ResponseWriter, r *http.Request) {
	companyID, err := httpx.CompanyID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	comps, err := h.service.ListComponents(r.Context(), companyID, r.URL.Query().Get("q"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	if comps == nil {
		comps = []*Component{}
	}
	httpx.Respond(w, http.StatusOK, comps)
}

func (h *Handler) getComponent(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	c, err := h.service.GetComponent(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

func (h *Handler) updatePrice(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	var req UpdatePriceRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	entry, err := h.service.UpdatePrice(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, entry)
}

func (h *Handler) priceHistory(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	entries, err := h.service.PriceHistory(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	if entries == nil {
		entries = []*PriceHistoryEntry{}
	}
	httpx.Respond(w, http.StatusOK, entries)
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	var req UpdateStockRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	c, err := h.service.UpdateStock(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	companyID, err := httpx.CompanyID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	items, err := h.service.LowStock(r.Context(), companyID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, items)
}
