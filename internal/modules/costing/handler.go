package costing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/autoservice-backend/internal/platform/httpx"
)

// Handler exposes the cost calculator over HTTP.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/costing", func(r chi.Router) {
		r.Post("/quote", h.quote)
		r.Post("/line-items/resolve", h.resolve)
	})
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	out, err := h.service.Quote(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, out)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	out, err := h.service.ResolveLine(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, out)
}
