package company

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/autoservice-backend/internal/platform/httpx"
	"github.com/georgemunganga/autoservice-backend/internal/platform/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/companies", h.createCompany)
	router.Get("/companies/{id}", h.getCompany)
}

// createCompany registers a shop owned by the authenticated user.
func (h *Handler) createCompany(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httpx.Respond(w, http.StatusUnauthorized, map[string]string{"error": "missing user"})
		return
	}
	var req CreateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	company, err := h.service.CreateCompany(r.Context(), ownerID, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, company)
}

func (h *Handler) getCompany(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	company, err := h.service.GetCompany(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, company)
}
