package technician

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/autoservice-backend/internal/platform/httpx"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/technicians", func(r chi.Router) {
		r.Post("/", h.createTechnician)
		r.Get("/", h.listTechnicians) // ?company_id=&active=true
		r.Get("/{id}", h.getTechnician)
		r.Patch("/{id}/earnings", h.updateEarnings)
		r.Patch("/{id}/active", h.setActive)
		r.Put("/{id}/specializations", h.replaceSpecializations)
	})
	router.Route("/specializations", func(r chi.Router) {
		r.Post("/", h.createSpecialization)
		r.Get("/", h.listSpecializations)
	})
}

func (h *Handler) createTechnician(w http.ResponseWriter, r *http.Request) {
	var req CreateTechnicianRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	t, err := h.service.CreateTechnician(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, t)
}

func (h *Handler) listTechnicians(w http.ResponseWriter, r *http.Request) {
	companyID, err := httpx.CompanyID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	activeOnly := r.URL.Query().Get("active") == "true"
	techs, err := h.service.ListTechnicians(r.Context(), companyID, activeOnly)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, techs)
}

func (h *Handler) getTechnician(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	t, err := h.service.GetTechnician(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, t)
}

func (h *Handler) updateEarnings(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	var req EarningsRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	t, err := h.service.UpdateEarnings(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, t)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	var req ActiveRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	t, err := h.service.SetActive(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, t)
}

func (h *Handler) replaceSpecializations(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	var req SpecializationsRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	t, err := h.service.ReplaceSpecializations(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, t)
}

func (h *Handler) createSpecialization(w http.ResponseWriter, r *http.Request) {
	var req CreateSpecializationRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	sp, err := h.service.CreateSpecialization(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, sp)
}

func (h *Handler) listSpecializations(w http.ResponseWriter, r *http.Request) {
	companyID, err := httpx.CompanyID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	specs, err := h.service.ListSpecializations(r.Context(), companyID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, specs)
}
