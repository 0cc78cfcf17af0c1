package servicerecord

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/httpx"
)

// Handler exposes service record HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/service-records", func(r chi.Router) {
		r.Post("/", h.create)                   // POST   /api/v1/service-records
		r.Get("/", h.list)                      // GET    /api/v1/service-records?company_id=
		r.Get("/{id}", h.get)                   // GET    /api/v1/service-records/{id}
		r.Put("/{id}", h.update)                // PUT    /api/v1/service-records/{id}
		r.Patch("/{id}/status", h.updateStatus) // PATCH  /api/v1/service-records/{id}/status
	})
	r.Get("/vehicles/{id}/service-records", h.listByVehicle) // GET /api/v1/vehicles/{id}/service-records
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	rec, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, rec)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	rec, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, rec)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companyID, err := httpx.CompanyID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	h.respondList(w, r, ListFilter{CompanyID: companyID})
}

func (h *Handler) listByVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	h.respondList(w, r, ListFilter{VehicleID: vehicleID})
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, f ListFilter) {
	var err error
	f.Status = Status(r.URL.Query().Get("status"))
	if f.From, err = httpx.QueryDate(r, "from", time.Time{}); err != nil {
		httpx.Error(w, r, err)
		return
	}
	if f.To, err = httpx.QueryDate(r, "to", time.Time{}); err != nil {
		httpx.Error(w, r, err)
		return
	}
	recs, err := h.service.List(r.Context(), f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	if recs == nil {
		recs = []*ServiceRecord{}
	}
	httpx.Respond(w, http.StatusOK, recs)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	rec, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, rec)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	res, err := h.service.UpdateStatus(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return uuid.Nil, false
	}
	return id, true
}
