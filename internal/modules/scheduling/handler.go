package scheduling

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/httpx"
	"github.com/georgemunganga/autoservice-backend/internal/platform/ids"
)

// Handler exposes upcoming-service HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/upcoming-services", func(r chi.Router) {
		r.Post("/", h.create)                    // POST   /api/v1/upcoming-services
		r.Get("/", h.list)                       // GET    /api/v1/upcoming-services?company_id=
		r.Get("/calendar", h.calendar)           // GET    /api/v1/upcoming-services/calendar?company_id=&week=
		r.Get("/{id}", h.get)                    // GET    /api/v1/upcoming-services/{id}
		r.Patch("/{id}/status", h.updateStatus)  // PATCH  /api/v1/upcoming-services/{id}/status
		r.Post("/{id}/reschedule", h.reschedule) // POST   /api/v1/upcoming-services/{id}/reschedule
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	svc, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, svc)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	svc, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, svc)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companyID, err := httpx.CompanyID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	f := ListFilter{CompanyID: companyID, Status: Status(r.URL.Query().Get("status"))}
	if v := r.URL.Query().Get("vehicle_id"); v != "" {
		if f.VehicleID, err = ids.Parse(v, "vehicle_id"); err != nil {
			httpx.Error(w, r, err)
			return
		}
	}
	if f.From, err = httpx.QueryDate(r, "from", time.Time{}); err != nil {
		httpx.Error(w, r, err)
		return
	}
	if f.To, err = httpx.QueryDate(r, "to", time.Time{}); err != nil {
		httpx.Error(w, r, err)
		return
	}
	services, err := h.service.List(r.Context(), f)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	if services == nil {
		services = []*UpcomingService{}
	}
	httpx.Respond(w, http.StatusOK, services)
}

func (h *Handler) calendar(w http.ResponseWriter, r *http.Request) {
	companyID, err := httpx.CompanyID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	anchor, err := httpx.QueryDate(r, "week", time.Now().UTC())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	week, err := h.service.Week(r.Context(), companyID, anchor)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, week)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
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

func (h *Handler) reschedule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req RescheduleRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	svc, err := h.service.Reschedule(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, svc)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return uuid.Nil, false
	}
	return id, true
}
