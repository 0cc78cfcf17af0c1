package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/autoservice-backend/internal/platform/httpx"
)

type Handler struct {
	service Service
	now     func() time.Time
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/reports", func(r chi.Router) {
		r.Get("/revenue", h.revenue)                        // ?company_id=&from=&to=
		r.Get("/technician-earnings", h.technicianEarnings) // ?company_id=&from=&to=
		r.Get("/low-stock", h.lowStock)                     // ?company_id=
	})
}

// period reads from/to, defaulting to the current month in UTC.
func (h *Handler) period(r *http.Request) (Period, error) {
	def := MonthOf(h.now().UTC())
	from, err := httpx.QueryDate(r, "from", def.From)
	if err != nil {
		return Period{}, err
	}
	to, err := httpx.QueryDate(r, "to", from.AddDate(0, 1, 0))
	if err != nil {
		return Period{}, err
	}
	return Period{From: from, To: to}, nil
}

func (h *Handler) revenue(w http.ResponseWriter, r *http.Request) {
	companyID, err := httpx.CompanyID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	p, err := h.period(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	out, err := h.service.Revenue(r.Context(), companyID, p)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, out)
}

func (h *Handler) technicianEarnings(w http.ResponseWriter, r *http.Request) {
	companyID, err := httpx.CompanyID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	p, err := h.period(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	out, err := h.service.TechnicianEarnings(r.Context(), companyID, p)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, out)
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
