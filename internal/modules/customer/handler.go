package customer

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
	router.Route("/customers", func(r chi.Router) {
		r.Post("/", h.createCustomer)           // POST /customers
		r.Get("/", h.listCustomers)             // GET /customers?company_id=&q=
		r.Get("/{id}", h.getCustomer)           // GET /customers/{id}
		r.Put("/{id}", h.updateCustomer)        // PUT /customers/{id}
		r.Post("/{id}/vehicles", h.addVehicle)  // POST /customers/{id}/vehicles
		r.Get("/{id}/vehicles", h.listVehicles) // GET /customers/{id}/vehicles
	})
	router.Get("/vehicles/{id}", h.getVehicle)
	router.Patch("/vehicles/{id}/odometer", h.recordOdometer)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	c, err := h.service.CreateCustomer(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, c)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	companyID, err := httpx.CompanyID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	customers, err := h.service.ListCustomers(r.Context(), companyID, r.URL.Query().Get("q"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, customers)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	c, err := h.service.GetCustomer(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	var req CustomerRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	c, err := h.service.UpdateCustomer(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

func (h *Handler) addVehicle(w http.ResponseWriter, r *http.Request) {
	customerID, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	var req VehicleRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	v, err := h.service.AddVehicle(r.Context(), customerID, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, v)
}

func (h *Handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	customerID, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	vehicles, err := h.service.ListVehicles(r.Context(), customerID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, vehicles)
}

func (h *Handler) getVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	v, err := h.service.GetVehicle(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, v)
}

func (h *Handler) recordOdometer(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLID(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	var req OdometerRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	v, err := h.service.RecordOdometer(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, v)
}
