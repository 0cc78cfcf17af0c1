package servicerecord

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandler_CreateRejectsNegativeLabor(t *testing.T) {
	f := newFixture()
	r := chi.NewRouter()
	NewHandler(f.svc).RegisterRoutes(r)

	body, _ := json.Marshal(map[string]interface{}{
		"company_id":   f.company.String(),
		"vehicle_id":   uuid.NewString(),
		"customer_id":  uuid.NewString(),
		"service_date": "2025-05-20T10:00:00Z",
		"labor_cost":   "-5",
		"line_items":   []map[string]interface{}{{"component_id": f.oil.String(), "quantity": 1}},
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/service-records", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "labor_cost must be >= 0")
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_ListByVehicle(t *testing.T) {
	f := newFixture()
	r := chi.NewRouter()
	NewHandler(f.svc).RegisterRoutes(r)

	stored := f.storedRecord(StatusCompleted)
	f.repo.On("List", mock.Anything, ListFilter{VehicleID: stored.VehicleID}).Return([]*ServiceRecord{stored}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vehicles/"+stored.VehicleID.String()+"/service-records", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	costs := got[0]["costs"].(map[string]interface{})
	assert.Contains(t, []interface{}{"230", 230.0}, costs["total_cost"])
}
