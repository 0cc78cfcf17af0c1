package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/autoservice-backend/internal/modules/costing"
	"github.com/georgemunganga/autoservice-backend/internal/modules/inventory"
	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CompletedRecords(ctx context.Context, companyID uuid.UUID, p Period) ([]*CompletedRecord, error) {
	args := m.Called(ctx, companyID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*CompletedRecord), args.Error(1)
}

type fakeStock []inventory.LowStockItem

func (f fakeStock) LowStock(context.Context, uuid.UUID) ([]inventory.LowStockItem, error) {
	return f, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(qty int, price string) costing.LineItem {
	return costing.LineItem{ComponentID: uuid.New(), Quantity: qty, UnitPrice: d(price)}
}

var june = MonthOf(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))

func fixtureRecords(techA, techB uuid.UUID) []*CompletedRecord {
	return []*CompletedRecord{
		{
			// 2 x 25 + 80 parts, 100 labor
			ID: uuid.New(), TechnicianID: &techA, TechnicianName: "Mehmet Usta",
			LaborCost: decimal.NewNullDecimal(d("100")), TotalCost: d("230"),
			LineItems: []costing.LineItem{item(2, "25"), item(1, "80")},
		},
		{
			// legacy record: labor derived as 300 - 100 = 200
			ID: uuid.New(), TechnicianID: &techB, TechnicianName: "Ali Usta",
			EarningsPercentage: decimal.NewNullDecimal(d("50")),
			TotalCost:          d("300"),
			LineItems:          []costing.LineItem{item(4, "25")},
		},
		{
			// total below parts: counted, labor left out
			ID: uuid.New(), TotalCost: d("10"),
			LineItems: []costing.LineItem{item(1, "40")},
		},
	}
}

func TestRevenue(t *testing.T) {
	repo := new(MockRepository)
	companyID := uuid.New()
	repo.On("CompletedRecords", mock.Anything, companyID, june).Return(fixtureRecords(uuid.New(), uuid.New()), nil)

	rev, err := NewService(repo, fakeStock{}).Revenue(context.Background(), companyID, june)
	require.NoError(t, err)
	assert.Equal(t, 3, rev.RecordCount)
	assert.Equal(t, "270.00", rev.PartsTotal.StringFixed(2))
	assert.Equal(t, "300.00", rev.LaborTotal.StringFixed(2))
	assert.Equal(t, "540.00", rev.RevenueTotal.StringFixed(2))
	assert.Equal(t, 1, rev.Unreconciled)
}

func TestRevenue_EmptyPeriod(t *testing.T) {
	repo := new(MockRepository)
	companyID := uuid.New()
	repo.On("CompletedRecords", mock.Anything, companyID, june).Return([]*CompletedRecord{}, nil)

	rev, err := NewService(repo, fakeStock{}).Revenue(context.Background(), companyID, june)
	require.NoError(t, err)
	assert.Zero(t, rev.RecordCount)
	assert.Equal(t, "0.00", rev.RevenueTotal.StringFixed(2))
}

func TestRevenue_InvertedPeriod(t *testing.T) {
	s := NewService(new(MockRepository), fakeStock{})
	_, err := s.Revenue(context.Background(), uuid.New(), Period{From: june.To, To: june.From})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestTechnicianEarnings(t *testing.T) {
	repo := new(MockRepository)
	companyID, techA, techB := uuid.New(), uuid.New(), uuid.New()
	records := fixtureRecords(techA, techB)
	records = append(records, &CompletedRecord{
		ID: uuid.New(), TechnicianID: &techA, TechnicianName: "Mehmet Usta",
		LaborCost: decimal.NewNullDecimal(d("33.33")), TotalCost: d("33.33"),
	})
	repo.On("CompletedRecords", mock.Anything, companyID, june).Return(records, nil)

	rep, err := NewService(repo, fakeStock{}).TechnicianEarnings(context.Background(), companyID, june)
	require.NoError(t, err)
	require.Len(t, rep.Technicians, 2)

	ali, mehmet := rep.Technicians[0], rep.Technicians[1]
	assert.Equal(t, "Ali Usta", ali.Name)
	assert.Equal(t, "100.00", ali.Earnings.StringFixed(2))
	assert.Equal(t, "200.00", ali.LaborTotal.StringFixed(2))

	assert.Equal(t, techA, mehmet.TechnicianID)
	assert.Equal(t, 2, mehmet.RecordCount)
	assert.Equal(t, "30.00", mehmet.EarningsPercentage.StringFixed(2))
	// 30.00 + round2(9.999)
	assert.Equal(t, "40.00", mehmet.Earnings.StringFixed(2))
	assert.Equal(t, "140.00", rep.Total.StringFixed(2))
}

func TestHandler_RevenueDefaultsToCurrentMonth(t *testing.T) {
	repo := new(MockRepository)
	companyID := uuid.New()
	repo.On("CompletedRecords", mock.Anything, companyID, june).Return([]*CompletedRecord{}, nil)

	h := NewHandler(NewService(repo, fakeStock{}))
	h.now = func() time.Time { return time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC) }
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/revenue?company_id="+companyID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	repo.AssertExpectations(t)
}

func TestHandler_LowStock(t *testing.T) {
	stock := fakeStock{{Component: &inventory.Component{Name: "Brake pad", Stock: 1, ReorderLevel: 4}, Shortfall: 3}}
	r := chi.NewRouter()
	NewHandler(NewService(new(MockRepository), stock)).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/low-stock?company_id="+uuid.NewString(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Brake pad", got[0]["name"])
	assert.EqualValues(t, 3, got[0]["shortfall"])
}

func TestHandler_BadDate(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(NewService(new(MockRepository), fakeStock{})).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/revenue?company_id="+uuid.NewString()+"&from=14/06/2025", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
