package costing

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/tenant"
)

type fakeCatalog map[uuid.UUID]CatalogEntry

func (f fakeCatalog) CatalogEntry(_ context.Context, id uuid.UUID) (CatalogEntry, error) {
	e, ok := f[id]
	if !ok {
		return CatalogEntry{}, apperr.NotFound("component %s", id)
	}
	return e, nil
}

type fakeTechnicians map[uuid.UUID]*Technician

func (f fakeTechnicians) CostingTechnician(_ context.Context, id uuid.UUID) (*Technician, error) {
	t, ok := f[id]
	if !ok {
		return nil, apperr.NotFound("technician %s", id)
	}
	return t, nil
}

var shopID = uuid.New()

func shopContext() context.Context {
	return tenant.WithScope(context.Background(), tenant.Scope{UserID: uuid.New(), CompanyID: shopID})
}

func newFixture() (Service, CatalogEntry, *Technician) {
	entry := CatalogEntry{ComponentID: uuid.New(), CompanyID: shopID, Price: d("75")}
	tech := pct("40")
	tech.CompanyID = shopID
	return NewService(fakeCatalog{entry.ComponentID: entry}, fakeTechnicians{tech.ID: tech}), entry, tech
}

func TestQuote_WithTechnician(t *testing.T) {
	svc, _, tech := newFixture()

	out, err := svc.Quote(shopContext(), QuoteRequest{
		LineItems:    []LineItem{line(2, "50"), line(1, "30")},
		LaborCost:    d("100"),
		TechnicianID: tech.ID.String(),
	})
	require.NoError(t, err)
	assertMoney(t, "130.00", out.PartsCost)
	assertMoney(t, "230.00", out.TotalCost)
	assertMoney(t, "40.00", out.TechnicianEarnings)
}

func TestQuote_UnknownTechnician(t *testing.T) {
	svc, _, _ := newFixture()
	_, err := svc.Quote(shopContext(), QuoteRequest{LaborCost: d("10"), TechnicianID: uuid.NewString()})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Quote(shopContext(), QuoteRequest{TechnicianID: "x"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestQuote_RequiresCompany(t *testing.T) {
	svc, _, tech := newFixture()

	out, err := svc.Quote(context.Background(), QuoteRequest{
		CompanyID:    shopID.String(),
		LaborCost:    d("50"),
		TechnicianID: tech.ID.String(),
	})
	require.NoError(t, err)
	assertMoney(t, "20.00", out.TechnicianEarnings)

	_, err = svc.Quote(context.Background(), QuoteRequest{LaborCost: d("50")})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Quote(shopContext(), QuoteRequest{CompanyID: uuid.NewString(), LaborCost: d("50")})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestQuote_RejectsTechnicianFromAnotherCompany(t *testing.T) {
	foreign := pct("50")
	foreign.CompanyID = uuid.New()
	svc := NewService(fakeCatalog{}, fakeTechnicians{foreign.ID: foreign})

	_, err := svc.Quote(shopContext(), QuoteRequest{LaborCost: d("100"), TechnicianID: foreign.ID.String()})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "does not belong to this company")
}

func TestResolveLine_RejectsComponentFromAnotherCompany(t *testing.T) {
	foreign := CatalogEntry{ComponentID: uuid.New(), CompanyID: uuid.New(), Price: d("20")}
	svc := NewService(fakeCatalog{foreign.ComponentID: foreign}, fakeTechnicians{})
	ctx := shopContext()

	_, err := svc.ResolveLine(ctx, ResolveRequest{Action: ActionSelect, ComponentID: foreign.ComponentID.String()})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	item := LineItem{ComponentID: foreign.ComponentID, Quantity: 1, UnitPrice: d("20")}
	_, err = svc.ResolveLine(ctx, ResolveRequest{Action: ActionReset, Item: item})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	price := d("5")
	_, err = svc.ResolveLine(ctx, ResolveRequest{Action: ActionOverride, Item: item, Price: &price})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestResolveLine_Actions(t *testing.T) {
	svc, entry, _ := newFixture()
	ctx := shopContext()

	sel, err := svc.ResolveLine(ctx, ResolveRequest{Action: ActionSelect, ComponentID: entry.ComponentID.String()})
	require.NoError(t, err)
	assert.Equal(t, 1, sel.Item.Quantity)
	assertMoney(t, "75.00", sel.Item.UnitPrice)
	assert.False(t, sel.Item.CustomPrice)

	price := d("60")
	item := sel.Item
	item.Quantity = 3
	over, err := svc.ResolveLine(ctx, ResolveRequest{Action: ActionOverride, Item: item, Price: &price})
	require.NoError(t, err)
	assert.True(t, over.Item.CustomPrice)
	assertMoney(t, "180.00", over.LineCost)
	assertMoney(t, "-15.00", over.Drift)

	reset, err := svc.ResolveLine(ctx, ResolveRequest{Action: ActionReset, Item: over.Item})
	require.NoError(t, err)
	assert.False(t, reset.Item.CustomPrice)
	assertMoney(t, "0.00", reset.Drift)

	_, err = svc.ResolveLine(ctx, ResolveRequest{Action: "discount", Item: item})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.ResolveLine(ctx, ResolveRequest{Action: ActionOverride, Item: item})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestHandler_Quote(t *testing.T) {
	svc, entry, _ := newFixture()
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r)

	body := `{"line_items":[{"component_id":"` + entry.ComponentID.String() + `","quantity":3,"unit_price":"0.675"}],"labor_cost":"0","company_id":"` + shopID.String() + `"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/costing/quote", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got CostBreakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assertMoney(t, "2.03", got.TotalCost)
	assertMoney(t, "0.00", got.TechnicianEarnings)
}

func TestHandler_QuoteRejectsNegativeLabor(t *testing.T) {
	svc, _, _ := newFixture()
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/costing/quote", bytes.NewBufferString(`{"labor_cost":"-5","company_id":"`+shopID.String()+`"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
