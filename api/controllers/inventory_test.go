package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/costlab-backend/internal/inventory"
	"github.com/angelmondragon/costlab-backend/pkg/enums"
)

type stubInventoryService struct {
	recorded *inventory.RecordMovementInput
	listed   *inventory.ListMovementsParams
}

func (s *stubInventoryService) RecordMovement(_ context.Context, input inventory.RecordMovementInput) (*inventory.MovementDTO, error) {
	s.recorded = &input
	return &inventory.MovementDTO{
		ID:       uuid.New(),
		ItemType: input.ItemType,
		ItemID:   input.ItemID,
		Qty:      input.Qty.InexactFloat64(),
		Reason:   input.Reason,
	}, nil
}

func (s *stubInventoryService) StockSummary(context.Context) ([]inventory.StockDTO, error) {
	return []inventory.StockDTO{}, nil
}

func (s *stubInventoryService) StockFor(context.Context, enums.ItemType, []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	return map[uuid.UUID]decimal.Decimal{}, nil
}

func (s *stubInventoryService) ListMovements(_ context.Context, params inventory.ListMovementsParams) (*inventory.MovementPage, error) {
	s.listed = &params
	return &inventory.MovementPage{Items: []inventory.MovementDTO{}}, nil
}

func TestRecordMovement(t *testing.T) {
	svc := &stubInventoryService{}
	itemID := uuid.New()
	locationID := uuid.New()
	payload := `{"item_type":"input","item_id":"` + itemID.String() + `","location_id":"` + locationID.String() +
		`","qty":-2.5,"reason":"production_consume","reference_text":"batch 7"}`

	rec := serve(RecordMovement(svc, testLogger()), http.MethodPost, "/inventory/movements", payload, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.recorded)
	assert.Equal(t, enums.ItemTypeInput, svc.recorded.ItemType)
	assert.Equal(t, itemID, svc.recorded.ItemID)
	require.NotNil(t, svc.recorded.LocationID)
	assert.Equal(t, locationID, *svc.recorded.LocationID)
	assert.Equal(t, "-2.5", svc.recorded.Qty.String())
	assert.Equal(t, enums.MovementReasonProductionConsume, svc.recorded.Reason)
}

func TestRecordMovementValidation(t *testing.T) {
	svc := &stubInventoryService{}
	rec := serve(RecordMovement(svc, testLogger()), http.MethodPost, "/inventory/movements",
		`{"item_type":"widget","item_id":"abc","reason":"theft"}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	details := decodeError(t, rec).Details
	assert.Equal(t, "must be one of: input, product", details["item_type"])
	assert.Equal(t, "must be a valid UUID", details["item_id"])
	assert.Equal(t, "is required", details["qty"])
	assert.Equal(t, "must be one of: purchase, sale, production_consume, adjustment, wastage", details["reason"])
	assert.Nil(t, svc.recorded)
}

func TestRecordMovementWrongType(t *testing.T) {
	rec := serve(RecordMovement(&stubInventoryService{}, testLogger()), http.MethodPost, "/inventory/movements",
		`{"item_type":1}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "item_type has the wrong type", decodeError(t, rec).Details["body"])
}

func TestInventorySummary(t *testing.T) {
	rec := serve(InventorySummary(&stubInventoryService{}, testLogger()), http.MethodGet, "/inventory/summary", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListMovementsQuery(t *testing.T) {
	svc := &stubInventoryService{}
	itemID := uuid.New()

	rec := serve(ListMovements(svc, testLogger()), http.MethodGet,
		"/inventory/movements?item_type=product&item_id="+itemID.String()+"&limit=10&cursor=abc", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
	require.NotNil(t, svc.listed)
	assert.Equal(t, enums.ItemTypeProduct, *svc.listed.ItemType)
	assert.Equal(t, itemID, *svc.listed.ItemID)
	assert.Equal(t, 10, svc.listed.Limit)
	assert.Equal(t, "abc", svc.listed.Cursor)
}

func TestListMovementsDefaultsAndErrors(t *testing.T) {
	svc := &stubInventoryService{}
	handler := ListMovements(svc, testLogger())

	rec := serve(handler, http.MethodGet, "/inventory/movements", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 25, svc.listed.Limit)
	assert.Nil(t, svc.listed.ItemType)

	svc.listed = nil
	rec = serve(handler, http.MethodGet, "/inventory/movements?limit=500", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "is out of range", decodeError(t, rec).Details["limit"])

	rec = serve(handler, http.MethodGet, "/inventory/movements?item_type=widget&item_id=nope", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	details := decodeError(t, rec).Details
	assert.Equal(t, "must be one of: input, product", details["item_type"])
	assert.Equal(t, "must be a valid UUID", details["item_id"])
	assert.Nil(t, svc.listed)
}
