package dbtest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/costlab-backend/pkg/db/models"
	"github.com/angelmondragon/costlab-backend/pkg/enums"
)

func Dec(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", v, err)
	}
	return d
}

func Ptr[T any](v T) *T {
	return &v
}

func MustCreateProduct(t *testing.T, tx *gorm.DB, name string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		SKU:    Ptr("SKU-" + uuid.NewString()[:8]),
		Name:   name,
		Active: active,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func MustCreateInput(t *testing.T, tx *gorm.DB, name string, critical bool, reorderPoint string) *models.Input {
	t.Helper()
	input := &models.Input{
		SKU:          Ptr("IN-" + uuid.NewString()[:8]),
		Name:         name,
		Unit:         "kg",
		IsCritical:   critical,
		ReorderPoint: Dec(t, reorderPoint),
		Active:       true,
	}
	if err := tx.Create(input).Error; err != nil {
		t.Fatalf("create input: %v", err)
	}
	return input
}

func MustAddCost(t *testing.T, tx *gorm.DB, inputID uuid.UUID, cost string, validFrom time.Time) *models.InputCost {
	t.Helper()
	rec := &models.InputCost{
		InputID:     inputID,
		CostPerUnit: Dec(t, cost),
		Currency:    enums.CurrencyCLP.String(),
		ValidFrom:   validFrom.UTC(),
	}
	if err := tx.Create(rec).Error; err != nil {
		t.Fatalf("create input cost: %v", err)
	}
	return rec
}

func MustAddBOMLine(t *testing.T, tx *gorm.DB, productID, inputID uuid.UUID, qty, wastage string) *models.BOMLine {
	t.Helper()
	line := &models.BOMLine{
		ProductID:       productID,
		InputID:         inputID,
		QuantityPerUnit: Dec(t, qty),
		WastageRate:     Dec(t, wastage),
	}
	if err := tx.Create(line).Error; err != nil {
		t.Fatalf("create bom line: %v", err)
	}
	return line
}

func MustCreateCampaign(t *testing.T, tx *gorm.DB, productID uuid.UUID, start, end time.Time, amount string) *models.AdCost {
	t.Helper()
	campaign := &models.AdCost{
		ProductID:     productID,
		CampaignName:  "campaign-" + uuid.NewString()[:6],
		CampaignStart: start.UTC(),
		CampaignEnd:   end.UTC(),
		Amount:        Dec(t, amount),
	}
	if err := tx.Create(campaign).Error; err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	return campaign
}

func MustCreateBatch(t *testing.T, tx *gorm.DB, productID uuid.UUID, qty string, at time.Time) *models.ProductionBatch {
	t.Helper()
	batch := &models.ProductionBatch{
		ProductID:        productID,
		QuantityProduced: Dec(t, qty),
		CreatedAt:        at.UTC(),
	}
	if err := tx.Create(batch).Error; err != nil {
		t.Fatalf("create production batch: %v", err)
	}
	return batch
}

func MustRecordMovement(t *testing.T, tx *gorm.DB, itemType enums.ItemType, itemID uuid.UUID, qty string) *models.InventoryMovement {
	t.Helper()
	movement := &models.InventoryMovement{
		ItemType: itemType,
		ItemID:   itemID,
		Qty:      Dec(t, qty),
		Reason:   enums.MovementReasonAdjustment,
	}
	if err := tx.Create(movement).Error; err != nil {
		t.Fatalf("create movement: %v", err)
	}
	return movement
}
