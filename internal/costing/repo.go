package costing

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/costlab-backend/internal/repo"
	"github.com/angelmondragon/costlab-backend/pkg/db/models"
)

// Repository reads everything the costing engine needs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListBOMRows(ctx context.Context, productIDs []uuid.UUID) ([]BOMRow, error)
	ListCostHistory(ctx context.Context, inputIDs []uuid.UUID) ([]CostRecord, error)
	ListCampaigns(ctx context.Context, productID uuid.UUID) ([]Campaign, error)
	ListBatches(ctx context.Context, productID uuid.UUID) ([]Batch, error)
}

// repository scans numeric columns as text so malformed stored values
// degrade to zero instead of failing the whole request.
type repository struct {
	repo.Base
}

// NewRepository returns a costing repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

func (r *repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

type bomRow struct {
	ID              uuid.UUID      `gorm:"column:id"`
	ProductID       uuid.UUID      `gorm:"column:product_id"`
	InputID         uuid.UUID      `gorm:"column:input_id"`
	SKU             *string        `gorm:"column:sku"`
	Name            string         `gorm:"column:name"`
	Unit            string         `gorm:"column:unit"`
	QuantityPerUnit sql.NullString `gorm:"column:quantity_per_unit"`
	WastageRate     sql.NullString `gorm:"column:wastage_rate"`
	Notes           *string        `gorm:"column:notes"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
}

// BOMRow is a BOM line joined with its input's identity.
type BOMRow struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Notes     *string
	CreatedAt time.Time
	Line      MaterialLine
}

// ListBOMRows returns the BOM lines of the given products joined with their
// inputs, ordered by product then input name.
func (r *repository) ListBOMRows(ctx context.Context, productIDs []uuid.UUID) ([]BOMRow, error) {
	if len(productIDs) == 0 {
		return []BOMRow{}, nil
	}
	var rows []bomRow
	err := r.DB(ctx).
		Table("product_bom AS pb").
		Select(`pb.id, pb.product_id, pb.input_id, i.sku, i.name, i.unit,
			pb.quantity_per_unit, pb.wastage_rate, pb.notes, pb.created_at`).
		Joins("JOIN inputs AS i ON i.id = pb.input_id").
		Where("pb.product_id IN ?", productIDs).
		Order("pb.product_id ASC, i.name ASC, pb.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list bom rows: %w", err)
	}

	out := make([]BOMRow, 0, len(rows))
	for _, row := range rows {
		qty, qtyOK := ParseNumeric(row.QuantityPerUnit)
		wastage, wastageOK := ParseNumericOrZero(row.WastageRate)
		out = append(out, BOMRow{
			ID:        row.ID,
			ProductID: row.ProductID,
			Notes:     row.Notes,
			CreatedAt: row.CreatedAt,
			Line: MaterialLine{
				InputID:         row.InputID,
				SKU:             row.SKU,
				Name:            row.Name,
				Unit:            row.Unit,
				QuantityPerUnit: qty,
				WastageRate:     wastage,
				Malformed:       !qtyOK || !wastageOK,
			},
		})
	}
	return out, nil
}

type costRow struct {
	InputID     uuid.UUID      `gorm:"column:input_id"`
	CostPerUnit sql.NullString `gorm:"column:cost_per_unit"`
	Currency    string         `gorm:"column:currency"`
	ValidFrom   time.Time      `gorm:"column:valid_from"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
}

// ListCostHistory returns every cost record of the given inputs.
func (r *repository) ListCostHistory(ctx context.Context, inputIDs []uuid.UUID) ([]CostRecord, error) {
	if len(inputIDs) == 0 {
		return []CostRecord{}, nil
	}
	var rows []costRow
	err := r.DB(ctx).
		Model(&models.InputCost{}).
		Select("input_id, cost_per_unit, currency, valid_from, created_at").
		Where("input_id IN ?", inputIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list cost history: %w", err)
	}

	out := make([]CostRecord, 0, len(rows))
	for _, row := range rows {
		cost, ok := ParseNumeric(row.CostPerUnit)
		out = append(out, CostRecord{
			InputID:     row.InputID,
			CostPerUnit: cost,
			Currency:    row.Currency,
			ValidFrom:   row.ValidFrom,
			CreatedAt:   row.CreatedAt,
			Malformed:   !ok,
		})
	}
	return out, nil
}

type campaignRow struct {
	ID            uuid.UUID      `gorm:"column:id"`
	CampaignName  string         `gorm:"column:campaign_name"`
	SocialNetwork *string        `gorm:"column:social_network"`
	CampaignStart time.Time      `gorm:"column:campaign_start"`
	CampaignEnd   time.Time      `gorm:"column:campaign_end"`
	Amount        sql.NullString `gorm:"column:amount"`
	Notes         *string        `gorm:"column:notes"`
}

// ListCampaigns returns a product's campaigns, latest start first.
func (r *repository) ListCampaigns(ctx context.Context, productID uuid.UUID) ([]Campaign, error) {
	var rows []campaignRow
	err := r.DB(ctx).
		Model(&models.AdCost{}).
		Select("id, campaign_name, social_network, campaign_start, campaign_end, amount, notes").
		Where("product_id = ?", productID).
		Order("campaign_start DESC, created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}

	out := make([]Campaign, 0, len(rows))
	for _, row := range rows {
		amount, ok := ParseNumeric(row.Amount)
		out = append(out, Campaign{
			ID:            row.ID,
			CampaignName:  row.CampaignName,
			SocialNetwork: row.SocialNetwork,
			Start:         row.CampaignStart,
			End:           row.CampaignEnd,
			Amount:        amount,
			Notes:         row.Notes,
			Malformed:     !ok,
		})
	}
	return out, nil
}

type batchRow struct {
	QuantityProduced sql.NullString `gorm:"column:quantity_produced"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
}

// ListBatches returns a product's production batches.
func (r *repository) ListBatches(ctx context.Context, productID uuid.UUID) ([]Batch, error) {
	var rows []batchRow
	err := r.DB(ctx).
		Model(&models.ProductionBatch{}).
		Select("quantity_produced, created_at").
		Where("product_id = ?", productID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}

	out := make([]Batch, 0, len(rows))
	for _, row := range rows {
		qty, ok := ParseNumeric(row.QuantityProduced)
		out = append(out, Batch{Quantity: qty, CreatedAt: row.CreatedAt, Malformed: !ok})
	}
	return out, nil
}
