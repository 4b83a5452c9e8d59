package inventory

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/costlab-backend/internal/repo"
	"github.com/angelmondragon/costlab-backend/pkg/db/models"
	"github.com/angelmondragon/costlab-backend/pkg/enums"
	"github.com/angelmondragon/costlab-backend/pkg/pagination"
)

// StockRow is the summed stock of one item. Stock is scanned as text so
// callers decide how to treat unreadable sums.
type StockRow struct {
	ItemType enums.ItemType `gorm:"column:item_type"`
	ItemID   uuid.UUID      `gorm:"column:item_id"`
	Stock    sql.NullString `gorm:"column:stock"`
}

// Repository manages persistence for inventory movements.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, movement *models.InventoryMovement) error
	SumByItem(ctx context.Context) ([]StockRow, error)
	SumForItems(ctx context.Context, itemType enums.ItemType, itemIDs []uuid.UUID) ([]StockRow, error)
	List(ctx context.Context, params listParams) ([]models.InventoryMovement, *pagination.Cursor, error)
}

type listParams struct {
	ItemType *enums.ItemType
	ItemID   *uuid.UUID
	Limit    int
	Cursor   *pagination.Cursor
}

type repository struct {
	repo.Base
}

// NewRepository returns an inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

func (r *repository) Create(ctx context.Context, movement *models.InventoryMovement) error {
	return r.DB(ctx).Create(movement).Error
}

func (r *repository) SumByItem(ctx context.Context) ([]StockRow, error) {
	var rows []StockRow
	err := r.DB(ctx).
		Model(&models.InventoryMovement{}).
		Select("item_type, item_id, SUM(qty) AS stock").
		Group("item_type, item_id").
		Order("item_type ASC, item_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) SumForItems(ctx context.Context, itemType enums.ItemType, itemIDs []uuid.UUID) ([]StockRow, error) {
	if len(itemIDs) == 0 {
		return []StockRow{}, nil
	}
	var rows []StockRow
	err := r.DB(ctx).
		Model(&models.InventoryMovement{}).
		Select("item_type, item_id, SUM(qty) AS stock").
		Where("item_type = ? AND item_id IN ?", itemType, itemIDs).
		Group("item_type, item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// List pages movements newest first.
func (r *repository) List(ctx context.Context, params listParams) ([]models.InventoryMovement, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.DB(ctx).Model(&models.InventoryMovement{})
	if params.ItemType != nil {
		query = query.Where("item_type = ?", *params.ItemType)
	}
	if params.ItemID != nil {
		query = query.Where("item_id = ?", *params.ItemID)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var movements []models.InventoryMovement
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&movements).Error; err != nil {
		return nil, nil, err
	}

	if len(movements) > normalized {
		next := movements[normalized-1]
		return movements[:normalized], &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return movements, nil, nil
}
