package production

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/costlab-backend/internal/repo"
	"github.com/angelmondragon/costlab-backend/pkg/db/models"
)

// Repository persists production batches.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, batch *models.ProductionBatch) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductionBatch, error)
	ProductExists(ctx context.Context, productID uuid.UUID) (bool, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a production repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

func (r *repository) Create(ctx context.Context, batch *models.ProductionBatch) error {
	return r.DB(ctx).Omit("Product").Create(batch).Error
}

func (r *repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductionBatch, error) {
	var rows []models.ProductionBatch
	if err := r.DB(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ProductExists(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
