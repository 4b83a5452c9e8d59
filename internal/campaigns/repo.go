package campaigns

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/costlab-backend/internal/repo"
	"github.com/angelmondragon/costlab-backend/pkg/db/models"
)

// Repository persists advertising campaigns.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, campaign *models.AdCost) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.AdCost, error)
	ProductExists(ctx context.Context, productID uuid.UUID) (bool, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a campaign repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

func (r *repository) Create(ctx context.Context, campaign *models.AdCost) error {
	return r.DB(ctx).Omit("Product").Create(campaign).Error
}

func (r *repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.AdCost, error) {
	var rows []models.AdCost
	if err := r.DB(ctx).
		Where("product_id = ?", productID).
		Order("campaign_start DESC").
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
