package dashboard

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/costlab-backend/internal/repo"
	"github.com/angelmondragon/costlab-backend/pkg/db/models"
)

const dateLayout = "2006-01-02"

// ProductRef identifies an active product.
type ProductRef struct {
	ID   uuid.UUID `gorm:"column:id"`
	SKU  *string   `gorm:"column:sku"`
	Name string    `gorm:"column:name"`
}

// Repository runs the read-only rollups behind the dashboard.
type Repository interface {
	CountActiveProducts(ctx context.Context) (int64, error)
	CountActiveInputs(ctx context.Context) (int64, error)
	ListCriticalInputs(ctx context.Context) ([]models.Input, error)
	// SumAdCostEndingBetween sums amounts of campaigns whose end date lies in
	// [from, to], both calendar days.
	SumAdCostEndingBetween(ctx context.Context, from, to time.Time) (sql.NullString, error)
	ListActiveProducts(ctx context.Context) ([]ProductRef, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a dashboard repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) CountActiveProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Product{}).Where("active = ?", true).Count(&count).Error
	return count, err
}

func (r *repository) CountActiveInputs(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Input{}).Where("active = ?", true).Count(&count).Error
	return count, err
}

func (r *repository) ListCriticalInputs(ctx context.Context) ([]models.Input, error) {
	var rows []models.Input
	if err := r.DB(ctx).
		Where("active = ? AND is_critical = ?", true, true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) SumAdCostEndingBetween(ctx context.Context, from, to time.Time) (sql.NullString, error) {
	var total sql.NullString
	err := r.DB(ctx).
		Model(&models.AdCost{}).
		Select("SUM(amount)").
		Where("campaign_end >= ? AND campaign_end < ?", from.Format(dateLayout), to.AddDate(0, 0, 1).Format(dateLayout)).
		Scan(&total).Error
	return total, err
}

func (r *repository) ListActiveProducts(ctx context.Context) ([]ProductRef, error) {
	var rows []ProductRef
	if err := r.DB(ctx).
		Model(&models.Product{}).
		Select("id, sku, name").
		Where("active = ?", true).
		Order("name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
