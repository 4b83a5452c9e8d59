package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductionBatch logs units of a product manufactured at CreatedAt.
type ProductionBatch struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID        uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index:idx_production_batches_product"`
	QuantityProduced decimal.Decimal `gorm:"column:quantity_produced;type:numeric(14,4);not null"`
	CreatedAt        time.Time       `gorm:"column:created_at"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

func (ProductionBatch) TableName() string { return "production_batches" }

func (b *ProductionBatch) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	return nil
}
