package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BOMLine states how much of one input one unit of a product consumes.
type BOMLine struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID       uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index:idx_product_bom_product"`
	InputID         uuid.UUID       `gorm:"column:input_id;type:uuid;not null"`
	QuantityPerUnit decimal.Decimal `gorm:"column:quantity_per_unit;type:numeric(14,4);not null"`
	WastageRate     decimal.Decimal `gorm:"column:wastage_rate;type:numeric(6,4);not null"`
	Notes           *string         `gorm:"column:notes"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Input   *Input   `gorm:"foreignKey:InputID;constraint:OnDelete:RESTRICT"`
}

func (BOMLine) TableName() string { return "product_bom" }

func (b *BOMLine) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
