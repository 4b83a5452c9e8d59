package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Input is a raw material or supply consumed when producing products.
type Input struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	SKU          *string         `gorm:"column:sku"`
	Name         string          `gorm:"column:name;not null"`
	Unit         string          `gorm:"column:unit;not null"`
	IsCritical   bool            `gorm:"column:is_critical;not null"`
	ReorderPoint decimal.Decimal `gorm:"column:reorder_point;type:numeric(14,4);not null"`
	Active       bool            `gorm:"column:active;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Input) TableName() string { return "inputs" }

func (i *Input) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
