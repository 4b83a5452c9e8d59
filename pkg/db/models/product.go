package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a finished, sellable good.
type Product struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	SKU         *string   `gorm:"column:sku;uniqueIndex:products_sku_key"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	PhotoURL    *string   `gorm:"column:photo_url"`
	Active      bool      `gorm:"column:active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
