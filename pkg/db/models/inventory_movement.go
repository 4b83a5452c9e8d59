package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/costlab-backend/pkg/enums"
)

// InventoryMovement is an immutable signed stock change; stock is the sum of qty.
type InventoryMovement struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	ItemType      enums.ItemType       `gorm:"column:item_type;type:inventory_item_type;not null;index:idx_inventory_movements_item,priority:1"`
	ItemID        uuid.UUID            `gorm:"column:item_id;type:uuid;not null;index:idx_inventory_movements_item,priority:2"`
	LocationID    *uuid.UUID           `gorm:"column:location_id;type:uuid"`
	Qty           decimal.Decimal      `gorm:"column:qty;type:numeric(14,4);not null"`
	Reason        enums.MovementReason `gorm:"column:reason;type:inventory_movement_reason;not null"`
	ReferenceText *string              `gorm:"column:reference_text"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
}

func (InventoryMovement) TableName() string { return "inventory_movements" }

func (m *InventoryMovement) BeforeCreate(*gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
