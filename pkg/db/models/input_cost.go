package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InputCost is one entry of an input's append-only price history.
type InputCost struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	InputID     uuid.UUID       `gorm:"column:input_id;type:uuid;not null;index:idx_input_costs_current,priority:1"`
	CostPerUnit decimal.Decimal `gorm:"column:cost_per_unit;type:numeric(14,4);not null"`
	Currency    string          `gorm:"column:currency;not null"`
	ValidFrom   time.Time       `gorm:"column:valid_from;not null;index:idx_input_costs_current,priority:2"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`

	Input *Input `gorm:"foreignKey:InputID;constraint:OnDelete:RESTRICT"`
}

func (InputCost) TableName() string { return "input_costs" }

func (c *InputCost) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
