package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdCost is an advertising campaign spend attributed to one product.
// CampaignStart and CampaignEnd are calendar dates held at UTC midnight.
type AdCost struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID     uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index:idx_ad_costs_product"`
	CampaignName  string          `gorm:"column:campaign_name;not null"`
	SocialNetwork *string         `gorm:"column:social_network"`
	CampaignStart time.Time       `gorm:"column:campaign_start;type:date;not null"`
	CampaignEnd   time.Time       `gorm:"column:campaign_end;type:date;not null;index:idx_ad_costs_campaign_end"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(14,4);not null"`
	Notes         *string         `gorm:"column:notes"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

func (AdCost) TableName() string { return "ad_costs" }

func (a *AdCost) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
