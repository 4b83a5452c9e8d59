package campaigns

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/costlab-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// CreateCampaignInput is an ad spend record for a product. Dates are
// calendar days at UTC midnight.
type CreateCampaignInput struct {
	CampaignName  string
	SocialNetwork *string
	CampaignStart time.Time
	CampaignEnd   time.Time
	Amount        decimal.Decimal
	Notes         *string
}

func (in CreateCampaignInput) validate() error {
	fields := pkgerrors.FieldErrors{}
	if strings.TrimSpace(in.CampaignName) == "" {
		fields.Add("campaign_name", "is required")
	}
	if in.CampaignStart.IsZero() {
		fields.Add("campaign_start", "is required")
	}
	if in.CampaignEnd.IsZero() {
		fields.Add("campaign_end", "is required")
	}
	if !in.CampaignStart.IsZero() && !in.CampaignEnd.IsZero() && in.CampaignEnd.Before(in.CampaignStart) {
		fields.Add("campaign_end", "must be on or after campaign_start")
	}
	if in.Amount.IsNegative() {
		fields.Add("amount", "Must be non-negative")
	}
	return fields.Err()
}

type CampaignDTO struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	CampaignName  string    `json:"campaign_name"`
	SocialNetwork *string   `json:"social_network"`
	CampaignStart string    `json:"campaign_start"`
	CampaignEnd   string    `json:"campaign_end"`
	Amount        float64   `json:"amount"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewCampaignDTO(m *models.AdCost) *CampaignDTO {
	return &CampaignDTO{
		ID:            m.ID,
		ProductID:     m.ProductID,
		CampaignName:  m.CampaignName,
		SocialNetwork: m.SocialNetwork,
		CampaignStart: m.CampaignStart.UTC().Format(dateLayout),
		CampaignEnd:   m.CampaignEnd.UTC().Format(dateLayout),
		Amount:        m.Amount.InexactFloat64(),
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
	}
}
