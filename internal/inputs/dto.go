package inputs

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/costlab-backend/internal/repo"
	"github.com/angelmondragon/costlab-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
)

const msgNonNegative = "Must be non-negative"

// CreateInputInput holds the payload to create an input.
type CreateInputInput struct {
	SKU          *string
	Name         string
	Unit         string
	IsCritical   *bool
	ReorderPoint *decimal.Decimal
	Active       *bool
}

func (in CreateInputInput) validate() error {
	fields := pkgerrors.FieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		fields.Add("name", "is required")
	}
	if strings.TrimSpace(in.Unit) == "" {
		fields.Add("unit", "is required")
	}
	if in.SKU != nil && strings.TrimSpace(*in.SKU) == "" {
		fields.Add("sku", "must not be empty")
	}
	if in.ReorderPoint != nil && in.ReorderPoint.IsNegative() {
		fields.Add("reorder_point", msgNonNegative)
	}
	return fields.Err()
}

// UpdateInputInput holds optional mutation values for an input.
type UpdateInputInput struct {
	SKU          *string
	Name         *string
	Unit         *string
	IsCritical   *bool
	ReorderPoint *decimal.Decimal
	Active       *bool
}

func (in UpdateInputInput) validate() error {
	fields := pkgerrors.FieldErrors{}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		fields.Add("name", "must not be empty")
	}
	if in.Unit != nil && strings.TrimSpace(*in.Unit) == "" {
		fields.Add("unit", "must not be empty")
	}
	if in.SKU != nil && strings.TrimSpace(*in.SKU) == "" {
		fields.Add("sku", "must not be empty")
	}
	if in.ReorderPoint != nil && in.ReorderPoint.IsNegative() {
		fields.Add("reorder_point", msgNonNegative)
	}
	return fields.Err()
}

// Columns lists the assignments the update carries, in a stable order.
func (in UpdateInputInput) Columns() []repo.Column {
	var cols []repo.Column
	if in.SKU != nil {
		cols = append(cols, repo.Column{Name: "sku", Value: *in.SKU})
	}
	if in.Name != nil {
		cols = append(cols, repo.Column{Name: "name", Value: *in.Name})
	}
	if in.Unit != nil {
		cols = append(cols, repo.Column{Name: "unit", Value: *in.Unit})
	}
	if in.IsCritical != nil {
		cols = append(cols, repo.Column{Name: "is_critical", Value: *in.IsCritical})
	}
	if in.ReorderPoint != nil {
		cols = append(cols, repo.Column{Name: "reorder_point", Value: *in.ReorderPoint})
	}
	if in.Active != nil {
		cols = append(cols, repo.Column{Name: "active", Value: *in.Active})
	}
	return cols
}

// AddCostInput appends a cost record. Currency defaults to CLP and
// ValidFrom to now.
type AddCostInput struct {
	CostPerUnit decimal.Decimal
	Currency    *string
	ValidFrom   *time.Time
}

// InputDTO is the input payload returned to clients.
type InputDTO struct {
	ID           uuid.UUID `json:"id"`
	SKU          *string   `json:"sku"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	IsCritical   bool      `json:"is_critical"`
	ReorderPoint float64   `json:"reorder_point"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewInputDTO(in *models.Input) *InputDTO {
	if in == nil {
		return nil
	}
	return &InputDTO{
		ID:           in.ID,
		SKU:          in.SKU,
		Name:         in.Name,
		Unit:         in.Unit,
		IsCritical:   in.IsCritical,
		ReorderPoint: in.ReorderPoint.InexactFloat64(),
		Active:       in.Active,
		CreatedAt:    in.CreatedAt,
	}
}

// CostDTO is one cost history record.
type CostDTO struct {
	ID          uuid.UUID `json:"id"`
	InputID     uuid.UUID `json:"input_id"`
	CostPerUnit float64   `json:"cost_per_unit"`
	Currency    string    `json:"currency"`
	ValidFrom   time.Time `json:"valid_from"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCostDTO(c *models.InputCost) *CostDTO {
	if c == nil {
		return nil
	}
	return &CostDTO{
		ID:          c.ID,
		InputID:     c.InputID,
		CostPerUnit: c.CostPerUnit.InexactFloat64(),
		Currency:    c.Currency,
		ValidFrom:   c.ValidFrom,
		CreatedAt:   c.CreatedAt,
	}
}
