package products

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/costlab-backend/internal/costing"
	"github.com/angelmondragon/costlab-backend/internal/repo"
	"github.com/angelmondragon/costlab-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
)

// CreateProductInput holds the payload to create a product.
type CreateProductInput struct {
	SKU         *string
	Name        string
	Description *string
	PhotoURL    *string
	Active      *bool
}

func (in CreateProductInput) validate() error {
	fields := pkgerrors.FieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		fields.Add("name", "is required")
	}
	if in.SKU != nil && strings.TrimSpace(*in.SKU) == "" {
		fields.Add("sku", "must not be empty")
	}
	return fields.Err()
}

// UpdateProductInput holds optional mutation values for a product. Nil
// fields are left untouched.
type UpdateProductInput struct {
	SKU         *string
	Name        *string
	Description *string
	PhotoURL    *string
	Active      *bool
}

func (in UpdateProductInput) validate() error {
	fields := pkgerrors.FieldErrors{}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		fields.Add("name", "must not be empty")
	}
	if in.SKU != nil && strings.TrimSpace(*in.SKU) == "" {
		fields.Add("sku", "must not be empty")
	}
	return fields.Err()
}

// Columns lists the assignments the update carries, in a stable order.
func (in UpdateProductInput) Columns() []repo.Column {
	var cols []repo.Column
	if in.SKU != nil {
		cols = append(cols, repo.Column{Name: "sku", Value: *in.SKU})
	}
	if in.Name != nil {
		cols = append(cols, repo.Column{Name: "name", Value: *in.Name})
	}
	if in.Description != nil {
		cols = append(cols, repo.Column{Name: "description", Value: *in.Description})
	}
	if in.PhotoURL != nil {
		cols = append(cols, repo.Column{Name: "photo_url", Value: *in.PhotoURL})
	}
	if in.Active != nil {
		cols = append(cols, repo.Column{Name: "active", Value: *in.Active})
	}
	return cols
}

// BOMItemInput is one line of a BOM replacement.
type BOMItemInput struct {
	InputID         uuid.UUID
	QuantityPerUnit decimal.Decimal
	// WastageRate defaults to zero when nil.
	WastageRate *decimal.Decimal
	Notes       *string
}

func validateBOMItems(items []BOMItemInput) error {
	fields := pkgerrors.FieldErrors{}
	if len(items) == 0 {
		fields.Add("items", "must contain at least 1 item(s)")
	}
	one := decimal.NewFromInt(1)
	for i, item := range items {
		prefix := fmt.Sprintf("items[%d].", i)
		if item.InputID == uuid.Nil {
			fields.Add(prefix+"input_id", "must be a valid UUID")
		}
		if item.QuantityPerUnit.IsNegative() {
			fields.Add(prefix+"quantity_per_unit", "Must be non-negative")
		}
		if item.WastageRate != nil && (item.WastageRate.IsNegative() || item.WastageRate.GreaterThan(one)) {
			fields.Add(prefix+"wastage_rate", "Wastage rate must be between 0 and 1")
		}
	}
	return fields.Err()
}

// ProductDTO is the product payload returned to clients.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	SKU         *string   `json:"sku"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	PhotoURL    *string   `json:"photo_url"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProductDTO(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		PhotoURL:    p.PhotoURL,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}

// BOMLineDTO is a stored BOM line.
type BOMLineDTO struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"product_id"`
	InputID         uuid.UUID `json:"input_id"`
	QuantityPerUnit float64   `json:"quantity_per_unit"`
	WastageRate     float64   `json:"wastage_rate"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

func newBOMLineDTO(line models.BOMLine) BOMLineDTO {
	return BOMLineDTO{
		ID:              line.ID,
		ProductID:       line.ProductID,
		InputID:         line.InputID,
		QuantityPerUnit: line.QuantityPerUnit.InexactFloat64(),
		WastageRate:     line.WastageRate.InexactFloat64(),
		Notes:           line.Notes,
		CreatedAt:       line.CreatedAt,
	}
}

// BOMReplaceResult is the response of a BOM replacement.
type BOMReplaceResult struct {
	ProductID uuid.UUID    `json:"product_id"`
	Items     []BOMLineDTO `json:"items"`
}

// FullBOMLineDTO is a BOM line joined with its input and current cost.
type FullBOMLineDTO struct {
	BOMLineDTO
	InputSKU    *string    `json:"input_sku"`
	InputName   string     `json:"input_name"`
	InputUnit   string     `json:"input_unit"`
	CostPerUnit *float64   `json:"cost_per_unit"`
	Currency    *string    `json:"currency"`
	ValidFrom   *time.Time `json:"valid_from"`
}

// ProductFullDTO is a product with its enriched BOM.
type ProductFullDTO struct {
	Product *ProductDTO      `json:"product"`
	BOM     []FullBOMLineDTO `json:"bom"`
}

func newFullBOMLineDTO(row costing.BOMRow) FullBOMLineDTO {
	out := FullBOMLineDTO{
		BOMLineDTO: BOMLineDTO{
			ID:              row.ID,
			ProductID:       row.ProductID,
			InputID:         row.Line.InputID,
			QuantityPerUnit: row.Line.QuantityPerUnit.InexactFloat64(),
			WastageRate:     row.Line.WastageRate.InexactFloat64(),
			Notes:           row.Notes,
			CreatedAt:       row.CreatedAt,
		},
		InputSKU:  row.Line.SKU,
		InputName: row.Line.Name,
		InputUnit: row.Line.Unit,
	}
	if rec := row.Line.Cost; rec != nil {
		out.CostPerUnit = costing.OptionalFloat(rec)
		currency := rec.Currency
		validFrom := rec.ValidFrom
		out.Currency = &currency
		out.ValidFrom = &validFrom
	}
	return out
}
