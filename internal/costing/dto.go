package costing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ProductCosting is the costing result for one product.
type ProductCosting struct {
	ProductID   uuid.UUID
	ProductSKU  *string
	ProductName string
	Breakdown
}

type ProductRefDTO struct {
	ID   uuid.UUID `json:"id"`
	SKU  *string   `json:"sku"`
	Name string    `json:"name"`
}

type MaterialLineDTO struct {
	InputID         uuid.UUID `json:"input_id"`
	SKU             *string   `json:"sku"`
	Name            string    `json:"name"`
	Unit            string    `json:"unit"`
	QuantityPerUnit float64   `json:"quantity_per_unit"`
	WastageRate     float64   `json:"wastage_rate"`
	CostPerUnit     *float64  `json:"cost_per_unit"`
	Currency        string    `json:"currency"`
	LineCost        float64   `json:"line_cost"`
}

type AdCostDTO struct {
	ID               uuid.UUID `json:"id"`
	CampaignName     string    `json:"campaign_name"`
	SocialNetwork    *string   `json:"social_network"`
	CampaignStart    string    `json:"campaign_start"`
	CampaignEnd      string    `json:"campaign_end"`
	Amount           float64   `json:"amount"`
	TotalProduced    float64   `json:"total_produced"`
	AllocatedPerUnit float64   `json:"allocated_per_unit"`
	Notes            *string   `json:"notes"`
}

// ProductCostingDTO is the JSON shape of GET /costing/products/{id}.
type ProductCostingDTO struct {
	Product            ProductRefDTO     `json:"product"`
	MaterialCost       float64           `json:"material_cost"`
	AdAllocatedCost    float64           `json:"ad_allocated_cost"`
	TotalCost          float64           `json:"total_cost"`
	MaterialsBreakdown []MaterialLineDTO `json:"materials_breakdown"`
	AdCosts            []AdCostDTO       `json:"ad_costs"`
}

func (c *ProductCosting) ToDTO() ProductCostingDTO {
	out := ProductCostingDTO{
		Product:            ProductRefDTO{ID: c.ProductID, SKU: c.ProductSKU, Name: c.ProductName},
		MaterialCost:       c.MaterialCost.InexactFloat64(),
		AdAllocatedCost:    c.AdAllocatedCost.InexactFloat64(),
		TotalCost:          c.TotalCost.InexactFloat64(),
		MaterialsBreakdown: make([]MaterialLineDTO, 0, len(c.Materials)),
		AdCosts:            make([]AdCostDTO, 0, len(c.Campaigns)),
	}
	for _, line := range c.Materials {
		out.MaterialsBreakdown = append(out.MaterialsBreakdown, MaterialLineToDTO(line))
	}
	for _, alloc := range c.Campaigns {
		out.AdCosts = append(out.AdCosts, AdCostDTO{
			ID:               alloc.ID,
			CampaignName:     alloc.CampaignName,
			SocialNetwork:    alloc.SocialNetwork,
			CampaignStart:    alloc.Start.UTC().Format(dateLayout),
			CampaignEnd:      alloc.End.UTC().Format(dateLayout),
			Amount:           alloc.Amount.InexactFloat64(),
			TotalProduced:    alloc.TotalProduced.InexactFloat64(),
			AllocatedPerUnit: alloc.AllocatedPerUnit.InexactFloat64(),
			Notes:            alloc.Notes,
		})
	}
	return out
}

func MaterialLineToDTO(line MaterialLine) MaterialLineDTO {
	return MaterialLineDTO{
		InputID:         line.InputID,
		SKU:             line.SKU,
		Name:            line.Name,
		Unit:            line.Unit,
		QuantityPerUnit: line.QuantityPerUnit.InexactFloat64(),
		WastageRate:     line.WastageRate.InexactFloat64(),
		CostPerUnit:     OptionalFloat(line.Cost),
		Currency:        line.Currency(),
		LineCost:        line.LineCost().InexactFloat64(),
	}
}

// OptionalFloat converts a resolved cost to a JSON number, nil when absent.
func OptionalFloat(rec *CostRecord) *float64 {
	if rec == nil {
		return nil
	}
	v := rec.CostPerUnit.InexactFloat64()
	return &v
}

// Float is a JSON-friendly view of an exact amount.
func Float(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
