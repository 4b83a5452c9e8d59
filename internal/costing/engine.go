package costing

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/costlab-backend/pkg/enums"
)

// CostRecord is one price point in an input's history.
type CostRecord struct {
	InputID     uuid.UUID
	CostPerUnit decimal.Decimal
	Currency    string
	ValidFrom   time.Time
	CreatedAt   time.Time
	// Malformed marks a stored amount that could not be read as a finite number.
	Malformed bool
}

// MaterialLine is a BOM line joined with its input and resolved cost.
type MaterialLine struct {
	InputID         uuid.UUID
	SKU             *string
	Name            string
	Unit            string
	QuantityPerUnit decimal.Decimal
	WastageRate     decimal.Decimal
	// Cost is nil when the input has no cost history.
	Cost *CostRecord
	// Malformed marks a line whose quantity or wastage could not be read.
	Malformed bool
}

// CostPerUnit is the resolved cost, zero when unknown.
func (l MaterialLine) CostPerUnit() decimal.Decimal {
	if l.Cost == nil {
		return decimal.Zero
	}
	return l.Cost.CostPerUnit
}

// Currency is the resolved cost currency, CLP when unknown.
func (l MaterialLine) Currency() string {
	if l.Cost == nil || l.Cost.Currency == "" {
		return enums.CurrencyCLP.String()
	}
	return l.Cost.Currency
}

// LineCost is qty × (1 + wastage) × cost, or zero for unreadable lines.
func (l MaterialLine) LineCost() decimal.Decimal {
	if l.Malformed || (l.Cost != nil && l.Cost.Malformed) {
		return decimal.Zero
	}
	return LineCost(l.QuantityPerUnit, l.WastageRate, l.CostPerUnit())
}

// Campaign is an ad spend record for a product.
type Campaign struct {
	ID            uuid.UUID
	CampaignName  string
	SocialNetwork *string
	Start         time.Time
	End           time.Time
	Amount        decimal.Decimal
	Notes         *string
	Malformed     bool
}

// Batch is a production run of a product.
type Batch struct {
	Quantity  decimal.Decimal
	CreatedAt time.Time
	Malformed bool
}

// CampaignAllocation is a campaign with its per-unit share resolved.
type CampaignAllocation struct {
	Campaign
	TotalProduced    decimal.Decimal
	AllocatedPerUnit decimal.Decimal
}

// Breakdown is the full costing of one unit of a product.
type Breakdown struct {
	Materials       []MaterialLine
	Campaigns       []CampaignAllocation
	MaterialCost    decimal.Decimal
	AdAllocatedCost decimal.Decimal
	TotalCost       decimal.Decimal
}

// ResolveCurrentCost picks the record with the latest ValidFrom, breaking ties
// by the latest CreatedAt. ok is false when records is empty.
func ResolveCurrentCost(records []CostRecord) (current CostRecord, ok bool) {
	for i, rec := range records {
		if i == 0 || newerThan(rec, current) {
			current = rec
		}
	}
	return current, len(records) > 0
}

func newerThan(a, b CostRecord) bool {
	if !a.ValidFrom.Equal(b.ValidFrom) {
		return a.ValidFrom.After(b.ValidFrom)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// CurrentCosts resolves the current record per input.
func CurrentCosts(records []CostRecord) map[uuid.UUID]CostRecord {
	byInput := make(map[uuid.UUID][]CostRecord)
	for _, rec := range records {
		byInput[rec.InputID] = append(byInput[rec.InputID], rec)
	}
	current := make(map[uuid.UUID]CostRecord, len(byInput))
	for inputID, recs := range byInput {
		if rec, ok := ResolveCurrentCost(recs); ok {
			current[inputID] = rec
		}
	}
	return current
}

// SortNewestFirst orders a cost history the way ResolveCurrentCost ranks it.
func SortNewestFirst(records []CostRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return newerThan(records[i], records[j])
	})
}

// LineCost returns quantityPerUnit × (1 + wastageRate) × costPerUnit.
func LineCost(quantityPerUnit, wastageRate, costPerUnit decimal.Decimal) decimal.Decimal {
	return quantityPerUnit.Mul(decimal.NewFromInt(1).Add(wastageRate)).Mul(costPerUnit)
}

// SumMaterialCost adds the line costs; unreadable lines contribute zero.
func SumMaterialCost(lines []MaterialLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineCost())
	}
	return total
}

// UnitsProducedInWindow sums batch quantities whose UTC calendar date falls
// within [start, end], both inclusive.
func UnitsProducedInWindow(batches []Batch, start, end time.Time) decimal.Decimal {
	from, to := DateOf(start), DateOf(end)
	total := decimal.Zero
	for _, b := range batches {
		if b.Malformed {
			continue
		}
		day := DateOf(b.CreatedAt)
		if day.Before(from) || day.After(to) {
			continue
		}
		total = total.Add(b.Quantity)
	}
	return total
}

// AllocatePerUnit spreads a campaign amount over the units produced. With no
// production in the window the whole amount lands on a single unit.
func AllocatePerUnit(amount, totalProduced decimal.Decimal) decimal.Decimal {
	if totalProduced.GreaterThan(decimal.Zero) {
		return amount.Div(totalProduced)
	}
	return amount
}

// DateOf truncates t to midnight of its UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Compute builds the breakdown of one unit. lines and campaigns keep the order
// they are given in.
func Compute(lines []MaterialLine, campaigns []Campaign, batches []Batch) Breakdown {
	out := Breakdown{
		Materials:       lines,
		Campaigns:       make([]CampaignAllocation, 0, len(campaigns)),
		MaterialCost:    SumMaterialCost(lines),
		AdAllocatedCost: decimal.Zero,
	}
	if out.Materials == nil {
		out.Materials = []MaterialLine{}
	}

	for _, c := range campaigns {
		produced := UnitsProducedInWindow(batches, c.Start, c.End)
		alloc := CampaignAllocation{Campaign: c, TotalProduced: produced, AllocatedPerUnit: decimal.Zero}
		if !c.Malformed {
			alloc.AllocatedPerUnit = AllocatePerUnit(c.Amount, produced)
		}
		out.AdAllocatedCost = out.AdAllocatedCost.Add(alloc.AllocatedPerUnit)
		out.Campaigns = append(out.Campaigns, alloc)
	}

	out.TotalCost = out.MaterialCost.Add(out.AdAllocatedCost)
	return out
}
