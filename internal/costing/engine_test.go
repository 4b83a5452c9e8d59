package costing

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	require.NoError(t, err)
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveCurrentCost(t *testing.T) {
	inputID := uuid.New()
	base := day(2025, time.January, 1)

	_, ok := ResolveCurrentCost(nil)
	assert.False(t, ok)

	records := []CostRecord{
		{InputID: inputID, CostPerUnit: dec(t, "100"), ValidFrom: base, CreatedAt: base},
		{InputID: inputID, CostPerUnit: dec(t, "120"), ValidFrom: base.AddDate(0, 1, 0), CreatedAt: base},
		{InputID: inputID, CostPerUnit: dec(t, "90"), ValidFrom: base.AddDate(0, 0, 15), CreatedAt: base.AddDate(0, 2, 0)},
	}
	current, ok := ResolveCurrentCost(records)
	require.True(t, ok)
	assert.True(t, current.CostPerUnit.Equal(dec(t, "120")), "latest valid_from wins regardless of insertion time")

	tied := []CostRecord{
		{InputID: inputID, CostPerUnit: dec(t, "10"), ValidFrom: base, CreatedAt: base.Add(time.Minute)},
		{InputID: inputID, CostPerUnit: dec(t, "11"), ValidFrom: base, CreatedAt: base.Add(2 * time.Minute)},
		{InputID: inputID, CostPerUnit: dec(t, "12"), ValidFrom: base, CreatedAt: base},
	}
	current, ok = ResolveCurrentCost(tied)
	require.True(t, ok)
	assert.True(t, current.CostPerUnit.Equal(dec(t, "11")), "ties on valid_from fall back to created_at")
}

func TestSortNewestFirstMatchesResolution(t *testing.T) {
	base := day(2025, time.March, 1)
	records := []CostRecord{
		{CostPerUnit: dec(t, "1"), ValidFrom: base, CreatedAt: base},
		{CostPerUnit: dec(t, "3"), ValidFrom: base.AddDate(0, 0, 2), CreatedAt: base},
		{CostPerUnit: dec(t, "2"), ValidFrom: base, CreatedAt: base.Add(time.Second)},
	}
	SortNewestFirst(records)

	current, _ := ResolveCurrentCost(records)
	assert.True(t, records[0].CostPerUnit.Equal(current.CostPerUnit))
	assert.Equal(t, []string{"3", "2", "1"}, []string{records[0].CostPerUnit.String(), records[1].CostPerUnit.String(), records[2].CostPerUnit.String()})
}

func TestLineCostIsExact(t *testing.T) {
	got := LineCost(dec(t, "0.5"), dec(t, "0.1"), dec(t, "1200"))
	assert.True(t, got.Equal(dec(t, "660")), "got %s", got)

	assert.True(t, LineCost(dec(t, "2"), decimal.Zero, dec(t, "100")).Equal(dec(t, "200")))
	assert.True(t, LineCost(dec(t, "0"), dec(t, "0.5"), dec(t, "100")).IsZero())
}

func TestMaterialLineWithoutCost(t *testing.T) {
	line := MaterialLine{QuantityPerUnit: dec(t, "3"), WastageRate: dec(t, "0.2")}

	assert.True(t, line.LineCost().IsZero())
	assert.Equal(t, "CLP", line.Currency())
	assert.Nil(t, OptionalFloat(line.Cost))
}

func TestSumMaterialCostSkipsMalformed(t *testing.T) {
	lines := []MaterialLine{
		{QuantityPerUnit: dec(t, "2"), Cost: &CostRecord{CostPerUnit: dec(t, "100")}},
		{QuantityPerUnit: dec(t, "1"), Malformed: true, Cost: &CostRecord{CostPerUnit: dec(t, "999")}},
		{QuantityPerUnit: dec(t, "1"), Cost: &CostRecord{CostPerUnit: decimal.Zero, Malformed: true}},
	}
	assert.True(t, SumMaterialCost(lines).Equal(dec(t, "200")))
}

func TestUnitsProducedInWindowIsInclusive(t *testing.T) {
	batches := []Batch{
		{Quantity: dec(t, "10"), CreatedAt: day(2025, time.January, 1)},
		{Quantity: dec(t, "20"), CreatedAt: day(2025, time.January, 31).Add(23*time.Hour + 59*time.Minute)},
		{Quantity: dec(t, "40"), CreatedAt: day(2025, time.February, 1)},
		{Quantity: dec(t, "80"), CreatedAt: day(2024, time.December, 31).Add(23 * time.Hour)},
		{Quantity: dec(t, "5"), CreatedAt: day(2025, time.January, 15), Malformed: true},
	}
	got := UnitsProducedInWindow(batches, day(2025, time.January, 1), day(2025, time.January, 31))
	assert.True(t, got.Equal(dec(t, "30")), "got %s", got)
}

func TestAllocatePerUnit(t *testing.T) {
	assert.True(t, AllocatePerUnit(dec(t, "500"), dec(t, "100")).Equal(dec(t, "5")))
	assert.True(t, AllocatePerUnit(dec(t, "500"), decimal.Zero).Equal(dec(t, "500")))
}

func TestComputeWorkedExample(t *testing.T) {
	lines := []MaterialLine{
		{Name: "A", QuantityPerUnit: dec(t, "2"), WastageRate: decimal.Zero, Cost: &CostRecord{CostPerUnit: dec(t, "100"), Currency: "CLP"}},
		{Name: "B", QuantityPerUnit: dec(t, "0.5"), WastageRate: dec(t, "0.1"), Cost: &CostRecord{CostPerUnit: dec(t, "1200"), Currency: "CLP"}},
	}
	campaigns := []Campaign{{
		ID:     uuid.New(),
		Start:  day(2025, time.January, 1),
		End:    day(2025, time.January, 31),
		Amount: dec(t, "500"),
	}}
	batches := []Batch{
		{Quantity: dec(t, "100"), CreatedAt: day(2025, time.January, 10)},
		{Quantity: dec(t, "50"), CreatedAt: day(2025, time.February, 2)},
	}

	got := Compute(lines, campaigns, batches)

	assert.True(t, got.MaterialCost.Equal(dec(t, "860")), "material %s", got.MaterialCost)
	require.Len(t, got.Campaigns, 1)
	assert.True(t, got.Campaigns[0].TotalProduced.Equal(dec(t, "100")))
	assert.True(t, got.Campaigns[0].AllocatedPerUnit.Equal(dec(t, "5")))
	assert.True(t, got.AdAllocatedCost.Equal(dec(t, "5")))
	assert.True(t, got.TotalCost.Equal(dec(t, "865")))
}

func TestComputeNoProductionChargesWholeAmount(t *testing.T) {
	campaigns := []Campaign{{Start: day(2025, time.May, 1), End: day(2025, time.May, 31), Amount: dec(t, "300")}}

	got := Compute(nil, campaigns, nil)

	assert.NotNil(t, got.Materials)
	assert.True(t, got.MaterialCost.IsZero())
	assert.True(t, got.AdAllocatedCost.Equal(dec(t, "300")))
	assert.True(t, got.TotalCost.Equal(dec(t, "300")))
}

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil, nil, nil)
	assert.True(t, got.TotalCost.IsZero())
	assert.Empty(t, got.Materials)
	assert.Empty(t, got.Campaigns)
}

func TestParseNumeric(t *testing.T) {
	d, ok := ParseNumeric(sql.NullString{String: "12.5", Valid: true})
	require.True(t, ok)
	assert.True(t, d.Equal(dec(t, "12.5")))

	for _, raw := range []string{"NaN", "Infinity", "-Infinity", "abc", ""} {
		d, ok := ParseNumeric(sql.NullString{String: raw, Valid: true})
		assert.False(t, ok, raw)
		assert.True(t, d.IsZero(), raw)
	}

	_, ok = ParseNumeric(sql.NullString{})
	assert.False(t, ok)

	d, ok = ParseNumericOrZero(sql.NullString{})
	assert.True(t, ok)
	assert.True(t, d.IsZero())
}
