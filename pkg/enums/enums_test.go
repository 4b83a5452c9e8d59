package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemType(t *testing.T) {
	got, err := ParseItemType("input")
	require.NoError(t, err)
	assert.Equal(t, ItemTypeInput, got)

	_, err = ParseItemType("widget")
	require.Error(t, err)
	assert.False(t, ItemType("widget").IsValid())
}

func TestParseMovementReason(t *testing.T) {
	for _, raw := range []string{"purchase", "sale", "production_consume", "adjustment", "wastage"} {
		got, err := ParseMovementReason(raw)
		require.NoError(t, err, raw)
		assert.True(t, got.IsValid())
	}

	_, err := ParseMovementReason("theft")
	require.Error(t, err)
}

func TestParseCurrency(t *testing.T) {
	got, err := ParseCurrency("")
	require.NoError(t, err)
	assert.Equal(t, CurrencyCLP, got)

	got, err = ParseCurrency(" usd ")
	require.NoError(t, err)
	assert.Equal(t, Currency("USD"), got)

	_, err = ParseCurrency("dollars")
	require.Error(t, err)
}
