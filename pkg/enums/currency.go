package enums

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 alphabetic code attached to recorded costs.
type Currency string

// CurrencyCLP is assumed whenever a cost is recorded without a currency.
const CurrencyCLP Currency = "CLP"

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

// IsValid reports whether the value is three upper-case ASCII letters.
func (c Currency) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range string(c) {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// ParseCurrency trims and upper-cases raw input, falling back to CLP when empty.
func ParseCurrency(value string) (Currency, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return CurrencyCLP, nil
	}
	c := Currency(trimmed)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid currency %q", value)
	}
	return c, nil
}
