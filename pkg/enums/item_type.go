package enums

import "fmt"

// ItemType maps to the inventory_item_type enum in Postgres.
type ItemType string

const (
	ItemTypeInput   ItemType = "input"
	ItemTypeProduct ItemType = "product"
)

var validItemTypes = []ItemType{
	ItemTypeInput,
	ItemTypeProduct,
}

// String implements fmt.Stringer.
func (t ItemType) String() string {
	return string(t)
}

// IsValid reports whether the value matches the canonical item type enum.
func (t ItemType) IsValid() bool {
	for _, candidate := range validItemTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseItemType converts raw input into ItemType.
func ParseItemType(value string) (ItemType, error) {
	for _, candidate := range validItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item type %q", value)
}
