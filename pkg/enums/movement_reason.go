package enums

import "fmt"

// MovementReason maps to the inventory_movement_reason enum in Postgres.
type MovementReason string

const (
	MovementReasonPurchase          MovementReason = "purchase"
	MovementReasonSale              MovementReason = "sale"
	MovementReasonProductionConsume MovementReason = "production_consume"
	MovementReasonAdjustment        MovementReason = "adjustment"
	MovementReasonWastage           MovementReason = "wastage"
)

var validMovementReasons = []MovementReason{
	MovementReasonPurchase,
	MovementReasonSale,
	MovementReasonProductionConsume,
	MovementReasonAdjustment,
	MovementReasonWastage,
}

// String implements fmt.Stringer.
func (r MovementReason) String() string {
	return string(r)
}

// IsValid reports whether the value matches the canonical movement reason enum.
func (r MovementReason) IsValid() bool {
	for _, candidate := range validMovementReasons {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseMovementReason converts raw input into MovementReason.
func ParseMovementReason(value string) (MovementReason, error) {
	for _, candidate := range validMovementReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid movement reason %q", value)
}
