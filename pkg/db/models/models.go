package models

import "github.com/google/uuid"

// All lists every persisted model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&Product{},
		&Input{},
		&BOMLine{},
		&InputCost{},
		&InventoryMovement{},
		&AdCost{},
		&ProductionBatch{},
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
