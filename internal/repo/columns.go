package repo

// Column is one column assignment of a partial update.
type Column struct {
	Name  string
	Value any
}

// Assignments converts columns to the map form gorm's Updates expects.
// A map is required so false and zero values are written.
func Assignments(cols []Column) map[string]any {
	out := make(map[string]any, len(cols))
	for _, c := range cols {
		out[c.Name] = c.Value
	}
	return out
}
