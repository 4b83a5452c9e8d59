package errors

// FieldErrors collects per-field validation messages.
type FieldErrors map[string]string

// Add records msg for field, keeping the first message reported.
func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

// Err returns a validation error when any field failed, nil otherwise.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return Validation(f)
}
