package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Validation(map[string]string{key: "must be numeric"})
	}
	if value < min || value > max {
		return 0, pkgerrors.Validation(map[string]string{key: "is out of range"})
	}
	return value, nil
}

// OnlyActive reads the ?active= filter of list endpoints: only the literal
// "false" widens the listing to inactive rows.
func OnlyActive(r *http.Request) bool {
	return strings.TrimSpace(r.URL.Query().Get("active")) != "false"
}

// ParseUUIDParam reads a chi URL parameter as a UUID.
func ParseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Validation error").
			WithDetails(map[string]string{key: "must be a valid UUID"})
	}
	return id, nil
}
