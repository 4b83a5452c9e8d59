package responses

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
	"github.com/angelmondragon/costlab-backend/pkg/logger"
	"github.com/angelmondragon/costlab-backend/pkg/types"
)

func TestWriteSuccessStatus(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccessStatus(w, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "world", body["hello"])
}

func TestWriteErrorValidationCarriesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.Validation(map[string]string{"items[0].wastage_rate": "Wastage rate must be between 0 and 1"})
	WriteError(context.Background(), nil, w, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error   string            `json:"error"`
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Validation error", body.Error)
	assert.Equal(t, string(pkgerrors.CodeValidation), body.Code)
	assert.Equal(t, "Wastage rate must be between 0 and 1", body.Details["items[0].wastage_rate"])
}

func TestWriteErrorNotFoundUsesEntityMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, pkgerrors.NotFound("Product"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body types.ErrorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Product not found", body.Error)
	assert.Nil(t, body.Details)
}

func TestWriteErrorHidesInternalCause(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: &buf})

	w := httptest.NewRecorder()
	WriteError(context.Background(), logg, w, errors.New("pq: relation \"products\" does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body types.ErrorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body.Error)
	assert.Equal(t, string(pkgerrors.CodeInternal), body.Code)
	assert.Nil(t, body.Details)
	assert.NotContains(t, body.Error, "relation")

	assert.Contains(t, buf.String(), "request.error")
	assert.Contains(t, buf.String(), "relation")
}

func TestWriteRouteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteRouteError(w, http.StatusNotFound, "Not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}
