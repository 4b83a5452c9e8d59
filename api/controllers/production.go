package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/costlab-backend/api/responses"
	"github.com/angelmondragon/costlab-backend/api/validators"
	"github.com/angelmondragon/costlab-backend/internal/production"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
	"github.com/angelmondragon/costlab-backend/pkg/logger"
)

func RecordProductionBatch(svc production.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "production service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productionBatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		batch, err := svc.Record(r.Context(), productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, batch)
	}
}

func ListProductionBatches(svc production.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "production service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type productionBatchRequest struct {
	QuantityProduced *decimal.Decimal `json:"quantity_produced" validate:"required"`
	CreatedAt        *string          `json:"created_at"`
}

func (r productionBatchRequest) toInput() (production.RecordBatchInput, error) {
	input := production.RecordBatchInput{QuantityProduced: *r.QuantityProduced}
	if r.CreatedAt != nil {
		createdAt, ok := validators.ParseTimestamp(*r.CreatedAt)
		if !ok {
			return input, pkgerrors.Validation(map[string]string{"created_at": "must be an ISO 8601 date or timestamp"})
		}
		input.CreatedAt = &createdAt
	}
	return input, nil
}
