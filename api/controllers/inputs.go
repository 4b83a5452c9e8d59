package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/costlab-backend/api/responses"
	"github.com/angelmondragon/costlab-backend/api/validators"
	inputsvc "github.com/angelmondragon/costlab-backend/internal/inputs"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
	"github.com/angelmondragon/costlab-backend/pkg/logger"
)

const inputIDParam = "id"

func ListInputs(svc inputsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "input service unavailable"))
			return
		}

		list, err := svc.ListInputs(r.Context(), validators.OnlyActive(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func CreateInput(svc inputsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "input service unavailable"))
			return
		}

		var payload createInputRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := svc.CreateInput(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, input)
	}
}

func UpdateInput(svc inputsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "input service unavailable"))
			return
		}

		inputID, err := validators.ParseUUIDParam(r, inputIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateInputRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := svc.UpdateInput(r.Context(), inputID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, input)
	}
}

func DeleteInput(svc inputsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "input service unavailable"))
			return
		}

		inputID, err := validators.ParseUUIDParam(r, inputIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := svc.DeactivateInput(r.Context(), inputID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, input)
	}
}

// AddInputCost appends a cost record; valid_from defaults to now.
func AddInputCost(svc inputsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "input service unavailable"))
			return
		}

		inputID, err := validators.ParseUUIDParam(r, inputIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCostRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cost, err := svc.AddCost(r.Context(), inputID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, cost)
	}
}

func ListInputCosts(svc inputsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "input service unavailable"))
			return
		}

		inputID, err := validators.ParseUUIDParam(r, inputIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		costs, err := svc.ListCosts(r.Context(), inputID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, costs)
	}
}

type createInputRequest struct {
	SKU          *string          `json:"sku" validate:"omitempty,min=1"`
	Name         string           `json:"name" validate:"required"`
	Unit         string           `json:"unit" validate:"required"`
	IsCritical   *bool            `json:"is_critical"`
	ReorderPoint *decimal.Decimal `json:"reorder_point"`
	Active       *bool            `json:"active"`
}

func (r createInputRequest) toInput() inputsvc.CreateInputInput {
	return inputsvc.CreateInputInput{
		SKU:          validators.SanitizeOptional(r.SKU, 0),
		Name:         validators.SanitizeString(r.Name, 0),
		Unit:         validators.SanitizeString(r.Unit, 0),
		IsCritical:   r.IsCritical,
		ReorderPoint: r.ReorderPoint,
		Active:       r.Active,
	}
}

type updateInputRequest struct {
	SKU          *string          `json:"sku" validate:"omitempty,min=1"`
	Name         *string          `json:"name" validate:"omitempty,min=1"`
	Unit         *string          `json:"unit" validate:"omitempty,min=1"`
	IsCritical   *bool            `json:"is_critical"`
	ReorderPoint *decimal.Decimal `json:"reorder_point"`
	Active       *bool            `json:"active"`
}

func (r updateInputRequest) toInput() inputsvc.UpdateInputInput {
	return inputsvc.UpdateInputInput{
		SKU:          validators.SanitizeOptional(r.SKU, 0),
		Name:         validators.SanitizeOptional(r.Name, 0),
		Unit:         validators.SanitizeOptional(r.Unit, 0),
		IsCritical:   r.IsCritical,
		ReorderPoint: r.ReorderPoint,
		Active:       r.Active,
	}
}

type addCostRequest struct {
	CostPerUnit *decimal.Decimal `json:"cost_per_unit" validate:"required"`
	Currency    *string          `json:"currency"`
	ValidFrom   *string          `json:"valid_from"`
}

func (r addCostRequest) toInput() (inputsvc.AddCostInput, error) {
	input := inputsvc.AddCostInput{
		CostPerUnit: *r.CostPerUnit,
		Currency:    r.Currency,
	}
	if r.ValidFrom != nil {
		validFrom, ok := validators.ParseTimestamp(*r.ValidFrom)
		if !ok {
			return input, pkgerrors.Validation(map[string]string{"valid_from": "must be an ISO 8601 date or timestamp"})
		}
		input.ValidFrom = &validFrom
	}
	return input, nil
}
