package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/costlab-backend/api/responses"
	"github.com/angelmondragon/costlab-backend/api/validators"
	"github.com/angelmondragon/costlab-backend/internal/inventory"
	"github.com/angelmondragon/costlab-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
	"github.com/angelmondragon/costlab-backend/pkg/logger"
	"github.com/angelmondragon/costlab-backend/pkg/pagination"
)

func RecordMovement(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload movementRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		movement, err := svc.RecordMovement(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, movement)
	}
}

// InventorySummary lists derived stock for every item with at least one movement.
func InventorySummary(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		summary, err := svc.StockSummary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// ListMovements pages the movement history, newest first, optionally
// filtered by ?item_type= and ?item_id=.
func ListMovements(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		params, err := parseMovementQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListMovements(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func parseMovementQuery(r *http.Request) (inventory.ListMovementsParams, error) {
	q := r.URL.Query()
	params := inventory.ListMovementsParams{Cursor: strings.TrimSpace(q.Get("cursor"))}

	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return params, err
	}
	params.Limit = limit

	fields := pkgerrors.FieldErrors{}
	if raw := strings.TrimSpace(q.Get("item_type")); raw != "" {
		itemType, err := enums.ParseItemType(raw)
		if err != nil {
			fields.Add("item_type", "must be one of: input, product")
		} else {
			params.ItemType = &itemType
		}
	}
	if raw := strings.TrimSpace(q.Get("item_id")); raw != "" {
		itemID, err := uuid.Parse(raw)
		if err != nil {
			fields.Add("item_id", "must be a valid UUID")
		} else {
			params.ItemID = &itemID
		}
	}
	return params, fields.Err()
}

type movementRequest struct {
	ItemType      string           `json:"item_type" validate:"required,oneof=input product"`
	ItemID        string           `json:"item_id" validate:"required,uuid"`
	LocationID    *string          `json:"location_id" validate:"omitempty,uuid"`
	Qty           *decimal.Decimal `json:"qty" validate:"required"`
	Reason        string           `json:"reason" validate:"required,oneof=purchase sale production_consume adjustment wastage"`
	ReferenceText *string          `json:"reference_text"`
}

func (r movementRequest) toInput() inventory.RecordMovementInput {
	input := inventory.RecordMovementInput{
		ItemType:      enums.ItemType(r.ItemType),
		ItemID:        uuid.MustParse(r.ItemID),
		Qty:           *r.Qty,
		Reason:        enums.MovementReason(r.Reason),
		ReferenceText: r.ReferenceText,
	}
	if r.LocationID != nil {
		id := uuid.MustParse(*r.LocationID)
		input.LocationID = &id
	}
	return input
}
