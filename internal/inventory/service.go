package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/costlab-backend/internal/costing"
	"github.com/angelmondragon/costlab-backend/pkg/db/models"
	"github.com/angelmondragon/costlab-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
	"github.com/angelmondragon/costlab-backend/pkg/pagination"
)

// Service records stock movements and derives stock levels from them.
type Service interface {
	RecordMovement(ctx context.Context, input RecordMovementInput) (*MovementDTO, error)
	StockSummary(ctx context.Context) ([]StockDTO, error)
	// StockFor returns the stock of each listed item; items without
	// movements map to zero.
	StockFor(ctx context.Context, itemType enums.ItemType, itemIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
	ListMovements(ctx context.Context, params ListMovementsParams) (*MovementPage, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// RecordMovementInput captures one signed stock change.
type RecordMovementInput struct {
	ItemType      enums.ItemType
	ItemID        uuid.UUID
	LocationID    *uuid.UUID
	Qty           decimal.Decimal
	Reason        enums.MovementReason
	ReferenceText *string
}

// MovementDTO is a recorded movement.
type MovementDTO struct {
	ID            uuid.UUID            `json:"id"`
	ItemType      enums.ItemType       `json:"item_type"`
	ItemID        uuid.UUID            `json:"item_id"`
	LocationID    *uuid.UUID           `json:"location_id"`
	Qty           float64              `json:"qty"`
	Reason        enums.MovementReason `json:"reason"`
	ReferenceText *string              `json:"reference_text"`
	CreatedAt     time.Time            `json:"created_at"`
}

// ListMovementsParams filters the movement history. Cursor is the opaque
// value returned as next_cursor by the previous page.
type ListMovementsParams struct {
	ItemType *enums.ItemType
	ItemID   *uuid.UUID
	Limit    int
	Cursor   string
}

type MovementPage struct {
	Items      []MovementDTO `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// StockDTO is the current stock of one item.
type StockDTO struct {
	ItemType enums.ItemType `json:"item_type"`
	ItemID   uuid.UUID      `json:"item_id"`
	Stock    float64        `json:"stock"`
}

// NewService wires an inventory service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (in RecordMovementInput) validate() error {
	fields := pkgerrors.FieldErrors{}
	if !in.ItemType.IsValid() {
		fields.Add("item_type", "must be one of: input, product")
	}
	if in.ItemID == uuid.Nil {
		fields.Add("item_id", "must be a valid UUID")
	}
	if in.Qty.IsZero() {
		fields.Add("qty", "Quantity cannot be zero")
	}
	if !in.Reason.IsValid() {
		fields.Add("reason", "must be one of: purchase, sale, production_consume, adjustment, wastage")
	}
	return fields.Err()
}

func (s *service) RecordMovement(ctx context.Context, input RecordMovementInput) (*MovementDTO, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	movement := &models.InventoryMovement{
		ItemType:      input.ItemType,
		ItemID:        input.ItemID,
		LocationID:    input.LocationID,
		Qty:           input.Qty,
		Reason:        input.Reason,
		ReferenceText: input.ReferenceText,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.Create(ctx, movement); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert inventory movement")
	}

	dto := newMovementDTO(movement)
	return &dto, nil
}

func newMovementDTO(m *models.InventoryMovement) MovementDTO {
	return MovementDTO{
		ID:            m.ID,
		ItemType:      m.ItemType,
		ItemID:        m.ItemID,
		LocationID:    m.LocationID,
		Qty:           m.Qty.InexactFloat64(),
		Reason:        m.Reason,
		ReferenceText: m.ReferenceText,
		CreatedAt:     m.CreatedAt,
	}
}

func (s *service) ListMovements(ctx context.Context, params ListMovementsParams) (*MovementPage, error) {
	if params.ItemType != nil && !params.ItemType.IsValid() {
		return nil, pkgerrors.Validation(map[string]string{"item_type": "must be one of: input, product"})
	}

	query := listParams{ItemType: params.ItemType, ItemID: params.ItemID, Limit: params.Limit}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Validation error").
				WithDetails(map[string]string{"cursor": "is invalid"})
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list inventory movements")
	}

	page := &MovementPage{Items: make([]MovementDTO, 0, len(rows))}
	for i := range rows {
		page.Items = append(page.Items, newMovementDTO(&rows[i]))
	}
	if next != nil {
		page.NextCursor = pagination.EncodeCursor(*next)
	}
	return page, nil
}

func (s *service) StockSummary(ctx context.Context) ([]StockDTO, error) {
	rows, err := s.repo.SumByItem(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum inventory movements")
	}
	out := make([]StockDTO, 0, len(rows))
	for _, row := range rows {
		stock, _ := costing.ParseNumericOrZero(row.Stock)
		out = append(out, StockDTO{ItemType: row.ItemType, ItemID: row.ItemID, Stock: stock.InexactFloat64()})
	}
	return out, nil
}

func (s *service) StockFor(ctx context.Context, itemType enums.ItemType, itemIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	rows, err := s.repo.SumForItems(ctx, itemType, itemIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum inventory movements")
	}
	out := make(map[uuid.UUID]decimal.Decimal, len(itemIDs))
	for _, id := range itemIDs {
		out[id] = decimal.Zero
	}
	for _, row := range rows {
		stock, _ := costing.ParseNumericOrZero(row.Stock)
		out[row.ItemID] = stock
	}
	return out, nil
}
