package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/costlab-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
)

// Service logs manufactured units. Batches feed the per-unit ad allocation.
type Service interface {
	Record(ctx context.Context, productID uuid.UUID, input RecordBatchInput) (*BatchDTO, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]BatchDTO, error)
}

// RecordBatchInput is one production run. CreatedAt defaults to now.
type RecordBatchInput struct {
	QuantityProduced decimal.Decimal
	CreatedAt        *time.Time
}

type BatchDTO struct {
	ID               uuid.UUID `json:"id"`
	ProductID        uuid.UUID `json:"product_id"`
	QuantityProduced float64   `json:"quantity_produced"`
	CreatedAt        time.Time `json:"created_at"`
}

func newBatchDTO(m *models.ProductionBatch) BatchDTO {
	return BatchDTO{
		ID:               m.ID,
		ProductID:        m.ProductID,
		QuantityProduced: m.QuantityProduced.InexactFloat64(),
		CreatedAt:        m.CreatedAt.UTC(),
	}
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires a production service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("production repository required")
	}
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) Record(ctx context.Context, productID uuid.UUID, input RecordBatchInput) (*BatchDTO, error) {
	if !input.QuantityProduced.IsPositive() {
		return nil, pkgerrors.Validation(map[string]string{"quantity_produced": "Must be greater than zero"})
	}
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	createdAt := s.now()
	if input.CreatedAt != nil {
		createdAt = input.CreatedAt.UTC()
	}
	record := &models.ProductionBatch{
		ProductID:        productID,
		QuantityProduced: input.QuantityProduced,
		CreatedAt:        createdAt,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert production batch")
	}
	dto := newBatchDTO(record)
	return &dto, nil
}

func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]BatchDTO, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list production batches")
	}
	out := make([]BatchDTO, 0, len(rows))
	for i := range rows {
		out = append(out, newBatchDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) ensureProduct(ctx context.Context, productID uuid.UUID) error {
	ok, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check product")
	}
	if !ok {
		return pkgerrors.NotFound("Product")
	}
	return nil
}
