package inputs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/costlab-backend/pkg/db"
	"github.com/angelmondragon/costlab-backend/pkg/db/models"
	"github.com/angelmondragon/costlab-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
)

// Service exposes input catalog and cost history operations.
type Service interface {
	ListInputs(ctx context.Context, onlyActive bool) ([]InputDTO, error)
	CreateInput(ctx context.Context, input CreateInputInput) (*InputDTO, error)
	UpdateInput(ctx context.Context, inputID uuid.UUID, input UpdateInputInput) (*InputDTO, error)
	DeactivateInput(ctx context.Context, inputID uuid.UUID) (*InputDTO, error)
	AddCost(ctx context.Context, inputID uuid.UUID, input AddCostInput) (*CostDTO, error)
	ListCosts(ctx context.Context, inputID uuid.UUID) ([]CostDTO, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs an input service instance.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("input repository required")
	}
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) ListInputs(ctx context.Context, onlyActive bool) ([]InputDTO, error) {
	rows, err := s.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list inputs")
	}
	out := make([]InputDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewInputDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) CreateInput(ctx context.Context, input CreateInputInput) (*InputDTO, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	record := &models.Input{
		SKU:          input.SKU,
		Name:         input.Name,
		Unit:         input.Unit,
		ReorderPoint: decimal.Zero,
		Active:       true,
	}
	if input.IsCritical != nil {
		record.IsCritical = *input.IsCritical
	}
	if input.ReorderPoint != nil {
		record.ReorderPoint = *input.ReorderPoint
	}
	if input.Active != nil {
		record.Active = *input.Active
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert input")
	}
	return NewInputDTO(record), nil
}

func (s *service) UpdateInput(ctx context.Context, inputID uuid.UUID, input UpdateInputInput) (*InputDTO, error) {
	cols := input.Columns()
	if len(cols) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "No fields to update")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, inputID, cols); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Input")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update input")
	}
	return s.load(ctx, inputID)
}

// DeactivateInput soft-deletes the input; BOM lines referencing it keep working.
func (s *service) DeactivateInput(ctx context.Context, inputID uuid.UUID) (*InputDTO, error) {
	if err := s.repo.Deactivate(ctx, inputID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Input")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate input")
	}
	return s.load(ctx, inputID)
}

// AddCost appends to the input's cost history; earlier records are never touched.
func (s *service) AddCost(ctx context.Context, inputID uuid.UUID, input AddCostInput) (*CostDTO, error) {
	fields := pkgerrors.FieldErrors{}
	if input.CostPerUnit.IsNegative() {
		fields.Add("cost_per_unit", msgNonNegative)
	}
	currency := enums.CurrencyCLP
	if input.Currency != nil {
		parsed, err := enums.ParseCurrency(*input.Currency)
		if err != nil {
			fields.Add("currency", "must be a 3-letter currency code")
		}
		currency = parsed
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if _, err := s.load(ctx, inputID); err != nil {
		return nil, err
	}

	validFrom := s.now()
	if input.ValidFrom != nil {
		validFrom = input.ValidFrom.UTC()
	}

	record := &models.InputCost{
		InputID:     inputID,
		CostPerUnit: input.CostPerUnit,
		Currency:    currency.String(),
		ValidFrom:   validFrom,
	}
	if err := s.repo.CreateCost(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert input cost")
	}
	return NewCostDTO(record), nil
}

func (s *service) ListCosts(ctx context.Context, inputID uuid.UUID) ([]CostDTO, error) {
	if _, err := s.load(ctx, inputID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListCosts(ctx, inputID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list input costs")
	}
	out := make([]CostDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewCostDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) load(ctx context.Context, inputID uuid.UUID) (*InputDTO, error) {
	input, err := s.repo.FindByID(ctx, inputID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Input")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load input")
	}
	return NewInputDTO(input), nil
}
