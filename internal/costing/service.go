package costing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/costlab-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
)

// Service computes product costs from BOMs, cost history and ad spend.
type Service interface {
	ComputeProductCosting(ctx context.Context, productID uuid.UUID) (*ProductCosting, error)
	// MaterialLines returns a product's BOM with each input's current cost.
	MaterialLines(ctx context.Context, productID uuid.UUID) ([]BOMRow, error)
	// MaterialCosts returns the per-unit material cost of each product.
	MaterialCosts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
}

type service struct {
	repo Repository
}

// NewService wires a costing service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("costing repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ComputeProductCosting(ctx context.Context, productID uuid.UUID) (*ProductCosting, error) {
	product, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	rows, err := s.MaterialLines(ctx, productID)
	if err != nil {
		return nil, err
	}
	lines := make([]MaterialLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row.Line)
	}

	campaigns, err := s.repo.ListCampaigns(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load campaigns")
	}
	batches, err := s.repo.ListBatches(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load production batches")
	}

	breakdown := Compute(lines, campaigns, batches)
	return &ProductCosting{
		ProductID:   product.ID,
		ProductSKU:  product.SKU,
		ProductName: product.Name,
		Breakdown:   breakdown,
	}, nil
}

func (s *service) MaterialLines(ctx context.Context, productID uuid.UUID) ([]BOMRow, error) {
	byProduct, err := s.linesFor(ctx, []uuid.UUID{productID})
	if err != nil {
		return nil, err
	}
	rows := byProduct[productID]
	if rows == nil {
		rows = []BOMRow{}
	}
	return rows, nil
}

func (s *service) MaterialCosts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	byProduct, err := s.linesFor(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]decimal.Decimal, len(productIDs))
	for _, id := range productIDs {
		rows := byProduct[id]
		lines := make([]MaterialLine, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, row.Line)
		}
		out[id] = SumMaterialCost(lines)
	}
	return out, nil
}

// linesFor loads BOM rows for the products and attaches current costs.
func (s *service) linesFor(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]BOMRow, error) {
	rows, err := s.repo.ListBOMRows(ctx, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load bill of materials")
	}

	inputIDs := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.Line.InputID]; ok {
			continue
		}
		seen[row.Line.InputID] = struct{}{}
		inputIDs = append(inputIDs, row.Line.InputID)
	}

	history, err := s.repo.ListCostHistory(ctx, inputIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cost history")
	}
	current := CurrentCosts(history)

	out := make(map[uuid.UUID][]BOMRow)
	for _, row := range rows {
		if rec, ok := current[row.Line.InputID]; ok {
			rec := rec
			row.Line.Cost = &rec
		}
		out[row.ProductID] = append(out[row.ProductID], row)
	}
	return out, nil
}
