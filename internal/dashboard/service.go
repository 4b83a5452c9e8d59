// Package dashboard computes the KPI rollups shown on the landing page.
// Every call recomputes from the store; nothing is cached.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/costlab-backend/internal/costing"
	"github.com/angelmondragon/costlab-backend/internal/inventory"
	"github.com/angelmondragon/costlab-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
)

const (
	adCostWindowDays = 30
	topProductsLimit = 5
)

type Service interface {
	KPIs(ctx context.Context) (*KPIs, error)
}

type CriticalInput struct {
	ID           uuid.UUID `json:"id"`
	SKU          *string   `json:"sku"`
	Name         string    `json:"name"`
	ReorderPoint float64   `json:"reorder_point"`
	Stock        float64   `json:"stock"`
}

type TopProduct struct {
	ID           uuid.UUID `json:"id"`
	SKU          *string   `json:"sku"`
	Name         string    `json:"name"`
	MaterialCost float64   `json:"material_cost"`
}

type KPIs struct {
	TotalActiveProducts        int64           `json:"total_active_products"`
	TotalActiveInputs          int64           `json:"total_active_inputs"`
	CriticalInputsBelowReorder []CriticalInput `json:"critical_inputs_below_reorder"`
	AdCostLast30Days           float64         `json:"ad_cost_last_30_days"`
	TopProductsByMaterialCost  []TopProduct    `json:"top_products_by_material_cost"`
}

type service struct {
	repo      Repository
	inventory inventory.Service
	costing   costing.Service
	now       func() time.Time
}

// NewService wires the dashboard over its repository and the stock and
// costing services it reuses.
func NewService(repo Repository, inventorySvc inventory.Service, costingSvc costing.Service) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	if inventorySvc == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	if costingSvc == nil {
		return nil, fmt.Errorf("costing service required")
	}
	return &service{
		repo:      repo,
		inventory: inventorySvc,
		costing:   costingSvc,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) KPIs(ctx context.Context) (*KPIs, error) {
	out := &KPIs{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.CountActiveProducts(gctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count active products")
		}
		out.TotalActiveProducts = n
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.CountActiveInputs(gctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count active inputs")
		}
		out.TotalActiveInputs = n
		return nil
	})
	g.Go(func() error {
		critical, err := s.criticalInputs(gctx)
		if err != nil {
			return err
		}
		out.CriticalInputsBelowReorder = critical
		return nil
	})
	g.Go(func() error {
		total, err := s.adCostLastWindow(gctx)
		if err != nil {
			return err
		}
		out.AdCostLast30Days = total.InexactFloat64()
		return nil
	})
	g.Go(func() error {
		top, err := s.topProducts(gctx)
		if err != nil {
			return err
		}
		out.TopProductsByMaterialCost = top
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// criticalInputs returns active critical inputs whose stock is at or below
// their reorder point, lowest stock first.
func (s *service) criticalInputs(ctx context.Context) ([]CriticalInput, error) {
	inputs, err := s.repo.ListCriticalInputs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list critical inputs")
	}
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ID)
	}
	stock, err := s.inventory.StockFor(ctx, enums.ItemTypeInput, ids)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		row   CriticalInput
		stock decimal.Decimal
	}
	var below []candidate
	for _, in := range inputs {
		level := stock[in.ID]
		if level.GreaterThan(in.ReorderPoint) {
			continue
		}
		below = append(below, candidate{
			row: CriticalInput{
				ID:           in.ID,
				SKU:          in.SKU,
				Name:         in.Name,
				ReorderPoint: in.ReorderPoint.InexactFloat64(),
				Stock:        level.InexactFloat64(),
			},
			stock: level,
		})
	}
	sort.SliceStable(below, func(i, j int) bool { return below[i].stock.LessThan(below[j].stock) })

	out := make([]CriticalInput, 0, len(below))
	for _, c := range below {
		out = append(out, c.row)
	}
	return out, nil
}

func (s *service) adCostLastWindow(ctx context.Context) (decimal.Decimal, error) {
	today := costing.DateOf(s.now())
	from := today.AddDate(0, 0, -adCostWindowDays)
	raw, err := s.repo.SumAdCostEndingBetween(ctx, from, today)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum ad costs")
	}
	total, _ := costing.ParseNumericOrZero(raw)
	return total, nil
}

// topProducts ranks active products by material cost per unit.
func (s *service) topProducts(ctx context.Context) ([]TopProduct, error) {
	products, err := s.repo.ListActiveProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list active products")
	}
	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	costs, err := s.costing.MaterialCosts(ctx, ids)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(products, func(i, j int) bool {
		return costs[products[i].ID].GreaterThan(costs[products[j].ID])
	})
	if len(products) > topProductsLimit {
		products = products[:topProductsLimit]
	}

	out := make([]TopProduct, 0, len(products))
	for _, p := range products {
		out = append(out, TopProduct{
			ID:           p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			MaterialCost: costs[p.ID].InexactFloat64(),
		})
	}
	return out, nil
}
