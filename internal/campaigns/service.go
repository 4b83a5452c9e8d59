package campaigns

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/costlab-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
)

// Service records ad spend that the costing engine allocates per unit.
type Service interface {
	Create(ctx context.Context, productID uuid.UUID, input CreateCampaignInput) (*CampaignDTO, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]CampaignDTO, error)
}

type service struct {
	repo Repository
}

// NewService wires a campaign service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("campaign repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, productID uuid.UUID, input CreateCampaignInput) (*CampaignDTO, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	record := &models.AdCost{
		ProductID:     productID,
		CampaignName:  strings.TrimSpace(input.CampaignName),
		SocialNetwork: input.SocialNetwork,
		CampaignStart: input.CampaignStart.UTC(),
		CampaignEnd:   input.CampaignEnd.UTC(),
		Amount:        input.Amount,
		Notes:         input.Notes,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert ad cost")
	}
	return NewCampaignDTO(record), nil
}

func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]CampaignDTO, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list ad costs")
	}
	out := make([]CampaignDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewCampaignDTO(&rows[i]))
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
