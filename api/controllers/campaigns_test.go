package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/costlab-backend/internal/campaigns"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
)

type stubCampaignService struct {
	created *campaigns.CreateCampaignInput
	err     error
}

func (s *stubCampaignService) Create(_ context.Context, productID uuid.UUID, input campaigns.CreateCampaignInput) (*campaigns.CampaignDTO, error) {
	s.created = &input
	if s.err != nil {
		return nil, s.err
	}
	return &campaigns.CampaignDTO{ID: uuid.New(), ProductID: productID, CampaignName: input.CampaignName}, nil
}

func (s *stubCampaignService) ListByProduct(context.Context, uuid.UUID) ([]campaigns.CampaignDTO, error) {
	return []campaigns.CampaignDTO{}, s.err
}

func TestCreateAdCost(t *testing.T) {
	svc := &stubCampaignService{}
	id := uuid.New().String()
	payload := `{"campaign_name":" Spring ","social_network":"instagram","campaign_start":"2026-03-01","campaign_end":"2026-03-31","amount":"150.50"}`

	rec := serve(CreateAdCost(svc, testLogger()), http.MethodPost, "/products/"+id+"/ad-costs", payload, map[string]string{"id": id})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "Spring", svc.created.CampaignName)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), svc.created.CampaignStart)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), svc.created.CampaignEnd)
	assert.Equal(t, "150.5", svc.created.Amount.String())
}

func TestCreateAdCostBadDates(t *testing.T) {
	svc := &stubCampaignService{}
	id := uuid.New().String()
	payload := `{"campaign_name":"Spring","campaign_start":"03/01/2026","campaign_end":"2026-13-01","amount":10}`

	rec := serve(CreateAdCost(svc, testLogger()), http.MethodPost, "/products/"+id+"/ad-costs", payload, map[string]string{"id": id})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	details := decodeError(t, rec).Details
	assert.Equal(t, "must be a date in YYYY-MM-DD format", details["campaign_start"])
	assert.Equal(t, "must be a date in YYYY-MM-DD format", details["campaign_end"])
	assert.Nil(t, svc.created)
}

func TestCreateAdCostMissingProduct(t *testing.T) {
	svc := &stubCampaignService{err: pkgerrors.NotFound("Product")}
	id := uuid.New().String()
	payload := `{"campaign_name":"Spring","campaign_start":"2026-03-01","campaign_end":"2026-03-02","amount":1}`

	rec := serve(CreateAdCost(svc, testLogger()), http.MethodPost, "/products/"+id+"/ad-costs", payload, map[string]string{"id": id})

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decodeError(t, rec).Error)
}

func TestListAdCostsInvalidID(t *testing.T) {
	rec := serve(ListAdCosts(&stubCampaignService{}, testLogger()), http.MethodGet, "/products/x/ad-costs", "", map[string]string{"id": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
