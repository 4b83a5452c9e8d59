package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/costlab-backend/api/responses"
	"github.com/angelmondragon/costlab-backend/api/validators"
	"github.com/angelmondragon/costlab-backend/internal/campaigns"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
	"github.com/angelmondragon/costlab-backend/pkg/logger"
)

func CreateAdCost(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createAdCostRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		campaign, err := svc.Create(r.Context(), productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, campaign)
	}
}

func ListAdCosts(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
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

type createAdCostRequest struct {
	CampaignName  string           `json:"campaign_name" validate:"required"`
	SocialNetwork *string          `json:"social_network"`
	CampaignStart string           `json:"campaign_start" validate:"required"`
	CampaignEnd   string           `json:"campaign_end" validate:"required"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	Notes         *string          `json:"notes"`
}

func (r createAdCostRequest) toInput() (campaigns.CreateCampaignInput, error) {
	fields := pkgerrors.FieldErrors{}
	start, ok := validators.ParseDate(r.CampaignStart)
	if !ok {
		fields.Add("campaign_start", "must be a date in YYYY-MM-DD format")
	}
	end, ok := validators.ParseDate(r.CampaignEnd)
	if !ok {
		fields.Add("campaign_end", "must be a date in YYYY-MM-DD format")
	}
	if err := fields.Err(); err != nil {
		return campaigns.CreateCampaignInput{}, err
	}
	return campaigns.CreateCampaignInput{
		CampaignName:  validators.SanitizeString(r.CampaignName, 0),
		SocialNetwork: validators.SanitizeOptional(r.SocialNetwork, 0),
		CampaignStart: start,
		CampaignEnd:   end,
		Amount:        *r.Amount,
		Notes:         r.Notes,
	}, nil
}
