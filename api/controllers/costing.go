package controllers

import (
	"net/http"

	"github.com/angelmondragon/costlab-backend/api/responses"
	"github.com/angelmondragon/costlab-backend/api/validators"
	"github.com/angelmondragon/costlab-backend/internal/costing"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
	"github.com/angelmondragon/costlab-backend/pkg/logger"
)

// ProductCosting returns material, advertising and total unit cost of a product.
func ProductCosting(svc costing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "costing service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ComputeProductCosting(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result.ToDTO())
	}
}
