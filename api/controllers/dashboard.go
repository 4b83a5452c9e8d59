package controllers

import (
	"net/http"

	"github.com/angelmondragon/costlab-backend/api/responses"
	"github.com/angelmondragon/costlab-backend/internal/dashboard"
	pkgerrors "github.com/angelmondragon/costlab-backend/pkg/errors"
	"github.com/angelmondragon/costlab-backend/pkg/logger"
)

func DashboardKPIs(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		kpis, err := svc.KPIs(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, kpis)
	}
}
