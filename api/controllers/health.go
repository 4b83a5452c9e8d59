package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/costlab-backend/api/responses"
	"github.com/angelmondragon/costlab-backend/pkg/logger"
	"github.com/angelmondragon/costlab-backend/pkg/types"
)

const readinessTimeout = 2 * time.Second

// Pinger is a dependency that can report its own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, types.HealthStatus{Status: "ok", Time: time.Now().UTC()})
	}
}

// HealthReady pings each named dependency. Nil pingers are skipped so an
// unconfigured redis does not fail readiness.
func HealthReady(logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := types.HealthStatus{Status: "ok", Time: time.Now().UTC(), Checks: map[string]string{}}
		code := http.StatusOK
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "health.dependency_failed", err)
				}
				status.Checks[name] = "error"
				status.Status = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			status.Checks[name] = "ok"
		}
		responses.WriteSuccessStatus(w, code, status)
	}
}
