package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/costlab-backend/api/controllers"
	"github.com/angelmondragon/costlab-backend/api/middleware"
	"github.com/angelmondragon/costlab-backend/api/responses"
	"github.com/angelmondragon/costlab-backend/internal/campaigns"
	"github.com/angelmondragon/costlab-backend/internal/costing"
	"github.com/angelmondragon/costlab-backend/internal/dashboard"
	"github.com/angelmondragon/costlab-backend/internal/inputs"
	"github.com/angelmondragon/costlab-backend/internal/inventory"
	"github.com/angelmondragon/costlab-backend/internal/production"
	"github.com/angelmondragon/costlab-backend/internal/products"
	"github.com/angelmondragon/costlab-backend/pkg/config"
	"github.com/angelmondragon/costlab-backend/pkg/db"
	"github.com/angelmondragon/costlab-backend/pkg/logger"
	"github.com/angelmondragon/costlab-backend/pkg/metrics"
	"github.com/angelmondragon/costlab-backend/pkg/redis"
)

// Services bundles the domain services the HTTP surface dispatches to.
type Services struct {
	Products   products.Service
	Inputs     inputs.Service
	Inventory  inventory.Service
	Costing    costing.Service
	Dashboard  dashboard.Service
	Campaigns  campaigns.Service
	Production production.Service
}

// NewRouter wires middleware and every route. redisClient may be nil, in
// which case idempotency keys are ignored and readiness skips redis.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	svc Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.HTTP.CORSAllowedOrigins),
	)

	var idempotencyStore redis.IdempotencyStore
	readyDeps := map[string]controllers.Pinger{"database": dbP}
	if redisClient != nil {
		idempotencyStore = redisClient
		readyDeps["redis"] = redisClient
	}
	r.Use(middleware.Idempotency(idempotencyStore, cfg.HTTP.IdempotencyTTL, logg))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteRouteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteRouteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", controllers.Health())
	r.Get("/health/ready", controllers.HealthReady(logg, readyDeps))
	r.Handle("/metrics", httpMetrics.Handler())

	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(svc.Products, logg))
		r.Post("/", controllers.CreateProduct(svc.Products, logg))
		r.Patch("/{id}", controllers.UpdateProduct(svc.Products, logg))
		r.Delete("/{id}", controllers.DeleteProduct(svc.Products, logg))
		r.Post("/{id}/bom", controllers.ReplaceProductBOM(svc.Products, logg))
		r.Get("/{id}/full", controllers.GetProductFull(svc.Products, logg))
		r.Get("/{id}/ad-costs", controllers.ListAdCosts(svc.Campaigns, logg))
		r.Post("/{id}/ad-costs", controllers.CreateAdCost(svc.Campaigns, logg))
		r.Get("/{id}/production-batches", controllers.ListProductionBatches(svc.Production, logg))
		r.Post("/{id}/production-batches", controllers.RecordProductionBatch(svc.Production, logg))
	})

	r.Route("/inputs", func(r chi.Router) {
		r.Get("/", controllers.ListInputs(svc.Inputs, logg))
		r.Post("/", controllers.CreateInput(svc.Inputs, logg))
		r.Patch("/{id}", controllers.UpdateInput(svc.Inputs, logg))
		r.Delete("/{id}", controllers.DeleteInput(svc.Inputs, logg))
		r.Post("/{id}/cost", controllers.AddInputCost(svc.Inputs, logg))
		r.Get("/{id}/costs", controllers.ListInputCosts(svc.Inputs, logg))
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/movements", controllers.ListMovements(svc.Inventory, logg))
		r.Post("/movements", controllers.RecordMovement(svc.Inventory, logg))
		r.Get("/summary", controllers.InventorySummary(svc.Inventory, logg))
	})

	r.Get("/costing/products/{id}", controllers.ProductCosting(svc.Costing, logg))
	r.Get("/dashboard/kpis", controllers.DashboardKPIs(svc.Dashboard, logg))

	return r
}
