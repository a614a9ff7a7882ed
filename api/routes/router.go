package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/rflink-backend/api/controllers"
	"github.com/angelmondragon/rflink-backend/api/middleware"
	"github.com/angelmondragon/rflink-backend/internal/catalog"
	"github.com/angelmondragon/rflink-backend/internal/quote"
	"github.com/angelmondragon/rflink-backend/pkg/config"
	"github.com/angelmondragon/rflink-backend/pkg/logger"
)

// Dependencies bundles what the router hands to controllers.
type Dependencies struct {
	DB             controllers.Pinger
	Redis          controllers.Pinger
	Quote          quote.Service
	Catalog        catalog.Service
	MetricsHandler http.Handler
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Recoverer(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/pricing", func(r chi.Router) {
		r.Post("/quote", controllers.PricingQuote(deps.Quote, logg))
		r.Post("/cart-line", controllers.PricingCartLine(deps.Quote, logg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products/{productID}/options", controllers.CatalogOptions(deps.Quote, logg))
		r.Put("/products/{productID}", controllers.CatalogUpsertProduct(deps.Catalog, logg))
		r.Delete("/products/{productID}", controllers.CatalogDeleteProduct(deps.Catalog, logg))
		r.Put("/cable-types", controllers.CatalogUpsertCableTypes(deps.Catalog, logg))
	})

	return r
}
