package routes

import (
	"net/http"

	"github.com/karstlund/vendhub/internal/handler/api"
)

// APIDeps contains the handlers for the seller-facing API routes.
type APIDeps struct {
	Catalog *api.CatalogHandler
	POS     *api.POSHandler
	Health  *api.HealthHandler

	// Metrics is the Prometheus scrape endpoint handler.
	Metrics http.Handler
}
