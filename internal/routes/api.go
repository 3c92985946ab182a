package routes

import (
	"net/http"

	"github.com/karstlund/vendhub/internal/router"
)

// RegisterAPIRoutes registers the seller app API: catalog submission, the POS
// scan/cart/sale flow, and operational probes.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Catalog
	r.Post("/api/products", deps.Catalog.SubmitProduct)

	// POS
	r.Get("/api/pos/barcode", deps.POS.LookupBarcode)
	r.Post("/api/pos/scan", deps.POS.Scan)
	r.Get("/api/pos/cart", deps.POS.GetCart)
	r.Delete("/api/pos/cart", deps.POS.ClearCart)
	r.Post("/api/pos/cart/lines", deps.POS.AddLine)
	r.Patch("/api/pos/cart/lines/{key}", deps.POS.UpdateLine)
	r.Delete("/api/pos/cart/lines/{key}", deps.POS.RemoveLine)
	r.Post("/api/pos/sale", deps.POS.CompleteSale)

	// Operational
	r.Get("/health", deps.Health.Health)
	r.Get("/ready", deps.Health.Ready)
	r.Handle(http.MethodGet, "/metrics", deps.Metrics)
}
