package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for catalog and POS observability.
// All metrics include a seller_id label for per-seller dashboards.
type Metrics struct {
	// Catalog submissions
	ProductsSubmitted    *prometheus.CounterVec
	SubmissionFailures   *prometheus.CounterVec
	SubmissionRollbacks  *prometheus.CounterVec
	VariantsCreated      *prometheus.CounterVec
	SKURetries           *prometheus.CounterVec

	// POS
	CartLinesAdded  *prometheus.CounterVec
	StockLimitHits  *prometheus.CounterVec
	SalesCompleted  *prometheus.CounterVec
	SaleValue       *prometheus.HistogramVec
	ScansResolved   *prometheus.CounterVec
	ScansUnresolved *prometheus.CounterVec
}

// NewMetrics creates and registers all engine metrics with the given
// registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "vendhub"
	}

	factory := promauto.With(reg)

	return &Metrics{
		ProductsSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "products_submitted_total",
				Help:      "Products successfully submitted for QA review",
			},
			[]string{"seller_id"},
		),
		SubmissionFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submission_failures_total",
				Help:      "Product submissions that failed, by failure stage",
			},
			[]string{"seller_id", "stage"},
		),
		SubmissionRollbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submission_rollbacks_total",
				Help:      "Partial submissions rolled back after a mid-flight failure",
			},
			[]string{"seller_id"},
		),
		VariantsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "variants_created_total",
				Help:      "Variant rows persisted at submission",
			},
			[]string{"seller_id"},
		),
		SKURetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sku_suffix_retries_total",
				Help:      "Within-product SKU collisions resolved by numeric suffix",
			},
			[]string{"seller_id"},
		),
		CartLinesAdded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pos_cart_lines_added_total",
				Help:      "Lines added to POS carts",
			},
			[]string{"seller_id"},
		),
		StockLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pos_stock_limit_hits_total",
				Help:      "Cart adds rejected by the per-variant stock snapshot",
			},
			[]string{"seller_id"},
		),
		SalesCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pos_sales_completed_total",
				Help:      "POS sales completed and carts cleared",
			},
			[]string{"seller_id"},
		),
		SaleValue: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pos_sale_value_cents",
				Help:      "Completed sale subtotal in cents",
				Buckets:   prometheus.ExponentialBuckets(100, 4, 10),
			},
			[]string{"seller_id"},
		),
		ScansResolved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pos_scans_resolved_total",
				Help:      "Barcode scans resolved to a product or variant",
			},
			[]string{"seller_id"},
		),
		ScansUnresolved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pos_scans_unresolved_total",
				Help:      "Barcode scans with no matching catalog entry",
			},
			[]string{"seller_id"},
		),
	}
}
