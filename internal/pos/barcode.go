package pos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/karstlund/vendhub/internal/domain"
	"github.com/karstlund/vendhub/internal/repository"
	"github.com/karstlund/vendhub/internal/telemetry"
)

// Resolution is the outcome of one barcode lookup. An unresolved scan is not
// an error; the caller offers quick product creation instead.
type Resolution struct {
	Found          bool
	ProductID      string
	VariantID      string
	Color          string
	Size           string
	Name           string
	UnitPriceCents int64
	Stock          int32
	HasVariants    bool
}

// BarcodeResolver resolves a scanned code to a product/variant for the cart
// engine. Implementations must be side-effect-free and fast; the resolver is
// invoked synchronously in a scan loop.
type BarcodeResolver interface {
	Lookup(ctx context.Context, sellerID, code string) (*Resolution, error)
}

type storageResolver struct {
	repo    repository.Querier
	scans   ScanLogger
	metrics *telemetry.Metrics
}

// NewBarcodeResolver creates the storage-backed resolver. Scan outcomes go to
// the fire-and-forget log sink and never block or fail the lookup.
func NewBarcodeResolver(repo repository.Querier, scans ScanLogger, metrics *telemetry.Metrics) BarcodeResolver {
	return &storageResolver{repo: repo, scans: scans, metrics: metrics}
}

// Lookup implements BarcodeResolver.
func (r *storageResolver) Lookup(ctx context.Context, sellerID, code string) (*Resolution, error) {
	row, err := r.repo.LookupBarcode(ctx, repository.LookupBarcodeParams{
		SellerID: pgUUID(sellerID),
		Code:     code,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.scans.LogScan(sellerID, code, false)
			r.metrics.ScansUnresolved.WithLabelValues(sellerID).Inc()
			return &Resolution{Found: false}, nil
		}
		return nil, domain.Internal(err, "pos.barcode", "barcode lookup failed")
	}

	r.scans.LogScan(sellerID, code, true)
	r.metrics.ScansResolved.WithLabelValues(sellerID).Inc()

	return &Resolution{
		Found:          true,
		ProductID:      uuidString(row.ProductID),
		VariantID:      uuidString(row.VariantID),
		Color:          row.Option1Value.String,
		Size:           row.Option2Value.String,
		Name:           row.ProductName,
		UnitPriceCents: row.PriceCents,
		Stock:          row.Stock,
		HasVariants:    row.HasVariants,
	}, nil
}

func pgUUID(s string) pgtype.UUID {
	var id pgtype.UUID
	_ = id.Scan(s)
	return id
}

func uuidString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}
