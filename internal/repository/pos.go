package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/karstlund/vendhub/internal/domain"
)

const getSellerSettings = `
SELECT seller_id, enable_tax, tax_rate, tax_included_in_price, tax_label, accept_cash, accept_card
FROM seller_settings
WHERE seller_id = $1
`

// GetSellerSettings loads a seller's saved POS configuration.
func (q *Queries) GetSellerSettings(ctx context.Context, sellerID pgtype.UUID) (domain.SellerSettings, error) {
	var s domain.SellerSettings
	err := q.db.QueryRow(ctx, getSellerSettings, sellerID).Scan(
		&s.SellerID,
		&s.EnableTax,
		&s.TaxRate,
		&s.TaxIncludedInPrice,
		&s.TaxLabel,
		&s.AcceptCash,
		&s.AcceptCard,
	)
	return s, err
}

// LookupBarcodeParams scopes a barcode lookup to one seller.
type LookupBarcodeParams struct {
	SellerID pgtype.UUID
	Code     string
}

// BarcodeRow is the joined product/variant row a scan resolves to.
type BarcodeRow struct {
	ProductID    pgtype.UUID
	VariantID    pgtype.UUID
	ProductName  string
	Option1Value pgtype.Text
	Option2Value pgtype.Text
	PriceCents   int64
	Stock        int32
	HasVariants  bool
}

const lookupBarcode = `
SELECT p.id, v.id, p.name, v.option1_value, v.option2_value, v.price_cents, v.stock,
       (p.variant_label1 IS NOT NULL) AS has_variants
FROM product_variants v
JOIN products p ON p.id = v.product_id
WHERE p.seller_id = $1 AND v.barcode = $2 AND p.deleted_at IS NULL
LIMIT 1
`

// LookupBarcode resolves a scanned code to a product/variant pair. Read-only;
// scan-outcome logging happens on a separate fire-and-forget channel.
func (q *Queries) LookupBarcode(ctx context.Context, params LookupBarcodeParams) (BarcodeRow, error) {
	var r BarcodeRow
	err := q.db.QueryRow(ctx, lookupBarcode, params.SellerID, params.Code).Scan(
		&r.ProductID,
		&r.VariantID,
		&r.ProductName,
		&r.Option1Value,
		&r.Option2Value,
		&r.PriceCents,
		&r.Stock,
		&r.HasVariants,
	)
	return r, err
}
