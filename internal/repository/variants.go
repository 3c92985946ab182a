package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/karstlund/vendhub/internal/domain"
)

// CreateVariantParams contains parameters for inserting a variant row.
type CreateVariantParams struct {
	ProductID    pgtype.UUID
	SKU          string
	Option1Value pgtype.Text
	Option2Value pgtype.Text
	PriceCents   int64
	Stock        int32
	VariantName  string
	Barcode      pgtype.Text
	ThumbnailURL pgtype.Text
}

const createVariant = `
INSERT INTO product_variants (product_id, sku, option1_value, option2_value, price_cents, stock, variant_name, barcode, thumbnail_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, product_id, sku, option1_value, option2_value, price_cents, stock,
          variant_name, barcode, thumbnail_url, created_at, updated_at
`

// CreateVariant inserts a variant row. The sku UNIQUE constraint is the
// authoritative guard against cross-submission collisions; callers map the
// unique violation to a domain conflict.
func (q *Queries) CreateVariant(ctx context.Context, params CreateVariantParams) (domain.Variant, error) {
	row := q.db.QueryRow(ctx, createVariant,
		params.ProductID,
		params.SKU,
		params.Option1Value,
		params.Option2Value,
		params.PriceCents,
		params.Stock,
		params.VariantName,
		params.Barcode,
		params.ThumbnailURL,
	)
	return scanVariant(row)
}

const getVariantsByProduct = `
SELECT id, product_id, sku, option1_value, option2_value, price_cents, stock,
       variant_name, barcode, thumbnail_url, created_at, updated_at
FROM product_variants
WHERE product_id = $1
ORDER BY created_at, id
`

// GetVariantsByProduct returns all variant rows for a product.
func (q *Queries) GetVariantsByProduct(ctx context.Context, productID pgtype.UUID) ([]domain.Variant, error) {
	rows, err := q.db.Query(ctx, getVariantsByProduct, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []domain.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

const deleteVariants = `
DELETE FROM product_variants WHERE product_id = $1
`

// DeleteVariants removes every variant row of a product (rollback path).
func (q *Queries) DeleteVariants(ctx context.Context, productID pgtype.UUID) error {
	_, err := q.db.Exec(ctx, deleteVariants, productID)
	return err
}

// UpdateVariantStockParams patches one variant's stock.
type UpdateVariantStockParams struct {
	ID    pgtype.UUID
	Stock int32
}

const updateVariantStock = `
UPDATE product_variants SET stock = $2, updated_at = now() WHERE id = $1
`

// UpdateVariantStock patches a variant's stock directly. Variant rows are
// never regenerated from option sets after submission.
func (q *Queries) UpdateVariantStock(ctx context.Context, params UpdateVariantStockParams) error {
	_, err := q.db.Exec(ctx, updateVariantStock, params.ID, params.Stock)
	return err
}

// UpdateVariantPriceParams patches one variant's price.
type UpdateVariantPriceParams struct {
	ID         pgtype.UUID
	PriceCents int64
}

const updateVariantPrice = `
UPDATE product_variants SET price_cents = $2, updated_at = now() WHERE id = $1
`

// UpdateVariantPrice patches a variant's price directly.
func (q *Queries) UpdateVariantPrice(ctx context.Context, params UpdateVariantPriceParams) error {
	_, err := q.db.Exec(ctx, updateVariantPrice, params.ID, params.PriceCents)
	return err
}

func scanVariant(row rowScanner) (domain.Variant, error) {
	var v domain.Variant
	err := row.Scan(
		&v.ID,
		&v.ProductID,
		&v.SKU,
		&v.Option1Value,
		&v.Option2Value,
		&v.PriceCents,
		&v.Stock,
		&v.VariantName,
		&v.Barcode,
		&v.ThumbnailURL,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}
