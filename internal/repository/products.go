package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/karstlund/vendhub/internal/domain"
)

// CreateProductParams contains parameters for inserting a product row.
type CreateProductParams struct {
	ID             pgtype.UUID
	SellerID       pgtype.UUID
	CategoryID     pgtype.UUID
	Name           string
	Description    pgtype.Text
	PriceCents     int64
	ApprovalStatus domain.ApprovalStatus
	VariantLabel1  pgtype.Text
	VariantLabel2  pgtype.Text
}

const createProduct = `
INSERT INTO products (id, seller_id, category_id, name, description, price_cents, approval_status, variant_label1, variant_label2)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, seller_id, category_id, name, description, price_cents, approval_status,
          variant_label1, variant_label2, created_at, updated_at, disabled_at, deleted_at
`

// CreateProduct inserts a product row and returns it.
func (q *Queries) CreateProduct(ctx context.Context, params CreateProductParams) (domain.Product, error) {
	row := q.db.QueryRow(ctx, createProduct,
		params.ID,
		params.SellerID,
		params.CategoryID,
		params.Name,
		params.Description,
		params.PriceCents,
		params.ApprovalStatus,
		params.VariantLabel1,
		params.VariantLabel2,
	)
	return scanProduct(row)
}

const getProductByID = `
SELECT id, seller_id, category_id, name, description, price_cents, approval_status,
       variant_label1, variant_label2, created_at, updated_at, disabled_at, deleted_at
FROM products
WHERE id = $1 AND deleted_at IS NULL
`

// GetProductByID retrieves a product by id, excluding soft-deleted rows.
func (q *Queries) GetProductByID(ctx context.Context, id pgtype.UUID) (domain.Product, error) {
	return scanProduct(q.db.QueryRow(ctx, getProductByID, id))
}

const deleteProduct = `
DELETE FROM products WHERE id = $1
`

// DeleteProduct hard-deletes a product row. Used only by submission rollback;
// seller-initiated removal goes through the soft-delete markers instead.
func (q *Queries) DeleteProduct(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, deleteProduct, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.SellerID,
		&p.CategoryID,
		&p.Name,
		&p.Description,
		&p.PriceCents,
		&p.ApprovalStatus,
		&p.VariantLabel1,
		&p.VariantLabel2,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DisabledAt,
		&p.DeletedAt,
	)
	return p, err
}
