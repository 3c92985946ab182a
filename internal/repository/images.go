package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/karstlund/vendhub/internal/domain"
)

// CreateProductImageParams contains parameters for inserting an image row.
type CreateProductImageParams struct {
	ProductID pgtype.UUID
	ImageURL  string
	SortOrder int32
	IsPrimary bool
}

const createProductImage = `
INSERT INTO product_images (product_id, image_url, sort_order, is_primary)
VALUES ($1, $2, $3, $4)
RETURNING id, product_id, image_url, sort_order, is_primary, created_at
`

// CreateProductImage inserts an image row. The image_url CHECK constraint
// backstops the client-side ^https?:// filter.
func (q *Queries) CreateProductImage(ctx context.Context, params CreateProductImageParams) (domain.ProductImage, error) {
	row := q.db.QueryRow(ctx, createProductImage,
		params.ProductID,
		params.ImageURL,
		params.SortOrder,
		params.IsPrimary,
	)

	var img domain.ProductImage
	err := row.Scan(
		&img.ID,
		&img.ProductID,
		&img.ImageURL,
		&img.SortOrder,
		&img.IsPrimary,
		&img.CreatedAt,
	)
	return img, err
}

const deleteProductImages = `
DELETE FROM product_images WHERE product_id = $1
`

// DeleteProductImages removes every image row of a product (rollback path).
func (q *Queries) DeleteProductImages(ctx context.Context, productID pgtype.UUID) error {
	_, err := q.db.Exec(ctx, deleteProductImages, productID)
	return err
}
