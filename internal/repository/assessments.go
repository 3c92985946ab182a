package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// UpsertAssessmentParams contains parameters for the QA-record upsert.
type UpsertAssessmentParams struct {
	ProductID pgtype.UUID
	Status    string
	CreatedBy pgtype.UUID
}

const upsertAssessment = `
INSERT INTO product_assessments (product_id, status, submitted_at, created_by)
VALUES ($1, $2, now(), $3)
ON CONFLICT (product_id) DO NOTHING
`

// UpsertAssessment idempotently creates the single QA assessment row for a
// product. A second call for the same product is a no-op against the
// UNIQUE(product_id) constraint — not an error and not a duplicate row.
func (q *Queries) UpsertAssessment(ctx context.Context, params UpsertAssessmentParams) error {
	_, err := q.db.Exec(ctx, upsertAssessment, params.ProductID, params.Status, params.CreatedBy)
	return err
}

const countAssessmentsByProduct = `
SELECT count(*) FROM product_assessments WHERE product_id = $1
`

// CountAssessmentsByProduct reports how many assessment rows a product has.
func (q *Queries) CountAssessmentsByProduct(ctx context.Context, productID pgtype.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countAssessmentsByProduct, productID).Scan(&n)
	return n, err
}
