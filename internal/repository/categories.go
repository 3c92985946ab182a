package repository

import (
	"context"

	"github.com/karstlund/vendhub/internal/domain"
)

const getCategoryByName = `
SELECT id, name FROM categories WHERE name = $1
`

// GetCategoryByName resolves a category by its normalized name.
func (q *Queries) GetCategoryByName(ctx context.Context, name string) (domain.Category, error) {
	var c domain.Category
	err := q.db.QueryRow(ctx, getCategoryByName, name).Scan(&c.ID, &c.Name)
	return c, err
}

const listCategories = `
SELECT id, name FROM categories ORDER BY name
`

// ListCategories returns all categories.
func (q *Queries) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
