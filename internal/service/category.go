package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/karstlund/vendhub/internal/domain"
	"github.com/karstlund/vendhub/internal/repository"
)

// CategoryResolver resolves a category name to a category row.
type CategoryResolver interface {
	// Resolve returns the category for the given name. A miss recovers to a
	// statically cached default rather than failing the submission.
	Resolve(ctx context.Context, name string) (domain.Category, error)
}

// DefaultCategories mirror the rows seeded by the initial migration. They are
// the fallback pool when a submitted category name has no catalog row.
var DefaultCategories = []domain.Category{
	{ID: mustUUID("a0000000-0000-4000-8000-000000000001"), Name: "General"},
	{ID: mustUUID("a0000000-0000-4000-8000-000000000002"), Name: "Apparel"},
	{ID: mustUUID("a0000000-0000-4000-8000-000000000003"), Name: "Electronics"},
	{ID: mustUUID("a0000000-0000-4000-8000-000000000004"), Name: "Food & Beverage"},
	{ID: mustUUID("a0000000-0000-4000-8000-000000000005"), Name: "Home & Living"},
}

type categoryResolver struct {
	repo     repository.Querier
	defaults []domain.Category
	logger   *slog.Logger
}

// NewCategoryResolver creates a repository-backed resolver with the static
// default fallback list.
func NewCategoryResolver(repo repository.Querier, logger *slog.Logger) CategoryResolver {
	return &categoryResolver{
		repo:     repo,
		defaults: DefaultCategories,
		logger:   logger,
	}
}

// Resolve looks the name up in storage; a miss falls back to a default
// category (name match first, then "General"). It never aborts a submission.
func (r *categoryResolver) Resolve(ctx context.Context, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)

	category, err := r.repo.GetCategoryByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Category{}, domain.Internal(err, "category.resolve", "failed to resolve category")
	}

	for _, fallback := range r.defaults {
		if strings.EqualFold(fallback.Name, name) {
			return fallback, nil
		}
	}

	r.logger.Warn("category not found, using default", "category", name)
	return r.defaults[0], nil
}

func mustUUID(s string) pgtype.UUID {
	var id pgtype.UUID
	if err := id.Scan(s); err != nil {
		panic(err)
	}
	return id
}
