package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/karstlund/vendhub/internal/domain"
)

// DBTX is the subset of pgx a query needs; satisfied by *pgxpool.Pool and
// pgx.Tx alike.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries is the PostgreSQL-backed implementation of Querier.
type Queries struct {
	db DBTX
}

// New creates a Queries instance over the given connection source.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Querier is the storage contract the services depend on. Tests substitute
// in-memory fakes.
type Querier interface {
	// Products
	CreateProduct(ctx context.Context, params CreateProductParams) (domain.Product, error)
	GetProductByID(ctx context.Context, id pgtype.UUID) (domain.Product, error)
	DeleteProduct(ctx context.Context, id pgtype.UUID) error

	// Images
	CreateProductImage(ctx context.Context, params CreateProductImageParams) (domain.ProductImage, error)
	DeleteProductImages(ctx context.Context, productID pgtype.UUID) error

	// Variants
	CreateVariant(ctx context.Context, params CreateVariantParams) (domain.Variant, error)
	GetVariantsByProduct(ctx context.Context, productID pgtype.UUID) ([]domain.Variant, error)
	DeleteVariants(ctx context.Context, productID pgtype.UUID) error
	UpdateVariantStock(ctx context.Context, params UpdateVariantStockParams) error
	UpdateVariantPrice(ctx context.Context, params UpdateVariantPriceParams) error

	// QA assessments
	UpsertAssessment(ctx context.Context, params UpsertAssessmentParams) error
	CountAssessmentsByProduct(ctx context.Context, productID pgtype.UUID) (int64, error)

	// Categories
	GetCategoryByName(ctx context.Context, name string) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// POS
	GetSellerSettings(ctx context.Context, sellerID pgtype.UUID) (domain.SellerSettings, error)
	LookupBarcode(ctx context.Context, params LookupBarcodeParams) (BarcodeRow, error)
}

// Compile-time check.
var _ Querier = (*Queries)(nil)
