package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/karstlund/vendhub/internal/domain"
	"github.com/karstlund/vendhub/internal/repository"
)

// fakeQuerier is an in-memory Querier with per-call failure injection.
type fakeQuerier struct {
	products    map[string]domain.Product
	variants    map[string][]domain.Variant
	images      map[string][]domain.ProductImage
	assessments map[string]int
	categories  map[string]domain.Category
	settings    map[string]domain.SellerSettings
	barcodes    map[string]repository.BarcodeRow

	failCreateProduct error
	failCreateImage   error
	failCreateVariant error
	failUpsert        error

	// failVariantAfter fails CreateVariant once n inserts succeeded; -1
	// disables.
	failVariantAfter int
	variantInserts   int
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		products:         make(map[string]domain.Product),
		variants:         make(map[string][]domain.Variant),
		images:           make(map[string][]domain.ProductImage),
		assessments:      make(map[string]int),
		categories:       make(map[string]domain.Category),
		settings:         make(map[string]domain.SellerSettings),
		barcodes:         make(map[string]repository.BarcodeRow),
		failVariantAfter: -1,
	}
}

func uuidKey(id pgtype.UUID) string {
	return uuid.UUID(id.Bytes).String()
}

func (f *fakeQuerier) CreateProduct(_ context.Context, params repository.CreateProductParams) (domain.Product, error) {
	if f.failCreateProduct != nil {
		return domain.Product{}, f.failCreateProduct
	}
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	p := domain.Product{
		ID:             params.ID,
		SellerID:       params.SellerID,
		CategoryID:     params.CategoryID,
		Name:           params.Name,
		Description:    params.Description,
		PriceCents:     params.PriceCents,
		ApprovalStatus: params.ApprovalStatus,
		VariantLabel1:  params.VariantLabel1,
		VariantLabel2:  params.VariantLabel2,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.products[uuidKey(params.ID)] = p
	return p, nil
}

func (f *fakeQuerier) GetProductByID(_ context.Context, id pgtype.UUID) (domain.Product, error) {
	p, ok := f.products[uuidKey(id)]
	if !ok {
		return domain.Product{}, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakeQuerier) DeleteProduct(_ context.Context, id pgtype.UUID) error {
	delete(f.products, uuidKey(id))
	return nil
}

func (f *fakeQuerier) CreateProductImage(_ context.Context, params repository.CreateProductImageParams) (domain.ProductImage, error) {
	if f.failCreateImage != nil {
		return domain.ProductImage{}, f.failCreateImage
	}
	img := domain.ProductImage{
		ID:        newPgUUID(),
		ProductID: params.ProductID,
		ImageURL:  params.ImageURL,
		SortOrder: params.SortOrder,
		IsPrimary: params.IsPrimary,
		CreatedAt: pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	key := uuidKey(params.ProductID)
	f.images[key] = append(f.images[key], img)
	return img, nil
}

func (f *fakeQuerier) DeleteProductImages(_ context.Context, productID pgtype.UUID) error {
	delete(f.images, uuidKey(productID))
	return nil
}

func (f *fakeQuerier) CreateVariant(_ context.Context, params repository.CreateVariantParams) (domain.Variant, error) {
	if f.failCreateVariant != nil {
		return domain.Variant{}, f.failCreateVariant
	}
	if f.failVariantAfter >= 0 && f.variantInserts >= f.failVariantAfter {
		return domain.Variant{}, pgx.ErrTxClosed
	}
	f.variantInserts++

	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	v := domain.Variant{
		ID:           newPgUUID(),
		ProductID:    params.ProductID,
		SKU:          params.SKU,
		Option1Value: params.Option1Value,
		Option2Value: params.Option2Value,
		PriceCents:   params.PriceCents,
		Stock:        params.Stock,
		VariantName:  params.VariantName,
		Barcode:      params.Barcode,
		ThumbnailURL: params.ThumbnailURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	key := uuidKey(params.ProductID)
	f.variants[key] = append(f.variants[key], v)
	return v, nil
}

func (f *fakeQuerier) GetVariantsByProduct(_ context.Context, productID pgtype.UUID) ([]domain.Variant, error) {
	return f.variants[uuidKey(productID)], nil
}

func (f *fakeQuerier) DeleteVariants(_ context.Context, productID pgtype.UUID) error {
	delete(f.variants, uuidKey(productID))
	return nil
}

func (f *fakeQuerier) UpdateVariantStock(context.Context, repository.UpdateVariantStockParams) error {
	return nil
}

func (f *fakeQuerier) UpdateVariantPrice(context.Context, repository.UpdateVariantPriceParams) error {
	return nil
}

func (f *fakeQuerier) UpsertAssessment(_ context.Context, params repository.UpsertAssessmentParams) error {
	if f.failUpsert != nil {
		return f.failUpsert
	}
	key := uuidKey(params.ProductID)
	// ON CONFLICT DO NOTHING: a repeat upsert never adds a row.
	if _, ok := f.assessments[key]; !ok {
		f.assessments[key] = 1
	}
	return nil
}

func (f *fakeQuerier) CountAssessmentsByProduct(_ context.Context, productID pgtype.UUID) (int64, error) {
	return int64(f.assessments[uuidKey(productID)]), nil
}

func (f *fakeQuerier) GetCategoryByName(_ context.Context, name string) (domain.Category, error) {
	c, ok := f.categories[name]
	if !ok {
		return domain.Category{}, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeQuerier) ListCategories(context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeQuerier) GetSellerSettings(_ context.Context, sellerID pgtype.UUID) (domain.SellerSettings, error) {
	s, ok := f.settings[uuidKey(sellerID)]
	if !ok {
		return domain.SellerSettings{}, pgx.ErrNoRows
	}
	return s, nil
}

func (f *fakeQuerier) LookupBarcode(_ context.Context, params repository.LookupBarcodeParams) (repository.BarcodeRow, error) {
	row, ok := f.barcodes[uuidKey(params.SellerID)+"|"+params.Code]
	if !ok {
		return repository.BarcodeRow{}, pgx.ErrNoRows
	}
	return row, nil
}

func newPgUUID() pgtype.UUID {
	var id pgtype.UUID
	_ = id.Scan(uuid.New().String())
	return id
}

var _ repository.Querier = (*fakeQuerier)(nil)
