package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/karstlund/vendhub/internal/catalog"
	"github.com/karstlund/vendhub/internal/domain"
	"github.com/karstlund/vendhub/internal/repository"
	"github.com/karstlund/vendhub/internal/telemetry"
)

// imageURLPattern is the durable-storage gate for image URIs. Local file
// URIs, data URIs, and blanks are on-device picker artifacts and never reach
// the database.
var imageURLPattern = regexp.MustCompile(`^https?://`)

// DefaultPlaceholderImageURL substitutes for a submission whose filtered
// image set came up empty.
const DefaultPlaceholderImageURL = "https://static.vendhub.io/placeholder/product.png"

// SubmitProductParams carries one catalog submission. Option values arrive
// already trimmed/deduplicated by the OptionValueStore instances that fed the
// edit session.
type SubmitProductParams struct {
	SellerID     string `validate:"required,uuid"`
	Name         string `validate:"required,max=200"`
	Description  string
	CategoryName string `validate:"required"`

	BasePriceCents int64 `validate:"gt=0"`

	// Raw image URIs of any shape; only ^https?:// survives filtering.
	ImageURIs []string

	// Variant system state. When VariantsEnabled is false the product gets a
	// single synthesized "Default" variant.
	VariantsEnabled bool
	VariantLabel1   string
	VariantLabel2   string
	Option1Values   []string
	Option2Values   []string
	Option2Active   bool
	EditCache       catalog.EditCache

	// BaseStock is the attribute-less inventory figure. A blank field is 0,
	// not "inherit".
	BaseStock int32 `validate:"gte=0"`

	SubmittedBy string `validate:"required,uuid"`
}

// SubmissionResult reports what one successful submission persisted.
type SubmissionResult struct {
	Product    domain.Product
	Variants   []domain.Variant
	Images     []domain.ProductImage
	TotalStock int32
}

// SubmissionService orchestrates category resolution, product insert, image
// filtering/insert, variant insert, and the idempotent QA-record upsert.
type SubmissionService interface {
	Submit(ctx context.Context, params SubmitProductParams) (*SubmissionResult, error)
}

type submissionService struct {
	repo       repository.Querier
	categories CategoryResolver
	allocator  *catalog.SKUAllocator
	validate   *validator.Validate
	metrics    *telemetry.Metrics
	logger     *slog.Logger

	placeholderImageURL string
}

// NewSubmissionService creates the submission coordinator. An empty
// placeholderImageURL selects the default placeholder.
func NewSubmissionService(
	repo repository.Querier,
	categories CategoryResolver,
	allocator *catalog.SKUAllocator,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
	placeholderImageURL string,
) SubmissionService {
	if placeholderImageURL == "" {
		placeholderImageURL = DefaultPlaceholderImageURL
	}
	return &submissionService{
		repo:                repo,
		categories:          categories,
		allocator:           allocator,
		validate:            validator.New(),
		metrics:             metrics,
		logger:              logger,
		placeholderImageURL: placeholderImageURL,
	}
}

// Submit runs the ordered submission steps, each awaited sequentially because
// later steps need the product id minted at insert and the rollback strategy
// requires a deterministic order. Any failure after the product insert
// deletes the product row and the image/variant rows already inserted before
// the error surfaces; no step retries automatically.
func (s *submissionService) Submit(ctx context.Context, params SubmitProductParams) (*SubmissionResult, error) {
	if err := s.validateParams(params); err != nil {
		return nil, err
	}

	productID := uuid.New()
	rows, err := s.buildVariantRows(productID.String(), params)
	if err != nil {
		return nil, err
	}

	totalStock := catalog.TotalStock(0, rows)
	if totalStock <= 0 {
		return nil, domain.NewValidationError("submission.submit", "stock", "Total stock must be greater than 0")
	}

	// Step 1: category resolution; misses recover to a cached default.
	category, err := s.categories.Resolve(ctx, params.CategoryName)
	if err != nil {
		s.metrics.SubmissionFailures.WithLabelValues(params.SellerID, "category").Inc()
		return nil, err
	}

	// Step 2: product insert, approval pending.
	product, err := s.insertProduct(ctx, productID, category, params)
	if err != nil {
		s.metrics.SubmissionFailures.WithLabelValues(params.SellerID, "product").Inc()
		return nil, mapStorageError(err, "submission.product")
	}

	// Step 3: image filtering and insert.
	images, err := s.insertImages(ctx, product.ID, params.ImageURIs)
	if err != nil {
		s.metrics.SubmissionFailures.WithLabelValues(params.SellerID, "images").Inc()
		return nil, s.rollback(ctx, product.ID, params.SellerID, mapStorageError(err, "submission.images"))
	}

	// Step 4: variant insert.
	variants, err := s.insertVariants(ctx, product.ID, rows)
	if err != nil {
		s.metrics.SubmissionFailures.WithLabelValues(params.SellerID, "variants").Inc()
		return nil, s.rollback(ctx, product.ID, params.SellerID, mapStorageError(err, "submission.variants"))
	}
	s.metrics.VariantsCreated.WithLabelValues(params.SellerID).Add(float64(len(variants)))

	// Step 5: idempotent QA-record upsert; a repeat call is a no-op.
	createdBy := pgUUID(params.SubmittedBy)
	err = s.repo.UpsertAssessment(ctx, repository.UpsertAssessmentParams{
		ProductID: product.ID,
		Status:    domain.AssessmentStatusPendingDigitalReview,
		CreatedBy: createdBy,
	})
	if err != nil {
		s.metrics.SubmissionFailures.WithLabelValues(params.SellerID, "assessment").Inc()
		return nil, s.rollback(ctx, product.ID, params.SellerID, mapStorageError(err, "submission.assessment"))
	}

	s.metrics.ProductsSubmitted.WithLabelValues(params.SellerID).Inc()
	s.logger.Info("product submitted",
		"product_id", productID.String(),
		"seller_id", params.SellerID,
		"variants", len(variants),
		"total_stock", totalStock,
	)

	return &SubmissionResult{
		Product:    product,
		Variants:   variants,
		Images:     images,
		TotalStock: totalStock,
	}, nil
}

func (s *submissionService) validateParams(params SubmitProductParams) error {
	if err := s.validate.Struct(params); err != nil {
		var ve validator.ValidationErrors
		fields := map[string]string{}
		if ok := asValidationErrors(err, &ve); ok {
			for _, fe := range ve {
				fields[strings.ToLower(fe.Field())] = validationMessage(fe)
			}
		} else {
			fields["params"] = "invalid submission"
		}
		return &domain.ValidationError{Op: "submission.validate", Fields: fields}
	}
	return nil
}

// buildVariantRows turns the option sets into insert-ready rows: composer
// drafts with final SKUs, plus the hidden base variant when base stock was
// entered, or the single synthesized "Default" row when the variant system
// was never enabled (or produced no drafts).
func (s *submissionService) buildVariantRows(productID string, params SubmitProductParams) ([]catalog.VariantRow, error) {
	taken := make(map[string]struct{})

	if !params.VariantsEnabled {
		return s.defaultRow(productID, params, taken)
	}

	drafts := catalog.Generate(catalog.GenerateParams{
		Option1Values:  params.Option1Values,
		Option2Values:  params.Option2Values,
		Option2Active:  params.Option2Active,
		Cache:          params.EditCache,
		BasePriceCents: params.BasePriceCents,
		NamePrefix:     params.Name,
	})
	if len(drafts) == 0 {
		return s.defaultRow(productID, params, taken)
	}

	rows := make([]catalog.VariantRow, 0, len(drafts)+1)

	// The base variant claims its SKU first so draft allocation steers
	// around it.
	if base, ok := catalog.SynthesizeBase(productID, params.Name, params.BasePriceCents, params.BaseStock, true); ok {
		taken[base.SKU] = struct{}{}
		rows = append(rows, base)
	}

	var invalid error
	for _, draft := range drafts {
		if draft.Stock == nil {
			invalid = domain.AddFieldError(invalid, "variants."+draft.Key, "Stock is required")
			continue
		}
		if *draft.Stock < 0 {
			invalid = domain.AddFieldError(invalid, "variants."+draft.Key, "Stock must not be negative")
			continue
		}
		if draft.PriceCents < 0 {
			invalid = domain.AddFieldError(invalid, "variants."+draft.Key, "Price must not be negative")
			continue
		}

		sku, err := s.allocator.FinalSKU(productID, draft.SKU, draft.Key, taken)
		if err != nil {
			return nil, domain.Conflict("submission.sku", err.Error())
		}

		rows = append(rows, catalog.VariantRow{
			SKU:         sku,
			Option1:     draft.Option1,
			Option2:     draft.Option2,
			PriceCents:  draft.PriceCents,
			Stock:       *draft.Stock,
			VariantName: variantName(draft),
			ImageURL:    draft.ImageURL,
		})
	}
	if invalid != nil {
		return nil, invalid
	}

	return rows, nil
}

// defaultRow synthesizes the single "Default" variant for products whose
// variant UI was never enabled. Its SKU still carries the product-id prefix,
// so two products sharing a name get distinct SKUs.
func (s *submissionService) defaultRow(productID string, params SubmitProductParams, taken map[string]struct{}) ([]catalog.VariantRow, error) {
	draft := catalog.DraftSKU(params.Name, domain.OptionSentinel, domain.OptionSentinel)
	sku, err := s.allocator.FinalSKU(productID, draft, "default", taken)
	if err != nil {
		return nil, domain.Conflict("submission.sku", err.Error())
	}

	return []catalog.VariantRow{{
		SKU:         sku,
		Option1:     domain.OptionSentinel,
		Option2:     domain.OptionSentinel,
		PriceCents:  params.BasePriceCents,
		Stock:       params.BaseStock,
		VariantName: "Default",
	}}, nil
}

func (s *submissionService) insertProduct(ctx context.Context, productID uuid.UUID, category domain.Category, params SubmitProductParams) (domain.Product, error) {
	return s.repo.CreateProduct(ctx, repository.CreateProductParams{
		ID:             pgUUID(productID.String()),
		SellerID:       pgUUID(params.SellerID),
		CategoryID:     category.ID,
		Name:           params.Name,
		Description:    pgText(params.Description),
		PriceCents:     params.BasePriceCents,
		ApprovalStatus: domain.ApprovalStatusPending,
		VariantLabel1:  pgTextIf(params.VariantsEnabled, params.VariantLabel1),
		VariantLabel2:  pgTextIf(params.VariantsEnabled && params.Option2Active, params.VariantLabel2),
	})
}

// insertImages filters the raw URIs to durable URLs, substitutes exactly one
// placeholder when nothing survives, and inserts rows with sequential sort
// order; only sort_order 0 is primary.
func (s *submissionService) insertImages(ctx context.Context, productID pgtype.UUID, uris []string) ([]domain.ProductImage, error) {
	urls := FilterImageURLs(uris)
	if len(urls) == 0 {
		urls = []string{s.placeholderImageURL}
	}

	images := make([]domain.ProductImage, 0, len(urls))
	for i, url := range urls {
		img, err := s.repo.CreateProductImage(ctx, repository.CreateProductImageParams{
			ProductID: productID,
			ImageURL:  url,
			SortOrder: int32(i),
			IsPrimary: i == 0,
		})
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func (s *submissionService) insertVariants(ctx context.Context, productID pgtype.UUID, rows []catalog.VariantRow) ([]domain.Variant, error) {
	variants := make([]domain.Variant, 0, len(rows))
	for _, row := range rows {
		v, err := s.repo.CreateVariant(ctx, repository.CreateVariantParams{
			ProductID:    productID,
			SKU:          row.SKU,
			Option1Value: pgText(optionOrNull(row.Option1)),
			Option2Value: pgText(optionOrNull(row.Option2)),
			PriceCents:   row.PriceCents,
			Stock:        row.Stock,
			VariantName:  row.VariantName,
			ThumbnailURL: pgText(row.ImageURL),
		})
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, nil
}

// rollback deletes the product row and any children already inserted, then
// returns the original error. Rollback runs only on an observed failure;
// caller abandonment alone leaves completed inserts in place.
func (s *submissionService) rollback(ctx context.Context, productID pgtype.UUID, sellerID string, cause error) error {
	s.metrics.SubmissionRollbacks.WithLabelValues(sellerID).Inc()

	if err := s.repo.DeleteVariants(ctx, productID); err != nil {
		s.logger.Error("rollback: failed to delete variants", "product_id", uuidString(productID), "error", err)
	}
	if err := s.repo.DeleteProductImages(ctx, productID); err != nil {
		s.logger.Error("rollback: failed to delete images", "product_id", uuidString(productID), "error", err)
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		s.logger.Error("rollback: failed to delete product", "product_id", uuidString(productID), "error", err)
	}

	s.logger.Warn("submission rolled back", "product_id", uuidString(productID), "error", cause)
	return cause
}

// FilterImageURLs keeps only URIs that may reach durable storage.
func FilterImageURLs(uris []string) []string {
	var urls []string
	for _, uri := range uris {
		uri = strings.TrimSpace(uri)
		if uri == "" {
			continue
		}
		if imageURLPattern.MatchString(uri) {
			urls = append(urls, uri)
		}
	}
	return urls
}

// mapStorageError translates storage failures into domain errors.
// Constraint violations become retryable conflicts; everything else is
// internal.
func mapStorageError(err error, op string) error {
	switch {
	case repository.IsUniqueViolation(err):
		return &domain.Error{Code: domain.ECONFLICT, Op: op, Message: "A SKU in this submission already exists, please retry", Err: err}
	case repository.IsCheckViolation(err):
		return &domain.Error{Code: domain.ECONFLICT, Op: op, Message: fmt.Sprintf("Storage rejected the submission (constraint %s)", repository.ConstraintName(err)), Err: err}
	default:
		return domain.Internal(err, op, "submission failed")
	}
}

func variantName(draft catalog.VariantDraft) string {
	if draft.Option2 == domain.OptionSentinel {
		return draft.Option1
	}
	return fmt.Sprintf("%s / %s", draft.Option1, draft.Option2)
}

func optionOrNull(v string) string {
	if v == domain.OptionSentinel {
		return ""
	}
	return v
}
