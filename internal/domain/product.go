package domain

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// =============================================================================
// CATALOG DOMAIN TYPES
// =============================================================================

// ApprovalStatus represents the QA lifecycle state of a product.
// Products are created pending; later transitions are owned by the external
// QA review workflow.
type ApprovalStatus string

const (
	ApprovalStatusPending      ApprovalStatus = "pending"
	ApprovalStatusApproved     ApprovalStatus = "approved"
	ApprovalStatusRejected     ApprovalStatus = "rejected"
	ApprovalStatusReclassified ApprovalStatus = "reclassified"
)

// OptionSentinel marks an unused option dimension on a variant.
const OptionSentinel = "-"

// Product represents a seller's catalog listing.
type Product struct {
	ID             pgtype.UUID
	SellerID       pgtype.UUID
	CategoryID     pgtype.UUID
	Name           string
	Description    pgtype.Text
	PriceCents     int64
	ApprovalStatus ApprovalStatus

	// Variant dimension labels, e.g. "Color" / "Size". Null when the seller
	// never enabled the variant system.
	VariantLabel1 pgtype.Text
	VariantLabel2 pgtype.Text

	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
	DisabledAt pgtype.Timestamptz
	DeletedAt  pgtype.Timestamptz
}

// Variant represents a persisted, sellable variant row. Created once at
// submission; thereafter mutated only by direct price/stock patches, never
// regenerated from option sets.
type Variant struct {
	ID        pgtype.UUID
	ProductID pgtype.UUID

	// SKU is globally unique; the first 8 hex characters are the owning
	// product's id prefix.
	SKU string

	Option1Value pgtype.Text
	Option2Value pgtype.Text

	PriceCents   int64
	Stock        int32
	VariantName  string
	Barcode      pgtype.Text
	ThumbnailURL pgtype.Text

	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// ProductImage represents an image attached to a product. URL must match
// ^https?:// — local file and data URIs never reach durable storage.
type ProductImage struct {
	ID        pgtype.UUID
	ProductID pgtype.UUID
	ImageURL  string
	SortOrder int32
	IsPrimary bool
	CreatedAt pgtype.Timestamptz
}

// AssessmentStatusPendingDigitalReview is the status every freshly submitted
// product's assessment row carries.
const AssessmentStatusPendingDigitalReview = "pending_digital_review"

// QAAssessment is the single quality-review record gating a product's
// buyer-facing visibility. One row per product (UNIQUE product_id).
type QAAssessment struct {
	ID          pgtype.UUID
	ProductID   pgtype.UUID
	Status      string
	SubmittedAt pgtype.Timestamptz
	CreatedBy   pgtype.UUID
}

// Category is a normalized catalog category. Category names arriving from the
// data-access boundary are always plain strings; any object-shaped payloads
// are flattened before they reach the engine.
type Category struct {
	ID   pgtype.UUID
	Name string
}

// SellerSettings holds the POS configuration a seller saves explicitly.
// Read once per POS session, refreshed only on explicit save.
type SellerSettings struct {
	SellerID           pgtype.UUID
	EnableTax          bool
	TaxRate            float64 // percentage, e.g. 12 for 12%
	TaxIncludedInPrice bool
	TaxLabel           string
	AcceptCash         bool
	AcceptCard         bool
}

// Product-specific errors.
var (
	ErrProductNotFound  = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrVariantNotFound  = &Error{Code: ENOTFOUND, Message: "Variant not found"}
	ErrCategoryNotFound = &Error{Code: ENOTFOUND, Message: "Category not found"}

	ErrDuplicateSKU = &Error{Code: ECONFLICT, Message: "SKU code already exists"}
)
