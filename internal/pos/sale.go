package pos

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/karstlund/vendhub/internal/domain"
)

// Sale is the finished-cart snapshot handed to the order flow.
type Sale struct {
	SaleID        string     `json:"sale_id"`
	SellerID      string     `json:"seller_id"`
	Lines         []CartLine `json:"lines"`
	SubtotalCents int64      `json:"subtotal_cents"`
	TaxCents      int64      `json:"tax_cents"`
	TotalCents    int64      `json:"total_cents"`
	PaymentMethod string     `json:"payment_method"`
	CompletedAt   time.Time  `json:"completed_at"`
}

// SaleCompleter hands a finished sale to the downstream order pipeline.
// A non-nil error leaves the cart intact so the terminal can retry.
type SaleCompleter interface {
	Complete(ctx context.Context, sale Sale) error
}

// LogSaleCompleter records completed sales to the application log only.
// Used when no message broker is configured.
type LogSaleCompleter struct {
	Logger *slog.Logger
}

// Complete implements SaleCompleter.
func (c *LogSaleCompleter) Complete(_ context.Context, sale Sale) error {
	c.Logger.Info("sale completed",
		"sale_id", sale.SaleID,
		"seller_id", sale.SellerID,
		"lines", len(sale.Lines),
		"total_cents", sale.TotalCents,
		"payment_method", sale.PaymentMethod,
	)
	return nil
}

// NATSSaleCompleter publishes completed sales to a NATS subject for the order
// pipeline. Unlike scan logging this publish is confirmed with a flush: a sale
// that the broker never saw must fail so the cart survives.
type NATSSaleCompleter struct {
	conn    *nats.Conn
	subject string
	timeout time.Duration
}

// NewNATSSaleCompleter creates a completer over an existing NATS connection.
func NewNATSSaleCompleter(conn *nats.Conn, subject string) *NATSSaleCompleter {
	if subject == "" {
		subject = "pos.sales"
	}
	return &NATSSaleCompleter{conn: conn, subject: subject, timeout: 5 * time.Second}
}

// Complete implements SaleCompleter.
func (c *NATSSaleCompleter) Complete(_ context.Context, sale Sale) error {
	data, err := json.Marshal(sale)
	if err != nil {
		return domain.Internal(err, "pos.sale", "failed to encode sale")
	}

	if err := c.conn.Publish(c.subject, data); err != nil {
		return domain.Internal(err, "pos.sale", "failed to publish sale")
	}
	if err := c.conn.FlushTimeout(c.timeout); err != nil {
		return domain.Internal(err, "pos.sale", "sale publish not confirmed")
	}
	return nil
}
