package pos

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// ScanLogger records barcode scan outcomes on a side channel. Implementations
// must never block or fail the lookup path.
type ScanLogger interface {
	LogScan(sellerID, code string, found bool)
}

// NopScanLogger discards scan outcomes.
type NopScanLogger struct{}

// LogScan implements ScanLogger.
func (NopScanLogger) LogScan(string, string, bool) {}

type scanEvent struct {
	SellerID  string    `json:"seller_id"`
	Code      string    `json:"code"`
	Found     bool      `json:"found"`
	ScannedAt time.Time `json:"scanned_at"`
}

// NATSScanLogger publishes scan events to a NATS subject. Publish is
// buffered and asynchronous; a publish failure is logged at debug and
// otherwise dropped.
type NATSScanLogger struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewNATSScanLogger creates a scan logger over an existing NATS connection.
func NewNATSScanLogger(conn *nats.Conn, subject string, logger *slog.Logger) *NATSScanLogger {
	if subject == "" {
		subject = "pos.scans"
	}
	return &NATSScanLogger{conn: conn, subject: subject, logger: logger}
}

// LogScan implements ScanLogger.
func (l *NATSScanLogger) LogScan(sellerID, code string, found bool) {
	data, err := json.Marshal(scanEvent{
		SellerID:  sellerID,
		Code:      code,
		Found:     found,
		ScannedAt: time.Now().UTC(),
	})
	if err != nil {
		return
	}

	if err := l.conn.Publish(l.subject, data); err != nil {
		l.logger.Debug("scan log publish failed", "error", err)
	}
}
