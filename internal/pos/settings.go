package pos

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/karstlund/vendhub/internal/domain"
	"github.com/karstlund/vendhub/internal/repository"
	"github.com/karstlund/vendhub/internal/tax"
)

// SettingsProvider loads a seller's POS configuration. Callers read once per
// POS session and refresh only on an explicit save.
type SettingsProvider struct {
	repo repository.Querier
}

// NewSettingsProvider creates a repository-backed settings provider.
func NewSettingsProvider(repo repository.Querier) *SettingsProvider {
	return &SettingsProvider{repo: repo}
}

// Load returns the seller's saved settings. A seller who never saved gets
// tax-disabled cash-only defaults.
func (p *SettingsProvider) Load(ctx context.Context, sellerID string) (domain.SellerSettings, error) {
	var id = pgUUID(sellerID)

	settings, err := p.repo.GetSellerSettings(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SellerSettings{
				SellerID:   id,
				TaxLabel:   "Tax",
				AcceptCash: true,
			}, nil
		}
		return domain.SellerSettings{}, domain.Internal(err, "pos.settings", "failed to load seller settings")
	}
	return settings, nil
}

// TaxConfig maps seller settings onto the tax calculator's configuration.
func TaxConfig(s domain.SellerSettings) tax.Config {
	return tax.Config{
		EnableTax:          s.EnableTax,
		Rate:               decimal.NewFromFloat(s.TaxRate),
		TaxIncludedInPrice: s.TaxIncludedInPrice,
	}
}
