package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateSource is the external exchange-rate collaborator. It is treated as
// untrusted and unreliable: implementations must apply a request timeout and
// classify failures as apperrors.ErrUpstreamUnavailable (unreachable or
// non-success status) so callers can decide whether to retry.
type RateSource interface {
	// FetchRates returns the rate table for the given base currency,
	// mapping target currency codes to their rates.
	FetchRates(ctx context.Context, baseCurrencyCode string) (map[string]decimal.Decimal, error)
}

// Country is one entry of the country/currency directory.
type Country struct {
	Name       string   `json:"name"`
	Currencies []string `json:"currencies"`
}

// CountrySource is the external country/currency directory collaborator.
type CountrySource interface {
	// ListCountries returns all countries that have at least one currency.
	ListCountries(ctx context.Context) ([]Country, error)
}

// ReceiptData is what the OCR extractor could read off a receipt image.
// Amount is nil when no plausible amount was found.
type ReceiptData struct {
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	RawText    string           `json:"rawText"`
	Confidence float64          `json:"confidence"`
}

// ReceiptExtractor is the external OCR collaborator used to enrich an
// expense from a receipt image.
type ReceiptExtractor interface {
	// ExtractReceipt reads the image at the given path and returns whatever
	// it could extract.
	ExtractReceipt(ctx context.Context, imagePath string) (*ReceiptData, error)
}
