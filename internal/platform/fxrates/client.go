// Package fxrates talks to the exchangerate-api.com style rate endpoint.
package fxrates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Client fetches exchange rate tables over HTTP. The upstream endpoint is
// expected to serve GET {baseURL}/{BASE_CODE} with a JSON body containing a
// "rates" object.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ensure Client implements portssvc.RateSource
var _ portssvc.RateSource = (*Client)(nil)

type ratesResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRates returns the rate table for the given base currency. Any
// transport failure or non-2xx response maps to apperrors.ErrUpstreamUnavailable.
func (c *Client) FetchRates(ctx context.Context, baseCurrencyCode string) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, strings.ToUpper(baseCurrencyCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: rate provider unreachable: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: rate provider returned status %d", apperrors.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: malformed rate response: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("%w: rate response contained no rates", apperrors.ErrUpstreamUnavailable)
	}
	return body.Rates, nil
}
