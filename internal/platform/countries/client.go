// Package countries talks to the restcountries.com style directory endpoint.
package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
)

// Client fetches the country/currency directory over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ensure Client implements portssvc.CountrySource
var _ portssvc.CountrySource = (*Client)(nil)

type countryEntry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
}

// ListCountries returns all countries that have at least one currency,
// sorted by country name.
func (c *Client) ListCountries(ctx context.Context) ([]portssvc.Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build countries request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: countries provider unreachable: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: countries provider returned status %d", apperrors.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var entries []countryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: malformed countries response: %v", apperrors.ErrUpstreamUnavailable, err)
	}

	countries := make([]portssvc.Country, 0, len(entries))
	for _, e := range entries {
		if len(e.Currencies) == 0 {
			continue
		}
		codes := make([]string, 0, len(e.Currencies))
		for code := range e.Currencies {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		countries = append(countries, portssvc.Country{Name: e.Name.Common, Currencies: codes})
	}
	sort.Slice(countries, func(i, j int) bool { return countries[i].Name < countries[j].Name })
	return countries, nil
}
