package countries_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/platform/countries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCountries_FiltersAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name":{"common":"Switzerland"},"currencies":{"CHF":{"name":"Swiss franc","symbol":"Fr."}}},
			{"name":{"common":"Antarctica"},"currencies":{}},
			{"name":{"common":"France"},"currencies":{"EUR":{"name":"Euro","symbol":"€"}}}
		]`))
	}))
	defer srv.Close()

	client := countries.NewClient(srv.URL, 5*time.Second)
	got, err := client.ListCountries(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2) // Antarctica has no currency
	assert.Equal(t, "France", got[0].Name)
	assert.Equal(t, []string{"EUR"}, got[0].Currencies)
	assert.Equal(t, "Switzerland", got[1].Name)
	assert.Equal(t, []string{"CHF"}, got[1].Currencies)
}

func TestListCountries_Non2xxIsUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := countries.NewClient(srv.URL, 5*time.Second)
	_, err := client.ListCountries(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}
