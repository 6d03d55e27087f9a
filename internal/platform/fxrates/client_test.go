package fxrates_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/platform/fxrates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRates_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.92,"GBP":0.79,"USD":1}}`))
	}))
	defer srv.Close()

	client := fxrates.NewClient(srv.URL, 5*time.Second)
	rates, err := client.FetchRates(context.Background(), "usd")

	require.NoError(t, err)
	require.Len(t, rates, 3)
	assert.Equal(t, "0.92", rates["EUR"].String())
	assert.Equal(t, "1", rates["USD"].String())
}

func TestFetchRates_Non2xxIsUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := fxrates.NewClient(srv.URL, 5*time.Second)
	_, err := client.FetchRates(context.Background(), "USD")

	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestFetchRates_UnreachableIsUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the address refuses connections

	client := fxrates.NewClient(srv.URL, time.Second)
	_, err := client.FetchRates(context.Background(), "USD")

	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestFetchRates_MalformedBodyIsUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := fxrates.NewClient(srv.URL, 5*time.Second)
	_, err := client.FetchRates(context.Background(), "USD")

	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}
