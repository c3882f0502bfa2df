package forumpay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := New(server.URL, "user", "secret", "test-agent", "en", zap.NewNop())
	return client, server
}

func TestGetRateSendsQueryParameters(t *testing.T) {
	var query map[string]string

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/GetRate", r.URL.Path)

		user, secret, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "user", user)
		assert.Equal(t, "secret", secret)

		query = map[string]string{}
		for name := range r.URL.Query() {
			query[name] = r.URL.Query().Get(name)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"currency":"BTC","rate":"64000.00","amount":"0.0015625"}`))
	})
	defer server.Close()

	response, err := client.GetRate(context.Background(), RateRequest{
		PosID:                   "shop-1",
		InvoiceCurrency:         "USD",
		InvoiceAmount:           "100",
		Currency:                "BTC",
		AcceptZeroConfirmations: true,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"pos_id":                    "shop-1",
		"invoice_currency":          "USD",
		"invoice_amount":            "100",
		"currency":                  "BTC",
		"accept_zero_confirmations": "true",
	}, query)

	assert.Equal(t, "64000.00", response.Rate)
	assert.Equal(t, "0.0015625", response.Amount)
}

func TestStartPaymentOmitsEmptyKycPin(t *testing.T) {
	var query url.Values

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"payment_id":"P1","address":"bc1qaddress"}`))
	})
	defer server.Close()

	response, err := client.StartPayment(context.Background(), StartPaymentRequest{
		PosID:           "shop-1",
		InvoiceCurrency: "USD",
		InvoiceAmount:   "100",
		Currency:        "BTC",
		ReferenceNo:     "o1",
	})
	require.NoError(t, err)

	assert.Equal(t, "P1", response.PaymentID)
	assert.NotContains(t, query, "kyc_pin")
	assert.Equal(t, "false", query.Get("auto_accept_underpayment"))
	assert.Equal(t, "o1", query.Get("reference_no"))
}

func TestCallReturnsAPIError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"err":"KYC verification required","error_code":"payerKYCNeeded"}`))
	})
	defer server.Close()

	_, err := client.StartPayment(context.Background(), StartPaymentRequest{PosID: "shop-1"})
	require.Error(t, err)

	apiErr := &APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "StartPayment", apiErr.Op)
	assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
	assert.Equal(t, ErrCodePayerKYCNeeded, apiErr.ErrorCode)
	assert.Equal(t, "KYC verification required", apiErr.Message)
	assert.True(t, apiErr.IsKycNeeded())
	assert.True(t, apiErr.IsPayerError())
}

func TestCallHandlesNonJSONErrorBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})
	defer server.Close()

	_, err := client.GetCurrencyList(context.Background(), "USD")
	require.Error(t, err)

	apiErr := &APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.HTTPStatus)
	assert.Empty(t, apiErr.ErrorCode)
	assert.NotEmpty(t, apiErr.Message)
}
