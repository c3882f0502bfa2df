package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/amelchenko/forumpay-gateway/internal/forumpay"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cancelCall struct {
	posID       string
	currency    string
	paymentID   string
	address     string
	reason      string
	description string
}

type fakePaymentAPI struct {
	rateRequest   *forumpay.RateRequest
	startRequest  *forumpay.StartPaymentRequest
	startResponse *forumpay.StartPaymentResponse
	checkResponse *forumpay.CheckPaymentResponse
	invoices      []forumpay.TransactionInvoice
	checkCalls    int
	cancels       []cancelCall
	kycEmail      string
}

func (f *fakePaymentAPI) GetCurrencyList(_ context.Context, _ string) (*forumpay.CurrencyListResponse, error) {
	return &forumpay.CurrencyListResponse{}, nil
}

func (f *fakePaymentAPI) GetRate(_ context.Context, req forumpay.RateRequest) (*forumpay.RateResponse, error) {
	f.rateRequest = &req
	return &forumpay.RateResponse{}, nil
}

func (f *fakePaymentAPI) StartPayment(_ context.Context, req forumpay.StartPaymentRequest) (*forumpay.StartPaymentResponse, error) {
	f.startRequest = &req
	return f.startResponse, nil
}

func (f *fakePaymentAPI) CheckPayment(_ context.Context, _, _, _, _ string) (*forumpay.CheckPaymentResponse, error) {
	f.checkCalls++
	return f.checkResponse, nil
}

func (f *fakePaymentAPI) CancelPayment(_ context.Context, posID, currency, paymentID, address, reason, description string) error {
	f.cancels = append(f.cancels, cancelCall{posID, currency, paymentID, address, reason, description})
	return nil
}

func (f *fakePaymentAPI) GetTransactions(_ context.Context, _ string) (*forumpay.TransactionsResponse, error) {
	return &forumpay.TransactionsResponse{Invoices: f.invoices}, nil
}

func (f *fakePaymentAPI) RequestKyc(_ context.Context, email string) (*forumpay.RequestKycResponse, error) {
	f.kycEmail = email
	return &forumpay.RequestKycResponse{Status: "OK"}, nil
}

type metadataSave struct {
	key    string
	unique bool
}

type statusUpdate struct {
	status         string
	paymentID      string
	completedState string
}

type fakeOrders struct {
	currency   string
	total      decimal.Decimal
	email      string
	customerID string
	ip         string
	metadata   map[string][]json.RawMessage
	saves      []metadataSave
	updates    []statusUpdate
}

func (f *fakeOrders) Currency(_ context.Context, _ string) (string, error) {
	return f.currency, nil
}

func (f *fakeOrders) Total(_ context.Context, _ string) (decimal.Decimal, error) {
	return f.total, nil
}

func (f *fakeOrders) CustomerEmail(_ context.Context, _ string) (string, error) {
	return f.email, nil
}

func (f *fakeOrders) CustomerID(_ context.Context, _ string) (string, error) {
	return f.customerID, nil
}

func (f *fakeOrders) CustomerIP(_ context.Context, _ string) (string, error) {
	return f.ip, nil
}

func (f *fakeOrders) UpdateOrderStatus(_ context.Context, _, status, paymentID, completedState string) error {
	f.updates = append(f.updates, statusUpdate{status, paymentID, completedState})
	return nil
}

func (f *fakeOrders) Metadata(_ context.Context, _, key string) ([]json.RawMessage, error) {
	return f.metadata[key], nil
}

func (f *fakeOrders) SaveMetadata(_ context.Context, _, key string, value interface{}, unique bool) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if f.metadata == nil {
		f.metadata = map[string][]json.RawMessage{}
	}

	if unique {
		f.metadata[key] = []json.RawMessage{raw}
	} else {
		f.metadata[key] = append(f.metadata[key], raw)
	}

	f.saves = append(f.saves, metadataSave{key: key, unique: unique})
	return nil
}

func withStartPaymentMetadata(orders *fakeOrders, paymentID, currency, address string) {
	raw, _ := json.Marshal(forumpay.StartPaymentResponse{
		PaymentID: paymentID,
		Currency:  currency,
		Address:   address,
	})

	if orders.metadata == nil {
		orders.metadata = map[string][]json.RawMessage{}
	}
	orders.metadata[metaKeyStartPayment] = append(orders.metadata[metaKeyStartPayment], raw)
}

func TestRateAlwaysRequestsZeroConfirmations(t *testing.T) {
	api := &fakePaymentAPI{}
	orders := &fakeOrders{currency: "USD", total: decimal.RequireFromString("100.5")}

	service := NewPaymentService(api, orders, PaymentConfig{
		PosID:                   "shop-1",
		AcceptZeroConfirmations: false,
	})

	_, err := service.Rate(context.Background(), "o1", "BTC")
	require.NoError(t, err)

	require.NotNil(t, api.rateRequest)
	assert.Equal(t, "shop-1", api.rateRequest.PosID)
	assert.Equal(t, "USD", api.rateRequest.InvoiceCurrency)
	assert.Equal(t, "100.5", api.rateRequest.InvoiceAmount)
	assert.Equal(t, "BTC", api.rateRequest.Currency)
	assert.True(t, api.rateRequest.AcceptZeroConfirmations)
}

func TestStartPaymentCancelsStaleAttempts(t *testing.T) {
	api := &fakePaymentAPI{
		startResponse: &forumpay.StartPaymentResponse{
			PaymentID: "P2",
			Address:   "addr2",
			Currency:  "BTC",
		},
		invoices: []forumpay.TransactionInvoice{
			{PosID: "shop-1", PaymentID: "P0", Currency: "BTC", Address: "addr0", Status: "Confirmed"},
			{PosID: "shop-1", PaymentID: "P1", Currency: "ETH", Address: "addr1", Status: "Waiting"},
			{PosID: "shop-1", PaymentID: "P2", Currency: "BTC", Address: "addr2", Status: "Waiting"},
			{PosID: "shop-1", PaymentID: "P3", Currency: "BTC", Address: "addr3", Status: "Cancelled"},
		},
	}
	orders := &fakeOrders{
		currency:   "USD",
		total:      decimal.RequireFromString("100"),
		email:      "payer@example.com",
		customerID: "c1",
		ip:         "203.0.113.9",
	}

	service := NewPaymentService(api, orders, PaymentConfig{PosID: "shop-1"})

	response, err := service.StartPayment(context.Background(), "o1", "BTC", "")
	require.NoError(t, err)
	assert.Equal(t, "P2", response.PaymentID)

	require.NotNil(t, api.startRequest)
	assert.Equal(t, "o1", api.startRequest.ReferenceNo)
	assert.Equal(t, "payer@example.com", api.startRequest.PayerEmail)
	assert.Equal(t, "203.0.113.9", api.startRequest.PayerIPAddress)
	assert.Empty(t, api.startRequest.PaymentID)

	// Only the waiting sibling gets cancelled; the fresh attempt and the
	// settled ones stay.
	require.Len(t, api.cancels, 1)
	assert.Equal(t, "P1", api.cancels[0].paymentID)
	assert.Equal(t, "ETH", api.cancels[0].currency)
	assert.Equal(t, "addr1", api.cancels[0].address)

	assert.Equal(t, []metadataSave{
		{key: metaKeyStartPayment, unique: false},
		{key: metaKeyLastPaymentID, unique: true},
	}, orders.saves)
	assert.Equal(t, json.RawMessage(`"P2"`), orders.metadata[metaKeyLastPaymentID][0])
}

func TestCheckPaymentWithoutStoredAttempt(t *testing.T) {
	api := &fakePaymentAPI{}
	orders := &fakeOrders{}

	service := NewPaymentService(api, orders, PaymentConfig{PosID: "shop-1"})

	_, err := service.CheckPayment(context.Background(), "o1", "P1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransactionDetailsMissing)
	assert.Zero(t, api.checkCalls, "the processor must not be called without stored attempt details")
}

func TestCheckPaymentConfirmedSettlesOrder(t *testing.T) {
	api := &fakePaymentAPI{
		checkResponse: &forumpay.CheckPaymentResponse{Status: "Confirmed"},
	}
	orders := &fakeOrders{}
	withStartPaymentMetadata(orders, "P1", "BTC", "addr1")

	service := NewPaymentService(api, orders, PaymentConfig{
		PosID:                  "shop-1",
		OrderStateAfterPayment: "completed",
	})

	response, err := service.CheckPayment(context.Background(), "o1", "P1")
	require.NoError(t, err)
	assert.Equal(t, "Confirmed", response.Status)

	require.Len(t, orders.updates, 1)
	assert.Equal(t, statusUpdate{status: "Confirmed", paymentID: "P1", completedState: "completed"}, orders.updates[0])

	assert.Equal(t, []metadataSave{
		{key: metaKeyLastPaymentID, unique: true},
		{key: metaKeyLastCheck, unique: true},
	}, orders.saves)
}

func TestCheckPaymentConfirmedTwiceIsIdempotent(t *testing.T) {
	api := &fakePaymentAPI{
		checkResponse: &forumpay.CheckPaymentResponse{Status: "Confirmed"},
	}
	orders := &fakeOrders{}
	withStartPaymentMetadata(orders, "P1", "BTC", "addr1")

	service := NewPaymentService(api, orders, PaymentConfig{
		PosID:                  "shop-1",
		OrderStateAfterPayment: "completed",
	})

	_, err := service.CheckPayment(context.Background(), "o1", "P1")
	require.NoError(t, err)
	_, err = service.CheckPayment(context.Background(), "o1", "P1")
	require.NoError(t, err)

	// Both passes reconcile the same status; the unique metadata keys are
	// overwritten rather than accumulated.
	require.Len(t, orders.updates, 2)
	assert.Equal(t, orders.updates[0], orders.updates[1])
	assert.Len(t, orders.metadata[metaKeyLastPaymentID], 1)
	assert.Len(t, orders.metadata[metaKeyLastCheck], 1)
}

func TestCheckPaymentCancelledWithLiveSibling(t *testing.T) {
	api := &fakePaymentAPI{
		checkResponse: &forumpay.CheckPaymentResponse{Status: "Cancelled"},
		invoices: []forumpay.TransactionInvoice{
			{PosID: "shop-1", PaymentID: "P1", Status: "Cancelled"},
			{PosID: "shop-1", PaymentID: "P2", Status: "Waiting"},
		},
	}
	orders := &fakeOrders{}
	withStartPaymentMetadata(orders, "P1", "BTC", "addr1")

	service := NewPaymentService(api, orders, PaymentConfig{PosID: "shop-1"})

	response, err := service.CheckPayment(context.Background(), "o1", "P1")
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", response.Status)

	// A sibling attempt is still live, so the order stays untouched.
	assert.Empty(t, orders.updates)
	assert.Empty(t, orders.saves)
}

func TestCheckPaymentCancelledLastAttempt(t *testing.T) {
	api := &fakePaymentAPI{
		checkResponse: &forumpay.CheckPaymentResponse{Status: "cancelled"},
		invoices: []forumpay.TransactionInvoice{
			{PosID: "shop-1", PaymentID: "P1", Status: "Cancelled"},
			// Attempts registered under another POS do not hold the order.
			{PosID: "shop-2", PaymentID: "P9", Status: "Waiting"},
		},
	}
	orders := &fakeOrders{}
	withStartPaymentMetadata(orders, "P1", "BTC", "addr1")

	service := NewPaymentService(api, orders, PaymentConfig{PosID: "shop-1"})

	_, err := service.CheckPayment(context.Background(), "o1", "P1")
	require.NoError(t, err)

	require.Len(t, orders.updates, 1)
	assert.Equal(t, "cancelled", orders.updates[0].status)
}

func TestCancelPaymentTruncatesDescription(t *testing.T) {
	api := &fakePaymentAPI{}
	orders := &fakeOrders{}
	withStartPaymentMetadata(orders, "P1", "BTC", "addr1")

	service := NewPaymentService(api, orders, PaymentConfig{PosID: "shop-1"})

	err := service.CancelPayment(context.Background(), "o1", "P1", "user", strings.Repeat("x", 300))
	require.NoError(t, err)

	require.Len(t, api.cancels, 1)
	assert.Equal(t, "shop-1", api.cancels[0].posID)
	assert.Equal(t, "BTC", api.cancels[0].currency)
	assert.Equal(t, "addr1", api.cancels[0].address)
	assert.Equal(t, "user", api.cancels[0].reason)
	assert.Len(t, api.cancels[0].description, 255)
}

func TestCancelPaymentWithoutStoredAttempt(t *testing.T) {
	api := &fakePaymentAPI{}
	orders := &fakeOrders{}

	service := NewPaymentService(api, orders, PaymentConfig{PosID: "shop-1"})

	err := service.CancelPayment(context.Background(), "o1", "P404", "user", "")
	assert.True(t, errors.Is(err, ErrTransactionDetailsMissing))
	assert.Empty(t, api.cancels)
}

func TestRequestKycUsesOrderEmail(t *testing.T) {
	api := &fakePaymentAPI{}
	orders := &fakeOrders{email: "payer@example.com"}

	service := NewPaymentService(api, orders, PaymentConfig{PosID: "shop-1"})

	require.NoError(t, service.RequestKyc(context.Background(), "o1"))
	assert.Equal(t, "payer@example.com", api.kycEmail)
}
