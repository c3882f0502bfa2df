package models

import (
	"context"

	"github.com/amelchenko/forumpay-gateway/internal/forumpay"
)

//go:generate mockgen -destination=mocks/mock_payment.go . PaymentService
type PaymentService interface {
	// CryptoCurrencyList returns the currencies accepted for the order's
	// fiat currency, unfiltered.
	CryptoCurrencyList(ctx context.Context, orderID string) (*forumpay.CurrencyListResponse, error)

	// Rate quotes the given crypto currency against the order total.
	Rate(ctx context.Context, orderID, currency string) (*forumpay.RateResponse, error)

	// StartPayment creates a payment attempt on the processor and cancels
	// any earlier attempt for the order that is still waiting.
	StartPayment(ctx context.Context, orderID, currency, kycPin string) (*forumpay.StartPaymentResponse, error)

	// CheckPayment reconciles the processor-side payment status into the
	// local order state.
	CheckPayment(ctx context.Context, orderID, paymentID string) (*forumpay.CheckPaymentResponse, error)

	// CancelPayment cancels a single attempt on the processor.
	CancelPayment(ctx context.Context, orderID, paymentID, reason, description string) error

	// RequestKyc asks the processor to start identity verification for the
	// order's customer.
	RequestKyc(ctx context.Context, orderID string) error
}

//go:generate mockgen -destination=mocks/mock_token.go . TokenService
type TokenService interface {
	Generate(orderID string) (string, error)

	// Validate returns the order id the token was issued for.
	Validate(token string) (string, error)
}
