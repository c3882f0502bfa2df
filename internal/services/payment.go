package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/amelchenko/forumpay-gateway/internal/forumpay"
	"github.com/amelchenko/forumpay-gateway/internal/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrTransactionDetailsMissing = errors.New("transaction details are missing for payment")
)

// Metadata keys. The misspelled "formumpay" keys are kept byte-identical to
// the ones written by earlier plugin versions so stored orders keep working.
const (
	metaKeyStartPayment  = "startPayment"
	metaKeyLastPaymentID = "payment_formumpay_paymentId_last"
	metaKeyLastCheck     = "payment_formumpay_checkpayment_last"
	metaKeyPaymentID     = "payment_formumpay_paymentId"
)

const (
	statusWaiting   = "waiting"
	statusCancelled = "cancelled"
)

// PaymentConfig is the merchant-level configuration of the payment flow.
type PaymentConfig struct {
	PosID                   string
	AcceptZeroConfirmations bool
	OrderStateAfterPayment  string
}

// PaymentService orchestrates payment sessions against the processor. It is
// stateless; every piece of session state lives in order metadata, so one
// instance serves all requests.
type PaymentService struct {
	api    paymentAPI
	orders paymentOrders
	config PaymentConfig
}

type paymentAPI interface {
	GetCurrencyList(ctx context.Context, invoiceCurrency string) (*forumpay.CurrencyListResponse, error)
	GetRate(ctx context.Context, req forumpay.RateRequest) (*forumpay.RateResponse, error)
	StartPayment(ctx context.Context, req forumpay.StartPaymentRequest) (*forumpay.StartPaymentResponse, error)
	CheckPayment(ctx context.Context, posID, currency, paymentID, address string) (*forumpay.CheckPaymentResponse, error)
	CancelPayment(ctx context.Context, posID, currency, paymentID, address, reason, description string) error
	GetTransactions(ctx context.Context, referenceNo string) (*forumpay.TransactionsResponse, error)
	RequestKyc(ctx context.Context, email string) (*forumpay.RequestKycResponse, error)
}

type paymentOrders interface {
	Currency(ctx context.Context, orderID string) (string, error)
	Total(ctx context.Context, orderID string) (decimal.Decimal, error)
	CustomerEmail(ctx context.Context, orderID string) (string, error)
	CustomerID(ctx context.Context, orderID string) (string, error)
	CustomerIP(ctx context.Context, orderID string) (string, error)
	UpdateOrderStatus(ctx context.Context, orderID, status, paymentID, completedState string) error
	Metadata(ctx context.Context, orderID, key string) ([]json.RawMessage, error)
	SaveMetadata(ctx context.Context, orderID, key string, value interface{}, unique bool) error
}

func NewPaymentService(api paymentAPI, orders paymentOrders, config PaymentConfig) *PaymentService {
	return &PaymentService{
		api:    api,
		orders: orders,
		config: config,
	}
}

// CryptoCurrencyList returns every currency the merchant account accepts for
// the order's fiat currency.
func (p *PaymentService) CryptoCurrencyList(ctx context.Context, orderID string) (*forumpay.CurrencyListResponse, error) {
	currency, err := p.orders.Currency(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return p.api.GetCurrencyList(ctx, currency)
}

// Rate quotes the requested crypto currency against the order total.
func (p *PaymentService) Rate(ctx context.Context, orderID, currency string) (*forumpay.RateResponse, error) {
	invoiceCurrency, err := p.orders.Currency(ctx, orderID)
	if err != nil {
		return nil, err
	}

	total, err := p.orders.Total(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return p.api.GetRate(ctx, forumpay.RateRequest{
		PosID:           p.config.PosID,
		InvoiceCurrency: invoiceCurrency,
		InvoiceAmount:   total.String(),
		Currency:        currency,
		// Rate quotes always request zero-confirmation eligibility,
		// independent of the merchant setting.
		AcceptZeroConfirmations: true,
	})
}

// StartPayment creates a payment attempt on the processor, records the full
// response in order metadata and cancels every older attempt for the order
// that is still waiting, so at most one attempt stays live.
func (p *PaymentService) StartPayment(ctx context.Context, orderID, currency, kycPin string) (*forumpay.StartPaymentResponse, error) {
	invoiceCurrency, err := p.orders.Currency(ctx, orderID)
	if err != nil {
		return nil, err
	}

	total, err := p.orders.Total(ctx, orderID)
	if err != nil {
		return nil, err
	}

	payerIP, err := p.orders.CustomerIP(ctx, orderID)
	if err != nil {
		return nil, err
	}

	payerEmail, err := p.orders.CustomerEmail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	payerID, err := p.orders.CustomerID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response, err := p.api.StartPayment(ctx, forumpay.StartPaymentRequest{
		PosID:                   p.config.PosID,
		InvoiceCurrency:         invoiceCurrency,
		PaymentID:               "",
		InvoiceAmount:           total.String(),
		Currency:                currency,
		ReferenceNo:             orderID,
		AcceptZeroConfirmations: p.config.AcceptZeroConfirmations,
		PayerIPAddress:          payerIP,
		PayerEmail:              payerEmail,
		PayerID:                 payerID,
		KYCPin:                  kycPin,
	})
	if err != nil {
		return nil, err
	}

	if err := p.orders.SaveMetadata(ctx, orderID, metaKeyStartPayment, response, false); err != nil {
		return nil, err
	}

	if err := p.orders.SaveMetadata(ctx, orderID, metaKeyLastPaymentID, response.PaymentID, true); err != nil {
		return nil, err
	}

	if err := p.cancelAllPayments(ctx, orderID, response.PaymentID); err != nil {
		return nil, err
	}

	return response, nil
}

// CheckPayment fetches the payment status and reconciles it into the order.
// A cancelled status is propagated to the order only after the processor
// confirms that no sibling attempt for the order is still live.
func (p *PaymentService) CheckPayment(ctx context.Context, orderID, paymentID string) (*forumpay.CheckPaymentResponse, error) {
	meta, err := p.startPaymentMetadata(ctx, orderID, paymentID)
	if err != nil {
		return nil, err
	}

	response, err := p.api.CheckPayment(ctx, p.config.PosID, meta.Currency, paymentID, meta.Address)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(response.Status, statusCancelled) {
		allCancelled, err := p.allPaymentsCancelled(ctx, orderID)
		if err != nil {
			return nil, err
		}

		if !allCancelled {
			// A sibling attempt is still live; leave the order alone.
			return response, nil
		}
	}

	if err := p.orders.UpdateOrderStatus(ctx, orderID, response.Status, paymentID, p.config.OrderStateAfterPayment); err != nil {
		return nil, err
	}

	if err := p.orders.SaveMetadata(ctx, orderID, metaKeyLastPaymentID, paymentID, true); err != nil {
		return nil, err
	}

	if err := p.orders.SaveMetadata(ctx, orderID, metaKeyLastCheck, response, true); err != nil {
		return nil, err
	}

	return response, nil
}

// CancelPayment cancels one attempt on the processor. Local order state is
// not touched here; the cancellation comes back through CheckPayment or the
// webhook.
func (p *PaymentService) CancelPayment(ctx context.Context, orderID, paymentID, reason, description string) error {
	meta, err := p.startPaymentMetadata(ctx, orderID, paymentID)
	if err != nil {
		return err
	}

	return p.cancelPayment(ctx, paymentID, meta.Currency, meta.Address, reason, description)
}

// RequestKyc starts identity verification for the order's customer.
func (p *PaymentService) RequestKyc(ctx context.Context, orderID string) error {
	email, err := p.orders.CustomerEmail(ctx, orderID)
	if err != nil {
		return err
	}

	_, err = p.api.RequestKyc(ctx, email)
	return err
}

func (p *PaymentService) cancelPayment(ctx context.Context, paymentID, currency, address, reason, description string) error {
	if len(description) > 255 {
		description = description[:255]
	}

	return p.api.CancelPayment(ctx, p.config.PosID, currency, paymentID, address, reason, description)
}

// cancelAllPayments cancels every waiting attempt for the order except
// keepPaymentID. Settled and already-cancelled attempts are left untouched.
func (p *PaymentService) cancelAllPayments(ctx context.Context, orderID, keepPaymentID string) error {
	existing, err := p.api.GetTransactions(ctx, orderID)
	if err != nil {
		return err
	}

	for _, invoice := range existing.Invoices {
		if invoice.PaymentID == keepPaymentID || !strings.EqualFold(invoice.Status, statusWaiting) {
			continue
		}

		logger.Log.Info("cancelling stale payment attempt",
			zap.String("orderID", orderID),
			zap.String("paymentID", invoice.PaymentID),
		)

		if err := p.cancelPayment(ctx, invoice.PaymentID, invoice.Currency, invoice.Address, "", ""); err != nil {
			return err
		}
	}

	return nil
}

// allPaymentsCancelled reports whether every attempt for the order at this
// POS is cancelled on the processor side.
func (p *PaymentService) allPaymentsCancelled(ctx context.Context, orderID string) (bool, error) {
	existing, err := p.api.GetTransactions(ctx, orderID)
	if err != nil {
		return false, err
	}

	for _, invoice := range existing.Invoices {
		if !strings.EqualFold(invoice.Status, statusCancelled) && invoice.PosID == p.config.PosID {
			return false, nil
		}
	}

	return true, nil
}

type startPaymentMeta struct {
	PaymentID string `json:"payment_id"`
	Address   string `json:"address"`
	Currency  string `json:"currency"`
}

// startPaymentMetadata finds the stored StartPayment response matching
// paymentID; the address and currency it carries are needed for the check
// and cancel calls.
func (p *PaymentService) startPaymentMetadata(ctx context.Context, orderID, paymentID string) (*startPaymentMeta, error) {
	entries, err := p.orders.Metadata(ctx, orderID, metaKeyStartPayment)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		meta := &startPaymentMeta{}
		if err := json.Unmarshal(entry, meta); err != nil {
			return nil, fmt.Errorf("failed to unmarshal start payment metadata: %w", err)
		}

		if meta.PaymentID == paymentID {
			return meta, nil
		}
	}

	return nil, fmt.Errorf("%w %s", ErrTransactionDetailsMissing, paymentID)
}
