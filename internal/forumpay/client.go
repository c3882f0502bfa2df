package forumpay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	ProductionURL = "https://api.forumpay.com/pay/v2/"
	SandboxURL    = "https://sandbox.api.forumpay.com/pay/v2/"
)

// Client is a thin wrapper over the ForumPay Pay API v2. All calls are
// synchronous request/response; no retries are performed here.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

func New(apiURL, apiUser, apiSecret, userAgent, locale string, log *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(apiURL).
		SetBasicAuth(apiUser, apiSecret).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept-Language", locale)

	return &Client{http: httpClient, log: log}
}

// RateRequest carries the parameters of a GetRate call.
type RateRequest struct {
	PosID                   string
	InvoiceCurrency         string
	InvoiceAmount           string
	Currency                string
	AcceptZeroConfirmations bool
}

// StartPaymentRequest carries the parameters of a StartPayment call.
// PaymentID is passed through empty; the processor assigns one.
type StartPaymentRequest struct {
	PosID                   string
	InvoiceCurrency         string
	PaymentID               string
	InvoiceAmount           string
	Currency                string
	ReferenceNo             string
	AcceptZeroConfirmations bool
	PayerIPAddress          string
	PayerEmail              string
	PayerID                 string
	KYCPin                  string
}

func (c *Client) GetCurrencyList(ctx context.Context, invoiceCurrency string) (*CurrencyListResponse, error) {
	out := &CurrencyListResponse{}
	err := c.call(ctx, "GetCurrencyList", map[string]string{
		"invoice_currency": invoiceCurrency,
	}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRate(ctx context.Context, req RateRequest) (*RateResponse, error) {
	out := &RateResponse{}
	err := c.call(ctx, "GetRate", map[string]string{
		"pos_id":                    req.PosID,
		"invoice_currency":          req.InvoiceCurrency,
		"invoice_amount":            req.InvoiceAmount,
		"currency":                  req.Currency,
		"accept_zero_confirmations": boolParam(req.AcceptZeroConfirmations),
	}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) StartPayment(ctx context.Context, req StartPaymentRequest) (*StartPaymentResponse, error) {
	params := map[string]string{
		"pos_id":                    req.PosID,
		"invoice_currency":          req.InvoiceCurrency,
		"payment_id":                req.PaymentID,
		"invoice_amount":            req.InvoiceAmount,
		"currency":                  req.Currency,
		"reference_no":              req.ReferenceNo,
		"accept_zero_confirmations": boolParam(req.AcceptZeroConfirmations),
		"payer_ip_address":          req.PayerIPAddress,
		"payer_email":               req.PayerEmail,
		"payer_id":                  req.PayerID,
		"auto_accept_underpayment":  "false",
	}
	if req.KYCPin != "" {
		params["kyc_pin"] = req.KYCPin
	}

	out := &StartPaymentResponse{}
	if err := c.call(ctx, "StartPayment", params, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CheckPayment(ctx context.Context, posID, currency, paymentID, address string) (*CheckPaymentResponse, error) {
	out := &CheckPaymentResponse{}
	err := c.call(ctx, "CheckPayment", map[string]string{
		"pos_id":     posID,
		"currency":   currency,
		"payment_id": paymentID,
		"address":    address,
	}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CancelPayment(ctx context.Context, posID, currency, paymentID, address, reason, description string) error {
	return c.call(ctx, "CancelPayment", map[string]string{
		"pos_id":      posID,
		"currency":    currency,
		"payment_id":  paymentID,
		"address":     address,
		"reason":      reason,
		"description": description,
	}, &struct{}{})
}

// GetTransactions lists the processor-side invoices created for the given
// reference (the store order id).
func (c *Client) GetTransactions(ctx context.Context, referenceNo string) (*TransactionsResponse, error) {
	out := &TransactionsResponse{}
	err := c.call(ctx, "GetTransactions", map[string]string{
		"reference_no": referenceNo,
	}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RequestKyc(ctx context.Context, email string) (*RequestKycResponse, error) {
	out := &RequestKycResponse{}
	err := c.call(ctx, "RequestKyc", map[string]string{
		"email": email,
	}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type errorBody struct {
	Err       string `json:"err"`
	ErrorCode string `json:"error_code"`
}

func (c *Client) call(ctx context.Context, op string, params map[string]string, out interface{}) error {
	c.log.Debug("forumpay api call", zap.String("op", op))

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(op)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", op, err)
	}

	if res.StatusCode() != http.StatusOK {
		var body errorBody
		// Best effort; non-JSON error bodies leave the code empty.
		_ = json.Unmarshal(res.Body(), &body)

		message := body.Err
		if message == "" {
			message = res.Status()
		}

		return &APIError{
			Op:         op,
			HTTPStatus: res.StatusCode(),
			ErrorCode:  body.ErrorCode,
			Message:    message,
			Params:     params,
		}
	}

	if err := json.Unmarshal(res.Body(), out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response: %w", op, err)
	}

	return nil
}

func boolParam(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
