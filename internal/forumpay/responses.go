package forumpay

// Response shapes of the ForumPay Pay API v2, limited to the fields the
// gateway reads. Unknown fields are ignored on decode.

type Currency struct {
	Currency                 string `json:"currency"`
	Description              string `json:"description"`
	SellStatus               string `json:"sell_status"`
	ZeroConfirmationsEnabled string `json:"zero_confirmations_enabled"`
	CurrencyFiat             string `json:"currency_fiat"`
	IconURL                  string `json:"icon_url"`
	Rate                     string `json:"rate"`
	Status                   string `json:"status"`
}

type CurrencyListResponse struct {
	Currencies []Currency `json:"currencies"`
}

type RateResponse struct {
	InvoiceCurrency            string `json:"invoice_currency"`
	InvoiceAmount              string `json:"invoice_amount"`
	Currency                   string `json:"currency"`
	Rate                       string `json:"rate"`
	AmountExchange             string `json:"amount_exchange"`
	NetworkProcessingFee       string `json:"network_processing_fee"`
	Amount                     string `json:"amount"`
	WaitTime                   string `json:"wait_time"`
	Sid                        string `json:"sid"`
	FastTransactionFee         string `json:"fast_transaction_fee"`
	FastTransactionFeeCurrency string `json:"fast_transaction_fee_currency"`
	PaymentID                  string `json:"payment_id"`
}

type Notice struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StartPaymentResponse is stored verbatim in order metadata; the address and
// currency fields are required later by CheckPayment and CancelPayment.
type StartPaymentResponse struct {
	PaymentID                  string   `json:"payment_id"`
	Address                    string   `json:"address"`
	Currency                   string   `json:"currency"`
	InvoiceAmount              string   `json:"invoice_amount"`
	InvoiceCurrency            string   `json:"invoice_currency"`
	Amount                     string   `json:"amount"`
	MinConfirmations           int      `json:"min_confirmations"`
	FastTransactionFee         string   `json:"fast_transaction_fee"`
	FastTransactionFeeCurrency string   `json:"fast_transaction_fee_currency"`
	QR                         string   `json:"qr"`
	QRAlt                      string   `json:"qr_alt"`
	QRImg                      string   `json:"qr_img"`
	QRAltImg                   string   `json:"qr_alt_img"`
	AccessToken                string   `json:"access_token"`
	AccessURL                  string   `json:"access_url"`
	Notices                    []Notice `json:"notices"`
}

type Underpayment struct {
	Address       string `json:"address"`
	MissingAmount string `json:"missing_amount"`
	QR            string `json:"qr"`
	QRAlt         string `json:"qr_alt"`
	QRImg         string `json:"qr_img"`
	QRAltImg      string `json:"qr_alt_img"`
}

type CheckPaymentResponse struct {
	ReferenceNo               string        `json:"reference_no"`
	Inserted                  string        `json:"inserted"`
	InvoiceAmount             string        `json:"invoice_amount"`
	Type                      string        `json:"type"`
	InvoiceCurrency           string        `json:"invoice_currency"`
	Amount                    string        `json:"amount"`
	MinConfirmations          int           `json:"min_confirmations"`
	AcceptZeroConfirmations   bool          `json:"accept_zero_confirmations"`
	RequireKytForConfirmation bool          `json:"require_kyt_for_confirmation"`
	Currency                  string        `json:"currency"`
	Confirmed                 bool          `json:"confirmed"`
	ConfirmedTime             string        `json:"confirmed_time"`
	Reason                    string        `json:"reason"`
	Payment                   string        `json:"payment"`
	Sid                       string        `json:"sid"`
	Confirmations             string        `json:"confirmations"`
	AccessToken               string        `json:"access_token"`
	AccessURL                 string        `json:"access_url"`
	WaitTime                  string        `json:"wait_time"`
	Status                    string        `json:"status"`
	Cancelled                 bool          `json:"cancelled"`
	CancelledTime             string        `json:"cancelled_time"`
	PrintString               string        `json:"print_string"`
	State                     string        `json:"state"`
	Underpayment              *Underpayment `json:"underpayment,omitempty"`
}

type TransactionInvoice struct {
	PosID     string `json:"pos_id"`
	PaymentID string `json:"payment_id"`
	Currency  string `json:"currency"`
	Address   string `json:"address"`
	Status    string `json:"status"`
}

type TransactionsResponse struct {
	Invoices []TransactionInvoice `json:"invoices"`
}

type RequestKycResponse struct {
	Status string `json:"status"`
}
