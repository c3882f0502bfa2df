package models

// Response payloads returned to the payment widget. Pure value objects
// assembled per request from the processor responses.

type Currency struct {
	Currency                 string `json:"currency"`
	Description              string `json:"description"`
	SellStatus               string `json:"sell_status"`
	ZeroConfirmationsEnabled bool   `json:"zero_confirmations_enabled"`
	CurrencyFiat             string `json:"currency_fiat"`
	IconURL                  string `json:"icon_url"`
	Rate                     string `json:"rate"`
}

type CurrencyList struct {
	Currencies []Currency `json:"currencies"`
}

type Rate struct {
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

type Payment struct {
	PaymentID                  string   `json:"payment_id"`
	Address                    string   `json:"address"`
	MinConfirmations           int      `json:"min_confirmations"`
	FastTransactionFee         string   `json:"fast_transaction_fee"`
	FastTransactionFeeCurrency string   `json:"fast_transaction_fee_currency"`
	QR                         string   `json:"qr"`
	QRAlt                      string   `json:"qr_alt"`
	QRImg                      string   `json:"qr_img"`
	QRAltImg                   string   `json:"qr_alt_img"`
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

type PaymentDetails struct {
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
	WaitTime                  string        `json:"wait_time"`
	Status                    string        `json:"status"`
	Cancelled                 bool          `json:"cancelled"`
	CancelledTime             string        `json:"cancelled_time"`
	PrintString               string        `json:"print_string"`
	State                     string        `json:"state"`
	Underpayment              *Underpayment `json:"underpayment,omitempty"`
}
