package forumpay

import "fmt"

// Error codes returned by the processor when the payer has to complete an
// additional verification step before a payment can be started.
const (
	ErrCodePayerAuthNeeded            = "payerAuthNeeded"
	ErrCodePayerKYCNotVerified        = "payerKYCNotVerified"
	ErrCodePayerKYCNeeded             = "payerKYCNeeded"
	ErrCodePayerEmailVerificationCode = "payerEmailVerificationCodeNeeded"
	payerErrCodePrefix                = "payer"
)

// APIError is returned for any unsuccessful call to the payment processor.
// ErrorCode is the processor-assigned code and may be empty when the response
// carried none.
type APIError struct {
	Op         string
	HTTPStatus int
	ErrorCode  string
	Message    string
	Params     map[string]string
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("forumpay: %s failed: %s (%s)", e.Op, e.Message, e.ErrorCode)
	}
	return fmt.Sprintf("forumpay: %s failed: %s", e.Op, e.Message)
}

// IsKycNeeded reports whether the error requires the payer to pass a KYC or
// e-mail verification step first.
func (e *APIError) IsKycNeeded() bool {
	switch e.ErrorCode {
	case ErrCodePayerAuthNeeded,
		ErrCodePayerKYCNotVerified,
		ErrCodePayerKYCNeeded,
		ErrCodePayerEmailVerificationCode:
		return true
	}
	return false
}

// IsPayerError reports whether the error is attributable to the payer rather
// than the merchant or the processor.
func (e *APIError) IsPayerError() bool {
	return len(e.ErrorCode) >= len(payerErrCodePrefix) &&
		e.ErrorCode[:len(payerErrCodePrefix)] == payerErrCodePrefix
}
