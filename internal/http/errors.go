package router

import (
	"errors"
	"net/http"

	"github.com/amelchenko/forumpay-gateway/internal/forumpay"
	"github.com/amelchenko/forumpay-gateway/internal/logger"
	"github.com/amelchenko/forumpay-gateway/internal/services"
	"go.uber.org/zap"
)

// Per-operation error code bases; the final code is base+offset, so every
// failure mode has a stable numeric code the widget can rely on.
const (
	codeBaseCurrencies    = 1000
	codeBaseRate          = 2000
	codeBaseStartPayment  = 3000
	codeBaseCheckPayment  = 4000
	codeBaseCancelPayment = 5000
	codeBaseWebhook       = 6000

	offsetBadRequest     = 5
	offsetDetailsMissing = 6
	offsetAPIError       = 50
	offsetKycNeeded      = 51
	offsetPayerError     = 52
	offsetInternal       = 100

	codeUnknownAction = 7005
	codeInvalidToken  = 7010
)

// HTTPError is the error payload of the response contract.
type HTTPError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	httpCode int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func newHTTPError(code, httpCode int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message, httpCode: httpCode}
}

// mapError classifies a domain error into the numbered response contract and
// logs it exactly once.
func mapError(base int, err error) *HTTPError {
	var missingParam *MissingParamError
	if errors.As(err, &missingParam) || errors.Is(err, services.ErrOrderNotFound) {
		logger.Log.Error("request validation failed", zap.Error(err))
		return newHTTPError(base+offsetBadRequest, http.StatusBadRequest, err.Error())
	}

	if errors.Is(err, services.ErrTransactionDetailsMissing) {
		logger.Log.Error("transaction details missing", zap.Error(err))
		return newHTTPError(base+offsetDetailsMissing, http.StatusBadRequest, err.Error())
	}

	var apiErr *forumpay.APIError
	if errors.As(err, &apiErr) {
		logAPIError(apiErr)
		return newHTTPError(base+offsetAPIError, http.StatusBadRequest, apiErr.Message)
	}

	logger.Log.Error("unexpected failure", zap.Error(err))
	return newHTTPError(base+offsetInternal, http.StatusInternalServerError, err.Error())
}

func logAPIError(e *forumpay.APIError) {
	logger.Log.Error("forumpay api call failed",
		zap.String("op", e.Op),
		zap.Int("httpStatus", e.HTTPStatus),
		zap.String("errorCode", e.ErrorCode),
		zap.String("message", e.Message),
		zap.Any("parameters", e.Params),
	)
}
