package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/amelchenko/forumpay-gateway/internal/forumpay"
	"github.com/amelchenko/forumpay-gateway/internal/logger"
	"github.com/amelchenko/forumpay-gateway/internal/models"
	"go.uber.org/zap"
)

// execute dispatches the parsed action to its handler. The switch is
// exhaustive over the Action set.
func (router *Router) execute(ctx context.Context, action Action, params *Params) (interface{}, *HTTPError) {
	switch action {
	case ActionCurrencies:
		return router.handleCurrencies(ctx, params)
	case ActionGetRate:
		return router.handleGetRate(ctx, params)
	case ActionStartPayment:
		return router.handleStartPayment(ctx, params)
	case ActionCheckPayment:
		return router.handleCheckPayment(ctx, params)
	case ActionCancelPayment:
		return router.handleCancelPayment(ctx, params)
	case ActionWebhook:
		return router.handleWebhook(ctx, params)
	case ActionRestoreCart:
		return router.handleRestoreCart(ctx, params)
	}

	return nil, newHTTPError(codeUnknownAction, http.StatusBadRequest, "unknown action")
}

func (router *Router) handleCurrencies(ctx context.Context, params *Params) (interface{}, *HTTPError) {
	logger.Log.Info("GetCurrencyList entrypoint called")

	orderID, err := params.GetRequired("orderId")
	if err != nil {
		return nil, mapError(codeBaseCurrencies, err)
	}

	response, err := router.payments.CryptoCurrencyList(ctx, orderID)
	if err != nil {
		return nil, mapError(codeBaseCurrencies, err)
	}

	list := models.CurrencyList{Currencies: []models.Currency{}}
	for _, currency := range response.Currencies {
		if currency.Status != "OK" {
			continue
		}

		list.Currencies = append(list.Currencies, models.Currency{
			Currency:                 currency.Currency,
			Description:              currency.Description,
			SellStatus:               currency.SellStatus,
			ZeroConfirmationsEnabled: flagEnabled(currency.ZeroConfirmationsEnabled),
			CurrencyFiat:             currency.CurrencyFiat,
			IconURL:                  currency.IconURL,
			Rate:                     currency.Rate,
		})
	}

	logger.Log.Info("GetCurrencyList entrypoint finished")

	return list, nil
}

func (router *Router) handleGetRate(ctx context.Context, params *Params) (interface{}, *HTTPError) {
	orderID, err := params.GetRequired("orderId")
	if err != nil {
		return nil, mapError(codeBaseRate, err)
	}

	currency, err := params.GetRequired("currency")
	if err != nil {
		return nil, mapError(codeBaseRate, err)
	}

	logger.Log.Info("GetCurrencyRate entrypoint called", zap.String("currency", currency))

	response, err := router.payments.Rate(ctx, orderID, currency)
	if err != nil {
		return nil, mapError(codeBaseRate, err)
	}

	logger.Log.Info("GetCurrencyRate entrypoint finished")

	return models.Rate{
		InvoiceCurrency:            response.InvoiceCurrency,
		InvoiceAmount:              response.InvoiceAmount,
		Currency:                   response.Currency,
		Rate:                       response.Rate,
		AmountExchange:             response.AmountExchange,
		NetworkProcessingFee:       response.NetworkProcessingFee,
		Amount:                     response.Amount,
		WaitTime:                   response.WaitTime,
		Sid:                        response.Sid,
		FastTransactionFee:         response.FastTransactionFee,
		FastTransactionFeeCurrency: response.FastTransactionFeeCurrency,
		PaymentID:                  response.PaymentID,
	}, nil
}

func (router *Router) handleStartPayment(ctx context.Context, params *Params) (interface{}, *HTTPError) {
	orderID, err := params.GetRequired("orderId")
	if err != nil {
		return nil, mapError(codeBaseStartPayment, err)
	}

	currency, err := params.GetRequired("currency")
	if err != nil {
		return nil, mapError(codeBaseStartPayment, err)
	}

	kycPin := params.Get("kycPin", "")

	logger.Log.Info("StartPayment entrypoint called", zap.String("currency", currency))

	response, err := router.payments.StartPayment(ctx, orderID, currency, kycPin)
	if err != nil {
		var apiErr *forumpay.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode != "" {
			if apiErr.IsKycNeeded() {
				logAPIError(apiErr)
				// The payer has to verify first; trigger verification and
				// surface the original failure.
				if kycErr := router.payments.RequestKyc(ctx, orderID); kycErr != nil {
					logger.Log.Error("failed to request kyc", zap.Error(kycErr))
				}
				return nil, newHTTPError(codeBaseStartPayment+offsetKycNeeded, http.StatusBadRequest, apiErr.Message)
			}

			if apiErr.IsPayerError() {
				logAPIError(apiErr)
				return nil, newHTTPError(codeBaseStartPayment+offsetPayerError, http.StatusBadRequest, apiErr.Message)
			}
		}

		return nil, mapError(codeBaseStartPayment, err)
	}

	notices := []models.Notice{}
	for _, notice := range response.Notices {
		notices = append(notices, models.Notice{Code: notice.Code, Message: notice.Message})
	}

	logger.Log.Info("StartPayment entrypoint finished")

	return models.Payment{
		PaymentID:                  response.PaymentID,
		Address:                    response.Address,
		MinConfirmations:           response.MinConfirmations,
		FastTransactionFee:         response.FastTransactionFee,
		FastTransactionFeeCurrency: response.FastTransactionFeeCurrency,
		QR:                         response.QR,
		QRAlt:                      response.QRAlt,
		QRImg:                      response.QRImg,
		QRAltImg:                   response.QRAltImg,
		Notices:                    notices,
	}, nil
}

func (router *Router) handleCheckPayment(ctx context.Context, params *Params) (interface{}, *HTTPError) {
	orderID, err := params.GetRequired("orderId")
	if err != nil {
		return nil, mapError(codeBaseCheckPayment, err)
	}

	paymentID, err := params.GetRequired("payment_id")
	if err != nil {
		return nil, mapError(codeBaseCheckPayment, err)
	}

	logger.Log.Info("CheckPayment entrypoint called", zap.String("paymentID", paymentID))

	response, err := router.payments.CheckPayment(ctx, orderID, paymentID)
	if err != nil {
		return nil, mapError(codeBaseCheckPayment, err)
	}

	var underpayment *models.Underpayment
	if response.Underpayment != nil {
		underpayment = &models.Underpayment{
			Address:       response.Underpayment.Address,
			MissingAmount: response.Underpayment.MissingAmount,
			QR:            response.Underpayment.QR,
			QRAlt:         response.Underpayment.QRAlt,
			QRImg:         response.Underpayment.QRImg,
			QRAltImg:      response.Underpayment.QRAltImg,
		}
		logger.Log.Debug("CheckPayment - underpayment", zap.String("paymentID", paymentID))
	}

	logger.Log.Info("CheckPayment entrypoint finished")

	return models.PaymentDetails{
		ReferenceNo:               response.ReferenceNo,
		Inserted:                  response.Inserted,
		InvoiceAmount:             response.InvoiceAmount,
		Type:                      response.Type,
		InvoiceCurrency:           response.InvoiceCurrency,
		Amount:                    response.Amount,
		MinConfirmations:          response.MinConfirmations,
		AcceptZeroConfirmations:   response.AcceptZeroConfirmations,
		RequireKytForConfirmation: response.RequireKytForConfirmation,
		Currency:                  response.Currency,
		Confirmed:                 response.Confirmed,
		ConfirmedTime:             response.ConfirmedTime,
		Reason:                    response.Reason,
		Payment:                   response.Payment,
		Sid:                       response.Sid,
		Confirmations:             response.Confirmations,
		WaitTime:                  response.WaitTime,
		Status:                    response.Status,
		Cancelled:                 response.Cancelled,
		CancelledTime:             response.CancelledTime,
		PrintString:               response.PrintString,
		State:                     response.State,
		Underpayment:              underpayment,
	}, nil
}

func (router *Router) handleCancelPayment(ctx context.Context, params *Params) (interface{}, *HTTPError) {
	orderID, err := params.GetRequired("orderId")
	if err != nil {
		return nil, mapError(codeBaseCancelPayment, err)
	}

	paymentID, err := params.GetRequired("payment_id")
	if err != nil {
		return nil, mapError(codeBaseCancelPayment, err)
	}

	reason := params.Get("reason", "")
	description := params.Get("description", "")

	logger.Log.Info("CancelPayment entrypoint called", zap.String("paymentID", paymentID))

	if err := router.payments.CancelPayment(ctx, orderID, paymentID, reason, description); err != nil {
		return nil, mapError(codeBaseCancelPayment, err)
	}

	logger.Log.Info("CancelPayment entrypoint finished")

	return struct{}{}, nil
}

// handleWebhook is the asynchronous counterpart of checkPayment. The result
// is discarded; the webhook only acknowledges receipt, and replays are safe
// because the status update itself is idempotent.
func (router *Router) handleWebhook(ctx context.Context, params *Params) (interface{}, *HTTPError) {
	paymentID, err := params.GetRequired("payment_id")
	if err != nil {
		return nil, mapError(codeBaseWebhook, err)
	}

	orderID, err := params.GetRequired("reference_no")
	if err != nil {
		return nil, mapError(codeBaseWebhook, err)
	}

	logger.Log.Info("Webhook entrypoint called",
		zap.String("paymentID", paymentID),
		zap.String("orderID", orderID),
	)

	if _, err := router.payments.CheckPayment(ctx, orderID, paymentID); err != nil {
		return nil, mapError(codeBaseWebhook, err)
	}

	logger.Log.Info("Webhook entrypoint finished")

	return struct{}{}, nil
}

// handleRestoreCart is a stable no-op; the storefront cart subsystem owns
// cart restoration.
func (router *Router) handleRestoreCart(_ context.Context, _ *Params) (interface{}, *HTTPError) {
	return struct{}{}, nil
}

func flagEnabled(value string) bool {
	return value != "" && value != "0" && value != "false"
}
