package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/amelchenko/forumpay-gateway/internal/database"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderService exposes the order fields and transitions the payment flow
// needs. It never owns the order lifecycle beyond the two status updates
// driven by the processor.
type OrderService struct {
	storage orderStorage
}

type orderStorage interface {
	FindOrder(ctx context.Context, orderID string) (*database.OrderDB, error)
	SetOrderState(ctx context.Context, orderID, state string) error
	CompleteOrder(ctx context.Context, orderID, state string) error
	CreateOrUpdatePayment(ctx context.Context, orderID, remoteID string, amount decimal.Decimal, currency string) error
	GetMetadata(ctx context.Context, orderID, key string) ([]json.RawMessage, error)
	SaveMetadata(ctx context.Context, orderID, key string, value interface{}, unique bool) error
}

func NewOrderService(storage orderStorage) *OrderService {
	return &OrderService{storage: storage}
}

func (o *OrderService) findOrder(ctx context.Context, orderID string) (*database.OrderDB, error) {
	order, err := o.storage.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order == nil {
		return nil, ErrOrderNotFound
	}

	return order, nil
}

// Currency returns the fiat currency the order was created in.
func (o *OrderService) Currency(ctx context.Context, orderID string) (string, error) {
	order, err := o.findOrder(ctx, orderID)
	if err != nil {
		return "", err
	}

	if order.Currency == "" {
		return "", fmt.Errorf("%w: order %s has no currency", ErrOrderNotFound, orderID)
	}

	return order.Currency, nil
}

// Total returns the order total in its fiat currency.
func (o *OrderService) Total(ctx context.Context, orderID string) (decimal.Decimal, error) {
	order, err := o.findOrder(ctx, orderID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return order.Total, nil
}

func (o *OrderService) CustomerEmail(ctx context.Context, orderID string) (string, error) {
	order, err := o.findOrder(ctx, orderID)
	if err != nil {
		return "", err
	}

	return order.CustomerEmail, nil
}

// CustomerID returns the registered customer id, or a synthesized guest id.
func (o *OrderService) CustomerID(ctx context.Context, orderID string) (string, error) {
	order, err := o.findOrder(ctx, orderID)
	if err != nil {
		return "", err
	}

	if order.CustomerID == "" {
		return fmt.Sprintf("guest_%s", orderID), nil
	}

	return order.CustomerID, nil
}

// CustomerIP returns the address the order was placed from. The stored value
// may be a comma-separated proxy chain; the first public address wins.
func (o *OrderService) CustomerIP(ctx context.Context, orderID string) (string, error) {
	order, err := o.findOrder(ctx, orderID)
	if err != nil {
		return "", err
	}

	candidates := []string{}
	for _, candidate := range strings.Split(order.CustomerIP, ",") {
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			candidates = append(candidates, candidate)
		}
	}

	if len(candidates) == 0 {
		return "", nil
	}

	for _, candidate := range candidates {
		ip := net.ParseIP(candidate)
		if ip == nil {
			continue
		}
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
			continue
		}
		return candidate, nil
	}

	return candidates[0], nil
}

// UpdateOrderStatus maps a processor payment status onto the order.
// Confirmed settles the order: the payment record is created or updated in
// place, the order moves to completedState with completed/placed timestamps
// and the cart flag cleared. Cancelled resets the order to draft. Any other
// status leaves the order untouched.
func (o *OrderService) UpdateOrderStatus(ctx context.Context, orderID, status, paymentID, completedState string) error {
	switch {
	case strings.EqualFold(status, "confirmed"):
		order, err := o.findOrder(ctx, orderID)
		if err != nil {
			return err
		}

		if err := o.storage.CreateOrUpdatePayment(ctx, orderID, paymentID, order.Total, order.Currency); err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		if err := o.storage.CompleteOrder(ctx, orderID, completedState); err != nil {
			return err
		}

		return o.storage.SaveMetadata(ctx, orderID, metaKeyPaymentID, paymentID, false)

	case strings.EqualFold(status, "cancelled"):
		return o.storage.SetOrderState(ctx, orderID, "draft")
	}

	return nil
}

// Metadata returns the values stored under key for the order.
func (o *OrderService) Metadata(ctx context.Context, orderID, key string) ([]json.RawMessage, error) {
	return o.storage.GetMetadata(ctx, orderID, key)
}

// SaveMetadata appends (or, with unique, overwrites) a metadata entry.
func (o *OrderService) SaveMetadata(ctx context.Context, orderID, key string, value interface{}, unique bool) error {
	return o.storage.SaveMetadata(ctx, orderID, key, value, unique)
}
