package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	SelectOrderQuery = `
		SELECT
			id,
			state,
			total,
			currency,
			customer_id,
			customer_email,
			customer_ip,
			cart
		FROM
			orders
		WHERE
			id = $1
	`
	UpdateOrderStateQuery = `
		UPDATE
			orders
		SET
			state = $2,
			updated_at = now()
		WHERE
			id = $1
	`
	CompleteOrderQuery = `
		UPDATE
			orders
		SET
			state = $2,
			cart = FALSE,
			completed_at = $3,
			placed_at = $3,
			updated_at = now()
		WHERE
			id = $1
	`
)

// OrderDB mirrors the financial and identity columns of an order row.
type OrderDB struct {
	ID            string
	State         string
	Total         decimal.Decimal
	Currency      string
	CustomerID    string
	CustomerEmail string
	CustomerIP    string
	Cart          bool
}

// FindOrder returns the order row or nil when no row matches.
func (d *Database) FindOrder(ctx context.Context, orderID string) (*OrderDB, error) {
	order := &OrderDB{}

	err := d.db.QueryRow(ctx, SelectOrderQuery, orderID).
		Scan(
			&order.ID,
			&order.State,
			&order.Total,
			&order.Currency,
			&order.CustomerID,
			&order.CustomerEmail,
			&order.CustomerIP,
			&order.Cart,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

// SetOrderState updates the lifecycle state of an order.
func (d *Database) SetOrderState(ctx context.Context, orderID, state string) error {
	if _, err := d.db.Exec(ctx, UpdateOrderStateQuery, orderID, state); err != nil {
		return fmt.Errorf("failed to update order state: %w", err)
	}
	return nil
}

// CompleteOrder moves the order into its post-payment state, stamps the
// completed/placed timestamps and detaches the cart.
func (d *Database) CompleteOrder(ctx context.Context, orderID, state string) error {
	if _, err := d.db.Exec(ctx, CompleteOrderQuery, orderID, state, time.Now()); err != nil {
		return fmt.Errorf("failed to complete order: %w", err)
	}
	return nil
}
