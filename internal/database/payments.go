package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderMissing = errors.New("order does not exist")
)

// One payment record per order; repeated settlement updates it in place.
const UpsertPaymentQuery = `
	INSERT INTO
		payments (order_id, remote_id, state, remote_state, amount, currency)
	VALUES ($1, $2, 'completed', 'completed', $3, $4)
	ON CONFLICT ON CONSTRAINT payments_order_id_key DO UPDATE
	SET
		remote_id = EXCLUDED.remote_id,
		state = EXCLUDED.state,
		remote_state = EXCLUDED.remote_state,
		amount = EXCLUDED.amount,
		currency = EXCLUDED.currency,
		updated_at = now()
`

// CreateOrUpdatePayment records a completed payment for the order.
func (d *Database) CreateOrUpdatePayment(ctx context.Context, orderID, remoteID string, amount decimal.Decimal, currency string) error {
	_, err := d.db.Exec(ctx, UpsertPaymentQuery, orderID, remoteID, amount, currency)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrOrderMissing
		}
		return fmt.Errorf("failed to save payment: %w", err)
	}

	return nil
}
