package payment

import (
	"context"
	"database/sql"
	"time"

	"storefront-be/internal/db"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*Payment, error)
	GetBySessionID(ctx context.Context, sessionID string) (*Payment, error)

	// ApplyPaymentSuccess marks the payment and its order paid in one
	// transaction.
	ApplyPaymentSuccess(ctx context.Context, paymentID, orderID uuid.UUID, completedAt time.Time) error
	MarkFailed(ctx context.Context, paymentID uuid.UUID, reason string) error

	// ResetForRetry rearms a failed payment with a fresh gateway session.
	ResetForRetry(ctx context.Context, p *Payment) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

const paymentColumns = `
	id, order_id, provider, session_id, idempotency_key, status,
	amount, currency, checkout_url, failure_reason,
	completed_at, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*Payment, error) {
	p := &Payment{}
	err := row.Scan(
		&p.ID, &p.OrderID, &p.Provider, &p.SessionID, &p.IdempotencyKey,
		&p.Status, &p.Amount, &p.Currency, &p.CheckoutURL, &p.FailureReason,
		&p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p *Payment) error {
	return r.db.QueryRowContext(ctx, `
	INSERT INTO payments (
		id, order_id, provider, session_id, idempotency_key, status,
		amount, currency, checkout_url
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at
	`,
		p.ID, p.OrderID, p.Provider, p.SessionID, p.IdempotencyKey,
		p.Status, p.Amount, p.Currency, p.CheckoutURL,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *repository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*Payment, error) {
	return r.getPayment(ctx, "order_id = $1", orderID)
}

func (r *repository) GetBySessionID(ctx context.Context, sessionID string) (*Payment, error) {
	return r.getPayment(ctx, "session_id = $1", sessionID)
}

func (r *repository) getPayment(ctx context.Context, where string, arg any) (*Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, `
	SELECT `+paymentColumns+`
	FROM payments
	WHERE `+where+`
	`, arg))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *repository) ApplyPaymentSuccess(ctx context.Context, paymentID, orderID uuid.UUID, completedAt time.Time) error {
	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		UPDATE payments
		SET status = 'success', completed_at = $1, updated_at = NOW()
		WHERE id = $2
		`, completedAt, paymentID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET status = 'paid', payment_status = 'success', paid_at = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
		`, completedAt, orderID)
		return err
	})
}

func (r *repository) ResetForRetry(ctx context.Context, p *Payment) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE payments
	SET session_id = $1, checkout_url = $2, status = 'pending',
		failure_reason = NULL, updated_at = NOW()
	WHERE id = $3
	`, p.SessionID, p.CheckoutURL, p.ID)
	if err == nil {
		p.Status = StatusPending
		p.FailureReason = nil
	}
	return err
}

func (r *repository) MarkFailed(ctx context.Context, paymentID uuid.UUID, reason string) error {
	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var orderID uuid.UUID
		err := tx.QueryRowContext(ctx, `
		UPDATE payments
		SET status = 'failed', failure_reason = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING order_id
		`, reason, paymentID).Scan(&orderID)
		if err != nil {
			return err
		}

		// The order stays pending so the user can retry; only the
		// payment_status mirror flips.
		_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = 'failed', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		`, orderID)
		return err
	})
}
