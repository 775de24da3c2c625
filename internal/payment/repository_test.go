package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ApplyPaymentSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	paymentID := uuid.New()
	orderID := uuid.New()
	completedAt := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payments SET status = 'success'").
			WithArgs(completedAt, paymentID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE orders SET status = 'paid', payment_status = 'success'").
			WithArgs(completedAt, orderID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.ApplyPaymentSuccess(context.Background(), paymentID, orderID, completedAt)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error - Rolls Back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payments SET status = 'success'").
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		err := repo.ApplyPaymentSuccess(context.Background(), paymentID, orderID, completedAt)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	paymentID := uuid.New()
	orderID := uuid.New()

	t.Run("Success - Order Stays Pending", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE payments SET status = 'failed'").
			WithArgs("card_declined", paymentID).
			WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(orderID))
		// Only payment_status flips; the order status is untouched.
		mock.ExpectExec("UPDATE orders SET payment_status = 'failed'").
			WithArgs(orderID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.MarkFailed(context.Background(), paymentID, "card_declined")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_ResetForRetry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		reason := "card_declined"
		p := &Payment{
			ID:            uuid.New(),
			SessionID:     "cs_new_123",
			CheckoutURL:   "https://checkout.stripe.com/pay/cs_new_123",
			Status:        StatusFailed,
			FailureReason: &reason,
		}

		mock.ExpectExec("UPDATE payments SET session_id = \\$1").
			WithArgs(p.SessionID, p.CheckoutURL, p.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ResetForRetry(context.Background(), p)
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, p.Status)
		assert.Nil(t, p.FailureReason)
	})
}

func TestRepository_GetBySessionID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	cols := []string{
		"id", "order_id", "provider", "session_id", "idempotency_key", "status",
		"amount", "currency", "checkout_url", "failure_reason",
		"completed_at", "created_at", "updated_at",
	}

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		paymentID := uuid.New()

		mock.ExpectQuery("SELECT .* FROM payments WHERE session_id = \\$1").
			WithArgs("cs_test_123").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(paymentID, uuid.New(), "stripe", "cs_test_123", "abc123", StatusPending,
					39.8, "usd", "https://checkout.stripe.com/pay/cs_test_123", nil, nil, now, now))

		p, err := repo.GetBySessionID(context.Background(), "cs_test_123")
		assert.NoError(t, err)
		assert.Equal(t, paymentID, p.ID)
		assert.Equal(t, StatusPending, p.Status)
	})

	t.Run("NotFound_ReturnsNil", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM payments WHERE session_id = \\$1").
			WithArgs("cs_unknown").
			WillReturnRows(sqlmock.NewRows(cols))

		p, err := repo.GetBySessionID(context.Background(), "cs_unknown")
		assert.NoError(t, err)
		assert.Nil(t, p)
	})
}
