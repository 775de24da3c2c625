package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	OrderNumberExists(ctx context.Context, orderNumber string) (bool, error)
	List(ctx context.Context, opts ListOptions) ([]*Order, int, error)
	UpdateStatus(ctx context.Context, o *Order) error
	Count(ctx context.Context) (int, error)
	RevenueTotal(ctx context.Context) (float64, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)

	CreateOrderTx(ctx context.Context, o *Order, cartID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

const orderColumns = `
	id, user_id, order_number, status, payment_status, total_amount,
	shipping_address_id, billing_address_id,
	paid_at, shipped_at, delivered_at, canceled_at, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	o := &Order{}
	err := row.Scan(
		&o.ID, &o.UserID, &o.OrderNumber, &o.Status, &o.PaymentStatus,
		&o.TotalAmount, &o.ShippingAddressID, &o.BillingAddressID,
		&o.PaidAt, &o.ShippedAt, &o.DeliveredAt, &o.CanceledAt,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// CreateOrderTx atomically creates the order with its frozen item snapshots,
// deducts stock with a guarded decrement, and destroys the source cart. Any
// product whose guard fails (stock dropped below the requested quantity since
// the service checked) aborts the whole transaction.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order, cartID uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("order_id", o.ID.String()),
	)

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, user_id, order_number, status, payment_status, total_amount,
			shipping_address_id, billing_address_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
		`,
			o.ID, o.UserID, o.OrderNumber, o.Status, o.PaymentStatus,
			o.TotalAmount, o.ShippingAddressID, o.BillingAddressID,
		).Scan(&o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return err
		}

		for _, item := range o.Items {
			_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, quantity, unit_price,
				product_name, product_image_url
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			`,
				item.ID, o.ID, item.ProductID, item.Quantity,
				item.UnitPrice, item.ProductName, item.ProductImageURL,
			)
			if err != nil {
				return err
			}

			res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $1, updated_at = NOW()
			WHERE id = $2 AND stock >= $1
			`, item.Quantity, item.ProductID)
			if err != nil {
				return err
			}

			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrInsufficientStock.With("product_id", item.ProductID.String())
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
		return err
	})

	if err != nil {
		log.Error("checkout transaction failed", zap.Error(err))
		return err
	}

	log.Info("order created",
		zap.String("order_number", o.OrderNumber),
		zap.Float64("total_amount", o.TotalAmount),
		zap.Int("items", len(o.Items)),
	)
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	return r.getOrder(ctx, "id = $1", id)
}

func (r *repository) GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error) {
	return r.getOrder(ctx, "order_number = $1", orderNumber)
}

func (r *repository) getOrder(ctx context.Context, where string, arg any) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
	SELECT `+orderColumns+`
	FROM orders
	WHERE `+where+`
	`, arg))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items, err := r.getItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *repository) getItems(ctx context.Context, orderID uuid.UUID) ([]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, order_id, product_id, quantity, unit_price, product_name, product_image_url
	FROM order_items
	WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*OrderItem, 0)
	for rows.Next() {
		item := &OrderItem{}
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.ProductName, &item.ProductImageURL,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repository) OrderNumberExists(ctx context.Context, orderNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
	SELECT EXISTS(SELECT 1 FROM orders WHERE order_number = $1)
	`, orderNumber).Scan(&exists)
	return exists, err
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Order, int, error) {
	where := []string{}
	args := []any{}
	i := 1

	if opts.UserID != nil {
		where = append(where, fmt.Sprintf("user_id = $%d", i))
		args = append(args, *opts.UserID)
		i++
	}
	if opts.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", i))
		args = append(args, *opts.Status)
		i++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders %s", whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	switch opts.SortBy {
	case "total_amount", "updated_at":
		sortBy = opts.SortBy
	}
	sortOrder := "DESC"
	if strings.EqualFold(opts.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
	SELECT %s FROM orders %s
	ORDER BY %s %s
	LIMIT $%d OFFSET $%d
	`, orderColumns, whereClause, sortBy, sortOrder, i, i+1)
	args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, o := range orders {
		items, err := r.getItems(ctx, o.ID)
		if err != nil {
			return nil, 0, err
		}
		o.Items = items
	}
	return orders, total, nil
}

// UpdateStatus persists the status enum and whichever lifecycle timestamps
// the service stamped.
func (r *repository) UpdateStatus(ctx context.Context, o *Order) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE orders
	SET status = $1,
		paid_at = $2,
		shipped_at = $3,
		delivered_at = $4,
		canceled_at = $5,
		updated_at = NOW()
	WHERE id = $6
	`, o.Status, o.PaidAt, o.ShippedAt, o.DeliveredAt, o.CanceledAt, o.ID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

func (r *repository) RevenueTotal(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `
	SELECT COALESCE(SUM(total_amount), 0)
	FROM orders
	WHERE status IN ('paid', 'shipped', 'delivered')
	`).Scan(&total)
	return total, err
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT status, COUNT(*) FROM orders GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[Status]int{}
	for rows.Next() {
		var s Status
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		counts[s] = n
	}
	return counts, rows.Err()
}
