package cart

import (
	"context"
	"database/sql"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)
	GetBySessionID(ctx context.Context, sessionID string) (*Cart, error)
	Create(ctx context.Context, c *Cart) error
	GetItems(ctx context.Context, cartID uuid.UUID) ([]*CartItem, error)
	GetItemByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (*CartItem, error)
	CreateItem(ctx context.Context, item *CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ClearItems(ctx context.Context, cartID uuid.UUID) error
	MergeCarts(ctx context.Context, userCartID, guestCartID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

func (r *repository) getCart(ctx context.Context, where string, arg any) (*Cart, error) {
	c := &Cart{}
	err := r.db.QueryRowContext(ctx, `
	SELECT id, user_id, session_id, created_at, updated_at
	FROM carts
	WHERE `+where+`
	`, arg).Scan(&c.ID, &c.UserID, &c.SessionID, &c.CreatedAt, &c.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items, err := r.GetItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return c, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	return r.getCart(ctx, "user_id = $1", userID)
}

func (r *repository) GetBySessionID(ctx context.Context, sessionID string) (*Cart, error) {
	return r.getCart(ctx, "session_id = $1", sessionID)
}

func (r *repository) Create(ctx context.Context, c *Cart) error {
	err := r.db.QueryRowContext(ctx, `
	INSERT INTO carts (id, user_id, session_id)
	VALUES ($1, $2, $3)
	RETURNING created_at, updated_at
	`, c.ID, c.UserID, c.SessionID).Scan(&c.CreatedAt, &c.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == PgUniqueViolation {
		// Another request created the cart for this identity first.
		return ErrCartExists
	}
	return err
}

func (r *repository) GetItems(ctx context.Context, cartID uuid.UUID) ([]*CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, cart_id, product_id, quantity, unit_price, product_name, product_image_url, added_at
	FROM cart_items
	WHERE cart_id = $1
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*CartItem, 0)
	for rows.Next() {
		item := &CartItem{}
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
			&item.ProductName,
			&item.ProductImageURL,
			&item.AddedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repository) GetItemByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (*CartItem, error) {
	item := &CartItem{}
	err := r.db.QueryRowContext(ctx, `
	SELECT id, cart_id, product_id, quantity, unit_price, product_name, product_image_url, added_at
	FROM cart_items
	WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.UnitPrice,
		&item.ProductName,
		&item.ProductImageURL,
		&item.AddedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) CreateItem(ctx context.Context, item *CartItem) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCartItem"),
		zap.String("cart_id", item.CartID.String()),
		zap.String("product_id", item.ProductID.String()),
	)

	err := r.db.QueryRowContext(ctx, `
	INSERT INTO cart_items (
		id, cart_id, product_id, quantity, unit_price, product_name, product_image_url
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING added_at
	`,
		item.ID, item.CartID, item.ProductID, item.Quantity,
		item.UnitPrice, item.ProductName, item.ProductImageURL,
	).Scan(&item.AddedAt)

	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return err
	}

	log.Debug("cart item created", zap.String("cart_item_id", item.ID.String()))
	return nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE cart_items
	SET quantity = $1
	WHERE id = $2
	`, quantity, itemID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}

// MergeCarts folds the guest cart into the user cart in one transaction:
// quantities are summed where both carts hold the product, remaining guest
// lines are re-parented, and the guest cart row is removed. Stock is not
// re-validated here.
func (r *repository) MergeCarts(ctx context.Context, userCartID, guestCartID uuid.UUID) error {
	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		UPDATE cart_items u
		SET quantity = u.quantity + g.quantity
		FROM cart_items g
		WHERE u.cart_id = $1
		  AND g.cart_id = $2
		  AND u.product_id = g.product_id
		`, userCartID, guestCartID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
		DELETE FROM cart_items g
		WHERE g.cart_id = $2
		  AND EXISTS (
			SELECT 1 FROM cart_items u
			WHERE u.cart_id = $1 AND u.product_id = g.product_id
		  )
		`, userCartID, guestCartID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
		UPDATE cart_items
		SET cart_id = $1
		WHERE cart_id = $2
		`, userCartID, guestCartID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, guestCartID)
		return err
	})
}
