package wishlist

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type Repository interface {
	// Add inserts the pair if absent; a repeated add is a silent no-op.
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Item, int, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	Count(ctx context.Context, userID uuid.UUID) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Add(ctx context.Context, userID, productID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO wishlist_items (id, user_id, product_id)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, product_id) DO NOTHING
	`, uuid.New(), userID, productID)
	return err
}

func (r *repository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
	DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
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

func (r *repository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
	SELECT EXISTS(SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)
	`, userID, productID).Scan(&exists)
	return exists, err
}

func (r *repository) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Item, int, error) {
	total, err := r.Count(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
	SELECT w.id, w.user_id, w.product_id, w.added_at,
		p.name, p.price, p.image_url, p.stock > 0, p.is_published
	FROM wishlist_items w
	JOIN products p ON p.id = w.product_id
	WHERE w.user_id = $1
	ORDER BY w.added_at DESC
	LIMIT $2 OFFSET $3
	`, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]*Item, 0)
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.AddedAt,
			&item.ProductName, &item.ProductPrice, &item.ProductImage,
			&item.InStock, &item.IsPublished,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

func (r *repository) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE user_id = $1`, userID)
	return err
}

func (r *repository) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM wishlist_items WHERE user_id = $1
	`, userID).Scan(&count)
	return count, err
}
