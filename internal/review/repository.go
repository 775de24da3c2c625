package review

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository interface {
	Create(ctx context.Context, rev *Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	GetByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, status Status, page, limit int) ([]*Review, int, error)
	ListByStatus(ctx context.Context, status Status, page, limit int) ([]*Review, int, error)
	UpdateContent(ctx context.Context, rev *Review) error
	SetStatus(ctx context.Context, rev *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context, productID uuid.UUID) (*RatingSummary, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

const reviewColumns = `
	id, product_id, user_id, rating, title, body, status,
	moderated_by, moderated_at, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (*Review, error) {
	rev := &Review{}
	err := row.Scan(
		&rev.ID, &rev.ProductID, &rev.UserID, &rev.Rating, &rev.Title,
		&rev.Body, &rev.Status, &rev.ModeratedBy, &rev.ModeratedAt,
		&rev.CreatedAt, &rev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rev, nil
}

func (r *repository) Create(ctx context.Context, rev *Review) error {
	err := r.db.QueryRowContext(ctx, `
	INSERT INTO reviews (id, product_id, user_id, rating, title, body, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, updated_at
	`,
		rev.ID, rev.ProductID, rev.UserID, rev.Rating, rev.Title, rev.Body, rev.Status,
	).Scan(&rev.CreatedAt, &rev.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == PgUniqueViolation {
		return ErrDuplicateReview
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	rev, err := scanReview(r.db.QueryRowContext(ctx, `
	SELECT `+reviewColumns+` FROM reviews WHERE id = $1
	`, id))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rev, err
}

func (r *repository) GetByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*Review, error) {
	rev, err := scanReview(r.db.QueryRowContext(ctx, `
	SELECT `+reviewColumns+` FROM reviews WHERE user_id = $1 AND product_id = $2
	`, userID, productID))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rev, err
}

func (r *repository) ListByProduct(ctx context.Context, productID uuid.UUID, status Status, page, limit int) ([]*Review, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM reviews WHERE product_id = $1 AND status = $2
	`, productID, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
	SELECT `+reviewColumns+`
	FROM reviews
	WHERE product_id = $1 AND status = $2
	ORDER BY created_at DESC
	LIMIT $3 OFFSET $4
	`, productID, status, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reviews, err := collect(rows)
	return reviews, total, err
}

func (r *repository) ListByStatus(ctx context.Context, status Status, page, limit int) ([]*Review, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM reviews WHERE status = $1
	`, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
	SELECT `+reviewColumns+`
	FROM reviews
	WHERE status = $1
	ORDER BY created_at ASC
	LIMIT $2 OFFSET $3
	`, status, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reviews, err := collect(rows)
	return reviews, total, err
}

func collect(rows *sql.Rows) ([]*Review, error) {
	reviews := make([]*Review, 0)
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

// UpdateContent rewrites the review text and resets it to the pending queue,
// clearing any previous moderation verdict.
func (r *repository) UpdateContent(ctx context.Context, rev *Review) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE reviews
	SET rating = $1, title = $2, body = $3, status = $4,
		moderated_by = NULL, moderated_at = NULL, updated_at = NOW()
	WHERE id = $5
	`, rev.Rating, rev.Title, rev.Body, rev.Status, rev.ID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, rev *Review) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE reviews
	SET status = $1, moderated_by = $2, moderated_at = $3, updated_at = NOW()
	WHERE id = $4
	`, rev.Status, rev.ModeratedBy, rev.ModeratedAt, rev.ID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *repository) Summary(ctx context.Context, productID uuid.UUID) (*RatingSummary, error) {
	s := &RatingSummary{}
	err := r.db.QueryRowContext(ctx, `
	SELECT COALESCE(AVG(rating), 0), COUNT(*)
	FROM reviews
	WHERE product_id = $1 AND status = 'approved'
	`, productID).Scan(&s.Average, &s.Count)
	return s, err
}

func (r *repository) CountByStatus(ctx context.Context, status Status) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM reviews WHERE status = $1
	`, status).Scan(&count)
	return count, err
}
