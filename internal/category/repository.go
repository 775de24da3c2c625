package category

import (
	"context"
	"database/sql"

	"storefront-be/internal/db"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type repository struct {
	db db.DBTX
}

func NewRepository(dbtx db.DBTX) Repository {
	return &repository{db: dbtx}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	c := &Category{}
	err := r.db.QueryRowContext(ctx, `
	SELECT id, name, slug, description, parent_id, created_at
	FROM categories
	WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	c := &Category{}
	err := r.db.QueryRowContext(ctx, `
	SELECT id, name, slug, description, parent_id, created_at
	FROM categories
	WHERE slug = $1
	`, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) List(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, slug, description, parent_id, created_at
	FROM categories
	ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *repository) Create(ctx context.Context, c *Category) error {
	err := r.db.QueryRowContext(ctx, `
	INSERT INTO categories (id, name, slug, description, parent_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at
	`, c.ID, c.Name, c.Slug, c.Description, c.ParentID).Scan(&c.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
		return ErrDuplicateCategory
	}
	return err
}

func (r *repository) Update(ctx context.Context, c *Category) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE categories
	SET name = $1, description = $2, parent_id = $3
	WHERE id = $4
	`, c.Name, c.Description, c.ParentID, c.ID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1)`, slug,
	).Scan(&exists)
	return exists, err
}
