package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, int, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type repository struct {
	db db.DBTX
}

func NewRepository(dbtx db.DBTX) Repository {
	return &repository{db: dbtx}
}

const productColumns = `
	id,
	name,
	slug,
	description,
	price,
	stock,
	sku,
	image_url,
	is_published,
	category_id,
	created_at,
	updated_at
`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	p := &Product{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.SKU,
		&p.ImageURL,
		&p.IsPublished,
		&p.CategoryID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT `+productColumns+`
	FROM products
	WHERE id = $1
	`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT `+productColumns+`
	FROM products
	WHERE slug = $1
	`, slug)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	start := time.Now()

	// ---------- where ----------
	where := []string{"1=1"}
	args := []any{}

	if opts.OnlyPublished {
		where = append(where, "is_published = TRUE")
	}

	if opts.CategoryID != nil {
		args = append(args, *opts.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}

	if opts.Search != nil && *opts.Search != "" {
		args = append(args, "%"+*opts.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", len(args), len(args)))
	}

	if opts.MinPrice != nil {
		args = append(args, *opts.MinPrice)
		where = append(where, fmt.Sprintf("price >= $%d", len(args)))
	}

	if opts.MaxPrice != nil {
		args = append(args, *opts.MaxPrice)
		where = append(where, fmt.Sprintf("price <= $%d", len(args)))
	}

	if opts.InStock != nil {
		if *opts.InStock {
			where = append(where, "stock > 0")
		} else {
			where = append(where, "stock = 0")
		}
	}

	whereClause := strings.Join(where, " AND ")

	// ---------- count ----------
	var total int
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM products WHERE `+whereClause,
		args...,
	).Scan(&total)
	if err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	// ---------- sort ----------
	orderBy := "created_at"
	switch opts.SortBy {
	case "price":
		orderBy = "price"
	case "name":
		orderBy = "name"
	case "stock":
		orderBy = "stock"
	}

	dir := "DESC"
	if strings.EqualFold(opts.SortOrder, "asc") {
		dir = "ASC"
	}

	// ---------- page ----------
	limit := opts.Limit
	offset := (opts.Page - 1) * limit

	query := `
	SELECT ` + productColumns + `
	FROM products
	WHERE ` + whereClause + `
	ORDER BY ` + orderBy + ` ` + dir + `
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, 0, err
	}
	defer rows.Close()

	result := make([]*Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	log.Debug("product list query success",
		zap.Int("rows", len(result)),
		zap.Int("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return result, total, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	row := r.db.QueryRowContext(ctx, `
	INSERT INTO products (
		id, name, slug, description, price, stock, sku, image_url, is_published, category_id
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at
	`,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.Stock, p.SKU, p.ImageURL, p.IsPublished, p.CategoryID,
	)

	err := row.Scan(&p.CreatedAt, &p.UpdatedAt)
	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == PgUniqueViolation {
		return ErrDuplicateSKU
	}
	return err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Product, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Price != nil {
		addSet("price", *patch.Price)
	}
	if patch.Stock != nil {
		addSet("stock", *patch.Stock)
	}
	if patch.ImageURL != nil {
		addSet("image_url", *patch.ImageURL)
	}
	if patch.IsPublished != nil {
		addSet("is_published", *patch.IsPublished)
	}
	if patch.CategoryID != nil {
		addSet("category_id", *patch.CategoryID)
	}

	args = append(args, id)

	query := `
	UPDATE products
	SET ` + strings.Join(set, ", ") + `
	WHERE id = $` + fmt.Sprint(len(args)) + `
	RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1)`, slug,
	).Scan(&exists)
	return exists, err
}
