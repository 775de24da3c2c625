package admin

import (
	"context"
	"database/sql"
)

type Repository interface {
	ProductStats(ctx context.Context) (*ProductStats, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

func (r *repository) ProductStats(ctx context.Context) (*ProductStats, error) {
	stats := &ProductStats{}
	err := r.db.QueryRowContext(ctx, `
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE is_published),
		COUNT(*) FILTER (WHERE is_published AND stock <= $1)
	FROM products
	`, LowStockThreshold).Scan(&stats.Total, &stats.Published, &stats.LowStock)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
