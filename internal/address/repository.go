package address

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Address, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Address, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Create(ctx context.Context, a *Address) error
	Update(ctx context.Context, id uuid.UUID, patch Patch) error
	Delete(ctx context.Context, id uuid.UUID) error
	ClearDefault(ctx context.Context, userID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

const addressColumns = `
	id, user_id, label, recipient, phone, line1, line2,
	city, province, postal_code, country, is_default, created_at, updated_at`

func scanAddress(row interface{ Scan(...any) error }) (*Address, error) {
	a := &Address{}
	err := row.Scan(
		&a.ID, &a.UserID, &a.Label, &a.Recipient, &a.Phone,
		&a.Line1, &a.Line2, &a.City, &a.Province, &a.PostalCode,
		&a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Address, error) {
	a, err := scanAddress(r.db.QueryRowContext(ctx, `
	SELECT `+addressColumns+`
	FROM addresses
	WHERE id = $1
	`, id))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Address, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT `+addressColumns+`
	FROM addresses
	WHERE user_id = $1
	ORDER BY is_default DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := make([]*Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *repository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM addresses WHERE user_id = $1
	`, userID).Scan(&count)
	return count, err
}

func (r *repository) Create(ctx context.Context, a *Address) error {
	return r.db.QueryRowContext(ctx, `
	INSERT INTO addresses (
		id, user_id, label, recipient, phone, line1, line2,
		city, province, postal_code, country, is_default
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING created_at, updated_at
	`,
		a.ID, a.UserID, a.Label, a.Recipient, a.Phone, a.Line1, a.Line2,
		a.City, a.Province, a.PostalCode, a.Country, a.IsDefault,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, patch Patch) error {
	sets := []string{}
	args := []any{}
	i := 1

	addSet := func(col string, val any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	if patch.Label != nil {
		addSet("label", *patch.Label)
	}
	if patch.Recipient != nil {
		addSet("recipient", *patch.Recipient)
	}
	if patch.Phone != nil {
		addSet("phone", *patch.Phone)
	}
	if patch.Line1 != nil {
		addSet("line1", *patch.Line1)
	}
	if patch.Line2 != nil {
		addSet("line2", *patch.Line2)
	}
	if patch.City != nil {
		addSet("city", *patch.City)
	}
	if patch.Province != nil {
		addSet("province", *patch.Province)
	}
	if patch.PostalCode != nil {
		addSet("postal_code", *patch.PostalCode)
	}
	if patch.Country != nil {
		addSet("country", *patch.Country)
	}
	if patch.IsDefault != nil {
		addSet("is_default", *patch.IsDefault)
	}

	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE addresses SET %s WHERE id = $%d", strings.Join(sets, ", "), i)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *repository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE addresses SET is_default = FALSE WHERE user_id = $1 AND is_default = TRUE
	`, userID)
	return err
}
