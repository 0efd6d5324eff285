package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tally/internal/domain/category"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = `id, name, type, icon, color, is_default, user_id, created_at, updated_at`

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	query := `
		INSERT INTO categories (id, name, type, icon, color, is_default, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + categoryColumns

	var out category.Category
	err := r.db.QueryRowContext(
		ctx, query,
		c.ID, c.Name, c.Type, c.Icon, c.Color, c.IsDefault, c.UserID,
	).Scan(
		&out.ID, &out.Name, &out.Type, &out.Icon, &out.Color,
		&out.IsDefault, &out.UserID, &out.CreatedAt, &out.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return nil, category.ErrDuplicateCategory
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Type, &c.Icon, &c.Color,
		&c.IsDefault, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &c, nil
}

func (r *CategoryRepository) ListVisible(ctx context.Context, userID int64) ([]*category.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE is_default OR user_id = $1
		ORDER BY name ASC
	`

	return r.queryCategories(ctx, query, userID)
}

func (r *CategoryRepository) ListVisibleByType(ctx context.Context, userID int64, t category.Type) ([]*category.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE type = $2 AND (is_default OR user_id = $1)
		ORDER BY name ASC
	`

	return r.queryCategories(ctx, query, userID, t)
}

func (r *CategoryRepository) FindOwned(ctx context.Context, userID int64, name string, t category.Type) (*category.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1 AND name = $2 AND type = $3
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, userID, name, t).Scan(
		&c.ID, &c.Name, &c.Type, &c.Icon, &c.Color,
		&c.IsDefault, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find owned category: %w", err)
	}

	return &c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id string, params category.UpdateCategoryParams) (*category.Category, error) {
	query := `
		UPDATE categories
		SET name = COALESCE($1, name),
		    icon = COALESCE($2, icon),
		    color = COALESCE($3, color),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING ` + categoryColumns

	var c category.Category
	err := r.db.QueryRowContext(
		ctx, query,
		params.Name, params.Icon, params.Color, id,
	).Scan(
		&c.ID, &c.Name, &c.Type, &c.Icon, &c.Color,
		&c.IsDefault, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if isUniqueViolation(err) {
		return nil, category.ErrDuplicateCategory
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

// ReplaceDefaults swaps out the entire default set in one transaction so
// readers never observe a half-seeded state.
func (r *CategoryRepository) ReplaceDefaults(ctx context.Context, seeds []category.Seed) ([]*category.Category, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE is_default`); err != nil {
		return nil, fmt.Errorf("failed to delete default categories: %w", err)
	}

	insert := `
		INSERT INTO categories (id, name, type, icon, color, is_default, user_id)
		VALUES ($1, $2, $3, $4, $5, TRUE, NULL)
		RETURNING ` + categoryColumns

	created := make([]*category.Category, 0, len(seeds))
	for _, seed := range seeds {
		var c category.Category
		err := tx.QueryRowContext(
			ctx, insert,
			uuid.New().String(), seed.Name, seed.Type, seed.Icon, seed.Color,
		).Scan(
			&c.ID, &c.Name, &c.Type, &c.Icon, &c.Color,
			&c.IsDefault, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert default category %q: %w", seed.Name, err)
		}
		created = append(created, &c)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit default categories: %w", err)
	}

	return created, nil
}

func (r *CategoryRepository) queryCategories(ctx context.Context, query string, args ...any) ([]*category.Category, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		var c category.Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.Type, &c.Icon, &c.Color,
			&c.IsDefault, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}
