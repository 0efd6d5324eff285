package category

import (
	"context"
)

// Repository defines the interface for category data access
type Repository interface {
	Create(ctx context.Context, c *Category) (*Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	// ListVisible returns default categories plus the user's own, name ascending.
	ListVisible(ctx context.Context, userID int64) ([]*Category, error)
	ListVisibleByType(ctx context.Context, userID int64, t Type) ([]*Category, error)
	// FindOwned looks up a user category by (name, type) for the duplicate check.
	// Returns (nil, nil) when no such category exists.
	FindOwned(ctx context.Context, userID int64, name string, t Type) (*Category, error)
	Update(ctx context.Context, id string, params UpdateCategoryParams) (*Category, error)
	Delete(ctx context.Context, id string) error
	// ReplaceDefaults removes every default category and inserts the given
	// seeds as the new default set, in a single transaction.
	ReplaceDefaults(ctx context.Context, seeds []Seed) ([]*Category, error)
}
