package transaction

import (
	"context"
)

// Repository defines the interface for transaction data access
type Repository interface {
	// Create persists the transaction and returns it with the category
	// reference resolved.
	Create(ctx context.Context, t *Transaction) (*Transaction, error)
	// GetByID returns (nil, nil) when the id does not resolve.
	GetByID(ctx context.Context, id string) (*Transaction, error)
	// List returns one page of the user's transactions matching the filter,
	// date descending.
	List(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Transaction, error)
	// Count returns the total number of the user's transactions matching
	// the filter.
	Count(ctx context.Context, userID int64, filter Filter) (int64, error)
	Update(ctx context.Context, id string, params UpdateTransactionParams) (*Transaction, error)
	Delete(ctx context.Context, id string) error
}
