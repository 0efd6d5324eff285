package user

import "context"

// Repository defines the interface for user data access. The lookups
// return (nil, nil) when no user matches.
type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id int64, params UpdateUserParams) (*User, error)
}
