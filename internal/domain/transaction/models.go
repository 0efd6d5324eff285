package transaction

import (
	"errors"
	"strings"
	"time"

	"tally/internal/domain/category"
)

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrForbidden            = errors.New("forbidden: transaction does not belong to user")
	ErrInvalidType          = errors.New("invalid transaction type")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrDescriptionRequired  = errors.New("description is required")
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")
	ErrCategoryForbidden    = errors.New("cannot use another user's category")
)

// CategoryRef carries the display fields of the referenced category,
// resolved by the repository on every read. Nil when the category has been
// deleted out from under the transaction.
type CategoryRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Transaction is a single recorded money movement.
type Transaction struct {
	ID          string        `json:"id"`
	Type        category.Type `json:"type"`
	Amount      float64       `json:"amount"`
	Description string        `json:"description"`
	Date        time.Time     `json:"date"`
	CategoryID  string        `json:"categoryId"`
	Category    *CategoryRef  `json:"category,omitempty"`
	UserID      int64         `json:"userId"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// OwnedBy reports whether the user owns the transaction. There is no
// shared-transaction concept; only the owner may read or mutate.
func (t *Transaction) OwnedBy(userID int64) bool {
	return t.UserID == userID
}

type CreateTransactionParams struct {
	Type        category.Type
	Amount      float64
	Description string
	Date        *time.Time
	CategoryID  string
}

func (p *CreateTransactionParams) Validate() error {
	if !p.Type.Valid() {
		return ErrInvalidType
	}
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(p.Description) == "" {
		return ErrDescriptionRequired
	}
	return nil
}

type UpdateTransactionParams struct {
	Amount      *float64
	Description *string
	Date        *time.Time
	CategoryID  *string
}

func (p *UpdateTransactionParams) Validate() error {
	if p.Amount != nil && *p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return ErrDescriptionRequired
	}
	return nil
}

// Filter is a conjunction of optional listing constraints. Every listing is
// additionally scoped to the owner.
type Filter struct {
	Type       *category.Type
	CategoryID *string
	StartDate  *time.Time
	EndDate    *time.Time
}

// Page is one slice of a filtered listing, date descending.
type Page struct {
	Items []*Transaction `json:"transactions"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
	Total int64          `json:"total"`
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)
