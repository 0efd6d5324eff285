package category

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrForbidden         = errors.New("forbidden: category is default or does not belong to user")
	ErrInvalidType       = errors.New("invalid category type")
	ErrNameRequired      = errors.New("name is required")
	ErrDuplicateCategory = errors.New("category with this name and type already exists")
)

// Type classifies a category (and the transactions recorded against it).
type Type string

const (
	TypeExpense Type = "expense"
	TypeIncome  Type = "income"
)

func (t Type) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

const (
	DefaultIcon  = "tag"
	DefaultColor = "#6366F1"
)

// Category is a spending or income bucket. Default categories are unowned
// and visible to every user; user categories belong to exactly one owner.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	IsDefault bool      `json:"isDefault"`
	UserID    *int64    `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ViewableBy reports whether the user may read the category.
func (c *Category) ViewableBy(userID int64) bool {
	return c.IsDefault || (c.UserID != nil && *c.UserID == userID)
}

// MutableBy reports whether the user may update or delete the category.
// Default categories are immutable for everyone.
func (c *Category) MutableBy(userID int64) bool {
	return !c.IsDefault && c.UserID != nil && *c.UserID == userID
}

type CreateCategoryParams struct {
	Name  string
	Type  Type
	Icon  string
	Color string
}

func (p *CreateCategoryParams) Validate() error {
	if !p.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

type UpdateCategoryParams struct {
	Name  *string
	Icon  *string
	Color *string
}

func (p *UpdateCategoryParams) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// Seed describes one entry of the canonical default-category set.
type Seed struct {
	Name  string
	Type  Type
	Icon  string
	Color string
}
