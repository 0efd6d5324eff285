package category

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Service contains the business logic for category operations
type Service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the categories visible to the user: the default set plus
// the user's own, sorted by name.
func (s *Service) List(ctx context.Context, userID int64) ([]*Category, error) {
	return s.repo.ListVisible(ctx, userID)
}

// ListByType returns visible categories of a single type.
func (s *Service) ListByType(ctx context.Context, userID int64, t Type) ([]*Category, error) {
	if !t.Valid() {
		return nil, ErrInvalidType
	}
	return s.repo.ListVisibleByType(ctx, userID, t)
}

// Create creates a user category. Duplicate (name, type) pairs for the same
// owner are rejected; the pre-check here is a courtesy and the store's
// unique index is the guarantee under concurrent creates.
func (s *Service) Create(ctx context.Context, userID int64, params CreateCategoryParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(params.Name)

	existing, err := s.repo.FindOwned(ctx, userID, name, params.Type)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateCategory
	}

	icon := params.Icon
	if icon == "" {
		icon = DefaultIcon
	}
	color := params.Color
	if color == "" {
		color = DefaultColor
	}

	return s.repo.Create(ctx, &Category{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      params.Type,
		Icon:      icon,
		Color:     color,
		IsDefault: false,
		UserID:    &userID,
	})
}

// Update applies the supplied fields to a user-owned category. Type and
// ownership are never mutable.
func (s *Service) Update(ctx context.Context, userID int64, id string, params UpdateCategoryParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCategoryNotFound
	}
	if !existing.MutableBy(userID) {
		return nil, ErrForbidden
	}

	if params.Name != nil {
		trimmed := strings.TrimSpace(*params.Name)
		params.Name = &trimmed
	}

	return s.repo.Update(ctx, id, params)
}

// Delete removes a user-owned category. Transactions referencing it keep
// their now-dangling reference; deletion neither cascades nor is blocked.
func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCategoryNotFound
	}
	if !existing.MutableBy(userID) {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}

// ReseedDefaults replaces the entire default-category set with the given
// seeds. Privileged: only the admin CLI calls this.
func (s *Service) ReseedDefaults(ctx context.Context, seeds []Seed) ([]*Category, error) {
	for i := range seeds {
		if !seeds[i].Type.Valid() {
			return nil, ErrInvalidType
		}
		if strings.TrimSpace(seeds[i].Name) == "" {
			return nil, ErrNameRequired
		}
	}
	return s.repo.ReplaceDefaults(ctx, seeds)
}
