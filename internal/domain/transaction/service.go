package transaction

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"tally/internal/domain/category"
)

// EventPublisher receives a notification after every committed write.
// Implementations must not block the request path for long; failures are
// logged here and never surfaced, the write has already committed.
type EventPublisher interface {
	LedgerChanged(ctx context.Context, userID int64, transactionID, action string) error
}

// Service contains the business logic for transaction operations
type Service struct {
	repo       Repository
	categories category.Repository
	events     EventPublisher
	now        func() time.Time
}

// NewService creates a new transaction service. events may be nil.
func NewService(repo Repository, categories category.Repository, events EventPublisher) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		events:     events,
		now:        time.Now,
	}
}

// Create records a new transaction for the user. The referenced category
// must exist, match the transaction type, and be a default or one of the
// user's own.
func (s *Service) Create(ctx context.Context, userID int64, params CreateTransactionParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, userID, params.CategoryID, params.Type); err != nil {
		return nil, err
	}

	date := s.now()
	if params.Date != nil {
		date = *params.Date
	}

	created, err := s.repo.Create(ctx, &Transaction{
		ID:          uuid.New().String(),
		Type:        params.Type,
		Amount:      params.Amount,
		Description: params.Description,
		Date:        date,
		CategoryID:  params.CategoryID,
		UserID:      userID,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, userID, created.ID, "created")
	return created, nil
}

// Get returns the user's transaction with its category reference resolved.
func (s *Service) Get(ctx context.Context, userID int64, id string) (*Transaction, error) {
	return s.getOwned(ctx, userID, id)
}

// Update applies the supplied fields. A category change is re-validated
// against the transaction's existing type; the type itself is immutable.
func (s *Service) Update(ctx context.Context, userID int64, id string, params UpdateTransactionParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.CategoryID != nil && *params.CategoryID != existing.CategoryID {
		if err := s.checkCategory(ctx, userID, *params.CategoryID, existing.Type); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, userID, id, "updated")
	return updated, nil
}

// Delete removes the user's transaction.
func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, userID, id, "deleted")
	return nil
}

// List returns one page of the user's transactions, date descending.
// Page and pageSize fall back to their defaults when non-positive.
func (s *Service) List(ctx context.Context, userID int64, filter Filter, page, pageSize int) (*Page, error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, ErrInvalidType
	}
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total, err := s.repo.Count(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, userID, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Transaction{}
	}

	pages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &Page{
		Items: items,
		Page:  page,
		Pages: pages,
		Total: total,
	}, nil
}

// getOwned resolves the transaction and enforces ownership. Existence is
// checked first, so a missing foreign id reads as not found.
func (s *Service) getOwned(ctx context.Context, userID int64, id string) (*Transaction, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTransactionNotFound
	}
	if !t.OwnedBy(userID) {
		return nil, ErrForbidden
	}
	return t, nil
}

// checkCategory runs the category-side invariants for a create or a
// category change: existence, type match, then visibility.
func (s *Service) checkCategory(ctx context.Context, userID int64, categoryID string, t category.Type) error {
	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return category.ErrCategoryNotFound
	}
	if cat.Type != t {
		return ErrCategoryTypeMismatch
	}
	if !cat.ViewableBy(userID) {
		return ErrCategoryForbidden
	}
	return nil
}

func (s *Service) publish(ctx context.Context, userID int64, id, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.LedgerChanged(ctx, userID, id, action); err != nil {
		log.Printf("Error publishing ledger event for transaction %s: %v", id, err)
	}
}
