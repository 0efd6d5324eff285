package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"tally/internal/domain/category"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc  func(ctx context.Context, tx *Transaction) (*Transaction, error)
	GetByIDFunc func(ctx context.Context, id string) (*Transaction, error)
	ListFunc    func(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Transaction, error)
	CountFunc   func(ctx context.Context, userID int64, filter Filter) (int64, error)
	UpdateFunc  func(ctx context.Context, id string, params UpdateTransactionParams) (*Transaction, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockRepository) Create(ctx context.Context, tx *Transaction) (*Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx)
	}
	return tx, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRepository) List(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter, limit, offset)
	}
	return nil, nil
}

func (m *MockRepository) Count(ctx context.Context, userID int64, filter Filter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, userID, filter)
	}
	return 0, nil
}

func (m *MockRepository) Update(ctx context.Context, id string, params UpdateTransactionParams) (*Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockCategoryRepo satisfies category.Repository with a fixed lookup table.
type mockCategoryRepo struct {
	categories map[string]*category.Category
}

func (m *mockCategoryRepo) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	return c, nil
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id string) (*category.Category, error) {
	return m.categories[id], nil
}

func (m *mockCategoryRepo) ListVisible(ctx context.Context, userID int64) ([]*category.Category, error) {
	return nil, nil
}

func (m *mockCategoryRepo) ListVisibleByType(ctx context.Context, userID int64, t category.Type) ([]*category.Category, error) {
	return nil, nil
}

func (m *mockCategoryRepo) FindOwned(ctx context.Context, userID int64, name string, t category.Type) (*category.Category, error) {
	return nil, nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, id string, params category.UpdateCategoryParams) (*category.Category, error) {
	return nil, nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockCategoryRepo) ReplaceDefaults(ctx context.Context, seeds []category.Seed) ([]*category.Category, error) {
	return nil, nil
}

type recordedEvent struct {
	userID int64
	id     string
	action string
}

type mockPublisher struct {
	events []recordedEvent
	err    error
}

func (m *mockPublisher) LedgerChanged(ctx context.Context, userID int64, transactionID, action string) error {
	m.events = append(m.events, recordedEvent{userID, transactionID, action})
	return m.err
}

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }
func strPtr(v string) *string       { return &v }

func testCategories() *mockCategoryRepo {
	return &mockCategoryRepo{categories: map[string]*category.Category{
		"cat-groceries": {ID: "cat-groceries", Name: "Groceries", Type: category.TypeExpense, IsDefault: true},
		"cat-salary":    {ID: "cat-salary", Name: "Salary", Type: category.TypeIncome, IsDefault: true},
		"cat-mine":      {ID: "cat-mine", Name: "Coffee", Type: category.TypeExpense, UserID: int64Ptr(1)},
		"cat-theirs":    {ID: "cat-theirs", Name: "Books", Type: category.TypeExpense, UserID: int64Ptr(2)},
	}}
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		params  CreateTransactionParams
		errType error
	}{
		{
			name:   "SuccessDefaultCategory",
			params: CreateTransactionParams{Type: category.TypeExpense, Amount: 42.5, Description: "weekly shop", CategoryID: "cat-groceries"},
		},
		{
			name:   "SuccessOwnCategory",
			params: CreateTransactionParams{Type: category.TypeExpense, Amount: 4.2, Description: "espresso", CategoryID: "cat-mine"},
		},
		{
			name:    "InvalidType",
			params:  CreateTransactionParams{Type: "transfer", Amount: 10, Description: "x", CategoryID: "cat-groceries"},
			errType: ErrInvalidType,
		},
		{
			name:    "ZeroAmount",
			params:  CreateTransactionParams{Type: category.TypeExpense, Amount: 0, Description: "x", CategoryID: "cat-groceries"},
			errType: ErrInvalidAmount,
		},
		{
			name:    "NegativeAmount",
			params:  CreateTransactionParams{Type: category.TypeExpense, Amount: -5, Description: "x", CategoryID: "cat-groceries"},
			errType: ErrInvalidAmount,
		},
		{
			name:    "BlankDescription",
			params:  CreateTransactionParams{Type: category.TypeExpense, Amount: 10, Description: "  ", CategoryID: "cat-groceries"},
			errType: ErrDescriptionRequired,
		},
		{
			name:    "CategoryMissing",
			params:  CreateTransactionParams{Type: category.TypeExpense, Amount: 10, Description: "x", CategoryID: "cat-nope"},
			errType: category.ErrCategoryNotFound,
		},
		{
			name:    "CategoryTypeMismatch",
			params:  CreateTransactionParams{Type: category.TypeIncome, Amount: 10, Description: "x", CategoryID: "cat-groceries"},
			errType: ErrCategoryTypeMismatch,
		},
		{
			name:    "ForeignCategory",
			params:  CreateTransactionParams{Type: category.TypeExpense, Amount: 10, Description: "x", CategoryID: "cat-theirs"},
			errType: ErrCategoryForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(&MockRepository{}, testCategories(), nil)
			created, err := service.Create(ctx, 1, tt.params)

			if tt.errType != nil {
				if !errors.Is(err, tt.errType) {
					t.Fatalf("Create() error = %v, want %v", err, tt.errType)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() unexpected error: %v", err)
			}
			if created.ID == "" {
				t.Error("expected a generated id")
			}
			if created.UserID != 1 {
				t.Errorf("UserID = %d, want 1", created.UserID)
			}
		})
	}
}

func TestCreateTransactionDateDefaultsToNow(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	service := NewService(&MockRepository{}, testCategories(), nil)
	service.now = func() time.Time { return fixed }

	created, err := service.Create(ctx, 1, CreateTransactionParams{
		Type: category.TypeExpense, Amount: 10, Description: "x", CategoryID: "cat-groceries",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if !created.Date.Equal(fixed) {
		t.Errorf("Date = %v, want %v", created.Date, fixed)
	}

	explicit := fixed.AddDate(0, 0, -3)
	created, err = service.Create(ctx, 1, CreateTransactionParams{
		Type: category.TypeExpense, Amount: 10, Description: "x", CategoryID: "cat-groceries", Date: &explicit,
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if !created.Date.Equal(explicit) {
		t.Errorf("Date = %v, want explicit %v", created.Date, explicit)
	}
}

func TestCreateTransactionPublishesEvent(t *testing.T) {
	ctx := context.Background()
	pub := &mockPublisher{}

	service := NewService(&MockRepository{}, testCategories(), pub)
	created, err := service.Create(ctx, 1, CreateTransactionParams{
		Type: category.TypeExpense, Amount: 10, Description: "x", CategoryID: "cat-groceries",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	ev := pub.events[0]
	if ev.action != "created" || ev.id != created.ID || ev.userID != 1 {
		t.Errorf("event = %+v, want created/%s/1", ev, created.ID)
	}
}

func TestPublisherFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	pub := &mockPublisher{err: errors.New("broker down")}

	service := NewService(&MockRepository{}, testCategories(), pub)
	if _, err := service.Create(ctx, 1, CreateTransactionParams{
		Type: category.TypeExpense, Amount: 10, Description: "x", CategoryID: "cat-groceries",
	}); err != nil {
		t.Fatalf("Create() must succeed despite publisher error, got: %v", err)
	}
}

func TestGetTransaction(t *testing.T) {
	ctx := context.Background()

	owned := &Transaction{ID: "tx-1", UserID: 1, Type: category.TypeExpense, Amount: 10}
	foreign := &Transaction{ID: "tx-2", UserID: 2, Type: category.TypeExpense, Amount: 10}

	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*Transaction, error) {
			switch id {
			case "tx-1":
				return owned, nil
			case "tx-2":
				return foreign, nil
			}
			return nil, nil
		},
	}
	service := NewService(repo, testCategories(), nil)

	if got, err := service.Get(ctx, 1, "tx-1"); err != nil || got.ID != "tx-1" {
		t.Fatalf("Get() = %v, %v; want tx-1, nil", got, err)
	}
	if _, err := service.Get(ctx, 1, "tx-missing"); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("Get() error = %v, want %v", err, ErrTransactionNotFound)
	}
	if _, err := service.Get(ctx, 1, "tx-2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Get() error = %v, want %v", err, ErrForbidden)
	}
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()

	existing := &Transaction{ID: "tx-1", UserID: 1, Type: category.TypeExpense, Amount: 10, CategoryID: "cat-groceries"}

	newRepo := func() *MockRepository {
		return &MockRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*Transaction, error) {
				if id == "tx-1" {
					return existing, nil
				}
				return nil, nil
			},
			UpdateFunc: func(ctx context.Context, id string, params UpdateTransactionParams) (*Transaction, error) {
				out := *existing
				if params.Amount != nil {
					out.Amount = *params.Amount
				}
				if params.CategoryID != nil {
					out.CategoryID = *params.CategoryID
				}
				return &out, nil
			},
		}
	}

	t.Run("Success", func(t *testing.T) {
		pub := &mockPublisher{}
		service := NewService(newRepo(), testCategories(), pub)

		updated, err := service.Update(ctx, 1, "tx-1", UpdateTransactionParams{Amount: float64Ptr(25)})
		if err != nil {
			t.Fatalf("Update() unexpected error: %v", err)
		}
		if updated.Amount != 25 {
			t.Errorf("Amount = %v, want 25", updated.Amount)
		}
		if len(pub.events) != 1 || pub.events[0].action != "updated" {
			t.Errorf("expected one updated event, got %+v", pub.events)
		}
	})

	t.Run("CategoryChangeChecksExistingType", func(t *testing.T) {
		service := NewService(newRepo(), testCategories(), nil)

		// Switching an expense transaction to an income category must fail.
		_, err := service.Update(ctx, 1, "tx-1", UpdateTransactionParams{CategoryID: strPtr("cat-salary")})
		if !errors.Is(err, ErrCategoryTypeMismatch) {
			t.Fatalf("Update() error = %v, want %v", err, ErrCategoryTypeMismatch)
		}

		// A same-type category is fine.
		updated, err := service.Update(ctx, 1, "tx-1", UpdateTransactionParams{CategoryID: strPtr("cat-mine")})
		if err != nil {
			t.Fatalf("Update() unexpected error: %v", err)
		}
		if updated.CategoryID != "cat-mine" {
			t.Errorf("CategoryID = %q, want cat-mine", updated.CategoryID)
		}
	})

	t.Run("UnchangedCategorySkipsCheck", func(t *testing.T) {
		// Re-submitting the current category id must not re-validate it, so
		// a transaction whose category was deleted can still be updated.
		repo := newRepo()
		dangling := *existing
		dangling.CategoryID = "cat-deleted"
		repo.GetByIDFunc = func(ctx context.Context, id string) (*Transaction, error) {
			return &dangling, nil
		}
		service := NewService(repo, testCategories(), nil)

		if _, err := service.Update(ctx, 1, "tx-1", UpdateTransactionParams{
			CategoryID: strPtr("cat-deleted"),
			Amount:     float64Ptr(30),
		}); err != nil {
			t.Fatalf("Update() unexpected error: %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		service := NewService(newRepo(), testCategories(), nil)
		if _, err := service.Update(ctx, 1, "tx-missing", UpdateTransactionParams{Amount: float64Ptr(1)}); !errors.Is(err, ErrTransactionNotFound) {
			t.Fatalf("Update() error = %v, want %v", err, ErrTransactionNotFound)
		}
	})

	t.Run("Forbidden", func(t *testing.T) {
		service := NewService(newRepo(), testCategories(), nil)
		if _, err := service.Update(ctx, 2, "tx-1", UpdateTransactionParams{Amount: float64Ptr(1)}); !errors.Is(err, ErrForbidden) {
			t.Fatalf("Update() error = %v, want %v", err, ErrForbidden)
		}
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		service := NewService(newRepo(), testCategories(), nil)
		if _, err := service.Update(ctx, 1, "tx-1", UpdateTransactionParams{Amount: float64Ptr(-1)}); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Update() error = %v, want %v", err, ErrInvalidAmount)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()

	owned := &Transaction{ID: "tx-1", UserID: 1}
	pub := &mockPublisher{}
	deleted := false

	service := NewService(&MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*Transaction, error) {
			if id == "tx-1" {
				return owned, nil
			}
			return nil, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}, testCategories(), pub)

	if err := service.Delete(ctx, 1, "tx-1"); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if !deleted {
		t.Error("repository Delete was not called")
	}
	if len(pub.events) != 1 || pub.events[0].action != "deleted" {
		t.Errorf("expected one deleted event, got %+v", pub.events)
	}

	if err := service.Delete(ctx, 1, "tx-missing"); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("Delete() error = %v, want %v", err, ErrTransactionNotFound)
	}
	if err := service.Delete(ctx, 2, "tx-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Delete() error = %v, want %v", err, ErrForbidden)
	}
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("PaginationDefaults", func(t *testing.T) {
		var gotLimit, gotOffset int
		service := NewService(&MockRepository{
			CountFunc: func(ctx context.Context, userID int64, filter Filter) (int64, error) {
				return 25, nil
			},
			ListFunc: func(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Transaction, error) {
				gotLimit, gotOffset = limit, offset
				return []*Transaction{{ID: "tx-1", UserID: userID}}, nil
			},
		}, testCategories(), nil)

		page, err := service.List(ctx, 1, Filter{}, 0, 0)
		if err != nil {
			t.Fatalf("List() unexpected error: %v", err)
		}
		if gotLimit != DefaultPageSize || gotOffset != 0 {
			t.Errorf("limit/offset = %d/%d, want %d/0", gotLimit, gotOffset, DefaultPageSize)
		}
		if page.Page != 1 || page.Total != 25 || page.Pages != 3 {
			t.Errorf("page meta = %d/%d/%d, want 1/3/25", page.Page, page.Pages, page.Total)
		}
	})

	t.Run("SecondPageOffset", func(t *testing.T) {
		var gotOffset int
		service := NewService(&MockRepository{
			CountFunc: func(ctx context.Context, userID int64, filter Filter) (int64, error) {
				return 12, nil
			},
			ListFunc: func(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Transaction, error) {
				gotOffset = offset
				return nil, nil
			},
		}, testCategories(), nil)

		page, err := service.List(ctx, 1, Filter{}, 2, 5)
		if err != nil {
			t.Fatalf("List() unexpected error: %v", err)
		}
		if gotOffset != 5 {
			t.Errorf("offset = %d, want 5", gotOffset)
		}
		if page.Pages != 3 {
			t.Errorf("Pages = %d, want 3", page.Pages)
		}
		if page.Items == nil || len(page.Items) != 0 {
			t.Errorf("Items must be an empty slice, got %v", page.Items)
		}
	})

	t.Run("InvalidTypeFilter", func(t *testing.T) {
		bad := category.Type("transfer")
		service := NewService(&MockRepository{}, testCategories(), nil)
		if _, err := service.List(ctx, 1, Filter{Type: &bad}, 1, 10); !errors.Is(err, ErrInvalidType) {
			t.Fatalf("List() error = %v, want %v", err, ErrInvalidType)
		}
	})

	t.Run("EmptyResult", func(t *testing.T) {
		service := NewService(&MockRepository{}, testCategories(), nil)
		page, err := service.List(ctx, 1, Filter{}, 1, 10)
		if err != nil {
			t.Fatalf("List() unexpected error: %v", err)
		}
		if page.Total != 0 || page.Pages != 0 || len(page.Items) != 0 {
			t.Errorf("expected empty page, got %+v", page)
		}
	})
}
