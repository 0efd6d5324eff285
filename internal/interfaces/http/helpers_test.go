package http

import (
	"context"
	"net/http"
	"time"

	"tally/internal/domain/category"
	"tally/internal/domain/transaction"
	"tally/internal/domain/user"
	"tally/internal/shared/middleware"
)

func authedRequest(req *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func int64Ptr(v int64) *int64 { return &v }

// MockCategoryRepo implements category.Repository for testing
type MockCategoryRepo struct {
	CreateFunc            func(ctx context.Context, c *category.Category) (*category.Category, error)
	GetByIDFunc           func(ctx context.Context, id string) (*category.Category, error)
	ListVisibleFunc       func(ctx context.Context, userID int64) ([]*category.Category, error)
	ListVisibleByTypeFunc func(ctx context.Context, userID int64, t category.Type) ([]*category.Category, error)
	FindOwnedFunc         func(ctx context.Context, userID int64, name string, t category.Type) (*category.Category, error)
	UpdateFunc            func(ctx context.Context, id string, params category.UpdateCategoryParams) (*category.Category, error)
	DeleteFunc            func(ctx context.Context, id string) error
	ReplaceDefaultsFunc   func(ctx context.Context, seeds []category.Seed) ([]*category.Category, error)
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return c, nil
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id string) (*category.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryRepo) ListVisible(ctx context.Context, userID int64) ([]*category.Category, error) {
	if m.ListVisibleFunc != nil {
		return m.ListVisibleFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCategoryRepo) ListVisibleByType(ctx context.Context, userID int64, t category.Type) ([]*category.Category, error) {
	if m.ListVisibleByTypeFunc != nil {
		return m.ListVisibleByTypeFunc(ctx, userID, t)
	}
	return nil, nil
}

func (m *MockCategoryRepo) FindOwned(ctx context.Context, userID int64, name string, t category.Type) (*category.Category, error) {
	if m.FindOwnedFunc != nil {
		return m.FindOwnedFunc(ctx, userID, name, t)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Update(ctx context.Context, id string, params category.UpdateCategoryParams) (*category.Category, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCategoryRepo) ReplaceDefaults(ctx context.Context, seeds []category.Seed) ([]*category.Category, error) {
	if m.ReplaceDefaultsFunc != nil {
		return m.ReplaceDefaultsFunc(ctx, seeds)
	}
	return nil, nil
}

// MockTransactionRepo implements transaction.Repository for testing
type MockTransactionRepo struct {
	CreateFunc  func(ctx context.Context, tx *transaction.Transaction) (*transaction.Transaction, error)
	GetByIDFunc func(ctx context.Context, id string) (*transaction.Transaction, error)
	ListFunc    func(ctx context.Context, userID int64, filter transaction.Filter, limit, offset int) ([]*transaction.Transaction, error)
	CountFunc   func(ctx context.Context, userID int64, filter transaction.Filter) (int64, error)
	UpdateFunc  func(ctx context.Context, id string, params transaction.UpdateTransactionParams) (*transaction.Transaction, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *transaction.Transaction) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx)
	}
	return tx, nil
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTransactionRepo) List(ctx context.Context, userID int64, filter transaction.Filter, limit, offset int) ([]*transaction.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter, limit, offset)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Count(ctx context.Context, userID int64, filter transaction.Filter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, userID, filter)
	}
	return 0, nil
}

func (m *MockTransactionRepo) Update(ctx context.Context, id string, params transaction.UpdateTransactionParams) (*transaction.Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	CreateFunc     func(ctx context.Context, params user.CreateUserParams) (*user.User, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	UpdateFunc     func(ctx context.Context, id int64, params user.UpdateUserParams) (*user.User, error)
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return &user.User{ID: 1, Name: params.Name, Email: params.Email, PasswordHash: params.PasswordHash, CreatedAt: time.Now()}, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) Update(ctx context.Context, id int64, params user.UpdateUserParams) (*user.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, user.ErrUserNotFound
}
