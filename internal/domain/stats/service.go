package stats

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/domain/category"
)

// Repository defines the grouped reads the aggregation is built from.
type Repository interface {
	// CategoryTotals groups the user's transactions of one type within the
	// inclusive window by category, total descending.
	CategoryTotals(ctx context.Context, userID int64, t category.Type, start, end time.Time) ([]CategoryStat, error)
	// DailyTotals groups the user's transactions within the inclusive
	// window by (calendar day, type), day ascending.
	DailyTotals(ctx context.Context, userID int64, start, end time.Time) ([]DailyStat, error)
}

// Service computes aggregated reports over a user's ledger.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new stats service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Summary aggregates the user's transactions over [start, end]. Either
// bound may be omitted independently: start defaults to one month before
// now and end defaults to now, both anchored to the current time rather
// than to each other. The three grouped reads are independent and run
// concurrently; under concurrent writes they may observe slightly
// different states. No cross-query snapshot is attempted.
func (s *Service) Summary(ctx context.Context, userID int64, start, end *time.Time) (*Summary, error) {
	now := s.now()
	from, to := now.AddDate(0, -1, 0), now
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}

	var (
		expense []CategoryStat
		income  []CategoryStat
		daily   []DailyStat
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expense, err = s.repo.CategoryTotals(gctx, userID, category.TypeExpense, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		income, err = s.repo.CategoryTotals(gctx, userID, category.TypeIncome, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		daily, err = s.repo.DailyTotals(gctx, userID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if expense == nil {
		expense = []CategoryStat{}
	}
	if income == nil {
		income = []CategoryStat{}
	}
	if daily == nil {
		daily = []DailyStat{}
	}

	summary := &Summary{
		ExpenseStats: expense,
		IncomeStats:  income,
		DailyStats:   daily,
	}
	for _, st := range expense {
		summary.TotalExpense += st.Total
	}
	for _, st := range income {
		summary.TotalIncome += st.Total
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense

	return summary, nil
}
