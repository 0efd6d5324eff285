package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tally/internal/domain/category"
	"tally/internal/domain/stats"
	"tally/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Every read resolves the category display fields through a left join, so
// transactions whose category was deleted still come back (with a nil
// category reference).
const transactionSelect = `
	SELECT t.id, t.type, t.amount, t.description, t.date, t.category_id,
	       t.user_id, t.created_at, t.updated_at,
	       c.id, c.name, c.icon, c.color
	FROM transactions t
	LEFT JOIN categories c ON c.id = t.category_id
`

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (id, type, amount, description, date, category_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		t.ID, t.Type, t.Amount, t.Description, t.Date, t.CategoryID, t.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	created, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("transaction %s vanished after insert", t.ID)
	}
	return created, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	row := r.db.QueryRowContext(ctx, transactionSelect+` WHERE t.id = $1`, id)

	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return t, nil
}

func (r *TransactionRepository) List(ctx context.Context, userID int64, filter transaction.Filter, limit, offset int) ([]*transaction.Transaction, error) {
	where, args := buildFilter(userID, filter)

	query := transactionSelect + where +
		` ORDER BY t.date DESC LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

func (r *TransactionRepository) Count(ctx context.Context, userID int64, filter transaction.Filter) (int64, error) {
	where, args := buildFilter(userID, filter)

	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions t`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return total, nil
}

func (r *TransactionRepository) Update(ctx context.Context, id string, params transaction.UpdateTransactionParams) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions
		SET amount = COALESCE($1, amount),
		    description = COALESCE($2, description),
		    date = COALESCE($3, date),
		    category_id = COALESCE($4, category_id),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
	`

	result, err := r.db.ExecContext(
		ctx, query,
		params.Amount, params.Description, params.Date, params.CategoryID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, transaction.ErrTransactionNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// CategoryTotals groups one type's transactions by category within the
// inclusive window. The join is inner: groups whose category was deleted
// are dropped, matching the display-oriented purpose of the report.
func (r *TransactionRepository) CategoryTotals(ctx context.Context, userID int64, t category.Type, start, end time.Time) ([]stats.CategoryStat, error) {
	query := `
		SELECT c.id, c.name, c.icon, c.color,
		       SUM(t.amount) AS total, COUNT(*) AS count
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.type = $2 AND t.date >= $3 AND t.date <= $4
		GROUP BY c.id, c.name, c.icon, c.color
		ORDER BY total DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, t, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category totals: %w", err)
	}
	defer rows.Close()

	var out []stats.CategoryStat
	for rows.Next() {
		var st stats.CategoryStat
		err := rows.Scan(&st.CategoryID, &st.Name, &st.Icon, &st.Color, &st.Total, &st.Count)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		out = append(out, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}

	return out, nil
}

// DailyTotals groups the window's transactions by (calendar day, type),
// day ascending.
func (r *TransactionRepository) DailyTotals(ctx context.Context, userID int64, start, end time.Time) ([]stats.DailyStat, error) {
	query := `
		SELECT to_char(t.date, 'YYYY-MM-DD') AS day, t.type, SUM(t.amount) AS total
		FROM transactions t
		WHERE t.user_id = $1 AND t.date >= $2 AND t.date <= $3
		GROUP BY day, t.type
		ORDER BY day ASC, t.type ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily totals: %w", err)
	}
	defer rows.Close()

	var out []stats.DailyStat
	for rows.Next() {
		var st stats.DailyStat
		if err := rows.Scan(&st.Date, &st.Type, &st.Total); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		out = append(out, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily totals: %w", err)
	}

	return out, nil
}

// buildFilter renders the WHERE clause shared by List and Count. The owner
// scope is always present; the optional constraints are conjunctive.
func buildFilter(userID int64, filter transaction.Filter) (string, []any) {
	clauses := []string{"t.user_id = $1"}
	args := []any{userID}

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.Type != nil {
		add("t.type = $%d", *filter.Type)
	}
	if filter.CategoryID != nil {
		add("t.category_id = $%d", *filter.CategoryID)
	}
	if filter.StartDate != nil {
		add("t.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("t.date <= $%d", *filter.EndDate)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*transaction.Transaction, error) {
	var (
		t        transaction.Transaction
		catID    sql.NullString
		catName  sql.NullString
		catIcon  sql.NullString
		catColor sql.NullString
	)

	err := row.Scan(
		&t.ID, &t.Type, &t.Amount, &t.Description, &t.Date, &t.CategoryID,
		&t.UserID, &t.CreatedAt, &t.UpdatedAt,
		&catID, &catName, &catIcon, &catColor,
	)
	if err != nil {
		return nil, err
	}

	if catID.Valid {
		t.Category = &transaction.CategoryRef{
			ID:    catID.String,
			Name:  catName.String,
			Icon:  catIcon.String,
			Color: catColor.String,
		}
	}

	return &t, nil
}
