package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrExpenseNotFound = errors.New("expense not found")

// ErrInvalidExpense marks a stored record whose billing date cannot be parsed.
// Callers iterating a batch skip such records and continue.
var ErrInvalidExpense = errors.New("invalid expense record")

type Repo interface {
	Store(ctx context.Context, userId int, expense Expense) (int, error)
	GetAll(ctx context.Context, userId int) ([]Expense, error)
	Get(ctx context.Context, userId int, expenseId int) (Expense, error)
	Update(ctx context.Context, userId int, expense Expense) (bool, error)
	Delete(ctx context.Context, userId int, expenseId int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const expenseColumns = `id, title, description, amount, currency, category_id, payment_method_id,
		billing_date, billing_interval, custom_interval_days, specific_days, is_active, created_at, updated_at`

func (r RepoImpl) Store(ctx context.Context, userId int, expense Expense) (int, error) {
	query := `INSERT INTO expenses (
					user_id,
					title,
					description,
					amount,
					currency,
					category_id,
					payment_method_id,
					billing_date,
					billing_interval,
					custom_interval_days,
					specific_days,
					is_active
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		userId,
		expense.Title,
		expense.Description,
		expense.Amount.String(),
		expense.Currency,
		nullableId(expense.CategoryID),
		nullableId(expense.PaymentMethodID),
		expense.BillingDate.Format("2006-01-02"),
		string(expense.BillingInterval),
		expense.CustomIntervalDays,
		encodeSpecificDays(expense.SpecificDays),
		boolToInt(expense.IsActive),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}

	return int(lastInsertID), nil
}

func (r RepoImpl) GetAll(ctx context.Context, userId int) ([]Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM expenses WHERE user_id = ? ORDER BY billing_date DESC, id DESC`, expenseColumns)
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		expense, err := scanExpense(rows.Scan)
		if err != nil {
			if errors.Is(err, ErrInvalidExpense) {
				// Skip the broken record, keep the batch usable.
				log.Warnf("skipping invalid expense record: %v", err)
				continue
			}
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return expenses, nil
}

func (r RepoImpl) Get(ctx context.Context, userId int, expenseId int) (Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM expenses WHERE id = ? AND user_id = ?`, expenseColumns)
	row := r.db.QueryRowContext(ctx, query, expenseId, userId)
	expense, err := scanExpense(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Expense{}, ErrExpenseNotFound
	} else if err != nil {
		log.Errorf("failed to get expense: %v", err)
		return Expense{}, err
	}
	return expense, nil
}

func (r RepoImpl) Update(ctx context.Context, userId int, expense Expense) (bool, error) {
	query := `UPDATE expenses SET
					title = ?,
					description = ?,
					amount = ?,
					currency = ?,
					category_id = ?,
					payment_method_id = ?,
					billing_date = ?,
					billing_interval = ?,
					custom_interval_days = ?,
					specific_days = ?,
					is_active = ?,
					updated_at = CURRENT_TIMESTAMP
				WHERE id = ? AND user_id = ?`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		expense.Title,
		expense.Description,
		expense.Amount.String(),
		expense.Currency,
		nullableId(expense.CategoryID),
		nullableId(expense.PaymentMethodID),
		expense.BillingDate.Format("2006-01-02"),
		string(expense.BillingInterval),
		expense.CustomIntervalDays,
		encodeSpecificDays(expense.SpecificDays),
		boolToInt(expense.IsActive),
		expense.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r RepoImpl) Delete(ctx context.Context, userId int, expenseId int) (bool, error) {
	query := `DELETE FROM expenses WHERE id = ? AND user_id = ?`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()
	result, err := stmt.ExecContext(ctx, expenseId, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func scanExpense(scan func(dest ...any) error) (Expense, error) {
	var expense Expense
	var amount string
	var billingDate string
	var billingInterval string
	var categoryId, paymentMethodId sql.NullInt64
	var specificDays sql.NullString
	var isActive int
	var createdAt, updatedAt sql.NullString

	if err := scan(
		&expense.ID,
		&expense.Title,
		&expense.Description,
		&amount,
		&expense.Currency,
		&categoryId,
		&paymentMethodId,
		&billingDate,
		&billingInterval,
		&expense.CustomIntervalDays,
		&specificDays,
		&isActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Expense{}, err
	}

	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return Expense{}, fmt.Errorf("%w: expense %d has malformed amount %q", ErrInvalidExpense, expense.ID, amount)
	}
	expense.Amount = parsedAmount

	parsedDate, err := time.Parse("2006-01-02", billingDate)
	if err != nil {
		return Expense{}, fmt.Errorf("%w: expense %d has malformed billing date %q", ErrInvalidExpense, expense.ID, billingDate)
	}
	expense.BillingDate = parsedDate

	expense.BillingInterval = ParseInterval(billingInterval)
	if categoryId.Valid {
		expense.CategoryID = int(categoryId.Int64)
	}
	if paymentMethodId.Valid {
		expense.PaymentMethodID = int(paymentMethodId.Int64)
	}
	if specificDays.Valid {
		expense.SpecificDays = DecodeSpecificDays(specificDays.String)
	}
	expense.IsActive = isActive != 0
	if createdAt.Valid {
		expense.CreatedAt, _ = parseTimestamp(createdAt.String)
	}
	if updatedAt.Valid {
		expense.UpdatedAt, _ = parseTimestamp(updatedAt.String)
	}

	return expense, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// encodeSpecificDays serializes weekday indices as the comma-separated form
// used by the expenses table, e.g. "0,2,4".
func encodeSpecificDays(days []int) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

// DecodeSpecificDays parses the comma-separated weekday list, dropping
// anything that is not an integer in the 0..6 range.
func DecodeSpecificDays(s string) []int {
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 || d > 6 {
			continue
		}
		days = append(days, d)
	}
	return days
}

func nullableId(id int) any {
	if id == 0 {
		return nil
	}
	return id
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
