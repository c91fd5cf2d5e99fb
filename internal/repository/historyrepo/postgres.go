package historyrepo

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"golibrary/internal/domain"
	apperror "golibrary/internal/errors"
)

const historyTableName = "loan_history"

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository stores history rows in the loan_history table created by
// the migrations package.
type PostgresRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
}

// NewPostgresRepository returns a repository using db with a per-query timeout.
// A zero timeout leaves the caller's context unchanged.
func NewPostgresRepository(db *sql.DB, dbTimeout time.Duration) *PostgresRepository {
	return &PostgresRepository{DB: db, DBTimeout: dbTimeout}
}

// SaveRecord inserts one row.
func (r *PostgresRepository) SaveRecord(ctx context.Context, entry domain.HistoryEntry) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query, args, err := qb.Insert(historyTableName).
		Columns("user_id", "isbn", "borrowed_at", "due_date", "returned_at").
		Values(entry.UserID, entry.ISBN, entry.BorrowedAt, entry.DueDate, entry.ReturnedAt).
		ToSql()
	if err != nil {
		return apperror.NewStorageError("failed to build history insert", err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return apperror.NewStorageError("failed to save record to history", err)
	}
	return nil
}

// GetHistory selects rows in insertion order, narrowed to filter.UserID when set.
func (r *PostgresRepository) GetHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	q := qb.Select("user_id", "isbn", "borrowed_at", "due_date", "returned_at").
		From(historyTableName).
		OrderBy("id")
	if filter.UserID != "" {
		q = q.Where(sq.Eq{"user_id": filter.UserID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, apperror.NewStorageError("failed to build history query", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewStorageError("failed to read history", err)
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.UserID, &e.ISBN, &e.BorrowedAt, &e.DueDate, &e.ReturnedAt); err != nil {
			return nil, apperror.NewStorageError("failed to scan history row", err)
		}
		e.BorrowedAt = domain.ToMillis(e.BorrowedAt)
		e.DueDate = domain.ToMillis(e.DueDate)
		e.ReturnedAt = domain.ToMillis(e.ReturnedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStorageError("failed to read history", err)
	}

	return entries, nil
}

func (r *PostgresRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.DBTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.DBTimeout)
}
