package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/sales-reporting/internal/metrics"
	"github.com/magabrotheeeer/sales-reporting/internal/models"
)

// ErrQueryExecutionFailed оборачивает любую ошибку драйвера, сканирования или итерации.
var ErrQueryExecutionFailed = errors.New("query execution failed")

// Store выполняет аналитические процедуры и возвращает строки как есть.
type Store struct {
	handle  *Handle
	dialect Dialect
	timeout time.Duration
}

// New создаёт Store поверх handle. timeout ограничивает каждый запрос; 0 отключает ограничение.
func New(handle *Handle, timeout time.Duration) (*Store, error) {
	const op = "storage.New"

	dialect, err := DialectFor(handle.Driver())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{
		handle:  handle,
		dialect: dialect,
		timeout: timeout,
	}, nil
}

// Execute вызывает процедуру queryID с упорядоченными параметрами.
// При любой ошибке строки не возвращаются.
func (s *Store) Execute(ctx context.Context, queryID string, params []models.Param) (rows []models.RawRow, err error) {
	const op = "storage.Execute"

	start := time.Now()
	defer func() {
		metrics.ObserveQuery(queryID, start, err)
		if err != nil {
			rows = nil
			err = fmt.Errorf("%s: %w: %w", op, ErrQueryExecutionFailed, err)
		}
	}()

	query, args, err := s.dialect.Statement(queryID, params)
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	db, err := s.handle.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	return queryRows(ctx, db, query, args...)
}

// queryRows читает результат целиком в []RawRow.
func queryRows(ctx context.Context, db *sql.DB, query string, args ...any) ([]models.RawRow, error) {
	rs, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	cols, err := rs.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]models.RawRow, 0)
	for rs.Next() {
		values := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rs.Scan(dest...); err != nil {
			return nil, err
		}

		row := make(models.RawRow, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rs.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping проверяет, что хранилище доступно, при необходимости переоткрывая пул.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.handle.Acquire(ctx)
	return err
}
