// Package storage реализует исполнитель аналитических запросов поверх
// database/sql. Поддерживаются три бэкенда: PostgreSQL (функции),
// MySQL (хранимые процедуры) и SQLite (встроенный текст запросов).
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	// Драйверы database/sql для поддерживаемых бэкендов.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/magabrotheeeer/sales-reporting/internal/metrics"
)

// Поддерживаемые бэкенды хранилища.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// ErrUnknownDriver возвращается для неподдерживаемого бэкенда.
var ErrUnknownDriver = errors.New("unknown storage driver")

// sqlDriverName сопоставляет бэкенд с именем драйвера database/sql.
func sqlDriverName(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "pgx", nil
	case DriverMySQL:
		return "mysql", nil
	case DriverSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// Handle владеет соединением с хранилищем. Пул открывается лениво при первом
// Acquire и проверяется пингом при каждом следующем; упавший пул переоткрывается.
type Handle struct {
	driver string
	dsn    string

	mu sync.Mutex
	db *sql.DB
}

// NewHandle создаёт неоткрытый Handle для бэкенда driver.
func NewHandle(driver, dsn string) (*Handle, error) {
	const op = "storage.NewHandle"

	if _, err := sqlDriverName(driver); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Handle{driver: driver, dsn: dsn}, nil
}

// Driver возвращает имя бэкенда.
func (h *Handle) Driver() string {
	return h.driver
}

// Acquire возвращает рабочий пул соединений, открывая или переоткрывая его.
func (h *Handle) Acquire(ctx context.Context) (*sql.DB, error) {
	h.mu.Lock()
	db := h.db
	h.mu.Unlock()

	if db != nil {
		err := db.PingContext(ctx)
		if err == nil {
			return db, nil
		}
		// отменённый запрос не повод закрывать рабочий пул
		if ctx.Err() != nil {
			return nil, fmt.Errorf("storage.Handle.Acquire: %w", ctx.Err())
		}
	}
	return h.reopen(ctx, db)
}

// reopen открывает новый пул вместо stale. Если пул уже заменил другой
// вызов, возвращается текущий.
func (h *Handle) reopen(ctx context.Context, stale *sql.DB) (*sql.DB, error) {
	const op = "storage.Handle.reopen"

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil && h.db != stale {
		return h.db, nil
	}
	if stale != nil {
		_ = stale.Close()
		h.db = nil
	}

	name, err := sqlDriverName(h.driver)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	db, err := sql.Open(name, h.dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if h.driver == DriverSQLite {
		// in-memory база живёт в одном соединении
		db.SetMaxOpenConns(1)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.StoreReconnects.Inc()
	h.db = db
	return db, nil
}

// Close закрывает пул, если он был открыт.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}
