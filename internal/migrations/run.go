// Package migrations применяет встроенные миграции схемы продаж и аналитических
// процедур для выбранного бэкенда хранилища.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql
var migrationsFS embed.FS

// ErrUnsupportedDriver возвращается для бэкенда без набора миграций.
var ErrUnsupportedDriver = errors.New("migrations are not supported for driver")

// Run поднимает схему backend-а driver ("postgres", "mysql", "sqlite") до последней версии.
// Для MySQL DSN должен содержать multiStatements=true.
// db не закрывается: им продолжает пользоваться хранилище.
func Run(db *sql.DB, driver string) error {
	const op = "migrations.Run"

	var (
		target database.Driver
		err    error
	)
	switch driver {
	case "postgres":
		target, err = pgxv5.WithInstance(db, &pgxv5.Config{})
	case "mysql":
		target, err = mysql.WithInstance(db, &mysql.Config{})
	case "sqlite":
		target, err = sqlite.WithInstance(db, &sqlite.Config{})
	default:
		return fmt.Errorf("%s: %w %q", op, ErrUnsupportedDriver, driver)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sub, err := fs.Sub(migrationsFS, "sql/"+driver)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, target)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if dirty {
		return fmt.Errorf("%s: database is dirty at version %d", op, version)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
