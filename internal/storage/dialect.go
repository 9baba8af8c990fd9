package storage

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/sales-reporting/internal/models"
	"github.com/magabrotheeeer/sales-reporting/internal/report"
)

// ErrUnknownQuery возвращается для процедуры, которой нет в каталоге.
var ErrUnknownQuery = errors.New("unknown query")

// ErrParamCount возвращается, если число параметров не совпадает с сигнатурой процедуры.
var ErrParamCount = errors.New("parameter count mismatch")

//go:embed queries/sqlite/*.sql
var sqliteQueries embed.FS

// procedure описывает аналитическую процедуру хранилища.
type procedure struct {
	// pgFunction: имя SQL-функции PostgreSQL.
	pgFunction string
	// sqliteFile: файл с текстом запроса для SQLite.
	sqliteFile string
	arity      int
}

var catalog = map[string]procedure{
	report.QueryTopByPeriod:       {pgFunction: "top_by_period", sqliteFile: "top_by_period.sql", arity: 1},
	report.QueryBottomByPeriod:    {pgFunction: "bottom_by_period", sqliteFile: "bottom_by_period.sql", arity: 1},
	report.QueryTotalByPeriod:     {pgFunction: "total_by_period", sqliteFile: "total_by_period.sql", arity: 1},
	report.QueryRegionByPeriod:    {pgFunction: "region_by_period", sqliteFile: "region_by_period.sql", arity: 1},
	report.QueryBottomWithHistory: {pgFunction: "bottom_with_history", sqliteFile: "bottom_with_history.sql", arity: 3},
}

// Dialect строит текст запроса и аргументы для вызова процедуры на конкретном бэкенде.
type Dialect interface {
	Name() string
	Statement(queryID string, params []models.Param) (string, []any, error)
}

// DialectFor возвращает диалект бэкенда driver.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverPostgres:
		return postgresDialect{}, nil
	case DriverMySQL:
		return mysqlDialect{}, nil
	case DriverSQLite:
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

func lookupProcedure(queryID string, params []models.Param) (procedure, []any, error) {
	proc, ok := catalog[queryID]
	if !ok {
		return procedure{}, nil, fmt.Errorf("%w: %q", ErrUnknownQuery, queryID)
	}
	if len(params) != proc.arity {
		return procedure{}, nil, fmt.Errorf("%w: %s expects %d, got %d", ErrParamCount, queryID, proc.arity, len(params))
	}
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p.Value
	}
	return proc, args, nil
}

func placeholders(n int, format func(i int) string) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = format(i + 1)
	}
	return strings.Join(marks, ", ")
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return DriverPostgres }

func (postgresDialect) Statement(queryID string, params []models.Param) (string, []any, error) {
	proc, args, err := lookupProcedure(queryID, params)
	if err != nil {
		return "", nil, err
	}
	marks := placeholders(len(args), func(i int) string { return fmt.Sprintf("$%d", i) })
	return fmt.Sprintf("SELECT * FROM %s(%s)", proc.pgFunction, marks), args, nil
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string { return DriverMySQL }

func (mysqlDialect) Statement(queryID string, params []models.Param) (string, []any, error) {
	_, args, err := lookupProcedure(queryID, params)
	if err != nil {
		return "", nil, err
	}
	marks := placeholders(len(args), func(int) string { return "?" })
	return fmt.Sprintf("CALL %s(%s)", queryID, marks), args, nil
}

// sqliteDialect выполняет текст запроса вместо процедуры: в SQLite их нет.
// Параметры в тексте нумерованные (?1, ?2, ?3).
type sqliteDialect struct{}

func (sqliteDialect) Name() string { return DriverSQLite }

func (sqliteDialect) Statement(queryID string, params []models.Param) (string, []any, error) {
	proc, args, err := lookupProcedure(queryID, params)
	if err != nil {
		return "", nil, err
	}
	text, err := sqliteQueries.ReadFile("queries/sqlite/" + proc.sqliteFile)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", queryID, err)
	}
	return string(text), args, nil
}
