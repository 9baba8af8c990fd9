// Package reporting собирает отчёт: режим → контракт процедуры → выполнение → нормализация.
package reporting

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/sales-reporting/internal/lib/period"
	"github.com/magabrotheeeer/sales-reporting/internal/lib/sl"
	"github.com/magabrotheeeer/sales-reporting/internal/models"
	"github.com/magabrotheeeer/sales-reporting/internal/report"
)

// Executor выполняет аналитическую процедуру хранилища.
type Executor interface {
	// Execute вызывает процедуру queryID с упорядоченными параметрами и возвращает строки как есть.
	Execute(ctx context.Context, queryID string, params []models.Param) ([]models.RawRow, error)
}

// ReportingService строит нормализованный отчёт для режима и периода.
type ReportingService struct {
	executor Executor
	log      *slog.Logger
}

// NewReportingService создает новый экземпляр ReportingService.
func NewReportingService(executor Executor, log *slog.Logger) *ReportingService {
	return &ReportingService{
		executor: executor,
		log:      log,
	}
}

// Report возвращает срез строк режима mode за период p.
// Ошибки всегда *report.Error; причина ошибки хранилища клиенту не отдаётся.
func (s *ReportingService) Report(ctx context.Context, mode report.Mode, p period.Period) (any, error) {
	const op = "services.reporting.Report"

	log := s.log.With(slog.String("op", op), slog.String("mode", mode.String()), slog.String("period", p.String()))

	if p.IsZero() {
		return nil, report.NewError(report.KindInvalidInput, "invalid period", period.ErrInvalidPeriod)
	}

	contract := mode.Contract(p)
	rows, err := s.executor.Execute(ctx, contract.QueryID, contract.Params)
	if err != nil {
		log.Error("query execution failed", slog.String("query", contract.QueryID), sl.Err(err))
		return nil, report.NewError(report.KindQueryExecutionFailed, "query execution failed", err)
	}

	out, err := report.Normalize(mode, rows)
	if err != nil {
		log.Error("failed to normalize rows", sl.Err(err))
		return nil, report.AsError(err)
	}

	log.Debug("report built", slog.Int("rows", len(rows)))
	return out, nil
}
