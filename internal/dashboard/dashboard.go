// Package dashboard реализует клиентскую агрегацию отчётов для дашборда продаж.
//
// Каждое обновление запрашивает у шлюза четыре отчёта (top, bottom, total, region)
// параллельно и применяет результат целиком: если упал хотя бы один запрос,
// все четыре набора данных сбрасываются в пустые, а показывается ошибка.
// Одновременные обновления не отменяют друг друга: видимое состояние
// определяет обновление, завершившееся последним.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/sales-reporting/internal/lib/period"
	"github.com/magabrotheeeer/sales-reporting/internal/lib/sl"
	"github.com/magabrotheeeer/sales-reporting/internal/models"
	"github.com/magabrotheeeer/sales-reporting/internal/reportclient"
)

// NoValue показывается вместо отсутствующего имени региона или менеджера.
const NoValue = "-"

// Source отдаёт отчёты шлюза за период.
type Source interface {
	Top(ctx context.Context, p period.Period) ([]models.SalesRepRow, error)
	Bottom(ctx context.Context, p period.Period) ([]models.SalesRepRow, error)
	Total(ctx context.Context, p period.Period) ([]models.TotalRow, error)
	Region(ctx context.Context, p period.Period) ([]models.RegionRow, error)
}

// KPIs содержит производные показатели, которые считаются из четырёх наборов данных.
type KPIs struct {
	TotalRevenue        float64
	TopRegion           string
	AverageTopRevenue   float64
	TopPerformer        string
	TopPerformerRevenue float64
}

// Snapshot хранит видимое состояние дашборда.
type Snapshot struct {
	RefreshID   uuid.UUID
	Period      period.Period
	Top         []models.SalesRepRow
	Bottom      []models.SalesRepRow
	Total       []models.TotalRow
	Regions     []models.RegionRow
	KPIs        KPIs
	Err         string
	RefreshedAt time.Time
}

// OK сообщает, что последнее обновление прошло без ошибок.
func (s Snapshot) OK() bool { return s.Err == "" }

// Option настраивает Dashboard.
type Option func(*Dashboard)

// WithPeriod задаёт начальный период вместо прошлого календарного месяца.
func WithPeriod(p period.Period) Option {
	return func(d *Dashboard) { d.state.Period = p }
}

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

// WithOnRefresh вызывает fn с новым состоянием после каждого обновления.
func WithOnRefresh(fn func(Snapshot)) Option {
	return func(d *Dashboard) { d.onRefresh = fn }
}

// Dashboard хранит выбранный период и результат последнего обновления.
type Dashboard struct {
	source    Source
	log       *slog.Logger
	now       func() time.Time
	onRefresh func(Snapshot)

	mu    sync.RWMutex
	state Snapshot
}

// New создаёт дашборд. По умолчанию выбран прошлый календарный месяц.
func New(source Source, log *slog.Logger, opts ...Option) *Dashboard {
	d := &Dashboard{
		source: source,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.state.Period.IsZero() {
		d.state.Period = period.LastCompleted(d.now())
	}
	d.state = emptySnapshot(d.state.Period)
	return d
}

func emptySnapshot(p period.Period) Snapshot {
	s := Snapshot{
		Period:  p,
		Top:     []models.SalesRepRow{},
		Bottom:  []models.SalesRepRow{},
		Total:   []models.TotalRow{},
		Regions: []models.RegionRow{},
	}
	s.KPIs = computeKPIs(s)
	return s
}

// Snapshot возвращает копию текущего состояния.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Period возвращает выбранный период.
func (d *Dashboard) Period() period.Period {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state.Period
}

// Rep ищет менеджера среди лучших и худших текущего состояния.
func (d *Dashboard) Rep(id int64) (models.SalesRepRow, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, rows := range [][]models.SalesRepRow{d.state.Top, d.state.Bottom} {
		for _, r := range rows {
			if r.RepID == id {
				return r, true
			}
		}
	}
	return models.SalesRepRow{}, false
}

// Refresh выбирает период p и загружает четыре отчёта параллельно.
// Ошибка любого запроса сбрасывает все наборы данных; выбранный период остаётся p.
func (d *Dashboard) Refresh(ctx context.Context, p period.Period) (Snapshot, error) {
	const op = "dashboard.Refresh"

	refreshID := uuid.New()
	log := d.log.With(
		slog.String("op", op),
		slog.String("refresh_id", refreshID.String()),
		slog.String("period", p.String()),
	)

	d.mu.Lock()
	d.state.Period = p
	d.mu.Unlock()

	var (
		g       errgroup.Group
		top     []models.SalesRepRow
		bottom  []models.SalesRepRow
		total   []models.TotalRow
		regions []models.RegionRow
	)
	g.Go(func() (err error) {
		top, err = d.source.Top(ctx, p)
		return wrapPanel("top", err)
	})
	g.Go(func() (err error) {
		bottom, err = d.source.Bottom(ctx, p)
		return wrapPanel("bottom", err)
	})
	g.Go(func() (err error) {
		total, err = d.source.Total(ctx, p)
		return wrapPanel("total", err)
	})
	g.Go(func() (err error) {
		regions, err = d.source.Region(ctx, p)
		return wrapPanel("region", err)
	})
	err := g.Wait()

	next := emptySnapshot(p)
	next.RefreshID = refreshID
	next.RefreshedAt = d.now()
	if err != nil {
		next.Err = errorMessage(err)
		log.Error("refresh failed", sl.Err(err))
	} else {
		next.Top = nonNil(top)
		next.Bottom = nonNil(bottom)
		next.Total = nonNil(total)
		next.Regions = nonNil(regions)
		next.KPIs = computeKPIs(next)
		log.Info("refresh completed",
			slog.Int("top", len(next.Top)),
			slog.Int("regions", len(next.Regions)),
		)
	}

	d.mu.Lock()
	d.state = next
	d.mu.Unlock()

	if d.onRefresh != nil {
		d.onRefresh(next)
	}
	if err != nil {
		return next, fmt.Errorf("%s: %w", op, err)
	}
	return next, nil
}

// Run обновляет дашборд при старте, по тикеру interval (0 отключает тикер)
// и при каждом новом периоде из periods. Ошибки обновления только логируются.
func (d *Dashboard) Run(ctx context.Context, interval time.Duration, periods <-chan period.Period) error {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	_, _ = d.Refresh(ctx, d.Period())
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			_, _ = d.Refresh(ctx, d.Period())
		case p, ok := <-periods:
			if !ok {
				periods = nil
				continue
			}
			_, _ = d.Refresh(ctx, p)
		}
	}
}

func wrapPanel(panel string, err error) error {
	if err == nil {
		return nil
	}
	return &panelError{panel: panel, err: err}
}

type panelError struct {
	panel string
	err   error
}

func (e *panelError) Error() string { return e.panel + ": " + e.err.Error() }
func (e *panelError) Unwrap() error { return e.err }

// errorMessage возвращает текст для баннера: сообщение шлюза, если оно есть.
func errorMessage(err error) string {
	var apiErr *reportclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var pe *panelError
	if errors.As(err, &pe) {
		return pe.err.Error()
	}
	return err.Error()
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
