// Package metrics объявляет метрики Prometheus шлюза отчётов.
// Метрики регистрируются в реестре по умолчанию и отдаются через /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы обработки запроса отчёта.
const (
	OutcomeOK        = "ok"
	OutcomePreflight = "preflight"
)

var (
	// ReportRequests считает запросы к шлюзу по режиму и исходу (ok или категория ошибки).
	ReportRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales_reporting",
		Name:      "report_requests_total",
		Help:      "Number of reporting gateway requests by mode and outcome.",
	}, []string{"mode", "outcome"})

	// QueryDuration измеряет длительность аналитических запросов к хранилищу.
	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sales_reporting",
		Name:      "query_duration_seconds",
		Help:      "Duration of analytic store queries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"query", "status"})

	// StoreReconnects считает переоткрытия соединения с хранилищем.
	StoreReconnects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sales_reporting",
		Name:      "store_reconnects_total",
		Help:      "Number of times the analytic store handle was (re)opened.",
	})
)

// ObserveQuery записывает длительность запроса queryID, начатого в start.
func ObserveQuery(queryID string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	QueryDuration.WithLabelValues(queryID, status).Observe(time.Since(start).Seconds())
}
