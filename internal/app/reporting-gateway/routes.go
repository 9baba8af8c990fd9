// Package reportinggateway собирает HTTP-приложение шлюза отчётов.
package reportinggateway

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Спецификация Swagger для /docs.
	_ "github.com/magabrotheeeer/sales-reporting/docs"

	"github.com/magabrotheeeer/sales-reporting/internal/config"
	"github.com/magabrotheeeer/sales-reporting/internal/http/handlers/health"
	"github.com/magabrotheeeer/sales-reporting/internal/http/handlers/reporting"
	"github.com/magabrotheeeer/sales-reporting/internal/http/middlewarectx"
)

// RegisterRoutes регистрирует все маршруты шлюза.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, reportHandler *reporting.Handler, store health.Pinger) {
	// Глобальные middleware. CORS стоит до всего остального,
	// чтобы заголовки были и у ответов 404/405 и после паник.
	r.Use(
		middlewarectx.CORS(cfg.AllowedOrigins),
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RPS, cfg.Burst))
		// Все методы идут в обработчик: он сам отвечает на OPTIONS и отклоняет остальные.
		r.Handle("/reporting", reportHandler)
		r.Handle("/api/sales", reportHandler)
	})

	r.Method(http.MethodGet, "/health", health.New(logger, store))
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
