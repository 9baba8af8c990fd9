// Package main Sales Reporting Gateway API
//
// @title           Sales Reporting Gateway API
// @version         1.0
// @description     Отчёты о продажах для дашборда: лучшие и худшие менеджеры, итоги по регионам и за период.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	reportinggateway "github.com/magabrotheeeer/sales-reporting/internal/app/reporting-gateway"
	"github.com/magabrotheeeer/sales-reporting/internal/config"
	"github.com/magabrotheeeer/sales-reporting/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env)

	logger.Info("starting reporting-gateway", slog.String("env", cfg.Env))
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := reportinggateway.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("reporting-gateway stopped gracefully")
}
