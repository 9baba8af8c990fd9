package reportinggateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/sales-reporting/internal/config"
	"github.com/magabrotheeeer/sales-reporting/internal/http/handlers/reporting"
	"github.com/magabrotheeeer/sales-reporting/internal/lib/jwt"
	"github.com/magabrotheeeer/sales-reporting/internal/lib/sl"
	"github.com/magabrotheeeer/sales-reporting/internal/migrations"
	reportingservice "github.com/magabrotheeeer/sales-reporting/internal/services/reporting"
	"github.com/magabrotheeeer/sales-reporting/internal/storage"
)

// App объединяет HTTP-сервер шлюза отчётов и соединение с хранилищем.
type App struct {
	server *http.Server
	logger *slog.Logger
	handle *storage.Handle
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.reportinggateway.New"

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	handle, err := storage.NewHandle(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !cfg.SkipMigrate {
		db, err := handle.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = migrations.Run(db, cfg.Driver); err != nil {
			_ = handle.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		logger.Info("migrations applied", slog.String("driver", cfg.Driver))
	}

	store, err := storage.New(handle, cfg.QueryTimeout)
	if err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var verifier jwt.Verifier
	if cfg.AuthRequired() {
		verifier = jwt.NewHMACVerifier(cfg.JWTSecretKey, cfg.TokenTTL)
	} else {
		logger.Warn("token verification is disabled")
	}

	reportingService := reportingservice.NewReportingService(store, logger)
	reportHandler := reporting.New(logger, reportingService, verifier)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, reportHandler, store)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		handle: handle,
	}, nil
}

// Handler возвращает корневой HTTP-обработчик приложения.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeStore()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeStore()
		return err
	}
}

func (a *App) closeStore() {
	if err := a.handle.Close(); err != nil {
		a.logger.Error("failed to close store", sl.Err(err))
	}
}
