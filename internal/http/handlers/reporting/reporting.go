// Package reporting содержит HTTP-обработчик шлюза отчётов о продажах.
//
// Каждый запрос проходит этапы: проверка метода и параметров, разрешение периода,
// проверка токена, выбор режима, выполнение процедуры, нормализация и ответ.
// Любая ошибка на любом этапе, включая панику, превращается в 400 {"error": "..."}.
package reporting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/sales-reporting/internal/http/response"
	"github.com/magabrotheeeer/sales-reporting/internal/lib/jwt"
	"github.com/magabrotheeeer/sales-reporting/internal/lib/period"
	"github.com/magabrotheeeer/sales-reporting/internal/lib/sl"
	"github.com/magabrotheeeer/sales-reporting/internal/metrics"
	"github.com/magabrotheeeer/sales-reporting/internal/models"
	"github.com/magabrotheeeer/sales-reporting/internal/report"
)

// Сообщения об ошибках, которые видит клиент.
const (
	MsgMissingToken     = "Missing token"
	MsgInvalidToken     = "Invalid token"
	MsgMethodNotAllowed = "method not allowed"
	MsgInvalidPeriod    = "invalid period: expected period=YYYY-MM or year=YYYY&month=MM"
	MsgInternal         = "internal error"
)

// Service строит нормализованный отчёт.
type Service interface {
	Report(ctx context.Context, mode report.Mode, p period.Period) (any, error)
}

// Handler обслуживает GET и OPTIONS запросы отчётов.
type Handler struct {
	log      *slog.Logger
	service  Service
	verifier jwt.Verifier
	validate *validator.Validate
}

// New создает новый Handler. Если verifier равен nil, проверка токена отключена.
func New(log *slog.Logger, service Service, verifier jwt.Verifier) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		verifier: verifier,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отчёт о продажах за месяц
// @Description Возвращает строки отчёта для режима mode за период. Период задаётся либо period (или monthYear) в формате YYYY-MM, либо парой year и month. Любая ошибка возвращается как 400 с телом {"error": "..."}.
// @Tags Reporting
// @Produce json
// @Param mode query string false "Режим отчёта" Enums(top, bottom, total, region, bottomHistory)
// @Param period query string false "Период YYYY-MM"
// @Param monthYear query string false "Синоним period"
// @Param year query string false "Год YYYY"
// @Param month query string false "Месяц 1-12"
// @Success 200 {array} models.SalesRepRow "Строки отчёта; форма зависит от режима"
// @Failure 400 {object} response.ErrorResponse "Ошибка запроса, авторизации или хранилища"
// @Router /reporting [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reporting"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	mode := report.Route(r.URL.Query().Get("mode"))

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("panic while building report", slog.Any("panic", rec))
			h.fail(w, r, log, mode, report.NewError(report.KindInternal, MsgInternal, fmt.Errorf("panic: %v", rec)))
		}
	}()

	switch r.Method {
	case http.MethodOptions:
		metrics.ReportRequests.WithLabelValues(mode.String(), metrics.OutcomePreflight).Inc()
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodGet:
	default:
		h.fail(w, r, log, mode, report.NewError(report.KindInvalidInput, MsgMethodNotAllowed, nil))
		return
	}

	p, err := h.resolvePeriod(r)
	if err != nil {
		h.fail(w, r, log, mode, err)
		return
	}

	if err := h.authorize(r); err != nil {
		h.fail(w, r, log, mode, err)
		return
	}

	rows, err := h.service.Report(r.Context(), mode, p)
	if err != nil {
		h.fail(w, r, log, mode, err)
		return
	}

	metrics.ReportRequests.WithLabelValues(mode.String(), metrics.OutcomeOK).Inc()
	log.Info("report served", slog.String("mode", mode.String()), slog.String("period", p.String()))
	response.WriteRows(w, r, rows)
}

// resolvePeriod проверяет параметры запроса и разрешает период.
func (h *Handler) resolvePeriod(r *http.Request) (period.Period, error) {
	q := r.URL.Query()
	req := models.ReportQuery{
		Mode:      q.Get("mode"),
		Period:    q.Get("period"),
		MonthYear: q.Get("monthYear"),
		Year:      q.Get("year"),
		Month:     q.Get("month"),
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return period.Period{}, report.NewError(report.KindInvalidInput, response.ValidationError(verrs), err)
		}
		return period.Period{}, report.NewError(report.KindInvalidInput, MsgInvalidPeriod, err)
	}

	single := req.Period
	if single == "" {
		single = req.MonthYear
	} else if req.MonthYear != "" && req.MonthYear != req.Period {
		return period.Period{}, report.NewError(report.KindInvalidInput, MsgInvalidPeriod,
			fmt.Errorf("period %q and monthYear %q disagree: %w", req.Period, req.MonthYear, period.ErrInvalidPeriod))
	}

	p, err := period.Resolve(period.Input{Period: single, Year: req.Year, Month: req.Month})
	if err != nil {
		return period.Period{}, report.NewError(report.KindInvalidInput, MsgInvalidPeriod, err)
	}
	return p, nil
}

// authorize пропускает запрос с валидным Bearer-токеном. Без verifier проверка выключена.
func (h *Handler) authorize(r *http.Request) error {
	if h.verifier == nil {
		return nil
	}

	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return report.NewError(report.KindUnauthorized, MsgMissingToken, nil)
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if _, err := h.verifier.Verify(r.Context(), token); err != nil {
		return report.NewError(report.KindUnauthorized, MsgInvalidToken, err)
	}
	return nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, mode report.Mode, err error) {
	rerr := report.AsError(err)
	metrics.ReportRequests.WithLabelValues(mode.String(), rerr.Kind.String()).Inc()
	log.Error("report request failed",
		slog.String("kind", rerr.Kind.String()),
		slog.String("msg", rerr.Msg),
		sl.Err(rerr.Err),
	)
	response.WriteError(w, r, rerr.Msg)
}
