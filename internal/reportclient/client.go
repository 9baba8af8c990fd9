// Package reportclient содержит HTTP-клиент шлюза отчётов, которым пользуется дашборд.
package reportclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/magabrotheeeer/sales-reporting/internal/lib/period"
	"github.com/magabrotheeeer/sales-reporting/internal/models"
	"github.com/magabrotheeeer/sales-reporting/internal/report"
)

// ErrGateway означает, что шлюз ответил ошибкой.
var ErrGateway = errors.New("gateway error")

// APIError описывает ответ шлюза со статусом не 200. Message берётся из тела {"error": "..."}.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway responded %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return ErrGateway }

// Client запрашивает отчёты у шлюза.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient создаёт клиент шлюза по адресу baseURL. Пустой token не отправляется.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, mode report.Mode, p period.Period) (*http.Request, error) {
	q := url.Values{}
	q.Set("mode", mode.String())
	q.Set("period", p.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reporting?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// fetch запрашивает режим mode за период p и декодирует массив строк в out.
func (c *Client) fetch(ctx context.Context, mode report.Mode, p period.Period, out any) error {
	const op = "reportclient.fetch"

	req, err := c.newRequest(ctx, mode, p)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s: %w", op, mode, decodeError(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode %s: %w", op, mode, err)
	}
	return nil
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	}
	return apiErr
}

// Top возвращает лучших менеджеров за период.
func (c *Client) Top(ctx context.Context, p period.Period) ([]models.SalesRepRow, error) {
	rows := []models.SalesRepRow{}
	err := c.fetch(ctx, report.ModeTop, p, &rows)
	return rows, err
}

// Bottom возвращает худших менеджеров за период.
func (c *Client) Bottom(ctx context.Context, p period.Period) ([]models.SalesRepRow, error) {
	rows := []models.SalesRepRow{}
	err := c.fetch(ctx, report.ModeBottom, p, &rows)
	return rows, err
}

// Total возвращает общую сумму продаж за период.
func (c *Client) Total(ctx context.Context, p period.Period) ([]models.TotalRow, error) {
	rows := []models.TotalRow{}
	err := c.fetch(ctx, report.ModeTotal, p, &rows)
	return rows, err
}

// Region возвращает продажи по регионам за период.
func (c *Client) Region(ctx context.Context, p period.Period) ([]models.RegionRow, error) {
	rows := []models.RegionRow{}
	err := c.fetch(ctx, report.ModeRegion, p, &rows)
	return rows, err
}

// BottomHistory возвращает худших менеджеров с продажами за два предыдущих месяца.
func (c *Client) BottomHistory(ctx context.Context, p period.Period) ([]models.HistoryRow, error) {
	rows := []models.HistoryRow{}
	err := c.fetch(ctx, report.ModeBottomHistory, p, &rows)
	return rows, err
}
