package reporting

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/sales-reporting/internal/lib/period"
	"github.com/magabrotheeeer/sales-reporting/internal/models"
	"github.com/magabrotheeeer/sales-reporting/internal/report"
)

type ExecutorMock struct{ mock.Mock }

func (m *ExecutorMock) Execute(ctx context.Context, queryID string, params []models.Param) ([]models.RawRow, error) {
	args := m.Called(ctx, queryID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RawRow), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func monthParam(v string) []models.Param {
	return []models.Param{{Name: report.ParamMonthYear, Value: v}}
}

func TestReportingService_Report(t *testing.T) {
	ada := "Ada"

	tests := []struct {
		name      string
		mode      report.Mode
		period    string
		setupMock func(m *ExecutorMock)
		want      any
		wantKind  report.Kind
		wantErr   bool
	}{
		{
			name:   "top",
			mode:   report.ModeTop,
			period: "2024-03",
			setupMock: func(m *ExecutorMock) {
				m.On("Execute", mock.Anything, report.QueryTopByPeriod, monthParam("2024-03")).
					Return([]models.RawRow{{"SalesRepID": 7, "FullName": "Ada", "TotalRevenue": 1200.5, "CustomerCount": 3}}, nil)
			},
			want: []models.SalesRepRow{{RepID: 7, FullName: &ada, TotalRevenue: 1200.5, CustomerCount: 3}},
		},
		{
			name:   "bottom history passes the three month window",
			mode:   report.ModeBottomHistory,
			period: "2024-01",
			setupMock: func(m *ExecutorMock) {
				m.On("Execute", mock.Anything, report.QueryBottomWithHistory, []models.Param{
					{Name: report.ParamCurrentMonth, Value: "2024-01"},
					{Name: report.ParamPrevMonth, Value: "2023-12"},
					{Name: report.ParamPrev2Month, Value: "2023-11"},
				}).Return([]models.RawRow{}, nil)
			},
			want: []models.HistoryRow{},
		},
		{
			name:   "empty total becomes a zero row",
			mode:   report.ModeTotal,
			period: "2024-03",
			setupMock: func(m *ExecutorMock) {
				m.On("Execute", mock.Anything, report.QueryTotalByPeriod, monthParam("2024-03")).
					Return([]models.RawRow{}, nil)
			},
			want: []models.TotalRow{{TotalSales: 0}},
		},
		{
			name:   "store failure",
			mode:   report.ModeRegion,
			period: "2024-03",
			setupMock: func(m *ExecutorMock) {
				m.On("Execute", mock.Anything, report.QueryRegionByPeriod, monthParam("2024-03")).
					Return(nil, errors.New("connection refused"))
			},
			wantErr:  true,
			wantKind: report.KindQueryExecutionFailed,
		},
		{
			name:      "zero period",
			mode:      report.ModeTop,
			setupMock: func(m *ExecutorMock) {},
			wantErr:   true,
			wantKind:  report.KindInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := new(ExecutorMock)
			tt.setupMock(executor)
			service := NewReportingService(executor, newNoopLogger())

			var p period.Period
			if tt.period != "" {
				p = period.MustParse(tt.period)
			}

			got, err := service.Report(context.Background(), tt.mode, p)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.Equal(t, tt.wantKind, report.AsError(err).Kind)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			executor.AssertExpectations(t)
		})
	}
}

func TestReportingService_StoreErrorIsNotLeaked(t *testing.T) {
	executor := new(ExecutorMock)
	cause := errors.New("password authentication failed for user sa")
	executor.On("Execute", mock.Anything, report.QueryTopByPeriod, monthParam("2024-03")).Return(nil, cause)

	service := NewReportingService(executor, newNoopLogger())
	_, err := service.Report(context.Background(), report.ModeTop, period.MustParse("2024-03"))

	rerr := report.AsError(err)
	assert.Equal(t, "query execution failed", rerr.Msg)
	assert.ErrorIs(t, err, report.ErrQueryExecutionFailed)
	assert.ErrorIs(t, err, cause)
}
