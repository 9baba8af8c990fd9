// Package report содержит маршрутизацию режимов отчёта, контракты аналитических
// запросов и нормализацию сырых строк хранилища в типизированные строки ответа.
package report

import (
	"strings"

	"github.com/magabrotheeeer/sales-reporting/internal/lib/period"
	"github.com/magabrotheeeer/sales-reporting/internal/models"
)

// Mode задаёт режим отчёта. Множество режимов закрыто.
type Mode string

const (
	ModeTop           Mode = "top"
	ModeBottom        Mode = "bottom"
	ModeTotal         Mode = "total"
	ModeRegion        Mode = "region"
	ModeBottomHistory Mode = "bottomHistory"
)

// Идентификаторы аналитических процедур хранилища.
const (
	QueryTopByPeriod       = "TopByPeriod"
	QueryBottomByPeriod    = "BottomByPeriod"
	QueryTotalByPeriod     = "TotalByPeriod"
	QueryRegionByPeriod    = "RegionByPeriod"
	QueryBottomWithHistory = "BottomWithHistory"
)

// Имена параметров процедур.
const (
	ParamMonthYear    = "MonthYear"
	ParamCurrentMonth = "CurrentMonth"
	ParamPrevMonth    = "PrevMonth"
	ParamPrev2Month   = "Prev2Month"
)

// Contract описывает процедуру хранилища и упорядоченный набор её параметров.
type Contract struct {
	QueryID string
	Params  []models.Param
}

// Modes возвращает все режимы в стабильном порядке.
func Modes() []Mode {
	return []Mode{ModeTop, ModeBottom, ModeTotal, ModeRegion, ModeBottomHistory}
}

// Route сопоставляет строку режима с Mode без учёта регистра.
// Пустой или неизвестный режим означает top, а не ошибку.
func Route(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return ModeTop
	case "bottom":
		return ModeBottom
	case "total":
		return ModeTotal
	case "region":
		return ModeRegion
	case "bottomhistory":
		return ModeBottomHistory
	default:
		return ModeTop
	}
}

// Contract возвращает процедуру и параметры режима для периода p.
func (m Mode) Contract(p period.Period) Contract {
	single := func(queryID string) Contract {
		return Contract{
			QueryID: queryID,
			Params:  []models.Param{{Name: ParamMonthYear, Value: p.String()}},
		}
	}

	switch m {
	case ModeBottom:
		return single(QueryBottomByPeriod)
	case ModeTotal:
		return single(QueryTotalByPeriod)
	case ModeRegion:
		return single(QueryRegionByPeriod)
	case ModeBottomHistory:
		w := period.WindowFor(p)
		return Contract{
			QueryID: QueryBottomWithHistory,
			Params: []models.Param{
				{Name: ParamCurrentMonth, Value: w.Current.String()},
				{Name: ParamPrevMonth, Value: w.Previous.String()},
				{Name: ParamPrev2Month, Value: w.TwoPrior.String()},
			},
		}
	default:
		return single(QueryTopByPeriod)
	}
}

func (m Mode) String() string { return string(m) }
