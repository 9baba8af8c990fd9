package report

import (
	"fmt"

	"github.com/magabrotheeeer/sales-reporting/internal/models"
)

// projection превращает сырые строки одного режима в типизированный срез.
type projection func(rows []models.RawRow) any

// projections: ровно одна проекция на режим. Новый режим добавляет запись,
// существующие не меняются.
var projections = map[Mode]projection{
	ModeTop:           projectSalesReps,
	ModeBottom:        projectSalesReps,
	ModeTotal:         projectTotal,
	ModeRegion:        projectRegions,
	ModeBottomHistory: projectHistory,
}

// Normalize приводит сырые строки хранилища к форме ответа режима mode.
// Повторная нормализация уже нормализованных строк даёт тот же результат.
func Normalize(mode Mode, rows []models.RawRow) (any, error) {
	project, ok := projections[mode]
	if !ok {
		return nil, NewError(KindInternal, "internal error", fmt.Errorf("report.Normalize: no projection for mode %q", mode))
	}
	return project(rows), nil
}

func projectSalesReps(rows []models.RawRow) any {
	out := make([]models.SalesRepRow, 0, len(rows))
	for _, r := range rows {
		id, _ := lookup(r, "SalesRepID", "repId")
		name, _ := lookup(r, "FullName", "fullName")
		revenue, _ := lookup(r, "TotalRevenue", "totalRevenue")
		customers, _ := lookup(r, "CustomerCount", "customerCount")
		out = append(out, models.SalesRepRow{
			RepID:         toInt(id),
			FullName:      toText(name),
			TotalRevenue:  toFloat(revenue),
			CustomerCount: toCount(customers),
		})
	}
	return out
}

func projectHistory(rows []models.RawRow) any {
	out := make([]models.HistoryRow, 0, len(rows))
	for _, r := range rows {
		id, _ := lookup(r, "SalesRepID", "repId")
		name, _ := lookup(r, "FullName", "fullName")
		cur, _ := lookup(r, "CurrentSales", "currentSales")
		prev, _ := lookup(r, "PrevSales", "prevSales")
		prev2, _ := lookup(r, "Prev2Sales", "prev2Sales")
		out = append(out, models.HistoryRow{
			RepID:        toInt(id),
			FullName:     toText(name),
			CurrentSales: toFloat(cur),
			PrevSales:    toFloat(prev),
			Prev2Sales:   toFloat(prev2),
		})
	}
	return out
}

func projectTotal(rows []models.RawRow) any {
	if len(rows) == 0 {
		return []models.TotalRow{{TotalSales: 0}}
	}
	out := make([]models.TotalRow, 0, len(rows))
	for _, r := range rows {
		total, _ := lookup(r, "TotalSales", "totalSales")
		out = append(out, models.TotalRow{TotalSales: toFloat(total)})
	}
	return out
}

func projectRegions(rows []models.RawRow) any {
	out := make([]models.RegionRow, 0, len(rows))
	for _, r := range rows {
		key, _ := lookup(r, "RegionKey", "regionKey")
		name, _ := lookup(r, "RegionName", "regionName")
		total, _ := lookup(r, "TotalSales", "totalSales")
		out = append(out, models.RegionRow{
			RegionKey:  key,
			RegionName: name,
			TotalSales: toFloat(total),
		})
	}
	return out
}
