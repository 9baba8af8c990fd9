// Package models содержит структуры строк отчётов о продажах,
// которые шлюз отдаёт клиенту, и сырые строки аналитического хранилища.
package models

// RawRow хранит строку результата аналитической процедуры как есть: имя колонки и значение.
// Читать поля RawRow может только нормализатор ответа (пакет report).
type RawRow map[string]any

// Param описывает именованный параметр аналитического запроса.
// Порядок параметров в срезе совпадает с порядком аргументов процедуры.
type Param struct {
	Name  string
	Value string
}

// SalesRepRow описывает строку отчётов top и bottom.
type SalesRepRow struct {
	RepID         int64   `json:"repId"`
	FullName      *string `json:"fullName"`
	TotalRevenue  float64 `json:"totalRevenue"`
	CustomerCount int64   `json:"customerCount"`
}

// HistoryRow описывает строку отчёта bottomHistory с продажами за текущий и два предыдущих месяца.
type HistoryRow struct {
	RepID        int64   `json:"repId"`
	FullName     *string `json:"fullName"`
	CurrentSales float64 `json:"currentSales"`
	PrevSales    float64 `json:"prevSales"`
	Prev2Sales   float64 `json:"prev2Sales"`
}

// TotalRow содержит общую сумму продаж за период.
type TotalRow struct {
	TotalSales float64 `json:"totalSales"`
}

// RegionRow содержит сумму продаж по региону. Идентификаторы региона передаются без изменений.
type RegionRow struct {
	RegionKey  any     `json:"regionKey"`
	RegionName any     `json:"regionName"`
	TotalSales float64 `json:"totalSales"`
}

// ReportQuery содержит параметры запроса отчёта из query string до валидации.
type ReportQuery struct {
	Mode      string
	Period    string `validate:"omitempty,len=7"`
	MonthYear string `validate:"omitempty,len=7"`
	Year      string `validate:"omitempty,numeric,len=4"`
	Month     string `validate:"omitempty,numeric,max=2"`
}
