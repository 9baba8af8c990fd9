package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/sales-reporting/internal/models"
)

// lookup ищет значение колонки по любому из имён: сначала точное совпадение,
// затем без учёта регистра.
func lookup(row models.RawRow, names ...string) (any, bool) {
	for _, name := range names {
		if v, ok := row[name]; ok {
			return v, true
		}
	}
	for key, v := range row {
		for _, name := range names {
			if strings.EqualFold(key, name) {
				return v, true
			}
		}
	}
	return nil, false
}

// toFloat приводит значение к числу. Отсутствующее, null, непарсящееся,
// NaN и бесконечность дают 0.
func toFloat(v any) float64 {
	f, ok := parseNumber(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// toInt как toFloat, но с отбрасыванием дробной части. Значения вне int64
// дают 0. float64(math.MaxInt64) равно 2^63, поэтому граница нестрогая.
func toInt(v any) int64 {
	f := math.Trunc(toFloat(v))
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

// toCount как toInt, но отрицательное количество превращается в 0.
func toCount(v any) int64 {
	return max(toInt(v), 0)
}

func parseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case decimal.Decimal:
		return n.InexactFloat64(), true
	case json.Number:
		return parseDecimal(n.String())
	case string:
		return parseDecimal(n)
	case []byte:
		return parseDecimal(string(n))
	default:
		return 0, false
	}
}

func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// toText возвращает строковое поле или nil, если значения нет.
func toText(v any) *string {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		s = fmt.Sprint(t)
	}
	return &s
}
