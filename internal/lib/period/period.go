// Package period описывает отчётный период, то есть календарный месяц в формате YYYY-MM,
// и арифметику предыдущих месяцев для исторических отчётов.
//
// Все вычисления выполняются над парой (год, месяц) целых чисел с явным переносом
// через границу года, без time.Time и его правил переполнения дат.
package period

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidPeriod возвращается для любого некорректного или отсутствующего периода.
var ErrInvalidPeriod = errors.New("invalid period")

var (
	periodRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
	yearRe   = regexp.MustCompile(`^\d{4}$`)
	monthRe  = regexp.MustCompile(`^\d{1,2}$`)
)

// Period задаёт календарный месяц. Нулевое значение не является валидным периодом.
type Period struct {
	year  int
	month int // 1..12
}

// Window содержит текущий период и два предшествующих ему месяца.
type Window struct {
	Current  Period
	Previous Period
	TwoPrior Period
}

// Input содержит источники периода из запроса: либо Period, либо пара Year+Month.
type Input struct {
	Period string
	Year   string
	Month  string
}

// Parse разбирает строку вида YYYY-MM.
func Parse(s string) (Period, error) {
	const op = "period.Parse"
	if !periodRe.MatchString(s) {
		return Period{}, fmt.Errorf("%s: %q: %w", op, s, ErrInvalidPeriod)
	}
	year, _ := strconv.Atoi(s[:4])
	month, _ := strconv.Atoi(s[5:])
	return newPeriod(year, month)
}

// FromYearMonth собирает период из отдельных года и месяца.
// Месяц допускается без ведущего нуля ("6" и "06" равнозначны).
func FromYearMonth(year, month string) (Period, error) {
	const op = "period.FromYearMonth"
	if !yearRe.MatchString(year) || !monthRe.MatchString(month) {
		return Period{}, fmt.Errorf("%s: year=%q month=%q: %w", op, year, month, ErrInvalidPeriod)
	}
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	return newPeriod(y, m)
}

// Resolve возвращает период из ровно одного корректного источника.
func Resolve(in Input) (Period, error) {
	hasPeriod := in.Period != ""
	hasPair := in.Year != "" || in.Month != ""

	switch {
	case hasPeriod && hasPair:
		return Period{}, fmt.Errorf("period.Resolve: ambiguous period source: %w", ErrInvalidPeriod)
	case hasPeriod:
		return Parse(in.Period)
	case in.Year != "" && in.Month != "":
		return FromYearMonth(in.Year, in.Month)
	default:
		return Period{}, fmt.Errorf("period.Resolve: missing period: %w", ErrInvalidPeriod)
	}
}

// MustParse как Parse, но паникует на ошибке. Только для констант и тестов.
func MustParse(s string) Period {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Of возвращает период, содержащий момент t.
func Of(t time.Time) Period {
	return Period{year: t.Year(), month: int(t.Month())}
}

// LastCompleted возвращает последний полностью завершившийся месяц относительно now.
// Дашборд открывается именно на нём.
func LastCompleted(now time.Time) Period {
	return Of(now).Previous()
}

func newPeriod(year, month int) (Period, error) {
	if year < 1 || year > 9999 || month < 1 || month > 12 {
		return Period{}, fmt.Errorf("period: %04d-%02d: %w", year, month, ErrInvalidPeriod)
	}
	return Period{year: year, month: month}, nil
}

// Year возвращает год периода.
func (p Period) Year() int { return p.year }

// Month возвращает месяц периода (1..12).
func (p Period) Month() int { return p.month }

// IsZero сообщает, что период не был задан.
func (p Period) IsZero() bool { return p.year == 0 && p.month == 0 }

// String возвращает каноническую форму YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.year, p.month)
}

// Previous возвращает предыдущий календарный месяц.
func (p Period) Previous() Period {
	year, month := p.year, p.month-1
	if month == 0 {
		month = 12
		year--
	}
	return Period{year: year, month: month}
}

// MarshalText реализует encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler.
func (p *Period) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// WindowFor строит окно из текущего периода и двух предыдущих месяцев.
func WindowFor(p Period) Window {
	prev := p.Previous()
	return Window{
		Current:  p,
		Previous: prev,
		TwoPrior: prev.Previous(),
	}
}
