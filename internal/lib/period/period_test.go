package period

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowFor_TableTests(t *testing.T) {
	tests := []struct {
		name     string
		period   string
		previous string
		twoPrior string
	}{
		{name: "january rolls over year", period: "2024-01", previous: "2023-12", twoPrior: "2023-11"},
		{name: "february rolls twoPrior over year", period: "2024-02", previous: "2024-01", twoPrior: "2023-12"},
		{name: "march stays in year", period: "2024-03", previous: "2024-02", twoPrior: "2024-01"},
		{name: "december", period: "2023-12", previous: "2023-11", twoPrior: "2023-10"},
		{name: "leap year boundary", period: "2000-01", previous: "1999-12", twoPrior: "1999-11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WindowFor(MustParse(tt.period))
			if w.Current.String() != tt.period || w.Previous.String() != tt.previous || w.TwoPrior.String() != tt.twoPrior {
				t.Errorf("WindowFor(%s) = (%s, %s, %s), want (%s, %s, %s)",
					tt.period, w.Current, w.Previous, w.TwoPrior, tt.period, tt.previous, tt.twoPrior)
			}
		})
	}
}

func TestWindowFor_AllMonths(t *testing.T) {
	for year := 1999; year <= 2025; year++ {
		for month := 1; month <= 12; month++ {
			p, err := Parse(fmt.Sprintf("%04d-%02d", year, month))
			require.NoError(t, err)

			w := WindowFor(p)
			// номер месяца от начала эпохи: каждый шаг назад ровно на единицу
			idx := func(x Period) int { return x.Year()*12 + x.Month() - 1 }
			assert.Equal(t, idx(p)-1, idx(w.Previous), "previous of %s", p)
			assert.Equal(t, idx(p)-2, idx(w.TwoPrior), "twoPrior of %s", p)
			assert.Regexp(t, `^\d{4}-\d{2}$`, w.TwoPrior.String())
		}
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, s := range []string{"2024-06", "1999-12", "0001-01", "9999-12", "2024-10"} {
		p, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, p.String())

		again, err := Parse(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, again)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"2024",
		"2024-6",
		"2024-13",
		"2024-00",
		"24-06",
		"2024/06",
		"2024-06-01",
		" 2024-06",
		"abcd-ef",
	}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := Parse(s)
			assert.ErrorIs(t, err, ErrInvalidPeriod)
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		want    string
		wantErr bool
	}{
		{name: "period only", in: Input{Period: "2024-06"}, want: "2024-06"},
		{name: "year and padded month", in: Input{Year: "2024", Month: "06"}, want: "2024-06"},
		{name: "year and unpadded month", in: Input{Year: "2024", Month: "6"}, want: "2024-06"},
		{name: "nothing", in: Input{}, wantErr: true},
		{name: "year without month", in: Input{Year: "2024"}, wantErr: true},
		{name: "month without year", in: Input{Month: "06"}, wantErr: true},
		{name: "both sources", in: Input{Period: "2024-06", Year: "2024", Month: "06"}, wantErr: true},
		{name: "malformed period", in: Input{Period: "June 2024"}, wantErr: true},
		{name: "month out of range", in: Input{Year: "2024", Month: "13"}, wantErr: true},
		{name: "short year", in: Input{Year: "24", Month: "06"}, wantErr: true},
		{name: "three digit month", in: Input{Year: "2024", Month: "006"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestLastCompleted(t *testing.T) {
	assert.Equal(t, "2023-12", LastCompleted(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)).String())
	assert.Equal(t, "2024-02", LastCompleted(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)).String())
}

func TestPeriod_TextMarshaling(t *testing.T) {
	var p Period
	require.NoError(t, p.UnmarshalText([]byte("2024-05")))
	b, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2024-05", string(b))

	assert.Error(t, p.UnmarshalText([]byte("2024-5")))
	assert.False(t, p.IsZero())
	assert.True(t, Period{}.IsZero())
}
