package payroll

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// closingDay is the last day of a pay period; the next period opens the day after.
const closingDay = 25

var periodRegex = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)

// Period identifies one monthly payroll cycle, written as YYYY-MM.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses a strict "YYYY-MM" period key.
func ParsePeriod(s string) (Period, error) {
	m := periodRegex.FindStringSubmatch(s)
	if m == nil {
		return Period{}, fmt.Errorf("%w: %w: %q", ErrInvalidInput, ErrInvalidPeriod, s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	return Period{Year: year, Month: time.Month(month)}, nil
}

// MustParsePeriod is ParsePeriod for constants and tests.
func MustParsePeriod(s string) Period {
	p, err := ParsePeriod(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PeriodOf returns the calendar-month period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// PeriodsOfYear returns January through December of year.
func PeriodsOfYear(year int) []Period {
	periods := make([]Period, 0, 12)
	for m := time.January; m <= time.December; m++ {
		periods = append(periods, Period{Year: year, Month: m})
	}
	return periods
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Valid reports whether p names a real month. ParsePeriod only returns valid periods.
func (p Period) Valid() bool {
	return p.Year >= 1 && p.Year <= 9999 && p.Month >= time.January && p.Month <= time.December
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// IsJune reports whether resident tax uses the re-assessed June amount.
func (p Period) IsJune() bool {
	return p.Month == time.June
}

// Contains reports whether the calendar date falls in the period's month.
func (p Period) Contains(date time.Time) bool {
	return date.Year() == p.Year && date.Month() == p.Month
}

func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

func (p Period) Next() Period {
	t := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return PeriodOf(t)
}

// Window returns the closing window of the period: the 26th of the prior month
// through the 25th of the period month. Attendance selection still uses the
// calendar month; the window is shown on pay stubs.
func (p Period) Window() (start, end time.Time) {
	end = time.Date(p.Year, p.Month, closingDay, 0, 0, 0, 0, time.UTC)
	start = time.Date(p.Year, p.Month-1, closingDay+1, 0, 0, 0, 0, time.UTC)
	return start, end
}

func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Period) UnmarshalText(text []byte) error {
	parsed, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
