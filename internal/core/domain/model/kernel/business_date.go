package kernel

import (
	"fmt"
	"time"

	"restaurant/internal/pkg/errs"
)

// BusinessDate is a calendar day in the restaurant's time zone. Prices are
// effective per business date and order numbers restart every business date.
type BusinessDate struct {
	year  int
	month time.Month
	day   int
}

// NewBusinessDate returns the day t falls on in loc.
func NewBusinessDate(t time.Time, loc *time.Location) BusinessDate {
	y, m, d := t.In(loc).Date()
	return BusinessDate{year: y, month: m, day: d}
}

// BusinessDateFromCompact parses the YYYYMMDD form used in order numbers.
func BusinessDateFromCompact(s string) (BusinessDate, error) {
	t, err := time.Parse("20060102", s)
	if err != nil {
		return BusinessDate{}, errs.NewValueIsInvalidErrorWithCause("business date", fmt.Errorf("%q: %w", s, err))
	}
	return NewBusinessDate(t, time.UTC), nil
}

// Compact formats the date as YYYYMMDD.
func (d BusinessDate) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.year, d.month, d.day)
}

// String formats the date as YYYY-MM-DD.
func (d BusinessDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// Time returns midnight UTC of the date, the representation stored in date columns.
func (d BusinessDate) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// AddDays moves the date by n calendar days.
func (d BusinessDate) AddDays(n int) BusinessDate {
	return NewBusinessDate(d.Time().AddDate(0, 0, n), time.UTC)
}

func (d BusinessDate) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Calendar resolves "today" in the business time zone.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar returns a Calendar for loc. A nil now defaults to time.Now.
func NewCalendar(loc *time.Location, now func() time.Time) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return Calendar{loc: loc, now: now}
}

func (c Calendar) Today() BusinessDate {
	if c.now == nil {
		return NewBusinessDate(time.Now(), time.UTC)
	}
	return NewBusinessDate(c.now(), c.loc)
}

// Now returns the current instant in UTC.
func (c Calendar) Now() time.Time {
	if c.now == nil {
		return time.Now().UTC()
	}
	return c.now().UTC()
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}
