package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/Lexorius/alternative-time/internal/julian"
	"github.com/Lexorius/alternative-time/internal/timescale"
)

// geezEpoch is the Julian Day Number of 1 Meskerem 1 in the Ethiopian
// (Incarnation era) reckoning, 8-08-29 in the proleptic Gregorian calendar.
const geezEpoch = 1724221

var geezMonths = [13]string{
	"Meskerem", "Tikimt", "Hidar", "Tahsas", "Tir", "Yekatit", "Megabit",
	"Miyazya", "Ginbot", "Sene", "Hamle", "Nehase", "Pagume",
}

// geezToJDN maps an Ethiopian date to its Julian Day Number. The calendar
// is twelve 30-day months plus the 5- or 6-day Pagume; every fourth year
// (year % 4 == 3) is leap, with no century exception.
func geezToJDN(year, month, day int) int {
	return geezEpoch + 365*(year-1) + year/4 + 30*(month-1) + day - 1
}

// geezFromJDN inverts geezToJDN.
func geezFromJDN(jdn int) (year, month, day int) {
	days := jdn - geezEpoch
	cycle := days / 1461 // 4-year cycles; the leap year is the third
	rem := days % 1461

	var yearInCycle, doy int
	switch {
	case rem < 730:
		yearInCycle, doy = rem/365, rem%365
	case rem < 1096: // leap year, 366 days
		yearInCycle, doy = 2, rem-730
	default:
		yearInCycle, doy = 3, rem-1096
	}
	year = 4*cycle + yearInCycle + 1
	return year, doy/30 + 1, doy%30 + 1
}

type geezModule struct{}

func (m *geezModule) Metadata() Metadata { return Metadata{ID: "geez"} }

func (m *geezModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	jdn := int(julian.DayNumber(utc))
	if jdn < geezEpoch {
		return nil, fmt.Errorf("%w: %s predates the Incarnation era",
			timescale.ErrOutOfRange, utc.Format(time.RFC3339))
	}
	year, month, day := geezFromJDN(jdn)

	return &Result{
		System:  "geez",
		Display: fmt.Sprintf("%d %s %d", day, geezMonths[month-1], year),
		Fields: map[string]any{
			"year":       year,
			"month":      month,
			"month_name": geezMonths[month-1],
			"day":        day,
			"leap_year":  year%4 == 3,
		},
	}, nil
}
