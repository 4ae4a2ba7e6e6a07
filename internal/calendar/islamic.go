package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/Lexorius/alternative-time/internal/julian"
	"github.com/Lexorius/alternative-time/internal/timescale"
)

// islamicEpoch is the Julian Day Number of 1 Muharram AH 1 in the tabular
// (civil) reckoning, 622-07-19 in the proleptic Gregorian calendar.
const islamicEpoch = 1948440

var islamicMonths = [12]string{
	"Muharram", "Safar", "Rabi al-Awwal", "Rabi al-Thani",
	"Jumada al-Awwal", "Jumada al-Thani", "Rajab", "Shaban",
	"Ramadan", "Shawwal", "Dhu al-Qadah", "Dhu al-Hijjah",
}

// islamicLeap reports whether an AH year is a leap year of the 30-year
// tabular cycle (years 2, 5, 7, 10, 13, 16, 18, 21, 24, 26 and 29).
func islamicLeap(year int) bool {
	return (11*year+14)%30 < 11
}

// islamicToJDN maps a tabular Islamic date to its Julian Day Number.
func islamicToJDN(year, month, day int) int {
	return islamicEpoch - 1 +
		(year-1)*354 + (3+11*year)/30 +
		29*(month-1) + month/2 +
		day
}

// islamicFromJDN inverts islamicToJDN for any day at or after the epoch.
func islamicFromJDN(jdn int) (year, month, day int) {
	year = (30*(jdn-islamicEpoch) + 10646) / 10631
	month = 1
	for month < 12 && jdn >= islamicToJDN(year, month+1, 1) {
		month++
	}
	day = jdn - islamicToJDN(year, month, 1) + 1
	return year, month, day
}

type islamicModule struct{}

func (m *islamicModule) Metadata() Metadata { return Metadata{ID: "islamic"} }

func (m *islamicModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	jdn := int(julian.DayNumber(utc))
	if jdn < islamicEpoch {
		return nil, fmt.Errorf("%w: %s predates the Hijri epoch",
			timescale.ErrOutOfRange, utc.Format(time.RFC3339))
	}
	year, month, day := islamicFromJDN(jdn)

	return &Result{
		System:  "islamic",
		Display: fmt.Sprintf("%d %s %d AH", day, islamicMonths[month-1], year),
		Fields: map[string]any{
			"year":       year,
			"month":      month,
			"month_name": islamicMonths[month-1],
			"day":        day,
			"leap_year":  islamicLeap(year),
		},
	}, nil
}
