package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/Lexorius/alternative-time/internal/julian"
	"github.com/Lexorius/alternative-time/internal/timescale"
)

var julianCivilMonths = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// julianCivilFromJDN converts a Julian Day Number to a proleptic Julian
// calendar date.
func julianCivilFromJDN(jdn int) (year, month, day int) {
	c := jdn + 32082
	d := (4*c + 3) / 1461
	e := c - 1461*d/4
	m := (5*e + 2) / 153

	day = e - (153*m+2)/5 + 1
	month = m + 3 - 12*(m/10)
	year = d - 4800 + m/10
	return year, month, day
}

type julianCivilModule struct{}

func (m *julianCivilModule) Metadata() Metadata { return Metadata{ID: "julian_civil"} }

func (m *julianCivilModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	jdn := int(julian.DayNumber(utc))
	year, month, day := julianCivilFromJDN(jdn)
	if year < 1 {
		return nil, fmt.Errorf("%w: %s predates the Julian civil era",
			timescale.ErrOutOfRange, utc.Format(time.RFC3339))
	}

	// Days the Julian calendar currently lags the Gregorian one: reread
	// the Julian y-m-d as a Gregorian date and take the JDN difference.
	asGregorian := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	offset := jdn - int(julian.DayNumber(asGregorian))

	return &Result{
		System: "julian_civil",
		Display: fmt.Sprintf("%d %s %d (Old Style)",
			day, julianCivilMonths[month-1], year),
		Fields: map[string]any{
			"year":        year,
			"month":       month,
			"month_name":  julianCivilMonths[month-1],
			"day":         day,
			"offset_days": offset,
		},
	}, nil
}
