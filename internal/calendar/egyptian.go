package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/Lexorius/alternative-time/internal/julian"
	"github.com/Lexorius/alternative-time/internal/timescale"
)

// egyptianEpoch is the Julian Day Number of 1 Thoth 1 in the era of
// Nabonassar (747 BCE), the reference point of Ptolemy's Almagest.
const egyptianEpoch = 1448638

var egyptianMonths = [13]string{
	"Thoth", "Phaophi", "Athyr", "Choiak", "Tybi", "Mechir", "Phamenoth",
	"Pharmuthi", "Pachon", "Payni", "Epiphi", "Mesore", "Epagomenae",
}

// egyptianFromJDN decomposes a day into the wandering 365-day year: twelve
// 30-day months plus five epagomenal days, no leap rule of any kind.
func egyptianFromJDN(jdn int) (year, month, day int) {
	days := jdn - egyptianEpoch
	year = days/365 + 1
	doy := days % 365
	return year, doy/30 + 1, doy%30 + 1
}

type egyptianModule struct{}

func (m *egyptianModule) Metadata() Metadata { return Metadata{ID: "egyptian"} }

func (m *egyptianModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	jdn := int(julian.DayNumber(utc))
	if jdn < egyptianEpoch {
		return nil, fmt.Errorf("%w: %s predates the era of Nabonassar",
			timescale.ErrOutOfRange, utc.Format(time.RFC3339))
	}
	year, month, day := egyptianFromJDN(jdn)

	return &Result{
		System:  "egyptian",
		Display: fmt.Sprintf("%d %s, year %d of Nabonassar", day, egyptianMonths[month-1], year),
		Fields: map[string]any{
			"year":       year,
			"month":      month,
			"month_name": egyptianMonths[month-1],
			"day":        day,
		},
	}, nil
}
