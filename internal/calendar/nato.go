package calendar

import (
	"context"
	"fmt"
	"time"
)

// natoMonths are the three-letter month abbreviations used in a DTG.
var natoMonths = [12]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// natoDTG formats a basic military date-time group, DDHHMMZ MON YY, in the
// Zulu (UTC) zone.
func natoDTG(utc time.Time) string {
	u := utc.UTC()
	return fmt.Sprintf("%02d%02d%02dZ %s %02d",
		u.Day(), u.Hour(), u.Minute(), natoMonths[u.Month()-1], u.Year()%100)
}

type natoModule struct{}

func (m *natoModule) Metadata() Metadata { return Metadata{ID: "nato"} }

func (m *natoModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	u := utc.UTC()
	dtg := natoDTG(u)
	return &Result{
		System:  "nato",
		Display: dtg,
		Fields: map[string]any{
			"dtg":         dtg,
			"day":         u.Day(),
			"time":        u.Format("1504"),
			"zone_letter": "Z",
			"month":       natoMonths[u.Month()-1],
			"year":        u.Year(),
			"full_date":   u.Format("2006-01-02"),
			"full_time":   u.Format("15:04:05"),
		},
	}, nil
}
