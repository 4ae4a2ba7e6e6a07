package calendar

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Stardate scale constants. The TNG scale issues 1000 units per Earth year
// from the start of 2323; the TOS scale counts half a unit per day from a
// fixed 2000-01-01 anchor; the Discovery scale is simply the fractional
// calendar year.
const (
	stardateTNGBaseYear  = 2323
	stardateTNGPerYear   = 1000.0
	stardateTOSAnchor    = 1312.4
	stardateTOSPerDay    = 0.5
	stardateDaysPerYear  = 365.25
	stardateMinPerDay    = 1440.0
	stardateTNGMinFactor = 10.0
)

var stardateTOSEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// tngStardate maps an instant onto the TNG scale: 1000 units per year plus
// a day-of-year term and a sub-day term worth 10 units per day.
func tngStardate(t time.Time) float64 {
	t = t.UTC()
	yearPart := stardateTNGPerYear * float64(t.Year()-stardateTNGBaseYear)
	dayPart := stardateTNGPerYear * float64(t.YearDay()) / stardateDaysPerYear
	minPart := float64(t.Hour()*60+t.Minute()) / stardateMinPerDay * stardateTNGMinFactor
	return yearPart + dayPart + minPart
}

// tosStardate counts half a stardate unit per whole day elapsed since the
// 2000-01-01 anchor, which carries the value 1312.4.
func tosStardate(t time.Time) float64 {
	days := math.Floor(t.UTC().Sub(stardateTOSEpoch).Hours() / 24)
	return stardateTOSAnchor + stardateTOSPerDay*days
}

// discoveryStardate is the fractional calendar year itself.
func discoveryStardate(t time.Time) float64 {
	t = t.UTC()
	return float64(t.Year()) + float64(t.YearDay())/stardateDaysPerYear
}

type stardateModule struct{}

func (m *stardateModule) Metadata() Metadata {
	return Metadata{ID: "stardate", Options: []OptionSpec{{
		Name:    "format",
		Values:  []string{"tng", "tos", "discovery"},
		Default: "tng",
	}}}
}

func (m *stardateModule) Compute(_ context.Context, utc time.Time, opts Options) (*Result, error) {
	spec := m.Metadata().Options[0]
	format := opts.Get(spec.Name, spec.Default)
	if err := checkOption(spec, format); err != nil {
		return nil, err
	}

	var sd float64
	switch format {
	case "tos":
		sd = tosStardate(utc)
	case "discovery":
		sd = discoveryStardate(utc)
	default:
		sd = tngStardate(utc)
	}

	return &Result{
		System:  "stardate",
		Display: fmt.Sprintf("Stardate %.1f", sd),
		Fields: map[string]any{
			"stardate": sd,
			"format":   format,
		},
	}, nil
}
