package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/Lexorius/alternative-time/internal/timescale"
)

// era is one Japanese imperial era. Eras are listed oldest first; each runs
// from Start until the next era's Start.
type era struct {
	name  string
	start time.Time
}

// Only the modern one-era-per-reign system is supported; dates before the
// Meiji reform are out of range.
var japaneseEras = []era{
	{"Meiji", time.Date(1868, 10, 23, 0, 0, 0, 0, time.UTC)},
	{"Taisho", time.Date(1912, 7, 30, 0, 0, 0, 0, time.UTC)},
	{"Showa", time.Date(1926, 12, 25, 0, 0, 0, 0, time.UTC)},
	{"Heisei", time.Date(1989, 1, 8, 0, 0, 0, 0, time.UTC)},
	{"Reiwa", time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)},
}

// japaneseEra resolves the era and era year for a civil date. Era years
// count from 1 in the starting calendar year (gannen).
func japaneseEra(t time.Time) (name string, year int, ok bool) {
	for i := len(japaneseEras) - 1; i >= 0; i-- {
		e := japaneseEras[i]
		if !t.Before(e.start) {
			return e.name, t.Year() - e.start.Year() + 1, true
		}
	}
	return "", 0, false
}

type japaneseModule struct{}

func (m *japaneseModule) Metadata() Metadata { return Metadata{ID: "japanese_era"} }

func (m *japaneseModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	name, year, ok := japaneseEra(utc)
	if !ok {
		return nil, fmt.Errorf("%w: %s predates the Meiji era",
			timescale.ErrOutOfRange, utc.Format(time.RFC3339))
	}

	yearLabel := fmt.Sprintf("%d", year)
	if year == 1 {
		yearLabel = "Gannen"
	}

	return &Result{
		System:  "japanese_era",
		Display: fmt.Sprintf("%s %s, %s %d", name, yearLabel, utc.Month(), utc.Day()),
		Fields: map[string]any{
			"era":    name,
			"year":   year,
			"gannen": year == 1,
			"month":  int(utc.Month()),
			"day":    utc.Day(),
		},
	}, nil
}
