package calendar

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Lexorius/alternative-time/internal/julian"
	"github.com/Lexorius/alternative-time/internal/timescale"
)

// Mars Sol Date parameters: the MSD epoch as a Julian Date, the length of a
// sol in SI seconds, and the mean tropical year in sols.
const (
	msdEpochJD     = 2405522.0
	solSeconds     = 88775.244
	solsPerYear    = 668.5991
	darianMonthLen = 28
)

// darianWeekSols is the 7-sol week, running continuously from MSD 0.
var darianWeekSols = [7]string{
	"Sol Solis", "Sol Lunae", "Sol Martis", "Sol Mercurii",
	"Sol Jovis", "Sol Veneris", "Sol Saturni",
}

var darianMonths = [24]string{
	"Sagittarius", "Dhanus", "Capricornus", "Makara", "Aquarius", "Kumbha",
	"Pisces", "Mina", "Aries", "Mesha", "Taurus", "Rishabha",
	"Gemini", "Mithuna", "Cancer", "Karka", "Leo", "Simha",
	"Virgo", "Kanya", "Libra", "Tula", "Scorpius", "Vrishika",
}

// MarsSolDate converts a UTC instant to the Mars Sol Date.
func MarsSolDate(utc time.Time) float64 {
	return (julian.JD(utc) - msdEpochJD) * 86400 / solSeconds
}

// darianYearStart is the first sol of Darian year y, counted from MSD 0.
func darianYearStart(y int) int {
	return int(math.Floor(solsPerYear * float64(y)))
}

// darianLeap reports whether year y has 669 sols.
func darianLeap(y int) bool {
	return darianYearStart(y+1)-darianYearStart(y) == 669
}

// darianMonthLength returns the length of 1-based month m in year y. Every
// sixth month drops a sol; the final month recovers it in leap years.
func darianMonthLength(y, m int) int {
	if m%6 != 0 {
		return darianMonthLen
	}
	if m == 24 && darianLeap(y) {
		return darianMonthLen
	}
	return darianMonthLen - 1
}

// darianFromSols decomposes a whole sol count into year, month and sol.
func darianFromSols(totalSols int) (year, month, sol int) {
	year = int(float64(totalSols) / solsPerYear)
	for darianYearStart(year+1) <= totalSols {
		year++
	}
	for darianYearStart(year) > totalSols {
		year--
	}

	solOfYear := totalSols - darianYearStart(year)
	month = 1
	for solOfYear >= darianMonthLength(year, month) {
		solOfYear -= darianMonthLength(year, month)
		month++
	}
	return year, month, solOfYear + 1
}

// darianSolarLongitude approximates the areocentric solar longitude Ls in
// degrees by mapping the fractional sol of year linearly onto 360. The
// linear map ignores orbital eccentricity, so it is an approximation of a
// few degrees. Dividing by the actual year length keeps Ls in [0, 360)
// through 669-sol years.
func darianSolarLongitude(msd float64, year int) float64 {
	yearLen := float64(darianYearStart(year+1) - darianYearStart(year))
	return (msd - float64(darianYearStart(year))) / yearLen * 360
}

// darianSeason names the season for a solar longitude, one per 90-degree
// quadrant starting at the northern vernal equinox.
func darianSeason(ls float64) string {
	switch {
	case ls < 90:
		return "Northern Spring / Southern Autumn"
	case ls < 180:
		return "Northern Summer / Southern Winter"
	case ls < 270:
		return "Northern Autumn / Southern Spring"
	default:
		return "Northern Winter / Southern Summer"
	}
}

type darianModule struct{}

func (m *darianModule) Metadata() Metadata { return Metadata{ID: "darian"} }

func (m *darianModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	msd := MarsSolDate(utc)
	if msd < 0 {
		return nil, fmt.Errorf("%w: %s predates the Mars Sol Date epoch",
			timescale.ErrOutOfRange, utc.Format(time.RFC3339))
	}

	totalSols := int(math.Floor(msd))
	year, month, sol := darianFromSols(totalSols)
	weekSol := darianWeekSols[totalSols%7]
	ls := darianSolarLongitude(msd, year)

	// Mars local time at the prime meridian, on a 24-hour sol clock.
	frac := msd - math.Floor(msd)
	h := int(frac * 24)
	min := int(frac*1440) % 60
	sec := int(frac*86400) % 60

	return &Result{
		System: "darian",
		Display: fmt.Sprintf("%s, %d %s %d, %02d:%02d:%02d MTC",
			weekSol, sol, darianMonths[month-1], year, h, min, sec),
		Fields: map[string]any{
			"msd":                 msd,
			"year":                year,
			"month":               month,
			"month_name":          darianMonths[month-1],
			"sol":                 sol,
			"sol_of_week":         weekSol,
			"solar_longitude_deg": ls,
			"season":              darianSeason(ls),
			"leap_year":           darianLeap(year),
			"mtc":                 fmt.Sprintf("%02d:%02d:%02d", h, min, sec),
		},
	}, nil
}
