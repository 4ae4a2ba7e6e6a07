package calendar

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMarsSolDateAnchor verifies the MSD epoch and the sol/day ratio.
func TestMarsSolDateAnchor(t *testing.T) {
	// JD 2405522.0 is noon on 1873-12-29; MSD 0 by definition.
	epoch := time.Date(1873, 12, 29, 12, 0, 0, 0, time.UTC)
	assert.InDelta(t, 0.0, MarsSolDate(epoch), 1e-9)

	// One Earth day later the MSD has advanced by 86400/88775.244 sols.
	got := MarsSolDate(epoch.AddDate(0, 0, 1))
	assert.InDelta(t, 86400.0/88775.244, got, 1e-9)
}

// TestDarianYearLengths verifies every year is 668 or 669 sols and the
// long-run mean tracks the tropical year.
func TestDarianYearLengths(t *testing.T) {
	var total int
	for y := 0; y < 200; y++ {
		length := darianYearStart(y+1) - darianYearStart(y)
		require.Contains(t, []int{668, 669}, length, "year %d", y)
		assert.Equal(t, length == 669, darianLeap(y), "year %d", y)
		total += length
	}
	assert.InDelta(t, solsPerYear, float64(total)/200, 0.005)
}

// TestDarianMonthsCoverYear verifies the 24 month lengths sum to the year
// length for both common and leap years.
func TestDarianMonthsCoverYear(t *testing.T) {
	checked := map[bool]bool{}
	for y := 0; y < 8; y++ {
		var sum int
		for m := 1; m <= 24; m++ {
			sum += darianMonthLength(y, m)
		}
		want := darianYearStart(y+1) - darianYearStart(y)
		assert.Equal(t, want, sum, "year %d", y)
		checked[darianLeap(y)] = true
	}
	// Both year kinds must occur inside eight consecutive years.
	assert.True(t, checked[true] && checked[false])
}

// TestDarianFromSolsRoundTrip verifies decomposition is consistent with the
// year table over a long contiguous run.
func TestDarianFromSolsRoundTrip(t *testing.T) {
	for sols := 53000; sols < 56000; sols++ {
		y, m, sol := darianFromSols(sols)
		require.GreaterOrEqual(t, m, 1)
		require.LessOrEqual(t, m, 24)
		require.GreaterOrEqual(t, sol, 1)
		require.LessOrEqual(t, sol, 28)

		// Rebuild the sol count from the decomposition.
		rebuilt := darianYearStart(y) + sol - 1
		for mm := 1; mm < m; mm++ {
			rebuilt += darianMonthLength(y, mm)
		}
		require.Equal(t, sols, rebuilt, "sols %d", sols)
	}
}

// TestDarianComputeFields spot-checks the module output for a fixed date.
func TestDarianComputeFields(t *testing.T) {
	m := &darianModule{}
	res, err := m.Compute(context.Background(),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	msd := res.Fields["msd"].(float64)
	assert.InDelta(t, 53678.81, msd, 0.05)
	assert.Equal(t, 80, res.Fields["year"])
	assert.Equal(t, "Pisces", res.Fields["month_name"])
	assert.Equal(t, 25, res.Fields["sol"])

	y, mo, sol := darianFromSols(int(math.Floor(msd)))
	assert.Equal(t, res.Fields["year"], y)
	assert.Equal(t, res.Fields["month"], mo)
	assert.Equal(t, res.Fields["sol"], sol)

	// 53678 = 7*7668 + 2, so the sol of week is the third name.
	assert.Equal(t, "Sol Martis", res.Fields["sol_of_week"])

	// 191.8 sols into the 669-sol year 80 maps to roughly a third of the
	// orbit.
	ls := res.Fields["solar_longitude_deg"].(float64)
	assert.InDelta(t, 103.2, ls, 0.2)
	assert.Equal(t, "Northern Summer / Southern Winter", res.Fields["season"])
}

// TestDarianWeekCycle verifies the 7-sol week repeats with period 7 over
// consecutive sols.
func TestDarianWeekCycle(t *testing.T) {
	m := &darianModule{}
	base := time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC)

	var names []string
	for d := 0; d < 8; d++ {
		// Step by one sol so each iteration lands on the next week sol.
		at := base.Add(time.Duration(d) * time.Duration(solSeconds*float64(time.Second)))
		res, err := m.Compute(context.Background(), at, nil)
		require.NoError(t, err)
		names = append(names, res.Fields["sol_of_week"].(string))
	}
	assert.Equal(t, names[0], names[7])
	seen := map[string]bool{}
	for _, n := range names[:7] {
		seen[n] = true
	}
	assert.Len(t, seen, 7)
}

// TestDarianSeasonQuadrants walks the season boundaries directly.
func TestDarianSeasonQuadrants(t *testing.T) {
	cases := []struct {
		ls   float64
		want string
	}{
		{0, "Northern Spring / Southern Autumn"},
		{89.9, "Northern Spring / Southern Autumn"},
		{90, "Northern Summer / Southern Winter"},
		{180, "Northern Autumn / Southern Spring"},
		{270, "Northern Winter / Southern Summer"},
		{359.9, "Northern Winter / Southern Summer"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, darianSeason(tc.ls), "ls=%v", tc.ls)
	}
}

// TestDarianSolarLongitudeRange verifies Ls stays inside [0, 360) across a
// full Mars year.
func TestDarianSolarLongitudeRange(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 690; d += 10 {
		msd := MarsSolDate(start.AddDate(0, 0, d))
		year, _, _ := darianFromSols(int(math.Floor(msd)))
		ls := darianSolarLongitude(msd, year)
		require.GreaterOrEqual(t, ls, 0.0, "day %d", d)
		require.Less(t, ls, 360.0, "day %d", d)
	}
}

// TestDarianPreEpoch verifies pre-1873 instants are rejected.
func TestDarianPreEpoch(t *testing.T) {
	m := &darianModule{}
	_, err := m.Compute(context.Background(),
		time.Date(1850, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	assert.Error(t, err)
}
