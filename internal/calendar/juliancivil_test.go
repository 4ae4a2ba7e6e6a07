package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestJulianCivilKnownDates pins the Old Style conversion against known
// Gregorian/Julian pairs.
func TestJulianCivilKnownDates(t *testing.T) {
	cases := []struct {
		jdn     int
		y, m, d int
	}{
		// Gregorian 2000-01-01 is Julian 1999-12-19.
		{2451545, 1999, 12, 19},
		// Gregorian 2026-08-24 is Julian 2026-08-11.
		{2461277, 2026, 8, 11},
		// Gregorian 1582-10-15, the day the reform took effect, is
		// Julian 1582-10-05.
		{2299161, 1582, 10, 5},
	}
	for _, tc := range cases {
		y, m, d := julianCivilFromJDN(tc.jdn)
		assert.Equal(t, [3]int{tc.y, tc.m, tc.d}, [3]int{y, m, d}, "jdn %d", tc.jdn)
	}
}

// TestJulianCivilCompute verifies the module output and the current
// 13-day offset.
func TestJulianCivilCompute(t *testing.T) {
	m := &julianCivilModule{}

	res, err := m.Compute(context.Background(),
		time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	assert.Equal(t, "11 August 2026 (Old Style)", res.Display)
	assert.Equal(t, 2026, res.Fields["year"])
	assert.Equal(t, 8, res.Fields["month"])
	assert.Equal(t, 11, res.Fields["day"])
	assert.Equal(t, 13, res.Fields["offset_days"])
}

// TestJulianCivilOffsetGrowth: the Julian calendar loses three days every
// four centuries; the offset was 10 days at the 1582 reform.
func TestJulianCivilOffsetGrowth(t *testing.T) {
	m := &julianCivilModule{}

	res, err := m.Compute(context.Background(),
		time.Date(1582, 10, 15, 12, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Fields["offset_days"])

	res, err = m.Compute(context.Background(),
		time.Date(2126, 8, 24, 12, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, 14, res.Fields["offset_days"])
}

// TestJulianCivilContiguous verifies successive JDNs advance the Julian
// date by exactly one day over a multi-year run including a leap year.
func TestJulianCivilContiguous(t *testing.T) {
	prevY, prevM, prevD := julianCivilFromJDN(2451544)
	for jdn := 2451545; jdn < 2453000; jdn++ {
		y, m, d := julianCivilFromJDN(jdn)
		sameMonth := y == prevY && m == prevM && d == prevD+1
		nextMonth := d == 1 && ((y == prevY && m == prevM+1) ||
			(y == prevY+1 && m == 1 && prevM == 12))
		if !sameMonth && !nextMonth {
			t.Fatalf("jdn %d: %04d-%02d-%02d does not follow %04d-%02d-%02d",
				jdn, y, m, d, prevY, prevM, prevD)
		}
		prevY, prevM, prevD = y, m, d
	}
}
