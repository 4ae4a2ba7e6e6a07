package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMayaBaktunRollover pins the 2012-12-21 baktun completion with its
// famous calendar round.
func TestMayaBaktunRollover(t *testing.T) {
	m := &mayaModule{}
	res, err := m.Compute(context.Background(),
		time.Date(2012, 12, 21, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	assert.Equal(t, "13.0.0.0.0", res.Fields["long_count"])
	assert.Equal(t, "4 Ahau", res.Fields["tzolkin"])
	assert.Equal(t, "3 Kankin", res.Fields["haab"])
}

// TestMayaKnownDates checks hand-verified correlation anchors.
func TestMayaKnownDates(t *testing.T) {
	cases := []struct {
		date      time.Time
		longCount string
		tzolkin   string
		haab      string
	}{
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "13.0.12.3.14", "4 Ix", "17 Kankin"},
		{time.Date(2012, 12, 22, 0, 0, 0, 0, time.UTC), "13.0.0.0.1", "5 Imix", "4 Kankin"},
	}
	m := &mayaModule{}
	for _, tc := range cases {
		res, err := m.Compute(context.Background(), tc.date, nil)
		require.NoError(t, err, tc.date)
		assert.Equal(t, tc.longCount, res.Fields["long_count"], tc.date)
		assert.Equal(t, tc.tzolkin, res.Fields["tzolkin"], tc.date)
		assert.Equal(t, tc.haab, res.Fields["haab"], tc.date)
	}
}

// TestMayaWithinDayStable verifies every instant of a civil day maps to the
// same Maya day.
func TestMayaWithinDayStable(t *testing.T) {
	m := &mayaModule{}
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	first, err := m.Compute(context.Background(), day, nil)
	require.NoError(t, err)
	last, err := m.Compute(context.Background(), day.Add(24*time.Hour-time.Nanosecond), nil)
	require.NoError(t, err)

	assert.Equal(t, first.Fields["long_count"], last.Fields["long_count"])
	assert.Equal(t, first.Fields["tzolkin"], last.Fields["tzolkin"])
}

// TestLongCountRoundTrip verifies the inverse conversion back to civil dates.
func TestLongCountRoundTrip(t *testing.T) {
	got, err := LongCountToCivil("13.0.12.3.14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = LongCountToCivil("13.0.0.0.0")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2012, 12, 21, 0, 0, 0, 0, time.UTC), got)
}

// TestParseLongCountRejects exercises the parser's validation.
func TestParseLongCountRejects(t *testing.T) {
	for _, s := range []string{
		"",
		"13.0.0.0",     // too few fields
		"13.0.0.0.0.0", // too many
		"13.0.0.18.0",  // uinal cycle is 0-17
		"13.0.0.0.20",  // kin cycle is 0-19
		"13.0.0.0.-1",  // negative
		"13.0.0.x.0",   // not a number
	} {
		_, err := ParseLongCount(s)
		assert.Error(t, err, "input %q", s)
	}
}

// TestTzolkinCycles verifies the 13-day and 20-name cycles advance daily.
func TestTzolkinCycles(t *testing.T) {
	m := &mayaModule{}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	seen := map[string]bool{}
	for i := 0; i < 260; i++ {
		res, err := m.Compute(context.Background(), base.AddDate(0, 0, i), nil)
		require.NoError(t, err)
		tz := res.Fields["tzolkin"].(string)
		assert.False(t, seen[tz], "tzolkin %q repeated inside one 260-day round", tz)
		seen[tz] = true
	}
}
