package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMinguoYear verifies the Republic-era year count: Minguo 1 = 1912,
// months and days unchanged.
func TestMinguoYear(t *testing.T) {
	m := &minguoModule{}

	res, err := m.Compute(context.Background(),
		time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, 115, res.Fields["year"])
	assert.Equal(t, false, res.Fields["before_era"])
	assert.Equal(t, "Minguo 115-08-24", res.Display)

	res, err = m.Compute(context.Background(),
		time.Date(1912, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Fields["year"])
}

// TestMinguoBeforeEra verifies pre-1912 years count backwards with no
// year 0: 1911 is Before Minguo 1.
func TestMinguoBeforeEra(t *testing.T) {
	m := &minguoModule{}

	res, err := m.Compute(context.Background(),
		time.Date(1911, 6, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Fields["year"])
	assert.Equal(t, true, res.Fields["before_era"])
	assert.Equal(t, "Before Minguo 1-06-01", res.Display)

	res, err = m.Compute(context.Background(),
		time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Fields["year"])
}
