// Package rotation derives Earth-rotation time (UT1) and the Earth Rotation
// Angle from UTC and the cached DUT1 correction.
package rotation

import (
	"context"
	"math"
	"time"

	"github.com/Lexorius/alternative-time/internal/eop"
	"github.com/Lexorius/alternative-time/internal/julian"
)

// SiderealDaySeconds is the rotation period of the ERA, one sidereal day.
const SiderealDaySeconds = 86164.0905

// IAU 2000 ERA polynomial coefficients: rotational phase at J2000.0 in
// turns, and turns per UT1 day.
const (
	eraPhaseAtJ2000 = 0.7790572732640
	eraTurnsPerDay  = 1.00273781191135448
)

// Converter composes the EOP cache into UT1 and ERA conversions. Staleness
// of the underlying DUT1 sample only affects magnitude, never the
// functional form, so both conversions always succeed.
type Converter struct {
	cache *eop.Cache
}

// NewConverter creates a Converter reading DUT1 from cache.
func NewConverter(cache *eop.Cache) *Converter {
	return &Converter{cache: cache}
}

// ToUT1 converts a UTC instant to UT1 using the latest DUT1 value.
// The second return reports whether the correction was stale.
func (c *Converter) ToUT1(ctx context.Context, utc time.Time) (time.Time, bool) {
	dut1, stale := c.cache.DUT1(ctx)
	return utc.Add(time.Duration(dut1 * float64(time.Second))), stale
}

// ERA returns the Earth Rotation Angle in radians, normalized to [0, 2pi),
// for the given UTC instant.
func (c *Converter) ERA(ctx context.Context, utc time.Time) (float64, bool) {
	ut1, stale := c.ToUT1(ctx, utc)
	return AngleAtUT1(ut1), stale
}

// DUT1 exposes the current correction for diagnostic output.
func (c *Converter) DUT1(ctx context.Context) (float64, bool) {
	return c.cache.DUT1(ctx)
}

// AngleAtUT1 computes the Earth Rotation Angle for an instant already on
// the UT1 scale:
//
//	ERA = 2pi * frac(0.7790572732640 + 1.00273781191135448 * Du)
//
// where Du is the number of UT1 days (fractional) since J2000.0.
func AngleAtUT1(ut1 time.Time) float64 {
	du := julian.JD(ut1) - julian.J2000

	turns := eraPhaseAtJ2000 + eraTurnsPerDay*du
	frac := turns - math.Floor(turns)

	return frac * 2 * math.Pi
}
