package timescale

import (
	"fmt"
	"time"
)

// TTMinusTAI is the fixed offset of Terrestrial Time over TAI in seconds.
const TTMinusTAI = 32.184

// TAIMinusGPS is the fixed offset of TAI over GPS time in seconds. GPS time
// has inserted no leap seconds since its epoch, so the offset is constant
// for all instants at or after GPSEpoch.
const TAIMinusGPS = 19.0

// GPSEpoch is the start of GPS time, 1980-01-06T00:00:00 UTC.
var GPSEpoch = time.Date(1980, 1, 6, 0, 0, 0, 0, time.UTC)

// Converter maps UTC instants onto the uniform atomic scales. It holds only
// the immutable leap-second table and is safe for concurrent use.
type Converter struct {
	table *Table
}

// NewConverter creates a Converter over the given table.
func NewConverter(table *Table) *Converter {
	return &Converter{table: table}
}

// Table returns the underlying leap-second table.
func (c *Converter) Table() *Table {
	return c.table
}

// ToTAI converts a UTC instant to TAI: tai = utc + cumulative offset.
func (c *Converter) ToTAI(utc time.Time) (time.Time, error) {
	off, err := c.table.OffsetAt(utc)
	if err != nil {
		return time.Time{}, err
	}
	return utc.Add(secondsToDuration(off)), nil
}

// FromTAI converts a TAI instant back to UTC. The offset is looked up at
// the TAI instant and refined once, which resolves lookups that land within
// a leap-second boundary's width of an entry.
func (c *Converter) FromTAI(tai time.Time) (time.Time, error) {
	off, err := c.table.OffsetAt(tai)
	if err != nil {
		return time.Time{}, err
	}
	utc := tai.Add(-secondsToDuration(off))

	refined, err := c.table.OffsetAt(utc)
	if err != nil {
		return time.Time{}, err
	}
	if refined != off {
		utc = tai.Add(-secondsToDuration(refined))
	}
	return utc, nil
}

// ToTT converts UTC to Terrestrial Time: tt = tai + 32.184 s.
func (c *Converter) ToTT(utc time.Time) (time.Time, error) {
	tai, err := c.ToTAI(utc)
	if err != nil {
		return time.Time{}, err
	}
	return tai.Add(secondsToDuration(TTMinusTAI)), nil
}

// FromTT converts Terrestrial Time back to UTC.
func (c *Converter) FromTT(tt time.Time) (time.Time, error) {
	return c.FromTAI(tt.Add(-secondsToDuration(TTMinusTAI)))
}

// ToGPS converts UTC to GPS time: gps = tai - 19 s. Instants before the
// GPS epoch are out of range for this scale.
func (c *Converter) ToGPS(utc time.Time) (time.Time, error) {
	if utc.Before(GPSEpoch) {
		return time.Time{}, fmt.Errorf("%w: %s predates the GPS epoch (%s)",
			ErrOutOfRange, utc.UTC().Format(time.RFC3339), GPSEpoch.Format(time.RFC3339))
	}
	tai, err := c.ToTAI(utc)
	if err != nil {
		return time.Time{}, err
	}
	return tai.Add(-secondsToDuration(TAIMinusGPS)), nil
}

// FromGPS converts GPS time back to UTC.
func (c *Converter) FromGPS(gps time.Time) (time.Time, error) {
	utc, err := c.FromTAI(gps.Add(secondsToDuration(TAIMinusGPS)))
	if err != nil {
		return time.Time{}, err
	}
	if utc.Before(GPSEpoch) {
		return time.Time{}, fmt.Errorf("%w: %s predates the GPS epoch",
			ErrOutOfRange, utc.UTC().Format(time.RFC3339))
	}
	return utc, nil
}

// secondsToDuration converts fractional seconds to a time.Duration without
// losing sub-second precision.
func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
