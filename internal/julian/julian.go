// Package julian converts between civil time and the Julian Date / Julian
// Day Number continuum used as the pivot for all calendrical conversions.
package julian

import (
	"math"
	"time"
)

// J2000 is the Julian Date of the J2000.0 epoch (January 1, 2000, 12:00:00).
const J2000 = 2451545.0

// mjdOffset converts Julian Date to Modified Julian Date.
const mjdOffset = 2400000.5

// JD converts a time.Time (interpreted in UTC) to Julian Date.
// Uses the standard astronomical algorithm valid for dates after March 1, 4801 BC.
func JD(t time.Time) float64 {
	t = t.UTC()
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())
	h := float64(t.Hour())
	min := float64(t.Minute())
	s := float64(t.Second()) + float64(t.Nanosecond())/1e9

	// Treat Jan/Feb as months 13/14 of the previous year.
	if m <= 2 {
		y -= 1
		m += 12
	}

	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + B - 1524.5
	jd += (h + min/60.0 + s/3600.0) / 24.0

	return jd
}

// MJD converts a time.Time to Modified Julian Date.
func MJD(t time.Time) float64 {
	return JD(t) - mjdOffset
}

// DayNumber returns the Julian Day Number of the civil day containing t.
// The JDN is the integer label of a day running noon-to-noon; every instant
// of the civil day 2000-01-01 maps to JDN 2451545.
func DayNumber(t time.Time) int64 {
	t = t.UTC()
	return CivilToDayNumber(t.Year(), int(t.Month()), t.Day())
}

// CivilToDayNumber converts a proleptic Gregorian date to its Julian Day
// Number using the Fliegel–Van Flandern algorithm.
func CivilToDayNumber(year, month, day int) int64 {
	y := int64(year)
	m := int64(month)
	d := int64(day)

	a := (14 - m) / 12
	y = y + 4800 - a
	m = m + 12*a - 3

	return d + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// FromDayNumber converts a Julian Day Number back to a proleptic Gregorian
// date. Exact inverse of CivilToDayNumber for jdn >= 0.
func FromDayNumber(jdn int64) (year, month, day int) {
	l := jdn + 68569
	n := 4 * l / 146097
	l = l - (146097*n+3)/4
	i := 4000 * (l + 1) / 1461001
	l = l - 1461*i/4 + 31
	j := 80 * l / 2447
	d := l - 2447*j/80
	l = j / 11
	m := j + 2 - 12*l
	y := 100*(n-49) + i + l

	return int(y), int(m), int(d)
}
