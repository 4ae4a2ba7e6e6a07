package calendar

import (
	"context"
	"fmt"
	"time"
)

// Sub-day clock systems: alternative readings of the time of day (or the
// raw epoch count) rather than alternative calendars.

type unixModule struct{}

func (m *unixModule) Metadata() Metadata { return Metadata{ID: "unix"} }

func (m *unixModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	sec := utc.Unix()
	return &Result{
		System:  "unix",
		Display: fmt.Sprintf("%d", sec),
		Fields: map[string]any{
			"seconds":      sec,
			"milliseconds": utc.UnixMilli(),
		},
	}, nil
}

// swatchBeats divides the day into 1000 beats of 86.4 s each, counted from
// midnight Biel Mean Time (UTC+1, no DST).
func swatchBeats(utc time.Time) float64 {
	bmt := utc.UTC().Add(time.Hour)
	secs := float64(bmt.Hour()*3600+bmt.Minute()*60+bmt.Second()) +
		float64(bmt.Nanosecond())/1e9
	return secs / 86.4
}

type swatchModule struct{}

func (m *swatchModule) Metadata() Metadata { return Metadata{ID: "swatch"} }

func (m *swatchModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	beats := swatchBeats(utc)
	whole := int(beats)
	centi := int(beats*100) % 100
	return &Result{
		System:  "swatch",
		Display: fmt.Sprintf("@%03d.%02d", whole, centi),
		Fields: map[string]any{
			"beats":     beats,
			"beat":      whole,
			"centibeat": centi,
		},
	}, nil
}

// decimalOfDay maps the UTC time of day onto the French Revolutionary
// decimal day: 10 hours of 100 minutes of 100 seconds.
func decimalOfDay(utc time.Time) int {
	u := utc.UTC()
	secs := u.Hour()*3600 + u.Minute()*60 + u.Second()
	return secs * 100000 / 86400
}

type decimalModule struct{}

func (m *decimalModule) Metadata() Metadata { return Metadata{ID: "decimal"} }

func (m *decimalModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	dec := decimalOfDay(utc)
	h := dec / 10000
	min := dec / 100 % 100
	sec := dec % 100
	return &Result{
		System:  "decimal",
		Display: fmt.Sprintf("%d:%02d:%02d", h, min, sec),
		Fields: map[string]any{
			"hour":            h,
			"minute":          min,
			"second":          sec,
			"decimal_seconds": dec,
		},
	}, nil
}

// hexOfDay divides the UTC day into 65536 parts; noon is 0x8000.
func hexOfDay(utc time.Time) int {
	u := utc.UTC()
	secs := float64(u.Hour()*3600+u.Minute()*60+u.Second()) +
		float64(u.Nanosecond())/1e9
	return int(secs / 86400 * 65536)
}

type hexadecimalModule struct{}

func (m *hexadecimalModule) Metadata() Metadata { return Metadata{ID: "hexadecimal"} }

func (m *hexadecimalModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	v := hexOfDay(utc)
	return &Result{
		System:  "hexadecimal",
		Display: fmt.Sprintf(".%04X", v),
		Fields: map[string]any{
			"hex_time": fmt.Sprintf("%04X", v),
			"value":    v,
		},
	}, nil
}
