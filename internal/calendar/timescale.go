package calendar

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Lexorius/alternative-time/internal/lunar"
	"github.com/Lexorius/alternative-time/internal/rotation"
	"github.com/Lexorius/alternative-time/internal/stellar"
	"github.com/Lexorius/alternative-time/internal/timescale"
)

// displayTime renders a uniform-scale instant with millisecond precision.
func displayTime(t time.Time, scale string) string {
	return t.UTC().Format("2006-01-02T15:04:05.000") + " " + scale
}

type taiModule struct {
	conv *timescale.Converter
}

func (m *taiModule) Metadata() Metadata { return Metadata{ID: "tai"} }

func (m *taiModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	tai, err := m.conv.ToTAI(utc)
	if err != nil {
		return nil, err
	}
	off, _ := m.conv.Table().OffsetAt(utc)
	return &Result{
		System:  "tai",
		Display: displayTime(tai, "TAI"),
		Fields: map[string]any{
			"tai":               tai.UTC().Format(time.RFC3339Nano),
			"tai_minus_utc_sec": off,
		},
	}, nil
}

type ttModule struct {
	conv *timescale.Converter
}

func (m *ttModule) Metadata() Metadata { return Metadata{ID: "tt"} }

func (m *ttModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	tt, err := m.conv.ToTT(utc)
	if err != nil {
		return nil, err
	}
	return &Result{
		System:  "tt",
		Display: displayTime(tt, "TT"),
		Fields: map[string]any{
			"tt":               tt.UTC().Format(time.RFC3339Nano),
			"tt_minus_tai_sec": timescale.TTMinusTAI,
		},
	}, nil
}

type gpsModule struct {
	conv *timescale.Converter
}

func (m *gpsModule) Metadata() Metadata { return Metadata{ID: "gps"} }

func (m *gpsModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	gps, err := m.conv.ToGPS(utc)
	if err != nil {
		return nil, err
	}
	// Week number and time-of-week, the native GPS representation.
	elapsed := gps.Sub(timescale.GPSEpoch)
	week := int(elapsed.Hours()) / (24 * 7)
	tow := elapsed - time.Duration(week)*7*24*time.Hour

	return &Result{
		System:  "gps",
		Display: fmt.Sprintf("GPS week %d, TOW %.3f s", week, tow.Seconds()),
		Fields: map[string]any{
			"gps":               gps.UTC().Format(time.RFC3339Nano),
			"week":              week,
			"time_of_week_sec":  tow.Seconds(),
			"gps_minus_utc_sec": gps.Sub(utc).Seconds(),
		},
	}, nil
}

type ut1Module struct {
	conv *rotation.Converter
}

func (m *ut1Module) Metadata() Metadata { return Metadata{ID: "ut1"} }

func (m *ut1Module) Compute(ctx context.Context, utc time.Time, _ Options) (*Result, error) {
	ut1, stale := m.conv.ToUT1(ctx, utc)
	dut1, _ := m.conv.DUT1(ctx)
	return &Result{
		System:  "ut1",
		Display: displayTime(ut1, "UT1"),
		Fields: map[string]any{
			"ut1":      ut1.UTC().Format(time.RFC3339Nano),
			"dut1_sec": dut1,
			"stale":    stale,
		},
	}, nil
}

type eraModule struct {
	conv *rotation.Converter
}

func (m *eraModule) Metadata() Metadata { return Metadata{ID: "era"} }

func (m *eraModule) Compute(ctx context.Context, utc time.Time, _ Options) (*Result, error) {
	angle, stale := m.conv.ERA(ctx, utc)
	deg := angle * 180 / math.Pi
	return &Result{
		System:  "era",
		Display: fmt.Sprintf("ERA %.6f rad (%.4f deg)", angle, deg),
		Fields: map[string]any{
			"radians": angle,
			"degrees": deg,
			"stale":   stale,
		},
	}, nil
}

type lunarModule struct {
	model *lunar.Model
}

func (m *lunarModule) Metadata() Metadata { return Metadata{ID: "lunar_tcl"} }

func (m *lunarModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	tcl, drift := m.model.ToTCL(utc)
	return &Result{
		System:  "lunar_tcl",
		Display: displayTime(tcl, "TCL"),
		Fields: map[string]any{
			"tcl":             tcl.UTC().Format(time.RFC3339Nano),
			"drift_us":        drift.TotalMicros,
			"secular_us":      drift.SecularMicros,
			"periodic_us":     drift.PeriodicMicros,
			"rate_us_per_day": lunar.SecularRateMicrosPerDay,
		},
	}, nil
}

type stellarModule struct {
	est *stellar.Estimator
}

func (m *stellarModule) Metadata() Metadata {
	return Metadata{ID: "stellar_distance", Options: []OptionSpec{{
		Name:    "star",
		Default: "proxima_centauri",
	}}}
}

func (m *stellarModule) Compute(_ context.Context, utc time.Time, opts Options) (*Result, error) {
	id := opts.Get("star", "proxima_centauri")
	est, ok := m.est.Estimate(id, utc)
	if !ok {
		return nil, fmt.Errorf("%w: star=%q", ErrBadOption, id)
	}
	return &Result{
		System:  "stellar_distance",
		Display: fmt.Sprintf("%s: %.3f ly (%s)", est.Star.Name, est.LightYears, est.Rating),
		Fields: map[string]any{
			"star":                 est.Star.ID,
			"light_years":          est.LightYears,
			"range_min_ly":         est.RangeMin,
			"range_max_ly":         est.RangeMax,
			"rating":               string(est.Rating),
			"motion":               est.Motion,
			"parallax_mas":         est.Star.ParallaxMas,
			"proper_motion_mas_yr": est.ProperMotionMasYr,
			"radial_adjust_ly":     est.RadialAdjustLy,
		},
	}, nil
}
