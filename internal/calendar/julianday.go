package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/Lexorius/alternative-time/internal/julian"
)

type julianDayModule struct{}

func (m *julianDayModule) Metadata() Metadata { return Metadata{ID: "julian_day"} }

func (m *julianDayModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	jd := julian.JD(utc)
	return &Result{
		System:  "julian_day",
		Display: fmt.Sprintf("JD %.5f", jd),
		Fields: map[string]any{
			"jd":  jd,
			"mjd": julian.MJD(utc),
			"jdn": julian.DayNumber(utc),
		},
	}, nil
}
