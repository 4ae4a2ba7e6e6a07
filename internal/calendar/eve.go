package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/Lexorius/alternative-time/internal/timescale"
)

// eveYCOffset converts a Gregorian year to the Yoiul Conference era:
// YC 0 corresponds to 1898.
const eveYCOffset = 1898

type eveModule struct{}

func (m *eveModule) Metadata() Metadata { return Metadata{ID: "eve"} }

func (m *eveModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	yc := utc.Year() - eveYCOffset
	if yc < 0 {
		return nil, fmt.Errorf("%w: %s predates YC 0",
			timescale.ErrOutOfRange, utc.Format(time.RFC3339))
	}

	u := utc.UTC()
	return &Result{
		System: "eve",
		Display: fmt.Sprintf("YC %d-%02d-%02d %02d:%02d", yc,
			int(u.Month()), u.Day(), u.Hour(), u.Minute()),
		Fields: map[string]any{
			"yc_year": yc,
			"month":   int(u.Month()),
			"day":     u.Day(),
			"time":    u.Format("15:04:05"),
		},
	}, nil
}
