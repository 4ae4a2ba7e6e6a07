package calendar

import (
	"context"
	"fmt"
	"time"
)

// minguoEpochYear is the Gregorian year before Minguo 1: the Republic of
// China calendar counts years from 1912, months and days unchanged.
const minguoEpochYear = 1911

type minguoModule struct{}

func (m *minguoModule) Metadata() Metadata { return Metadata{ID: "minguo"} }

func (m *minguoModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	u := utc.UTC()
	year := u.Year() - minguoEpochYear

	// Years before 1912 are counted backwards as "before the Republic";
	// there is no Minguo year 0.
	beforeEra := year <= 0
	display := year
	if beforeEra {
		display = 1 - year
	}

	prefix := "Minguo"
	if beforeEra {
		prefix = "Before Minguo"
	}

	return &Result{
		System: "minguo",
		Display: fmt.Sprintf("%s %d-%02d-%02d", prefix, display,
			int(u.Month()), u.Day()),
		Fields: map[string]any{
			"year":       display,
			"before_era": beforeEra,
			"month":      int(u.Month()),
			"day":        u.Day(),
		},
	}, nil
}
