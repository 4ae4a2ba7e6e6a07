package calendar

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Lexorius/alternative-time/internal/julian"
	"github.com/Lexorius/alternative-time/internal/timescale"
)

// mayaCorrelation is the Goodman-Martinez-Thompson correlation constant:
// the Julian Day Number of the Long Count epoch 0.0.0.0.0 (4 Ahau 8 Cumku).
const mayaCorrelation = 584283

var tzolkinNames = [20]string{
	"Imix", "Ik", "Akbal", "Kan", "Chicchan", "Cimi", "Manik", "Lamat",
	"Muluc", "Oc", "Chuen", "Eb", "Ben", "Ix", "Men", "Cib",
	"Caban", "Etznab", "Cauac", "Ahau",
}

var haabMonths = [19]string{
	"Pop", "Uo", "Zip", "Zotz", "Tzec", "Xul", "Yaxkin", "Mol",
	"Chen", "Yax", "Zac", "Ceh", "Mac", "Kankin", "Muan", "Pax",
	"Kayab", "Cumku", "Uayeb",
}

// LongCount is a decomposed Maya Long Count date.
type LongCount struct {
	Baktun, Katun, Tun, Uinal, Kin int
}

func (lc LongCount) String() string {
	return fmt.Sprintf("%d.%d.%d.%d.%d", lc.Baktun, lc.Katun, lc.Tun, lc.Uinal, lc.Kin)
}

// mayaFromDays decomposes days-since-epoch into the Long Count and the two
// cyclical rounds.
func mayaFromDays(days int) (LongCount, string, string) {
	d := days
	lc := LongCount{Baktun: d / 144000}
	d %= 144000
	lc.Katun = d / 7200
	d %= 7200
	lc.Tun = d / 360
	d %= 360
	lc.Uinal = d / 20
	lc.Kin = d % 20

	tzolkin := fmt.Sprintf("%d %s", (days+3)%13+1, tzolkinNames[(days+19)%20])

	haabDay := (days + 348) % 365
	haab := fmt.Sprintf("%d %s", haabDay%20, haabMonths[haabDay/20])

	return lc, tzolkin, haab
}

// ParseLongCount parses a dotted Long Count like "13.0.12.3.14" and returns
// the corresponding days since the Long Count epoch.
func ParseLongCount(s string) (int, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 5 {
		return 0, fmt.Errorf("long count %q: want 5 dot-separated fields", s)
	}
	limits := [5]int{20, 20, 20, 18, 20} // baktun unbounded in practice, kin/uinal cycles
	vals := [5]int{}
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("long count %q: field %d: %w", s, i+1, err)
		}
		if v < 0 || (i > 0 && v >= limits[i]) {
			return 0, fmt.Errorf("long count %q: field %d out of range", s, i+1)
		}
		vals[i] = v
	}
	return vals[0]*144000 + vals[1]*7200 + vals[2]*360 + vals[3]*20 + vals[4], nil
}

// LongCountToCivil converts a Long Count string to the proleptic Gregorian
// date of that Maya day.
func LongCountToCivil(s string) (time.Time, error) {
	days, err := ParseLongCount(s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := julian.FromDayNumber(int64(days + mayaCorrelation))
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), nil
}

type mayaModule struct{}

func (m *mayaModule) Metadata() Metadata { return Metadata{ID: "maya"} }

func (m *mayaModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	days := int(julian.DayNumber(utc)) - mayaCorrelation
	if days < 0 {
		return nil, fmt.Errorf("%w: %s predates the Long Count epoch",
			timescale.ErrOutOfRange, utc.Format(time.RFC3339))
	}
	lc, tzolkin, haab := mayaFromDays(days)

	return &Result{
		System:  "maya",
		Display: fmt.Sprintf("%s, %s, %s", lc, tzolkin, haab),
		Fields: map[string]any{
			"long_count": lc.String(),
			"baktun":     lc.Baktun,
			"katun":      lc.Katun,
			"tun":        lc.Tun,
			"uinal":      lc.Uinal,
			"kin":        lc.Kin,
			"tzolkin":    tzolkin,
			"haab":       haab,
		},
	}, nil
}
