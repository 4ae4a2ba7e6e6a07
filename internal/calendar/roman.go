package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Lexorius/alternative-time/internal/timescale"
)

// aucOffset converts a CE year to ab urbe condita, counted from the
// traditional founding of Rome in 753 BCE.
const aucOffset = 753

// Month adjective forms: ablative (used with Kalendis/Nonis/Idibus) and
// accusative plural (used with Kalendas/Nonas/Idus).
var romanMonthsAbl = [12]string{
	"Ianuariis", "Februariis", "Martiis", "Aprilibus", "Maiis", "Iuniis",
	"Iuliis", "Augustis", "Septembribus", "Octobribus", "Novembribus", "Decembribus",
}

var romanMonthsAcc = [12]string{
	"Ianuarias", "Februarias", "Martias", "Apriles", "Maias", "Iunias",
	"Iulias", "Augustas", "Septembres", "Octobres", "Novembres", "Decembres",
}

var romanNumeralPairs = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// RomanNumeral renders a positive integer in Roman numerals.
func RomanNumeral(n int) string {
	var b strings.Builder
	for _, p := range romanNumeralPairs {
		for n >= p.value {
			b.WriteString(p.symbol)
			n -= p.value
		}
	}
	return b.String()
}

// idesOf returns the day of the Ides for a month; the Nones fall eight days
// earlier, counted inclusively.
func idesOf(month time.Month) int {
	switch month {
	case time.March, time.May, time.July, time.October:
		return 15
	}
	return 13
}

// romanDay names a civil date in the Roman style: the named days Kalends,
// Nones and Ides, or an inclusive backward count to the next one.
func romanDay(t time.Time) string {
	month, day := t.Month(), t.Day()
	ides := idesOf(month)
	nones := ides - 8
	mi := int(month) - 1

	switch {
	case day == 1:
		return "Kalendis " + romanMonthsAbl[mi]
	case day == nones:
		return "Nonis " + romanMonthsAbl[mi]
	case day == ides:
		return "Idibus " + romanMonthsAbl[mi]
	case day < nones:
		return countTo(nones-day+1, "Nonas "+romanMonthsAcc[mi])
	case day < ides:
		return countTo(ides-day+1, "Idus "+romanMonthsAcc[mi])
	}

	// Counting toward the Kalends of the following month.
	next := (mi + 1) % 12
	lastDay := t.AddDate(0, 0, -day+1).AddDate(0, 1, -1).Day()
	return countTo(lastDay-day+2, "Kalendas "+romanMonthsAcc[next])
}

func countTo(count int, target string) string {
	if count == 2 {
		return "pridie " + target
	}
	return fmt.Sprintf("ante diem %s %s", RomanNumeral(count), target)
}

type romanModule struct{}

func (m *romanModule) Metadata() Metadata { return Metadata{ID: "roman"} }

func (m *romanModule) Compute(_ context.Context, utc time.Time, _ Options) (*Result, error) {
	year := utc.Year()
	if year <= -aucOffset {
		return nil, fmt.Errorf("%w: %s predates the founding of Rome",
			timescale.ErrOutOfRange, utc.Format(time.RFC3339))
	}
	auc := year + aucOffset
	day := romanDay(utc)

	return &Result{
		System:  "roman",
		Display: fmt.Sprintf("%s, anno %s ab urbe condita", day, RomanNumeral(auc)),
		Fields: map[string]any{
			"day_name":  day,
			"auc":       auc,
			"auc_roman": RomanNumeral(auc),
		},
	}, nil
}
