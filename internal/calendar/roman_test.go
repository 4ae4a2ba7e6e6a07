package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRomanNamedDays covers the three named days of a month.
func TestRomanNamedDays(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "Kalendis Ianuariis"},
		{time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), "Idibus Martiis"},
		{time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), "Nonis Martiis"},
		{time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), "Nonis Aprilibus"},
		{time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC), "Idibus Aprilibus"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, romanDay(tc.date), tc.date)
	}
}

// TestRomanCountedDays covers backward counts, including pridie and the
// wrap into the next month's Kalends.
func TestRomanCountedDays(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), "pridie Idus Martias"},
		{time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), "ante diem III Idus Martias"},
		{time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), "ante diem IV Nonas Ianuarias"},
		{time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), "ante diem IX Kalendas Septembres"},
		{time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), "pridie Kalendas Ianuarias"},
		{time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), "pridie Kalendas Februarias"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, romanDay(tc.date), tc.date)
	}
}

// TestRomanNumerals checks the numeral renderer.
func TestRomanNumerals(t *testing.T) {
	cases := map[int]string{
		1: "I", 4: "IV", 9: "IX", 14: "XIV", 40: "XL", 90: "XC",
		1900: "MCM", 2025: "MMXXV", 2778: "MMDCCLXXVIII",
	}
	for n, want := range cases {
		assert.Equal(t, want, RomanNumeral(n), "n=%d", n)
	}
}

// TestRomanAUC verifies the ab urbe condita year.
func TestRomanAUC(t *testing.T) {
	m := &romanModule{}
	res, err := m.Compute(context.Background(),
		time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, 2778, res.Fields["auc"])
	assert.Equal(t, "MMDCCLXXVIII", res.Fields["auc_roman"])
}
