package i18n

import (
	"testing"

	"github.com/Lexorius/alternative-time/internal/refdata"
)

func loadBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := Load(refdata.Labels)
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	return b
}

// TestLabelLocales covers direct hits, region subtags and the English
// fallback.
func TestLabelLocales(t *testing.T) {
	b := loadBundle(t)

	cases := []struct {
		locale string
		want   string
	}{
		{"en", "International Atomic Time"},
		{"de", "Internationale Atomzeit"},
		{"de-AT", "Internationale Atomzeit"},
		{"DE_CH", "Internationale Atomzeit"},
		{"fr", "International Atomic Time"}, // no French: fall back
		{"", "International Atomic Time"},
	}
	for _, tc := range cases {
		if got := b.Label("tai", "name", tc.locale); got != tc.want {
			t.Errorf("Label(tai, name, %q) = %q, want %q", tc.locale, got, tc.want)
		}
	}
}

// TestLabelUnknownSystem verifies a miss returns empty rather than panics.
func TestLabelUnknownSystem(t *testing.T) {
	b := loadBundle(t)
	if got := b.Label("gregorian", "name", "en"); got != "" {
		t.Errorf("unexpected label %q for unknown system", got)
	}
	if b.Has("gregorian") {
		t.Error("Has(gregorian) = true")
	}
}

// TestLoadRejectsMissingFallback verifies the English-fallback invariant is
// enforced at load time.
func TestLoadRejectsMissingFallback(t *testing.T) {
	doc := []byte("labels:\n  x:\n    name: {de: \"Nur Deutsch\"}\n    description: {en: \"ok\"}\n")
	if _, err := Load(doc); err == nil {
		t.Fatal("expected error for missing en fallback")
	}
}
