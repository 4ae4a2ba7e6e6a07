// Package timescale implements the leap-second table and the conversions
// between UTC and the uniform atomic time scales TAI, TT and GPS.
//
// The table is immutable after load and all conversions are pure, so the
// package is safe for unrestricted concurrent use.
package timescale

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrOutOfRange reports an instant outside the valid domain of a time scale
// or calendar. It is never silently clamped; callers decide how to surface it.
var ErrOutOfRange = errors.New("instant outside supported range")

// Entry is one row of the leap-second history: the cumulative TAI-UTC
// offset in effect from Effective onward.
type Entry struct {
	Effective   time.Time
	TAIMinusUTC float64
}

// Table is the ordered UTC leap-second history. Effective instants are
// strictly increasing and offsets non-decreasing; both invariants are
// enforced at construction.
type Table struct {
	entries []Entry
}

// NewTable validates entries and builds a Table. Violated invariants are
// configuration errors: fatal at startup, never at per-call time.
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, errors.New("leap-second table is empty")
	}

	for i := 1; i < len(entries); i++ {
		if !entries[i].Effective.After(entries[i-1].Effective) {
			return nil, fmt.Errorf("leap-second table not strictly increasing at entry %d (%s)",
				i, entries[i].Effective.Format(time.RFC3339))
		}
		if entries[i].TAIMinusUTC < entries[i-1].TAIMinusUTC {
			return nil, fmt.Errorf("leap-second offset decreases at entry %d (%s)",
				i, entries[i].Effective.Format(time.RFC3339))
		}
	}

	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Table{entries: cp}, nil
}

// yamlTable mirrors the on-disk leap-second document.
type yamlTable struct {
	Entries []struct {
		Effective   time.Time `yaml:"effective"`
		TAIMinusUTC float64   `yaml:"tai_minus_utc"`
	} `yaml:"entries"`
}

// LoadTable parses a YAML leap-second document and validates it.
func LoadTable(data []byte) (*Table, error) {
	var doc yamlTable
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing leap-second table: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		entries = append(entries, Entry{Effective: e.Effective.UTC(), TAIMinusUTC: e.TAIMinusUTC})
	}
	return NewTable(entries)
}

// OffsetAt returns the cumulative TAI-UTC offset in effect at the given UTC
// instant. Instants before the first table entry (pre-1972) return
// ErrOutOfRange.
func (t *Table) OffsetAt(utc time.Time) (float64, error) {
	utc = utc.UTC()
	if utc.Before(t.entries[0].Effective) {
		return 0, fmt.Errorf("%w: %s predates the leap-second table (%s)",
			ErrOutOfRange, utc.Format(time.RFC3339), t.entries[0].Effective.Format(time.RFC3339))
	}

	// Last entry with Effective <= utc.
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Effective.After(utc)
	})
	return t.entries[i-1].TAIMinusUTC, nil
}

// Len returns the number of table entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// First returns the earliest effective instant the table covers.
func (t *Table) First() time.Time {
	return t.entries[0].Effective
}

// Latest returns the most recent table entry.
func (t *Table) Latest() Entry {
	return t.entries[len(t.entries)-1]
}
