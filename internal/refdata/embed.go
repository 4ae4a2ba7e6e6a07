// Package refdata holds the embedded static reference data: the leap-second
// table, the star catalog, and the localized label bundle. All three are
// YAML documents parsed once at startup; malformed data is fatal at load
// time, never at per-call time.
package refdata

import _ "embed"

// LeapSeconds is the bundled UTC leap-second table (IERS Bulletin C history,
// 1972 through the 2017 leap second). Appending a newly announced leap
// second is a data edit here or in an override file, not a code change.
//
//go:embed leapseconds.yaml
var LeapSeconds []byte

// Stars is the bundled catalog of reference stars for distance estimation.
//
//go:embed stars.yaml
var Stars []byte

// Labels is the bundled localization table keyed (system id, field, locale).
//
//go:embed labels.yaml
var Labels []byte
