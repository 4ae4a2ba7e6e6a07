// Package calendar defines the conversion module interface and the builtin
// registry of alternative time systems. Each module maps a UTC instant to
// one system's representation; the registry is assembled once at startup
// and read-only afterwards.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownSystem is returned when a system id is not registered.
var ErrUnknownSystem = errors.New("unknown time system")

// ErrBadOption is returned when a request carries an option value outside
// the module's declared set.
var ErrBadOption = errors.New("invalid option value")

// Options are per-request knobs, keyed by option name.
type Options map[string]string

// Get returns the option value or the fallback when unset.
func (o Options) Get(name, fallback string) string {
	if v, ok := o[name]; ok && v != "" {
		return v
	}
	return fallback
}

// OptionSpec declares one option a module accepts.
type OptionSpec struct {
	Name    string   `json:"name"`
	Values  []string `json:"values,omitempty"` // empty means free-form
	Default string   `json:"default"`
}

// Metadata describes a module for discovery. Human-readable names and
// descriptions are resolved separately through the localization bundle,
// keyed by ID.
type Metadata struct {
	ID      string       `json:"id"`
	Options []OptionSpec `json:"options,omitempty"`
}

// Result is one computed representation of an instant.
type Result struct {
	System string `json:"system"`
	// Display is the canonical one-line rendering.
	Display string `json:"display"`
	// Fields carries the structured components, named per system.
	Fields map[string]any `json:"fields"`
}

// Module converts instants into one time system.
type Module interface {
	Metadata() Metadata
	Compute(ctx context.Context, utc time.Time, opts Options) (*Result, error)
}

// checkOption validates an option value against its spec. Specs with no
// enumerated values accept anything.
func checkOption(spec OptionSpec, value string) error {
	if len(spec.Values) == 0 {
		return nil
	}
	for _, v := range spec.Values {
		if v == value {
			return nil
		}
	}
	return fmt.Errorf("%w: %s=%q", ErrBadOption, spec.Name, value)
}
