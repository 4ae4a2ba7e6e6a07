package calendar

import (
	"fmt"
	"sort"

	"github.com/Lexorius/alternative-time/internal/lunar"
	"github.com/Lexorius/alternative-time/internal/rotation"
	"github.com/Lexorius/alternative-time/internal/stellar"
	"github.com/Lexorius/alternative-time/internal/timescale"
)

// Deps are the shared converters the builtin modules draw on.
type Deps struct {
	Timescale *timescale.Converter
	Rotation  *rotation.Converter
	Lunar     *lunar.Model
	Stellar   *stellar.Estimator
}

// Registry is the immutable id -> module table.
type Registry struct {
	byID  map[string]Module
	order []string
}

// Builtin assembles the full set of builtin modules. It panics on a
// duplicate id, which can only be a programming error.
func Builtin(deps Deps) *Registry {
	modules := []Module{
		&taiModule{conv: deps.Timescale},
		&ttModule{conv: deps.Timescale},
		&gpsModule{conv: deps.Timescale},
		&ut1Module{conv: deps.Rotation},
		&eraModule{conv: deps.Rotation},
		&lunarModule{model: deps.Lunar},
		&stellarModule{est: deps.Stellar},
		&julianDayModule{},
		&mayaModule{},
		&islamicModule{},
		&romanModule{},
		&geezModule{},
		&egyptianModule{},
		&japaneseModule{},
		&darianModule{},
		&stardateModule{},
		&eveModule{},
		&unixModule{},
		&swatchModule{},
		&decimalModule{},
		&hexadecimalModule{},
		&natoModule{},
		&minguoModule{},
		&julianCivilModule{},
	}

	r := &Registry{byID: make(map[string]Module, len(modules))}
	for _, m := range modules {
		id := m.Metadata().ID
		if _, dup := r.byID[id]; dup {
			panic(fmt.Sprintf("calendar: duplicate module id %q", id))
		}
		r.byID[id] = m
		r.order = append(r.order, id)
	}
	sort.Strings(r.order)
	return r
}

// Get returns the module for id.
func (r *Registry) Get(id string) (Module, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSystem, id)
	}
	return m, nil
}

// IDs returns all registered ids in sorted order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All returns every module in id order.
func (r *Registry) All() []Module {
	out := make([]Module, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
