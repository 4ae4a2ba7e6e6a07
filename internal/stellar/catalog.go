// Package stellar estimates stellar distances from trigonometric parallax
// and annotates the estimate with a measurement-quality rating.
package stellar

import (
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Record is one catalog star with its astrometric measurements.
type Record struct {
	ID               string    `yaml:"id"`
	Name             string    `yaml:"name"`
	ParallaxMas      float64   `yaml:"parallax_mas"`
	ParallaxErrorMas float64   `yaml:"parallax_error_mas"`
	PMRAMasYr        float64   `yaml:"pm_ra_mas_yr"`
	PMDecMasYr       float64   `yaml:"pm_dec_mas_yr"`
	RadialVelocity   float64   `yaml:"radial_velocity_km_s"`
	Epoch            time.Time `yaml:"epoch"`
}

// Catalog is an immutable set of reference stars keyed by id.
type Catalog struct {
	byID  map[string]Record
	order []string
}

// LoadCatalog parses the YAML star catalog and validates every record.
func LoadCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Stars []Record `yaml:"stars"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse star catalog: %w", err)
	}
	if len(doc.Stars) == 0 {
		return nil, fmt.Errorf("star catalog is empty")
	}

	byID := make(map[string]Record, len(doc.Stars))
	order := make([]string, 0, len(doc.Stars))
	for _, rec := range doc.Stars {
		if rec.ID == "" {
			return nil, fmt.Errorf("star %q: missing id", rec.Name)
		}
		if _, dup := byID[rec.ID]; dup {
			return nil, fmt.Errorf("star %q: duplicate id", rec.ID)
		}
		if rec.ParallaxMas <= 0 {
			return nil, fmt.Errorf("star %q: parallax must be positive, got %v", rec.ID, rec.ParallaxMas)
		}
		if rec.ParallaxErrorMas < 0 || rec.ParallaxErrorMas >= rec.ParallaxMas {
			return nil, fmt.Errorf("star %q: parallax error %v out of range", rec.ID, rec.ParallaxErrorMas)
		}
		byID[rec.ID] = rec
		order = append(order, rec.ID)
	}
	sort.Strings(order)

	return &Catalog{byID: byID, order: order}, nil
}

// Lookup returns the record for id, if present.
func (c *Catalog) Lookup(id string) (Record, bool) {
	rec, ok := c.byID[id]
	return rec, ok
}

// IDs returns all catalog ids in sorted order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
