// Package i18n resolves localized names and descriptions for the registered
// time systems. English is the mandatory fallback locale.
package i18n

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when a requested locale has no translation.
const DefaultLocale = "en"

// Bundle is the immutable (system, field, locale) -> text table.
type Bundle struct {
	labels map[string]map[string]map[string]string
}

// Load parses the YAML label document. Every entry must carry the English
// fallback for both fields.
func Load(data []byte) (*Bundle, error) {
	var doc struct {
		Labels map[string]map[string]map[string]string `yaml:"labels"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse label bundle: %w", err)
	}
	if len(doc.Labels) == 0 {
		return nil, fmt.Errorf("label bundle is empty")
	}

	for id, fields := range doc.Labels {
		for _, field := range []string{"name", "description"} {
			if fields[field][DefaultLocale] == "" {
				return nil, fmt.Errorf("label %s.%s: missing %q fallback", id, field, DefaultLocale)
			}
		}
	}
	return &Bundle{labels: doc.Labels}, nil
}

// Label returns the text for (systemID, field) in the requested locale,
// falling back to English. Locale matching ignores case and any region
// subtag ("de-AT" matches "de").
func (b *Bundle) Label(systemID, field, locale string) string {
	fields, ok := b.labels[systemID]
	if !ok {
		return ""
	}
	byLocale := fields[field]

	if text, ok := byLocale[normalizeLocale(locale)]; ok {
		return text
	}
	return byLocale[DefaultLocale]
}

// Has reports whether the bundle carries labels for a system.
func (b *Bundle) Has(systemID string) bool {
	_, ok := b.labels[systemID]
	return ok
}

func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	return locale
}
