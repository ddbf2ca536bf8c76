// Package lawreg maps raw law-name strings from decision documents to
// canonical short names. The registry loads once at startup and is a
// pure lookup afterwards: no mutation, no network calls, safe for
// concurrent use.
package lawreg

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// LawType classifies a registry record within the statute hierarchy.
type LawType string

const (
	TypeLaw               LawType = "law"
	TypeEnforcementDecree LawType = "enforcement_decree"
	TypeEnforcementRule   LawType = "enforcement_rule"
)

// Record is one entry of the registry source: an official law name and
// its canonical abbreviation.
type Record struct {
	CanonicalName string  `koanf:"canonical_name"`
	ShortName     string  `koanf:"short_name"`
	Type          LawType `koanf:"type"`
}

// defaultTable is the bundled registry of financial-sector statutes and
// their official abbreviations.
//
//go:embed laws.yaml
var defaultTable []byte

// Suffixes a subordinate regulation inherits from its parent law. When a
// decree has no registry record of its own, stripping the suffix lets it
// resolve through the parent.
var inheritedSuffixes = []string{" 시행령", "시행령", " 시행규칙", "시행규칙"}

var spaceRun = regexp.MustCompile(`\s+`)

// Registry resolves raw law names to canonical short names.
type Registry struct {
	records []Record
	byName  map[string]string // normalized canonical name -> short name
}

// Load builds a registry from YAML bytes.
func Load(data []byte) (*Registry, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse law registry: %w", err)
	}

	var src struct {
		Laws []Record `koanf:"laws"`
	}
	if err := k.Unmarshal("", &src); err != nil {
		return nil, fmt.Errorf("failed to unmarshal law registry: %w", err)
	}
	if len(src.Laws) == 0 {
		return nil, fmt.Errorf("law registry is empty")
	}

	r := &Registry{
		records: src.Laws,
		byName:  make(map[string]string, len(src.Laws)*2),
	}
	for _, rec := range src.Laws {
		if rec.CanonicalName == "" || rec.ShortName == "" {
			return nil, fmt.Errorf("law registry record missing name: %+v", rec)
		}
		name := normalizeSpaces(rec.CanonicalName)
		r.byName[name] = rec.ShortName
		// Spacing in source documents is unreliable, so index the
		// space-free form as well.
		r.byName[strings.ReplaceAll(name, " ", "")] = rec.ShortName
	}
	return r, nil
}

// LoadDefault builds a registry from the bundled table.
func LoadDefault() (*Registry, error) {
	return Load(defaultTable)
}

// Len returns the number of source records.
func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns a copy of the source records.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Normalize maps a raw law name to its canonical short name. Lookup
// order: exact match, match after stripping an inherited
// enforcement-decree or enforcement-rule suffix, then longest substring
// containment. An unmatched name is returned unchanged so the caller
// always has a non-empty value.
func (r *Registry) Normalize(raw string) string {
	name := normalizeSpaces(raw)
	if name == "" {
		return raw
	}

	if short, ok := r.exact(name); ok {
		return short
	}

	for _, suffix := range inheritedSuffixes {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			if short, ok := r.exact(strings.TrimSpace(trimmed)); ok {
				return short
			}
			break
		}
	}

	if short, ok := r.contains(name); ok {
		return short
	}
	return raw
}

func (r *Registry) exact(name string) (string, bool) {
	if short, ok := r.byName[name]; ok {
		return short, true
	}
	short, ok := r.byName[strings.ReplaceAll(name, " ", "")]
	return short, ok
}

// contains falls back to substring containment in either direction,
// preferring the candidate with the longest overlap.
func (r *Registry) contains(name string) (string, bool) {
	target := strings.ReplaceAll(name, " ", "")
	best := ""
	bestLen := 0
	for _, rec := range r.records {
		candidate := strings.ReplaceAll(normalizeSpaces(rec.CanonicalName), " ", "")
		if !strings.Contains(target, candidate) && !strings.Contains(candidate, target) {
			continue
		}
		overlap := len(candidate)
		if len(target) < overlap {
			overlap = len(target)
		}
		if overlap > bestLen {
			bestLen = overlap
			best = rec.ShortName
		}
	}
	return best, best != ""
}

func normalizeSpaces(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}
