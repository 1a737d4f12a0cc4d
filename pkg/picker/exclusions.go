package picker

import (
	"strings"

	"github.com/wppick/wppick/pkg/wporg"
)

// Exclusions are the plugins already covered in the recent publishing
// window, matched by lowercased name or slug, exact equality only.
type Exclusions struct {
	Names map[string]struct{}
	Slugs map[string]struct{}
}

// NewExclusions creates an empty exclusion set.
func NewExclusions() Exclusions {
	return Exclusions{
		Names: make(map[string]struct{}),
		Slugs: make(map[string]struct{}),
	}
}

// AddName records a plugin name as already covered.
func (e Exclusions) AddName(name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name != "" {
		e.Names[name] = struct{}{}
	}
}

// AddSlug records a plugin slug as already covered.
func (e Exclusions) AddSlug(slug string) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug != "" {
		e.Slugs[slug] = struct{}{}
	}
}

// Excludes reports whether the record matches the exclusion set.
func (e Exclusions) Excludes(p wporg.Plugin) bool {
	if _, ok := e.Names[strings.ToLower(p.Name)]; ok {
		return true
	}

	if _, ok := e.Slugs[strings.ToLower(p.Slug)]; ok {
		return true
	}

	return false
}
