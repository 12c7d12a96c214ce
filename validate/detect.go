package validate

import (
	"github.com/geozarr/toolkit/attrs"
	"github.com/geozarr/toolkit/conventions"
)

// Detect inspects a flat attribute mapping and returns the conventions it
// declares, in a fixed order: spatial, proj, multiscales by attribute
// keys, then any further conventions declared only in the
// zarr_conventions registry. The first occurrence wins; the result never
// contains duplicates.
func Detect(m map[string]any) []string {
	var detected []string
	seen := make(map[string]bool, 3)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			detected = append(detected, name)
		}
	}

	// Key-based detection. Presence of the key is enough; validation of
	// the value happens later.
	if _, ok := m[conventions.KeySpatialDimensions]; ok {
		add(conventions.NameSpatial)
	}
	for key := range m {
		if conventions.HasProjPrefix(key) {
			add(conventions.NameProj)
			break
		}
	}
	if _, ok := m[conventions.KeyMultiscales]; ok {
		add(conventions.NameMultiscales)
	}

	// Registry-based detection. Non-mapping entries are skipped silently;
	// the registry well-formedness check reports them.
	if _, ok := m[conventions.KeyConventions]; ok {
		entries, _ := attrs.AsSlice(m[conventions.KeyConventions])
		for _, entry := range entries {
			em, ok := attrs.AsMap(entry)
			if !ok {
				continue
			}
			rawUUID := attrs.GetString(em, "uuid", "")
			name := attrs.GetString(em, "name", "")
			for _, conv := range []string{conventions.NameSpatial, conventions.NameProj, conventions.NameMultiscales} {
				if conventions.IdentityMatches(rawUUID, name, conv) {
					add(conv)
				}
			}
		}
	}

	return detected
}
