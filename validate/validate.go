package validate

import (
	"context"
	"fmt"

	"github.com/geozarr/toolkit/attrs"
	"github.com/geozarr/toolkit/conventions"
	"github.com/geozarr/toolkit/crs"
	"github.com/geozarr/toolkit/store"
)

// Results maps convention names to their error lists. An empty list means
// the convention validated cleanly. A convention with no detected
// occurrence is absent from the map, not reported as passing.
type Results map[string][]string

// Valid reports overall validity: every per-convention error list empty.
// An empty Results (nothing detected) is valid.
func (r Results) Valid() bool {
	for _, errs := range r {
		if len(errs) > 0 {
			return false
		}
	}
	return true
}

// Validator runs convention validation. The zero value is usable; New
// applies options such as a custom CRS resolver.
type Validator struct {
	resolver crs.Resolver
}

// Option configures a Validator.
type Option func(*Validator)

// WithResolver sets the CRS authority resolver used for proj:code
// resolution. Tests use this to avoid depending on the built-in authority
// table.
func WithResolver(r crs.Resolver) Option {
	return func(v *Validator) {
		v.resolver = r
	}
}

// New creates a Validator with the given options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Spatial validates the mapping against the spatial convention and
// returns the error list.
func (v *Validator) Spatial(m map[string]any) []string {
	_, vs := conventions.DecodeSpatial(m)
	return vs.Messages()
}

// Proj validates the mapping against the proj convention.
func (v *Validator) Proj(ctx context.Context, m map[string]any) []string {
	_, vs := conventions.DecodeProj(ctx, m, v.resolver)
	return vs.Messages()
}

// Multiscales validates the multiscales object stored under the
// "multiscales" attribute key.
func (v *Validator) Multiscales(m map[string]any) []string {
	raw, ok := m[conventions.KeyMultiscales]
	if !ok {
		return []string{"missing 'multiscales' key in attributes"}
	}
	mm, ok := attrs.AsMap(raw)
	if !ok {
		return []string{"multiscales must be an object"}
	}
	_, vs := conventions.DecodeMultiscales(mm)
	return vs.Messages()
}

// Registry checks that the zarr_conventions array is well formed: a list
// of objects, each carrying at least one of uuid, schema_url, spec_url.
// This is a shape check on raw entries, not a full Identity decode, so
// registry entries for conventions this toolkit does not know remain
// acceptable.
func (v *Validator) Registry(m map[string]any) []string {
	raw, ok := m[conventions.KeyConventions]
	if !ok {
		return []string{"missing 'zarr_conventions' key in attributes"}
	}
	entries, ok := attrs.AsSlice(raw)
	if !ok {
		return []string{"zarr_conventions must be a list"}
	}

	var errs []string
	for i, entry := range entries {
		em, ok := attrs.AsMap(entry)
		if !ok {
			errs = append(errs, fmt.Sprintf("convention %d must be an object", i))
			continue
		}
		hasID := attrs.GetString(em, "uuid", "") != "" ||
			attrs.GetString(em, "schema_url", "") != "" ||
			attrs.GetString(em, "spec_url", "") != ""
		if !hasID {
			errs = append(errs,
				fmt.Sprintf("convention %d must have at least one of: uuid, schema_url, spec_url", i))
		}
	}
	return errs
}

// Attrs validates a flat attribute mapping. When no conventions are
// given, detection runs first. Each requested or detected convention's
// error list is recorded under its name. The registry well-formedness
// check always runs when zarr_conventions is present, under the
// "zarr_conventions" key, regardless of the requested set.
func (v *Validator) Attrs(ctx context.Context, m map[string]any, requested ...string) Results {
	convs := requested
	if len(convs) == 0 {
		convs = Detect(m)
	}

	results := make(Results, len(convs)+1)
	for _, conv := range convs {
		switch conv {
		case conventions.NameSpatial:
			results[conventions.NameSpatial] = v.Spatial(m)
		case conventions.NameProj:
			results[conventions.NameProj] = v.Proj(ctx, m)
		case conventions.NameMultiscales:
			results[conventions.NameMultiscales] = v.Multiscales(m)
		}
	}
	if _, ok := m[conventions.KeyConventions]; ok {
		results[conventions.KeyConventions] = v.Registry(m)
	}
	return results
}

// Group reads the group's attribute mapping and validates it like Attrs.
// The returned error reports store access failures only; schema problems
// land in the Results.
func (v *Validator) Group(ctx context.Context, grp store.Group, requested ...string) (Results, error) {
	m, err := grp.Attrs(ctx)
	if err != nil {
		return nil, fmt.Errorf("read group attributes: %w", err)
	}
	return v.Attrs(ctx, m, requested...), nil
}

// MultiscalesStructure checks that every asset and derived_from path in
// the group's multiscales layout resolves to an actual child of the
// group. It reads raw attribute values rather than the decoded model so
// that partially malformed layouts still get their resolvable levels
// checked.
func (v *Validator) MultiscalesStructure(ctx context.Context, grp store.Group) ([]string, error) {
	m, err := grp.Attrs(ctx)
	if err != nil {
		return nil, fmt.Errorf("read group attributes: %w", err)
	}

	raw, ok := m[conventions.KeyMultiscales]
	if !ok {
		return []string{"group does not have multiscales attribute"}, nil
	}
	mm, ok := attrs.AsMap(raw)
	if !ok {
		return []string{"multiscales must be an object"}, nil
	}
	layout, ok := attrs.AsSlice(mm["layout"])
	if !ok {
		return []string{"multiscales missing 'layout' key"}, nil
	}

	var errs []string
	for _, entry := range layout {
		level, ok := attrs.AsMap(entry)
		if !ok {
			continue
		}
		asset := attrs.GetString(level, "asset", "")
		if asset == "" {
			errs = append(errs, "scale level missing 'asset' key")
			continue
		}
		found, err := grp.Has(ctx, asset)
		if err != nil {
			return nil, fmt.Errorf("resolve asset %q: %w", asset, err)
		}
		if !found {
			errs = append(errs, fmt.Sprintf("asset '%s' not found in group", asset))
		}

		if derived := attrs.GetString(level, "derived_from", ""); derived != "" {
			found, err := grp.Has(ctx, derived)
			if err != nil {
				return nil, fmt.Errorf("resolve derived_from %q: %w", derived, err)
			}
			if !found {
				errs = append(errs, fmt.Sprintf("derived_from '%s' not found in group", derived))
			}
		}
	}
	return errs, nil
}

// defaultValidator backs the package-level convenience functions.
var defaultValidator = New()

// Attrs validates a flat attribute mapping with the default validator.
func Attrs(ctx context.Context, m map[string]any, requested ...string) Results {
	return defaultValidator.Attrs(ctx, m, requested...)
}

// Group validates a stored group with the default validator.
func Group(ctx context.Context, grp store.Group, requested ...string) (Results, error) {
	return defaultValidator.Group(ctx, grp, requested...)
}

// MultiscalesStructure checks multiscale asset references with the
// default validator.
func MultiscalesStructure(ctx context.Context, grp store.Group) ([]string, error) {
	return defaultValidator.MultiscalesStructure(ctx, grp)
}
