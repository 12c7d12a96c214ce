package conventions

import (
	"fmt"

	"github.com/geozarr/toolkit/attrs"
)

// Transform describes the coordinate transformation from a derived scale
// level back to its source level. Scale factors greater than one indicate
// downsampling.
type Transform struct {
	// Scale holds per-axis scale factors. Optional.
	Scale []float64

	// Translation holds per-axis offsets in coordinate space. Optional.
	Translation []float64

	// Extra preserves unrecognized keys.
	Extra map[string]any
}

// ScaleLevel is one resolution tier in a multiscale pyramid, referencing a
// concrete child asset of the group.
type ScaleLevel struct {
	// Asset is the relative path to the child group or array holding this
	// level, e.g. "0" or "0/data". Required.
	Asset string

	// DerivedFrom is the path of the source level this level was computed
	// from. Optional.
	DerivedFrom string

	// Transform maps this level's coordinates back to the source level.
	Transform *Transform

	// ResamplingMethod overrides the pyramid's default method for this
	// level, e.g. "average" or "nearest". Optional.
	ResamplingMethod string

	// Extra preserves unrecognized keys.
	Extra map[string]any
}

// Multiscales holds the multiscales convention object of a group. The
// convention applies to groups only, never arrays.
type Multiscales struct {
	// Layout lists the scale levels of the pyramid, ordered. Must be
	// non-empty.
	Layout []ScaleLevel

	// ResamplingMethod is the default method applied to all levels unless
	// a level overrides it. Optional.
	ResamplingMethod string

	// Extra preserves unrecognized keys.
	Extra map[string]any
}

// MultiscalesAttrs models the whole attribute document of a multiscales
// group: the zarr_conventions registry plus the multiscales object. The
// registry must declare the multiscales convention.
type MultiscalesAttrs struct {
	Conventions []Identity
	Multiscales Multiscales

	// Extra preserves the remaining attribute keys.
	Extra map[string]any
}

// DecodeTransform builds a Transform from its nested object form. The
// fieldPath prefixes violation fields, e.g. "multiscales.layout[1].transform".
func DecodeTransform(m map[string]any, fieldPath string) (*Transform, Violations) {
	t := &Transform{}
	var vs Violations

	if attrs.Has(m, "scale") {
		if scale, ok := attrs.AsFloatSlice(m["scale"]); ok {
			t.Scale = scale
		} else {
			vs.add(fieldPath+".scale", fieldPath+".scale must be a list of numbers")
		}
	}
	if attrs.Has(m, "translation") {
		if tr, ok := attrs.AsFloatSlice(m["translation"]); ok {
			t.Translation = tr
		} else {
			vs.add(fieldPath+".translation", fieldPath+".translation must be a list of numbers")
		}
	}
	for key, val := range m {
		if key == "scale" || key == "translation" {
			continue
		}
		if t.Extra == nil {
			t.Extra = make(map[string]any)
		}
		t.Extra[key] = val
	}
	return t, vs
}

// DecodeScaleLevel builds a ScaleLevel from its nested object form.
func DecodeScaleLevel(m map[string]any, fieldPath string) (ScaleLevel, Violations) {
	var level ScaleLevel
	var vs Violations

	if attrs.Has(m, "asset") {
		if asset, ok := attrs.AsString(m["asset"]); ok {
			level.Asset = asset
		} else {
			vs.add(fieldPath+".asset", fieldPath+".asset must be a string")
		}
	} else {
		vs.add(fieldPath+".asset", fieldPath+" is missing required 'asset'")
	}
	if attrs.Has(m, "derived_from") {
		if df, ok := attrs.AsString(m["derived_from"]); ok {
			level.DerivedFrom = df
		} else {
			vs.add(fieldPath+".derived_from", fieldPath+".derived_from must be a string")
		}
	}
	if attrs.Has(m, "transform") {
		if tm, ok := attrs.AsMap(m["transform"]); ok {
			transform, tvs := DecodeTransform(tm, fieldPath+".transform")
			level.Transform = transform
			vs = append(vs, tvs...)
		} else {
			vs.add(fieldPath+".transform", fieldPath+".transform must be an object")
		}
	}
	if attrs.Has(m, "resampling_method") {
		if rm, ok := attrs.AsString(m["resampling_method"]); ok {
			level.ResamplingMethod = rm
		} else {
			vs.add(fieldPath+".resampling_method", fieldPath+".resampling_method must be a string")
		}
	}
	for key, val := range m {
		switch key {
		case "asset", "derived_from", "transform", "resampling_method":
			continue
		}
		if level.Extra == nil {
			level.Extra = make(map[string]any)
		}
		level.Extra[key] = val
	}
	return level, vs
}

// DecodeMultiscales builds a Multiscales record from the nested object
// stored under the "multiscales" attribute key.
func DecodeMultiscales(m map[string]any) (*Multiscales, Violations) {
	ms := &Multiscales{}
	var vs Violations

	if attrs.Has(m, "layout") {
		if layout, ok := attrs.AsSlice(m["layout"]); ok {
			ms.Layout = make([]ScaleLevel, 0, len(layout))
			for i, entry := range layout {
				fieldPath := fmt.Sprintf("multiscales.layout[%d]", i)
				lm, ok := attrs.AsMap(entry)
				if !ok {
					vs.add(fieldPath, fieldPath+" must be an object")
					continue
				}
				level, lvs := DecodeScaleLevel(lm, fieldPath)
				ms.Layout = append(ms.Layout, level)
				vs = append(vs, lvs...)
			}
		} else {
			vs.add("multiscales.layout", "multiscales layout must be a list")
		}
	}
	if attrs.Has(m, "resampling_method") {
		if rm, ok := attrs.AsString(m["resampling_method"]); ok {
			ms.ResamplingMethod = rm
		} else {
			vs.add("multiscales.resampling_method", "multiscales resampling_method must be a string")
		}
	}
	for key, val := range m {
		if key == "layout" || key == "resampling_method" {
			continue
		}
		if ms.Extra == nil {
			ms.Extra = make(map[string]any)
		}
		ms.Extra[key] = val
	}

	vs = append(vs, ms.Validate()...)
	return ms, vs
}

// Validate checks the multiscales invariant: the layout must have at least
// one level.
func (ms *Multiscales) Validate() Violations {
	var vs Violations
	if len(ms.Layout) == 0 {
		vs.add("multiscales.layout", "multiscales layout must have at least one level")
	}
	return vs
}

// DecodeMultiscalesAttrs builds the whole-group model from a flat
// attribute mapping carrying both zarr_conventions and multiscales.
func DecodeMultiscalesAttrs(m map[string]any) (*MultiscalesAttrs, Violations) {
	ma := &MultiscalesAttrs{}
	var vs Violations

	if attrs.Has(m, KeyConventions) {
		if entries, ok := attrs.AsSlice(m[KeyConventions]); ok {
			ma.Conventions = make([]Identity, 0, len(entries))
			for i, entry := range entries {
				em, ok := attrs.AsMap(entry)
				if !ok {
					vs.add(fmt.Sprintf("zarr_conventions[%d]", i),
						fmt.Sprintf("convention %d must be an object", i))
					continue
				}
				id, ivs := DecodeIdentity(em)
				ma.Conventions = append(ma.Conventions, id)
				vs = append(vs, ivs...)
			}
		} else {
			vs.add(KeyConventions, "zarr_conventions must be a list")
		}
	} else {
		vs.add(KeyConventions, "missing 'zarr_conventions' key in attributes")
	}

	if attrs.Has(m, KeyMultiscales) {
		if mm, ok := attrs.AsMap(m[KeyMultiscales]); ok {
			ms, mvs := DecodeMultiscales(mm)
			ma.Multiscales = *ms
			vs = append(vs, mvs...)
		} else {
			vs.add(KeyMultiscales, "multiscales must be an object")
		}
	} else {
		vs.add(KeyMultiscales, "missing 'multiscales' key in attributes")
	}

	for key, val := range m {
		if key == KeyConventions || key == KeyMultiscales {
			continue
		}
		if ma.Extra == nil {
			ma.Extra = make(map[string]any)
		}
		ma.Extra[key] = val
	}

	vs = append(vs, ma.Validate()...)
	return ma, vs
}

// Validate checks that the registry declares the multiscales convention by
// uuid or canonical name.
func (ma *MultiscalesAttrs) Validate() Violations {
	var vs Violations
	for _, id := range ma.Conventions {
		if id.Convention() == NameMultiscales {
			return vs
		}
	}
	vs.add(KeyConventions,
		fmt.Sprintf("zarr_conventions must include the multiscales convention (uuid: %s)", MultiscalesUUID))
	return vs
}

// AttrsMap serializes the transform to its nested object form.
func (t *Transform) AttrsMap() map[string]any {
	out := make(map[string]any, 2+len(t.Extra))
	if t.Scale != nil {
		out["scale"] = t.Scale
	}
	if t.Translation != nil {
		out["translation"] = t.Translation
	}
	for key, val := range t.Extra {
		out[key] = val
	}
	return out
}

// AttrsMap serializes the scale level to its nested object form.
func (l ScaleLevel) AttrsMap() map[string]any {
	out := make(map[string]any, 4+len(l.Extra))
	out["asset"] = l.Asset
	if l.DerivedFrom != "" {
		out["derived_from"] = l.DerivedFrom
	}
	if l.Transform != nil {
		out["transform"] = l.Transform.AttrsMap()
	}
	if l.ResamplingMethod != "" {
		out["resampling_method"] = l.ResamplingMethod
	}
	for key, val := range l.Extra {
		out[key] = val
	}
	return out
}

// AttrsMap serializes the pyramid to the nested object stored under the
// "multiscales" attribute key.
func (ms *Multiscales) AttrsMap() map[string]any {
	levels := make([]any, len(ms.Layout))
	for i, level := range ms.Layout {
		levels[i] = level.AttrsMap()
	}
	out := make(map[string]any, 2+len(ms.Extra))
	out["layout"] = levels
	if ms.ResamplingMethod != "" {
		out["resampling_method"] = ms.ResamplingMethod
	}
	for key, val := range ms.Extra {
		out[key] = val
	}
	return out
}
