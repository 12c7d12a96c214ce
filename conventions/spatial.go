package conventions

import (
	"fmt"

	"github.com/geozarr/toolkit/attrs"
)

// Wire keys of the spatial convention.
const (
	KeySpatialDimensions    = "spatial:dimensions"
	KeySpatialBBox          = "spatial:bbox"
	KeySpatialTransformType = "spatial:transform_type"
	KeySpatialTransform     = "spatial:transform"
	KeySpatialShape         = "spatial:shape"
	KeySpatialRegistration  = "spatial:registration"
)

// Grid cell registration modes. Pixel registration (PixelIsArea) aligns
// cell boundaries with coordinates; node registration (PixelIsPoint)
// aligns cell centers.
const (
	RegistrationPixel = "pixel"
	RegistrationNode  = "node"
)

// TransformTypeAffine is the only transform type the spatial convention
// currently defines.
const TransformTypeAffine = "affine"

// Spatial holds the spatial convention attributes of a group or array:
// the mapping between array indices and spatial coordinates.
//
// Transform carries 2D affine coefficients [a, b, c, d, e, f] in
// rasterio/Affine ordering: x = a*i + b*j + c, y = d*i + e*j + f.
type Spatial struct {
	// Dimensions names the spatial dimensions in order, e.g. ["Y", "X"]
	// for 2D or ["Z", "Y", "X"] for 3D. Required, non-empty.
	Dimensions []string

	// BBox is the bounding box in coordinate space:
	// [xmin, ymin, xmax, ymax] for 2D, six values for 3D. Optional.
	BBox []float64

	// TransformType is the transformation kind. Defaults to "affine".
	TransformType string

	// Transform holds the six affine coefficients. Optional.
	Transform []float64

	// Shape is the extent of the spatial dimensions. Optional.
	Shape []int

	// Registration is the grid cell registration, "pixel" or "node".
	// Defaults to "pixel".
	Registration string

	// Extra preserves attribute keys the spatial convention does not
	// recognize. They round-trip through AttrsMap untouched.
	Extra map[string]any
}

var spatialKeys = map[string]bool{
	KeySpatialDimensions:    true,
	KeySpatialBBox:          true,
	KeySpatialTransformType: true,
	KeySpatialTransform:     true,
	KeySpatialShape:         true,
	KeySpatialRegistration:  true,
}

// DecodeSpatial builds a Spatial record from a flat attribute mapping.
// Wrongly typed fields and cross-field rule violations are collected; the
// returned record reflects every field that did decode.
func DecodeSpatial(m map[string]any) (*Spatial, Violations) {
	s := &Spatial{
		TransformType: TransformTypeAffine,
		Registration:  RegistrationPixel,
	}
	var vs Violations

	if attrs.Has(m, KeySpatialDimensions) {
		if dims, ok := attrs.AsStringSlice(m[KeySpatialDimensions]); ok {
			s.Dimensions = dims
		} else {
			vs.add(KeySpatialDimensions, "spatial:dimensions must be a list of strings")
		}
	}
	if attrs.Has(m, KeySpatialBBox) {
		if bbox, ok := attrs.AsFloatSlice(m[KeySpatialBBox]); ok {
			s.BBox = bbox
		} else {
			vs.add(KeySpatialBBox, "spatial:bbox must be a list of numbers")
		}
	}
	if attrs.Has(m, KeySpatialTransformType) {
		if tt, ok := attrs.AsString(m[KeySpatialTransformType]); ok {
			s.TransformType = tt
		} else {
			vs.add(KeySpatialTransformType, "spatial:transform_type must be a string")
		}
	}
	if attrs.Has(m, KeySpatialTransform) {
		if tr, ok := attrs.AsFloatSlice(m[KeySpatialTransform]); ok {
			s.Transform = tr
		} else {
			vs.add(KeySpatialTransform, "spatial:transform must be a list of numbers")
		}
	}
	if attrs.Has(m, KeySpatialShape) {
		if shape, ok := attrs.AsIntSlice(m[KeySpatialShape]); ok {
			s.Shape = shape
		} else {
			vs.add(KeySpatialShape, "spatial:shape must be a list of integers")
		}
	}
	if attrs.Has(m, KeySpatialRegistration) {
		if reg, ok := attrs.AsString(m[KeySpatialRegistration]); ok {
			s.Registration = reg
		} else {
			vs.add(KeySpatialRegistration, "spatial:registration must be a string")
		}
	}

	for key, val := range m {
		if spatialKeys[key] {
			continue
		}
		if s.Extra == nil {
			s.Extra = make(map[string]any)
		}
		s.Extra[key] = val
	}

	vs = append(vs, s.Validate()...)
	return s, vs
}

// Validate checks the spatial convention's cross-field invariants.
func (s *Spatial) Validate() Violations {
	var vs Violations
	if len(s.Dimensions) == 0 {
		vs.add(KeySpatialDimensions, "spatial:dimensions must contain at least one dimension")
	}
	if s.Transform != nil && len(s.Transform) != 6 {
		vs.add(KeySpatialTransform, "spatial:transform must have exactly 6 coefficients for 2D affine")
	}
	if s.Registration != RegistrationPixel && s.Registration != RegistrationNode {
		vs.add(KeySpatialRegistration,
			fmt.Sprintf("spatial:registration must be 'pixel' or 'node', got %q", s.Registration))
	}
	return vs
}

// AttrsMap serializes the record back to wire keys. Optional fields that
// are unset are omitted; defaults for transform_type and registration are
// written out explicitly. Extra keys are carried through.
func (s *Spatial) AttrsMap() map[string]any {
	out := make(map[string]any, 6+len(s.Extra))
	out[KeySpatialDimensions] = s.Dimensions
	if s.BBox != nil {
		out[KeySpatialBBox] = s.BBox
	}
	out[KeySpatialTransformType] = s.TransformType
	if s.Transform != nil {
		out[KeySpatialTransform] = s.Transform
	}
	if s.Shape != nil {
		out[KeySpatialShape] = s.Shape
	}
	out[KeySpatialRegistration] = s.Registration
	for key, val := range s.Extra {
		out[key] = val
	}
	return out
}
