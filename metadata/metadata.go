package metadata

import (
	"context"
	"fmt"
	"strings"

	"github.com/geozarr/toolkit/conventions"
)

// SpatialParams are the inputs to BuildSpatial. Dimensions is required;
// everything else is optional. An empty Registration defaults to "pixel".
type SpatialParams struct {
	Dimensions   []string
	Transform    []float64
	BBox         []float64
	Shape        []int
	Registration string
}

// BuildSpatial creates spatial convention attributes from primitive
// inputs. The mapping it returns re-validates with zero errors.
func BuildSpatial(p SpatialParams) (map[string]any, error) {
	registration := p.Registration
	if registration == "" {
		registration = conventions.RegistrationPixel
	}
	spatial := &conventions.Spatial{
		Dimensions:    p.Dimensions,
		Transform:     p.Transform,
		BBox:          p.BBox,
		Shape:         p.Shape,
		TransformType: conventions.TransformTypeAffine,
		Registration:  registration,
	}
	if vs := spatial.Validate(); len(vs) > 0 {
		return nil, fmt.Errorf("build spatial attributes: %w", vs)
	}
	return spatial.AttrsMap(), nil
}

// ProjParams are the inputs to BuildProj. At least one of Code, WKT2, or
// ProjJSON must be set.
type ProjParams struct {
	Code     string
	WKT2     string
	ProjJSON map[string]any
}

// BuildProj creates proj convention attributes. The code, when given, is
// checked against the built-in CRS authority table.
func BuildProj(ctx context.Context, p ProjParams) (map[string]any, error) {
	proj := &conventions.Proj{
		Code:     p.Code,
		WKT2:     p.WKT2,
		ProjJSON: p.ProjJSON,
	}
	if vs := proj.Validate(ctx, nil); len(vs) > 0 {
		return nil, fmt.Errorf("build proj attributes: %w", vs)
	}
	return proj.AttrsMap(), nil
}

// BuildMultiscalesLayout creates the multiscales attribute object from
// scale levels. resamplingMethod is the pyramid-wide default; empty means
// none. The returned mapping carries the "multiscales" key, ready to
// merge into group attributes.
func BuildMultiscalesLayout(levels []conventions.ScaleLevel, resamplingMethod string) (map[string]any, error) {
	ms := &conventions.Multiscales{
		Layout:           levels,
		ResamplingMethod: resamplingMethod,
	}
	if vs := ms.Validate(); len(vs) > 0 {
		return nil, fmt.Errorf("build multiscales layout: %w", vs)
	}
	for i, level := range levels {
		if level.Asset == "" {
			return nil, fmt.Errorf("build multiscales layout: level %d is missing required 'asset'", i)
		}
	}
	return map[string]any{conventions.KeyMultiscales: ms.AttrsMap()}, nil
}

// ZarrConventions builds a zarr_conventions registry array from identity
// records. Only non-empty fields serialize.
func ZarrConventions(ids ...conventions.Identity) []map[string]any {
	out := make([]map[string]any, len(ids))
	for i, id := range ids {
		out[i] = id.AttrsMap()
	}
	return out
}

// GeoZarrParams are the inputs to BuildGeoZarrAttrs. CRS accepts either
// an "EPSG:xxxx" style code or a WKT2 string; empty means no proj
// attributes. OmitRegistry suppresses the zarr_conventions array.
type GeoZarrParams struct {
	Dimensions   []string
	CRS          string
	Transform    []float64
	BBox         []float64
	Shape        []int
	Registration string
	OmitRegistry bool
}

// BuildGeoZarrAttrs composes complete GeoZarr-compliant group attributes:
// spatial attributes, proj attributes when a CRS is given, and the
// registry array declaring the conventions used.
func BuildGeoZarrAttrs(ctx context.Context, p GeoZarrParams) (map[string]any, error) {
	out, err := BuildSpatial(SpatialParams{
		Dimensions:   p.Dimensions,
		Transform:    p.Transform,
		BBox:         p.BBox,
		Shape:        p.Shape,
		Registration: p.Registration,
	})
	if err != nil {
		return nil, err
	}
	identities := []conventions.Identity{conventions.SpatialIdentity()}

	if p.CRS != "" {
		params := ProjParams{WKT2: p.CRS}
		if strings.HasPrefix(p.CRS, "EPSG:") {
			params = ProjParams{Code: p.CRS}
		}
		projAttrs, err := BuildProj(ctx, params)
		if err != nil {
			return nil, err
		}
		for key, val := range projAttrs {
			out[key] = val
		}
		identities = append(identities, conventions.ProjIdentity())
	}

	if !p.OmitRegistry {
		out[conventions.KeyConventions] = ZarrConventions(identities...)
	}
	return out, nil
}
