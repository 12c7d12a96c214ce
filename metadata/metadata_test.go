package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geozarr/toolkit/conventions"
	"github.com/geozarr/toolkit/validate"
)

func TestBuildSpatial(t *testing.T) {
	attrs, err := BuildSpatial(SpatialParams{
		Dimensions: []string{"Y", "X"},
		Transform:  []float64{10, 0, 500000, 0, -10, 6000000},
		BBox:       []float64{500000, 5990000, 510000, 6000000},
		Shape:      []int{1000, 1000},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Y", "X"}, attrs["spatial:dimensions"])
	assert.Equal(t, "affine", attrs["spatial:transform_type"])
	assert.Equal(t, "pixel", attrs["spatial:registration"])

	results := validate.Attrs(context.Background(), attrs, "spatial")
	assert.True(t, results.Valid())
}

func TestBuildSpatialRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		params SpatialParams
	}{
		{
			name:   "no dimensions",
			params: SpatialParams{},
		},
		{
			name: "short transform",
			params: SpatialParams{
				Dimensions: []string{"Y", "X"},
				Transform:  []float64{1, 2, 3},
			},
		},
		{
			name: "bad registration",
			params: SpatialParams{
				Dimensions:   []string{"Y", "X"},
				Registration: "corner",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSpatial(tt.params)
			assert.Error(t, err)
		})
	}
}

func TestBuildProj(t *testing.T) {
	attrs, err := BuildProj(context.Background(), ProjParams{Code: "EPSG:4326"})
	require.NoError(t, err)
	assert.Equal(t, "EPSG:4326", attrs["proj:code"])
	assert.NotContains(t, attrs, "proj:wkt2")

	_, err = BuildProj(context.Background(), ProjParams{})
	assert.Error(t, err)

	_, err = BuildProj(context.Background(), ProjParams{Code: "EPSG:99999"})
	assert.Error(t, err)
}

func TestBuildMultiscalesLayout(t *testing.T) {
	levels := []conventions.ScaleLevel{
		{Asset: "0"},
		{
			Asset:       "1",
			DerivedFrom: "0",
			Transform:   &conventions.Transform{Scale: []float64{2, 2}},
		},
	}

	attrs, err := BuildMultiscalesLayout(levels, "average")
	require.NoError(t, err)

	ms, ok := attrs["multiscales"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "average", ms["resampling_method"])

	results := validate.Attrs(context.Background(), attrs, "multiscales")
	assert.True(t, results.Valid())
}

func TestBuildMultiscalesLayoutRejects(t *testing.T) {
	_, err := BuildMultiscalesLayout(nil, "")
	assert.Error(t, err)

	_, err = BuildMultiscalesLayout([]conventions.ScaleLevel{{}}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level 0 is missing required 'asset'")
}

func TestZarrConventions(t *testing.T) {
	registry := ZarrConventions(conventions.SpatialIdentity(), conventions.ProjIdentity())
	require.Len(t, registry, 2)
	assert.Equal(t, conventions.SpatialUUID, registry[0]["uuid"])
	assert.Equal(t, conventions.ProjUUID, registry[1]["uuid"])
}

func TestBuildGeoZarrAttrs(t *testing.T) {
	attrs, err := BuildGeoZarrAttrs(context.Background(), GeoZarrParams{
		Dimensions: []string{"Y", "X"},
		CRS:        "EPSG:32633",
		Transform:  []float64{10, 0, 500000, 0, -10, 6000000},
	})
	require.NoError(t, err)

	assert.Equal(t, "EPSG:32633", attrs["proj:code"])

	registry, ok := attrs["zarr_conventions"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, registry, 2)

	results := validate.Attrs(context.Background(), attrs)
	assert.True(t, results.Valid())
	assert.Contains(t, results, "spatial")
	assert.Contains(t, results, "proj")
	assert.Contains(t, results, "zarr_conventions")
}

func TestBuildGeoZarrAttrsWKTCRS(t *testing.T) {
	attrs, err := BuildGeoZarrAttrs(context.Background(), GeoZarrParams{
		Dimensions: []string{"Y", "X"},
		CRS:        `GEOGCRS["WGS 84"]`,
	})
	require.NoError(t, err)
	assert.Equal(t, `GEOGCRS["WGS 84"]`, attrs["proj:wkt2"])
	assert.NotContains(t, attrs, "proj:code")
}

func TestBuildGeoZarrAttrsNoCRS(t *testing.T) {
	attrs, err := BuildGeoZarrAttrs(context.Background(), GeoZarrParams{
		Dimensions: []string{"Y", "X"},
	})
	require.NoError(t, err)
	assert.NotContains(t, attrs, "proj:code")
	assert.NotContains(t, attrs, "proj:wkt2")

	registry := attrs["zarr_conventions"].([]map[string]any)
	require.Len(t, registry, 1)
	assert.Equal(t, conventions.SpatialUUID, registry[0]["uuid"])
}

func TestBuildGeoZarrAttrsOmitRegistry(t *testing.T) {
	attrs, err := BuildGeoZarrAttrs(context.Background(), GeoZarrParams{
		Dimensions:   []string{"Y", "X"},
		OmitRegistry: true,
	})
	require.NoError(t, err)
	assert.NotContains(t, attrs, "zarr_conventions")
}
