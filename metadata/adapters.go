package metadata

import (
	"context"
	"errors"
	"fmt"
)

// FromGeoTransform converts a GDAL-style geotransform into combined
// spatial and proj convention attributes.
//
// GDAL orders the coefficients [c, a, b, f, d, e]: c/f are the
// coordinates of the upper-left corner, a/e the pixel sizes, b/d the
// rotation terms. The spatial convention uses rasterio/Affine ordering
// [a, b, c, d, e, f]. The bounding box is derived from the transform and
// the (height, width) shape, with min/max normalized so it stays ordered
// even when the y pixel size is negative (the usual north-up case).
func FromGeoTransform(geoTransform [6]float64, crsWKT string, shape [2]int, dimensions []string) (map[string]any, error) {
	if len(dimensions) == 0 {
		dimensions = []string{"Y", "X"}
	}

	c, a, b := geoTransform[0], geoTransform[1], geoTransform[2]
	f, d, e := geoTransform[3], geoTransform[4], geoTransform[5]
	transform := []float64{a, b, c, d, e, f}

	height, width := float64(shape[0]), float64(shape[1])
	xmin := c
	ymax := f
	xmax := c + a*width + b*height
	ymin := f + d*width + e*height
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	if ymin > ymax {
		ymin, ymax = ymax, ymin
	}

	out, err := BuildSpatial(SpatialParams{
		Dimensions: dimensions,
		Transform:  transform,
		BBox:       []float64{xmin, ymin, xmax, ymax},
		Shape:      []int{shape[0], shape[1]},
	})
	if err != nil {
		return nil, err
	}

	projAttrs, err := BuildProj(context.Background(), ProjParams{WKT2: crsWKT})
	if err != nil {
		return nil, err
	}
	for key, val := range projAttrs {
		out[key] = val
	}
	return out, nil
}

// Georeferenced describes an in-memory georeferenced 2D array, the shape
// of data produced by raster I/O libraries: named spatial axes, pixel
// dimensions, an affine transform in [a, b, c, d, e, f] ordering, outer
// bounds, and a CRS as an EPSG code and/or WKT.
type Georeferenced struct {
	// YDim and XDim name the spatial axes, e.g. "y" and "x".
	YDim, XDim string

	// Height and Width are the pixel extents along YDim and XDim.
	Height, Width int

	// Transform holds the affine coefficients [a, b, c, d, e, f].
	Transform [6]float64

	// Bounds is [left, bottom, right, top] in coordinate space.
	Bounds [4]float64

	// EPSG is the numeric EPSG code of the CRS, 0 when unknown.
	EPSG int

	// WKT is the WKT representation of the CRS, used when no EPSG code
	// is available.
	WKT string
}

// ErrNoCRS indicates a Georeferenced value carries neither an EPSG code
// nor a WKT string.
var ErrNoCRS = errors.New("georeferenced array has no CRS")

// FromGeoreferencedArray extracts combined spatial and proj convention
// attributes from a georeferenced array description. An EPSG code is
// preferred over WKT when both are present.
func FromGeoreferencedArray(ctx context.Context, g Georeferenced) (map[string]any, error) {
	yDim, xDim := g.YDim, g.XDim
	if yDim == "" {
		yDim = "Y"
	}
	if xDim == "" {
		xDim = "X"
	}

	out, err := BuildSpatial(SpatialParams{
		Dimensions: []string{yDim, xDim},
		Transform:  g.Transform[:],
		BBox:       g.Bounds[:],
		Shape:      []int{g.Height, g.Width},
	})
	if err != nil {
		return nil, err
	}

	var params ProjParams
	switch {
	case g.EPSG != 0:
		params.Code = fmt.Sprintf("EPSG:%d", g.EPSG)
	case g.WKT != "":
		params.WKT2 = g.WKT
	default:
		return nil, ErrNoCRS
	}
	projAttrs, err := BuildProj(ctx, params)
	if err != nil {
		return nil, err
	}
	for key, val := range projAttrs {
		out[key] = val
	}
	return out, nil
}
