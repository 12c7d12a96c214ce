// Package toolkit validates and builds GeoZarr convention metadata for Zarr
// stores.
//
// GeoZarr layers three conventions on top of plain Zarr attributes: the
// spatial convention describes dimensions, affine transforms, and bounding
// boxes; the proj convention carries the coordinate reference system; and the
// multiscales convention describes pyramids of downsampled arrays. Each
// convention is identified in the zarr_conventions registry by a fixed UUID.
//
// # Packages
//
// The module is organized by concern:
//
//   - conventions: typed models for the three conventions, with strict
//     decoding from raw attribute maps and per-field validation
//   - validate: convention detection and the validation engine, for raw
//     attribute maps and for opened store groups
//   - metadata: builders that produce well-formed convention attributes
//     from high level parameters or existing georeferencing
//   - store: read-only access to Zarr v2 and v3 groups on the local
//     filesystem or over HTTP
//   - crs: offline coordinate reference system resolution
//   - serve: the validation HTTP API
//
// # Validating attributes
//
// The validation engine works on plain map[string]any attributes:
//
//	results := validate.Attrs(ctx, attrs)
//	if !results.Valid() {
//		for name, errs := range results {
//			log.Printf("%s: %v", name, errs)
//		}
//	}
//
// # Building metadata
//
// Builders return ready-to-write attribute maps and reject parameters that
// would not validate:
//
//	attrs, err := metadata.BuildSpatial(metadata.SpatialParams{
//		Dimensions: []string{"Y", "X"},
//		Transform:  []float64{10, 0, 500000, 0, -10, 6000000},
//	})
//
// All exported functions that touch stores or resolvers accept a
// context.Context and are safe for concurrent use.
package toolkit

// Version is the toolkit release version, reported by the geozarr CLI.
const Version = "0.2.0"
