// Package conventions provides typed models for the Zarr metadata
// conventions the toolkit validates: spatial, proj, and multiscales.
//
// Each convention is a small contract over a group's (or array's) flat
// attribute mapping. Attributes are namespaced with colon-prefixed keys
// ("spatial:dimensions", "proj:code"), except multiscales and the
// zarr_conventions registry array, which are bare keys holding nested
// structures.
//
// # Models
//
//   - Identity: a self-describing registry entry declaring conformance to a
//     convention. Closed schema; unknown keys are rejected.
//   - Spatial: index-to-coordinate mapping (dimensions, affine transform,
//     bounding box, registration).
//   - Proj: CRS identity (authority code, WKT2, or PROJJSON).
//   - Multiscales: resolution pyramid layout of scale levels.
//
// # Decoding and validation
//
// Each model has a Decode* constructor that builds the record from an
// untyped attribute mapping and returns the field-level Violations found.
// Decoding never panics and never stops at the first problem: all
// violations are collected so callers can report a complete error list.
// Unknown keys on the open models (Spatial, Proj, Multiscales) are
// preserved in an Extra map and round-trip through AttrsMap unchanged.
//
// Example:
//
//	spatial, violations := conventions.DecodeSpatial(map[string]any{
//		"spatial:dimensions": []any{"Y", "X"},
//		"spatial:transform":  []any{10.0, 0.0, 500000.0, 0.0, -10.0, 5000000.0},
//	})
//	if len(violations) > 0 {
//		// report violations.Messages()
//	}
//	_ = spatial.AttrsMap() // serialize back to wire keys
package conventions
