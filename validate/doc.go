// Package validate detects and validates Zarr metadata conventions.
//
// The engine operates at two input granularities. Attrs validates a flat
// attribute mapping in place; Group reads a stored group's attributes
// first and can additionally check that multiscale asset references
// resolve to real children of the group.
//
// Detection runs before validation and is deliberately key-based rather
// than schema-based: a malformed spatial block is still detected as
// "spatial" and routed to the spatial validator so its problems are
// reported precisely instead of being ignored. A convention may also be
// detected purely from a zarr_conventions registry entry; it will then
// fail validation with missing-field errors, surfacing declared-but-
// incomplete conventions.
//
// Results map convention names to error lists; an empty list is a pass,
// and a convention that was never detected is simply absent. Schema
// violations never surface as Go errors — only store access failures do.
//
//	results, err := validate.Group(ctx, grp)
//	if err != nil {
//		// the store could not be read
//	}
//	if !results.Valid() {
//		for name, errs := range results { ... }
//	}
package validate
