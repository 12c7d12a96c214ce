// Package attrs provides type-safe helpers for working with Zarr attribute
// mappings decoded from JSON.
//
// Attribute documents arrive as map[string]any with JSON's usual type quirks:
// every number is a float64, every nested object is a map[string]any, and
// every list is a []any regardless of element type. The helpers in this
// package normalize those shapes into the concrete Go types the convention
// models use.
//
// Two families of helpers exist:
//
//   - As* conversions operate on a single value and report whether the
//     conversion succeeded. The convention decoders use these so that a
//     wrongly typed field becomes a schema violation rather than a silently
//     dropped value.
//
//   - Get* accessors operate on a mapping and fall back to a default on any
//     mismatch. The CLI and info surfaces use these for display, where a
//     malformed field should degrade to "absent" rather than abort.
//
// Example:
//
//	m := map[string]any{"spatial:dimensions": []any{"Y", "X"}}
//	dims, ok := attrs.AsStringSlice(m["spatial:dimensions"])
//	// dims == []string{"Y", "X"}, ok == true
package attrs
