// Package crs resolves coordinate reference system identifiers against a
// CRS authority.
//
// The proj convention requires that a syntactically valid proj:code such as
// "EPSG:4326" also names a CRS the authority actually registers. Resolution
// is the one validation step with an external dependency, so it sits behind
// the narrow Resolver interface: production callers can plug in a resolver
// backed by a PROJ database or a network service, and tests can substitute
// a ResolverFunc without touching the network.
//
// The built-in AuthorityTable resolver works offline from the code ranges
// each supported authority reserves for CRS definitions. It accepts any
// code inside a registered range, which keeps the common failure mode
// (codes far outside any authority's space, like EPSG:99999) detectable
// without shipping the full authority database.
package crs
