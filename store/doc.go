// Package store provides read-only access to hierarchical Zarr containers
// for metadata validation.
//
// The validation engine needs only a narrow capability surface from the
// container: open a group at a path, read its flat attribute mapping, and
// resolve child member names and kinds. The Group interface captures
// exactly that, so the engine stays independent of where the bytes live.
//
// Two implementations are provided:
//
//   - a filesystem store reading Zarr v3 zarr.json documents (with
//     fallback to v2 .zgroup/.zattrs/.zarray),
//   - an HTTP store fetching the same documents from a web-exposed
//     container. HTTP stores can resolve individual child paths but cannot
//     enumerate members, since plain HTTP offers no directory listing.
//
// Open dispatches on the URL scheme. Object-store schemes (s3://, gs://,
// az://) are recognized but unsupported; they fail with
// ErrUnsupportedScheme so callers can surface a precise "missing
// dependency" message instead of a generic open failure.
package store
