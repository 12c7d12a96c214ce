// Package metadata builds convention-compliant attribute mappings from
// primitive inputs.
//
// The builders are the write-side companions to the validate package:
// they construct the typed records from package conventions internally,
// so any mapping they return validates cleanly by construction, and
// contradictory inputs (a transform with the wrong number of
// coefficients, a CRS code that does not resolve) fail fast with the same
// violation messages validation would report.
//
// Two adapters convert interoperability formats: FromGeoTransform accepts
// a GDAL-style geotransform 6-tuple, and FromGeoreferencedArray extracts
// everything from an in-memory georeferenced array description.
package metadata
