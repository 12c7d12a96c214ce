package conventions

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/geozarr/toolkit/attrs"
)

// Convention short names, as used in detection results and validation
// result mappings.
const (
	NameSpatial     = "spatial"
	NameProj        = "proj"
	NameMultiscales = "multiscales"
)

// Bare attribute keys holding nested structures. All other convention
// attributes are namespaced with colon prefixes.
const (
	// KeyConventions is the registry array of Identity records.
	KeyConventions = "zarr_conventions"

	// KeyMultiscales holds the multiscales pyramid object.
	KeyMultiscales = "multiscales"
)

// Canonical identifiers for the three built-in conventions. The UUIDs are
// globally fixed constants from the convention specifications.
const (
	SpatialUUID      = "689b58e2-cf7b-45e0-9fff-9cfc0883d6b4"
	SpatialSchemaURL = "https://raw.githubusercontent.com/zarr-conventions/spatial/refs/tags/v1/schema.json"
	SpatialSpecURL   = "https://github.com/zarr-conventions/spatial/blob/v1/README.md"

	ProjUUID      = "f17cb550-5864-4468-aeb7-f3180cfb622f"
	ProjSchemaURL = "https://raw.githubusercontent.com/zarr-experimental/geo-proj/refs/tags/v1/schema.json"
	ProjSpecURL   = "https://github.com/zarr-experimental/geo-proj/blob/v1/README.md"

	MultiscalesUUID      = "d35379db-88df-4056-af3a-620245f8e347"
	MultiscalesSchemaURL = "https://raw.githubusercontent.com/zarr-conventions/multiscales/refs/tags/v1/schema.json"
	MultiscalesSpecURL   = "https://github.com/zarr-conventions/multiscales/blob/v1/README.md"
)

// Parsed forms of the canonical UUIDs, used for case-insensitive
// comparison of registry entries.
var (
	spatialUUID     = uuid.MustParse(SpatialUUID)
	projUUID        = uuid.MustParse(ProjUUID)
	multiscalesUUID = uuid.MustParse(MultiscalesUUID)
)

// Identity is a self-description record used inside the zarr_conventions
// registry array. At least one of UUID, SchemaURL, or SpecURL must be set,
// otherwise the record cannot be resolved to a known convention.
//
// Unlike the convention attribute models, Identity is a closed schema:
// registry entries with unknown keys are rejected rather than preserved.
type Identity struct {
	UUID        string `json:"uuid,omitempty"`
	SchemaURL   string `json:"schema_url,omitempty"`
	SpecURL     string `json:"spec_url,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// identityKeys is the closed key set of a registry entry.
var identityKeys = map[string]bool{
	"uuid":        true,
	"schema_url":  true,
	"spec_url":    true,
	"name":        true,
	"description": true,
}

// SpatialIdentity returns the canonical registry entry for the spatial
// convention.
func SpatialIdentity() Identity {
	return Identity{
		UUID:        SpatialUUID,
		Name:        "spatial:",
		SchemaURL:   SpatialSchemaURL,
		SpecURL:     SpatialSpecURL,
		Description: "Spatial coordinate and transformation information",
	}
}

// ProjIdentity returns the canonical registry entry for the proj
// convention.
func ProjIdentity() Identity {
	return Identity{
		UUID:        ProjUUID,
		Name:        "proj:",
		SchemaURL:   ProjSchemaURL,
		SpecURL:     ProjSpecURL,
		Description: "Coordinate reference system information for geospatial data",
	}
}

// MultiscalesIdentity returns the canonical registry entry for the
// multiscales convention.
func MultiscalesIdentity() Identity {
	return Identity{
		UUID:        MultiscalesUUID,
		Name:        "multiscales",
		SchemaURL:   MultiscalesSchemaURL,
		SpecURL:     MultiscalesSpecURL,
		Description: "Multiscale layout of zarr datasets",
	}
}

// DecodeIdentity builds an Identity from an untyped registry entry.
// Unknown keys and non-string values are violations; the at-least-one
// identifier rule is checked via Validate.
func DecodeIdentity(m map[string]any) (Identity, Violations) {
	var id Identity
	var vs Violations

	for key := range m {
		if !identityKeys[key] {
			vs.add(key, fmt.Sprintf("unknown key %q in convention identity", key))
		}
	}

	fields := []struct {
		key string
		dst *string
	}{
		{"uuid", &id.UUID},
		{"schema_url", &id.SchemaURL},
		{"spec_url", &id.SpecURL},
		{"name", &id.Name},
		{"description", &id.Description},
	}
	for _, f := range fields {
		if !attrs.Has(m, f.key) {
			continue
		}
		s, ok := attrs.AsString(m[f.key])
		if !ok {
			vs.add(f.key, fmt.Sprintf("convention identity %s must be a string", f.key))
			continue
		}
		*f.dst = s
	}

	vs = append(vs, id.Validate()...)
	return id, vs
}

// Validate checks that the identity carries at least one resolvable
// identifier.
func (id Identity) Validate() Violations {
	var vs Violations
	if id.UUID == "" && id.SchemaURL == "" && id.SpecURL == "" {
		vs.add("uuid", "at least one of uuid, schema_url, or spec_url must be provided")
	}
	return vs
}

// AttrsMap serializes the identity to its registry wire form. Only
// non-empty fields are included.
func (id Identity) AttrsMap() map[string]any {
	out := make(map[string]any, 5)
	if id.UUID != "" {
		out["uuid"] = id.UUID
	}
	if id.SchemaURL != "" {
		out["schema_url"] = id.SchemaURL
	}
	if id.SpecURL != "" {
		out["spec_url"] = id.SpecURL
	}
	if id.Name != "" {
		out["name"] = id.Name
	}
	if id.Description != "" {
		out["description"] = id.Description
	}
	return out
}

// Convention resolves the identity to one of the built-in convention names
// by UUID (case-insensitive) or by canonical name. Returns "" when the
// identity does not match any built-in convention.
func (id Identity) Convention() string {
	switch {
	case sameUUID(id.UUID, spatialUUID) || id.Name == "spatial:":
		return NameSpatial
	case sameUUID(id.UUID, projUUID) || id.Name == "proj:":
		return NameProj
	case sameUUID(id.UUID, multiscalesUUID) || id.Name == "multiscales":
		return NameMultiscales
	default:
		return ""
	}
}

// IdentityMatches reports whether a registry entry's raw uuid or name
// identifies the given built-in convention. The detector uses this on
// loosely decoded entries, before any schema validation has run.
func IdentityMatches(rawUUID, name, convention string) bool {
	switch convention {
	case NameSpatial:
		return sameUUID(rawUUID, spatialUUID) || name == "spatial:"
	case NameProj:
		return sameUUID(rawUUID, projUUID) || name == "proj:"
	case NameMultiscales:
		return sameUUID(rawUUID, multiscalesUUID) || name == "multiscales"
	default:
		return false
	}
}

// sameUUID compares a raw uuid string against a parsed canonical UUID,
// tolerating case differences. Unparseable strings never match.
func sameUUID(raw string, want uuid.UUID) bool {
	if raw == "" {
		return false
	}
	u, err := uuid.Parse(raw)
	return err == nil && u == want
}
