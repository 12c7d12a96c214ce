package conventions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeIdentity(t *testing.T) {
	tests := []struct {
		name    string
		m       map[string]any
		message string
	}{
		{
			name: "uuid only",
			m:    map[string]any{"uuid": SpatialUUID},
		},
		{
			name: "spec_url only",
			m:    map[string]any{"spec_url": SpatialSpecURL},
		},
		{
			name: "full record",
			m: map[string]any{
				"uuid":        ProjUUID,
				"schema_url":  ProjSchemaURL,
				"spec_url":    ProjSpecURL,
				"name":        "proj:",
				"description": "CRS information",
			},
		},
		{
			name:    "no identifier",
			m:       map[string]any{"name": "mystery", "description": "no links"},
			message: "at least one of uuid, schema_url, or spec_url must be provided",
		},
		{
			name:    "unknown key",
			m:       map[string]any{"uuid": SpatialUUID, "version": "1"},
			message: `unknown key "version" in convention identity`,
		},
		{
			name:    "uuid wrong type",
			m:       map[string]any{"uuid": 42, "spec_url": SpatialSpecURL},
			message: "convention identity uuid must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, vs := DecodeIdentity(tt.m)
			if tt.message == "" {
				assert.Empty(t, vs)
				return
			}
			require.NotEmpty(t, vs)
			assert.Contains(t, vs.Messages(), tt.message)
		})
	}
}

func TestCanonicalIdentities(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		expected string
	}{
		{name: "spatial", identity: SpatialIdentity(), expected: NameSpatial},
		{name: "proj", identity: ProjIdentity(), expected: NameProj},
		{name: "multiscales", identity: MultiscalesIdentity(), expected: NameMultiscales},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Empty(t, tt.identity.Validate())
			assert.Equal(t, tt.expected, tt.identity.Convention())
		})
	}
}

func TestIdentityConvention(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		expected string
	}{
		{name: "spatial by uuid", identity: Identity{UUID: SpatialUUID}, expected: NameSpatial},
		{name: "proj by name", identity: Identity{Name: "proj:"}, expected: NameProj},
		{name: "multiscales by uppercase uuid", identity: Identity{UUID: "D35379DB-88DF-4056-AF3A-620245F8E347"}, expected: NameMultiscales},
		{name: "unknown uuid", identity: Identity{UUID: "00000000-0000-0000-0000-000000000000"}, expected: ""},
		{name: "unknown name", identity: Identity{Name: "other"}, expected: ""},
		{name: "name without colon does not match", identity: Identity{Name: "spatial"}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.identity.Convention())
		})
	}
}

func TestIdentityMatches(t *testing.T) {
	assert.True(t, IdentityMatches(SpatialUUID, "", NameSpatial))
	assert.True(t, IdentityMatches("", "spatial:", NameSpatial))
	assert.True(t, IdentityMatches("F17CB550-5864-4468-AEB7-F3180CFB622F", "", NameProj))
	assert.True(t, IdentityMatches("", "multiscales", NameMultiscales))
	assert.False(t, IdentityMatches(SpatialUUID, "", NameProj))
	assert.False(t, IdentityMatches("not-a-uuid", "", NameSpatial))
	assert.False(t, IdentityMatches("", "", NameSpatial))
	assert.False(t, IdentityMatches(SpatialUUID, "spatial:", "unknown"))
}

func TestIdentityAttrsMapOmitsEmpty(t *testing.T) {
	id := Identity{UUID: SpatialUUID, Name: "spatial:"}
	m := id.AttrsMap()
	assert.Equal(t, SpatialUUID, m["uuid"])
	assert.Equal(t, "spatial:", m["name"])
	assert.NotContains(t, m, "schema_url")
	assert.NotContains(t, m, "spec_url")
	assert.NotContains(t, m, "description")
}
