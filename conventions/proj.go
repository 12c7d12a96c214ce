package conventions

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/geozarr/toolkit/attrs"
	"github.com/geozarr/toolkit/crs"
)

// Wire keys of the proj convention.
const (
	KeyProjCode   = "proj:code"
	KeyProjWKT2   = "proj:wkt2"
	KeyProjJSON   = "proj:projjson"
	projKeyPrefix = "proj:"
)

// codePattern matches AUTHORITY:CODE identifiers such as "EPSG:4326".
var codePattern = regexp.MustCompile(`^[A-Z]+:[0-9]+$`)

// HasProjPrefix reports whether the key belongs to the proj namespace.
// The detector treats any proj: key as a declaration of the convention.
func HasProjPrefix(key string) bool {
	return strings.HasPrefix(key, projKeyPrefix)
}

// Proj holds the proj convention attributes: the CRS identity of a group
// or array. At least one of Code, WKT2, or ProjJSON must be present.
type Proj struct {
	// Code is an AUTHORITY:CODE identifier, e.g. "EPSG:4326". Beyond the
	// syntactic pattern, the code must resolve against a CRS authority.
	Code string

	// WKT2 is an ISO 19162 well-known-text CRS description.
	WKT2 string

	// ProjJSON is a structured PROJJSON CRS description.
	ProjJSON map[string]any

	// Extra preserves unrecognized attribute keys.
	Extra map[string]any
}

var projKeys = map[string]bool{
	KeyProjCode: true,
	KeyProjWKT2: true,
	KeyProjJSON: true,
}

// DecodeProj builds a Proj record from a flat attribute mapping and
// validates it. The resolver checks proj:code against a CRS authority;
// passing nil uses the built-in offline authority table.
func DecodeProj(ctx context.Context, m map[string]any, resolver crs.Resolver) (*Proj, Violations) {
	p := &Proj{}
	var vs Violations

	if attrs.Has(m, KeyProjCode) {
		if code, ok := attrs.AsString(m[KeyProjCode]); ok {
			p.Code = code
		} else {
			vs.add(KeyProjCode, "proj:code must be a string")
		}
	}
	if attrs.Has(m, KeyProjWKT2) {
		if wkt, ok := attrs.AsString(m[KeyProjWKT2]); ok {
			p.WKT2 = wkt
		} else {
			vs.add(KeyProjWKT2, "proj:wkt2 must be a string")
		}
	}
	if attrs.Has(m, KeyProjJSON) {
		if pj, ok := attrs.AsMap(m[KeyProjJSON]); ok {
			p.ProjJSON = pj
		} else {
			vs.add(KeyProjJSON, "proj:projjson must be an object")
		}
	}

	for key, val := range m {
		if projKeys[key] {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		p.Extra[key] = val
	}

	vs = append(vs, p.Validate(ctx, resolver)...)
	return p, vs
}

// Validate checks the proj convention's invariants: the at-least-one rule,
// the AUTHORITY:CODE pattern, and resolution of the code against the CRS
// authority. Resolution runs only when the pattern check passes, so a
// malformed code produces one precise error rather than two.
func (p *Proj) Validate(ctx context.Context, resolver crs.Resolver) Violations {
	var vs Violations

	if p.Code == "" && p.WKT2 == "" && p.ProjJSON == nil {
		vs.add(KeyProjCode, "at least one of proj:code, proj:wkt2, or proj:projjson must be provided")
		return vs
	}

	if p.Code == "" {
		return vs
	}
	if !codePattern.MatchString(p.Code) {
		vs.add(KeyProjCode,
			fmt.Sprintf("proj:code must match pattern AUTHORITY:CODE (e.g. 'EPSG:4326'), got %q", p.Code))
		return vs
	}

	if resolver == nil {
		resolver = crs.Default()
	}
	authority, code, _ := strings.Cut(p.Code, ":")
	if err := resolver.Resolve(ctx, authority, code); err != nil {
		vs.add(KeyProjCode,
			fmt.Sprintf("proj:code '%s' does not resolve to a known CRS", p.Code))
	}
	return vs
}

// AttrsMap serializes the record back to wire keys, omitting unset fields
// and carrying Extra keys through.
func (p *Proj) AttrsMap() map[string]any {
	out := make(map[string]any, 3+len(p.Extra))
	if p.Code != "" {
		out[KeyProjCode] = p.Code
	}
	if p.WKT2 != "" {
		out[KeyProjWKT2] = p.WKT2
	}
	if p.ProjJSON != nil {
		out[KeyProjJSON] = p.ProjJSON
	}
	for key, val := range p.Extra {
		out[key] = val
	}
	return out
}
