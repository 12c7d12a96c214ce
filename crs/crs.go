package crs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors returned by resolvers. Callers can use errors.Is to tell
// an unknown authority apart from an unknown code within a known authority.
var (
	// ErrUnknownAuthority indicates the authority name is not registered.
	ErrUnknownAuthority = errors.New("unknown CRS authority")

	// ErrUnknownCode indicates the authority is known but does not define
	// the requested code.
	ErrUnknownCode = errors.New("unknown CRS code")
)

// Resolver checks whether an authority:code pair names a registered CRS.
//
// Resolve returns nil when the pair resolves. A non-nil error means the pair
// does not resolve or the lookup itself failed (for network-backed
// implementations); either way the code must be treated as invalid.
type Resolver interface {
	Resolve(ctx context.Context, authority, code string) error
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(ctx context.Context, authority, code string) error

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, authority, code string) error {
	return f(ctx, authority, code)
}

// codeRange is an inclusive span of numeric CRS codes.
type codeRange struct {
	lo, hi int
}

// AuthorityTable is an offline Resolver backed by per-authority code ranges.
type AuthorityTable struct {
	ranges map[string][]codeRange
}

// Default returns the built-in authority table covering the authorities the
// proj convention is commonly used with.
func Default() *AuthorityTable {
	return &AuthorityTable{
		ranges: map[string][]codeRange{
			// EPSG reserves 1024-32767 for entities it defines.
			"EPSG": {{1024, 32767}},
			// ESRI CRS definitions live in the 102001-104999 block.
			"ESRI": {{102001, 104999}},
			// IAU planetary CRS codes (IAU_2015 style numeric codes).
			"IAU": {{1000, 200000000}},
		},
	}
}

// Resolve reports whether the authority defines the given numeric code.
func (t *AuthorityTable) Resolve(_ context.Context, authority, code string) error {
	spans, ok := t.ranges[authority]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAuthority, authority)
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return fmt.Errorf("%w: %s:%s", ErrUnknownCode, authority, code)
	}
	for _, span := range spans {
		if n >= span.lo && n <= span.hi {
			return nil
		}
	}
	return fmt.Errorf("%w: %s:%s", ErrUnknownCode, authority, code)
}
