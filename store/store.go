package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Sentinel errors for store access failures.
var (
	// ErrNotFound indicates the store path or URL does not exist.
	ErrNotFound = errors.New("store not found")

	// ErrNotAGroup indicates the path exists but is not a Zarr group
	// (e.g. it is an array, or carries no Zarr metadata at all).
	ErrNotAGroup = errors.New("not a Zarr group")

	// ErrUnsupportedScheme indicates the URL scheme requires a storage
	// backend this build does not include.
	ErrUnsupportedScheme = errors.New("unsupported store URL scheme")

	// ErrNoListing indicates the backend cannot enumerate group members
	// (plain HTTP stores).
	ErrNoListing = errors.New("store does not support member listing")
)

// Member kinds.
const (
	KindGroup = "group"
	KindArray = "array"
)

// Member describes one direct child of a group.
type Member struct {
	// Name is the member's name within the group.
	Name string `json:"name"`

	// Kind is KindGroup or KindArray.
	Kind string `json:"type"`

	// Shape is the array shape. Empty for groups.
	Shape []int `json:"shape,omitempty"`

	// DType is the array data type string as stored. Empty for groups.
	DType string `json:"dtype,omitempty"`
}

// Group is the capability surface the validator needs from a container.
type Group interface {
	// Attrs reads the group's flat attribute mapping.
	Attrs(ctx context.Context) (map[string]any, error)

	// Members lists the direct children of the group. Backends without
	// listing support return ErrNoListing.
	Members(ctx context.Context) ([]Member, error)

	// Has reports whether the relative path (possibly nested, e.g.
	// "0/data") resolves to a child group or array.
	Has(ctx context.Context, path string) (bool, error)
}

// Open opens a group inside the store at storeURL. The URL may be a plain
// filesystem path, a file:// URL, or an http(s):// URL. groupPath selects
// a group below the store root; empty means the root group itself.
func Open(ctx context.Context, storeURL, groupPath string) (Group, error) {
	u, err := url.Parse(storeURL)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// No scheme (or a Windows drive letter): treat as a local path.
		return OpenFS(strings.TrimPrefix(storeURL, "file://"), groupPath)
	}

	switch u.Scheme {
	case "file":
		return OpenFS(u.Path, groupPath)
	case "http", "https":
		return OpenHTTP(ctx, storeURL, groupPath)
	case "s3", "gs", "az", "abfs":
		return nil, fmt.Errorf("%w: %q (object-store access is not built in; expose the store over HTTP instead)",
			ErrUnsupportedScheme, u.Scheme)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}
