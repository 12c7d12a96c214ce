package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Zarr metadata document names. v3 consolidates everything into zarr.json;
// v2 splits group marker, attributes, and array metadata across dotfiles.
const (
	v3DocName   = "zarr.json"
	v2GroupName = ".zgroup"
	v2ArrayName = ".zarray"
	v2AttrsName = ".zattrs"
)

// zarrDoc is the subset of a Zarr v3 zarr.json document the validator
// reads.
type zarrDoc struct {
	ZarrFormat int            `json:"zarr_format"`
	NodeType   string         `json:"node_type"`
	Shape      []int          `json:"shape"`
	DataType   string         `json:"data_type"`
	Attributes map[string]any `json:"attributes"`
}

// zarrV2Array is the subset of a v2 .zarray document the validator reads.
type zarrV2Array struct {
	Shape []int  `json:"shape"`
	DType string `json:"dtype"`
}

// FSGroup is a Group backed by a Zarr store on the local filesystem.
type FSGroup struct {
	dir string
}

// OpenFS opens the group at groupPath inside the store rooted at root.
func OpenFS(root, groupPath string) (*FSGroup, error) {
	dir := root
	if groupPath != "" {
		dir = filepath.Join(root, filepath.FromSlash(groupPath))
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("stat store path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotAGroup, dir)
	}

	kind, _, _, err := classifyFS(dir)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindGroup:
		return &FSGroup{dir: dir}, nil
	case KindArray:
		return nil, fmt.Errorf("%w: %s is an array", ErrNotAGroup, dir)
	default:
		return nil, fmt.Errorf("%w: %s has no Zarr metadata", ErrNotAGroup, dir)
	}
}

// Attrs reads the group's attribute mapping from zarr.json (v3) or
// .zattrs (v2). A group with no attributes document yields an empty map.
func (g *FSGroup) Attrs(_ context.Context) (map[string]any, error) {
	doc, err := readDoc(filepath.Join(g.dir, v3DocName))
	if err != nil {
		return nil, err
	}
	if doc != nil {
		if doc.Attributes == nil {
			return map[string]any{}, nil
		}
		return doc.Attributes, nil
	}

	raw, err := os.ReadFile(filepath.Join(g.dir, v2AttrsName))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", v2AttrsName, err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", v2AttrsName, err)
	}
	return out, nil
}

// Members lists the direct children of the group, sorted by name.
func (g *FSGroup) Members(_ context.Context) ([]Member, error) {
	entries, err := os.ReadDir(g.dir)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}

	var members []Member
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		kind, shape, dtype, err := classifyFS(filepath.Join(g.dir, entry.Name()))
		if err != nil || kind == "" {
			continue
		}
		members = append(members, Member{
			Name:  entry.Name(),
			Kind:  kind,
			Shape: shape,
			DType: dtype,
		})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members, nil
}

// Has reports whether the relative path resolves to a child group or array.
func (g *FSGroup) Has(_ context.Context, path string) (bool, error) {
	if path == "" || strings.HasPrefix(path, "/") || strings.Contains(path, "..") {
		return false, nil
	}
	kind, _, _, err := classifyFS(filepath.Join(g.dir, filepath.FromSlash(path)))
	if err != nil {
		return false, err
	}
	return kind != "", nil
}

// classifyFS determines whether a directory is a Zarr group or array, and
// for arrays extracts shape and dtype. Returns kind "" when the directory
// is missing or carries no Zarr metadata.
func classifyFS(dir string) (kind string, shape []int, dtype string, err error) {
	doc, err := readDoc(filepath.Join(dir, v3DocName))
	if err != nil {
		return "", nil, "", err
	}
	if doc != nil {
		switch doc.NodeType {
		case "array":
			return KindArray, doc.Shape, doc.DataType, nil
		case "group":
			return KindGroup, nil, "", nil
		default:
			return "", nil, "", fmt.Errorf("%s: unknown node_type %q", dir, doc.NodeType)
		}
	}

	if raw, rerr := os.ReadFile(filepath.Join(dir, v2ArrayName)); rerr == nil {
		var arr zarrV2Array
		if err := json.Unmarshal(raw, &arr); err != nil {
			return "", nil, "", fmt.Errorf("parse %s: %w", v2ArrayName, err)
		}
		return KindArray, arr.Shape, arr.DType, nil
	}
	if _, serr := os.Stat(filepath.Join(dir, v2GroupName)); serr == nil {
		return KindGroup, nil, "", nil
	}
	return "", nil, "", nil
}

// readDoc reads and parses a zarr.json document, returning nil without
// error when the file does not exist.
func readDoc(path string) (*zarrDoc, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc zarrDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &doc, nil
}
