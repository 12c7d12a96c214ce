package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// maxDocSize caps how much of a metadata document the HTTP store will
// read. Attribute documents are small; anything larger is not metadata.
const maxDocSize = 8 << 20

// HTTPGroup is a Group backed by a Zarr store exposed over plain HTTP.
// It fetches metadata documents by path, so it can read attributes and
// resolve individual children, but it cannot enumerate members.
type HTTPGroup struct {
	base   string
	client *http.Client
}

// OpenHTTP opens the group at groupPath inside the store at baseURL. The
// group's metadata document is fetched eagerly so that a bad URL fails at
// open time, matching the filesystem store.
func OpenHTTP(ctx context.Context, baseURL, groupPath string) (*HTTPGroup, error) {
	base := strings.TrimSuffix(baseURL, "/")
	if groupPath != "" {
		base = base + "/" + strings.Trim(groupPath, "/")
	}
	g := &HTTPGroup{
		base:   base,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	kind, _, _, err := g.classify(ctx, "")
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindGroup:
		return g, nil
	case KindArray:
		return nil, fmt.Errorf("%w: %s is an array", ErrNotAGroup, base)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, base)
	}
}

// WithClient replaces the HTTP client, e.g. to adjust the timeout.
func (g *HTTPGroup) WithClient(client *http.Client) *HTTPGroup {
	g.client = client
	return g
}

// Attrs reads the group's attribute mapping from zarr.json or .zattrs.
func (g *HTTPGroup) Attrs(ctx context.Context) (map[string]any, error) {
	doc, err := g.fetchDoc(ctx, g.base+"/"+v3DocName)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		if doc.Attributes == nil {
			return map[string]any{}, nil
		}
		return doc.Attributes, nil
	}

	raw, found, err := g.fetch(ctx, g.base+"/"+v2AttrsName)
	if err != nil {
		return nil, err
	}
	if !found {
		return map[string]any{}, nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", v2AttrsName, err)
	}
	return out, nil
}

// Members always fails: plain HTTP offers no directory listing.
func (g *HTTPGroup) Members(_ context.Context) ([]Member, error) {
	return nil, ErrNoListing
}

// Has probes the child path's metadata documents.
func (g *HTTPGroup) Has(ctx context.Context, path string) (bool, error) {
	if path == "" || strings.HasPrefix(path, "/") || strings.Contains(path, "..") {
		return false, nil
	}
	kind, _, _, err := g.classify(ctx, strings.Trim(path, "/"))
	if err != nil {
		return false, err
	}
	return kind != "", nil
}

// classify determines the node kind at the given relative path.
func (g *HTTPGroup) classify(ctx context.Context, path string) (kind string, shape []int, dtype string, err error) {
	base := g.base
	if path != "" {
		base = base + "/" + path
	}

	doc, err := g.fetchDoc(ctx, base+"/"+v3DocName)
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
			return "", nil, "", fmt.Errorf("%s: unknown node_type %q", base, doc.NodeType)
		}
	}

	if raw, found, ferr := g.fetch(ctx, base+"/"+v2ArrayName); ferr == nil && found {
		var arr zarrV2Array
		if err := json.Unmarshal(raw, &arr); err != nil {
			return "", nil, "", fmt.Errorf("parse %s: %w", v2ArrayName, err)
		}
		return KindArray, arr.Shape, arr.DType, nil
	} else if ferr != nil {
		return "", nil, "", ferr
	}
	if _, found, ferr := g.fetch(ctx, base+"/"+v2GroupName); ferr != nil {
		return "", nil, "", ferr
	} else if found {
		return KindGroup, nil, "", nil
	}
	return "", nil, "", nil
}

// fetchDoc fetches and parses a zarr.json document, returning nil without
// error on 404.
func (g *HTTPGroup) fetchDoc(ctx context.Context, url string) (*zarrDoc, error) {
	raw, found, err := g.fetch(ctx, url)
	if err != nil || !found {
		return nil, err
	}
	var doc zarrDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return &doc, nil
}

// fetch performs a GET, treating 404 as a clean miss.
func (g *HTTPGroup) fetch(ctx context.Context, url string) (body []byte, found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, nil
	case resp.StatusCode != http.StatusOK:
		return nil, false, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDocSize))
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", url, err)
	}
	return raw, true, nil
}
