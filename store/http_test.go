package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zarrServer serves a map of relative paths to document bodies, answering
// 404 for everything else.
func zarrServer(docs map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := docs[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
}

func TestOpenHTTPV3Group(t *testing.T) {
	srv := zarrServer(map[string]string{
		"/zarr.json": `{
			"zarr_format": 3,
			"node_type": "group",
			"attributes": {"spatial:dimensions": ["Y", "X"]}
		}`,
		"/0/zarr.json": `{"zarr_format": 3, "node_type": "array", "shape": [10, 10], "data_type": "uint8"}`,
	})
	defer srv.Close()

	grp, err := OpenHTTP(context.Background(), srv.URL, "")
	require.NoError(t, err)

	attrs, err := grp.Attrs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{"Y", "X"}, attrs["spatial:dimensions"])

	found, err := grp.Has(context.Background(), "0")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = grp.Has(context.Background(), "1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOpenHTTPV2Fallback(t *testing.T) {
	srv := zarrServer(map[string]string{
		"/.zgroup":      `{"zarr_format": 2}`,
		"/.zattrs":      `{"proj:code": "EPSG:4326"}`,
		"/data/.zarray": `{"zarr_format": 2, "shape": [10], "dtype": "<f8"}`,
	})
	defer srv.Close()

	grp, err := OpenHTTP(context.Background(), srv.URL, "")
	require.NoError(t, err)

	attrs, err := grp.Attrs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "EPSG:4326", attrs["proj:code"])

	found, err := grp.Has(context.Background(), "data")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestOpenHTTPErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		srv := zarrServer(nil)
		defer srv.Close()

		_, err := OpenHTTP(context.Background(), srv.URL, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("array is not a group", func(t *testing.T) {
		srv := zarrServer(map[string]string{
			"/zarr.json": `{"zarr_format": 3, "node_type": "array", "shape": [10], "data_type": "uint8"}`,
		})
		defer srv.Close()

		_, err := OpenHTTP(context.Background(), srv.URL, "")
		assert.ErrorIs(t, err, ErrNotAGroup)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := OpenHTTP(context.Background(), srv.URL, "")
		assert.Error(t, err)
	})
}

func TestHTTPGroupMembersUnsupported(t *testing.T) {
	srv := zarrServer(map[string]string{
		"/zarr.json": `{"zarr_format": 3, "node_type": "group"}`,
	})
	defer srv.Close()

	grp, err := OpenHTTP(context.Background(), srv.URL, "")
	require.NoError(t, err)

	_, err = grp.Members(context.Background())
	assert.ErrorIs(t, err, ErrNoListing)
}

func TestOpenHTTPGroupPath(t *testing.T) {
	srv := zarrServer(map[string]string{
		"/store/sub/zarr.json": `{"zarr_format": 3, "node_type": "group", "attributes": {"title": "sub"}}`,
	})
	defer srv.Close()

	grp, err := OpenHTTP(context.Background(), srv.URL+"/store", "sub")
	require.NoError(t, err)

	attrs, err := grp.Attrs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sub", attrs["title"])
}
