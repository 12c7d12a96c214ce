package serve

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geozarr/toolkit/store"
)

// memGroup is an in-memory store.Group fixture.
type memGroup struct {
	attrs    map[string]any
	children map[string]bool
}

func (g *memGroup) Attrs(context.Context) (map[string]any, error) {
	return g.attrs, nil
}

func (g *memGroup) Members(context.Context) ([]store.Member, error) {
	return nil, store.ErrNoListing
}

func (g *memGroup) Has(_ context.Context, path string) (bool, error) {
	return g.children[path], nil
}

func postValidate(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) ValidateResponse {
	t.Helper()
	var resp ValidateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHealthz(t *testing.T) {
	handler := NewServer().Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, rec.Body.String())
}

func TestValidateRejectsMalformedBody(t *testing.T) {
	rec := postValidate(t, NewServer().Handler(), `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateRejectsEmptyRequest(t *testing.T) {
	rec := postValidate(t, NewServer().Handler(), `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "either 'url' or 'attributes' must be provided")
}

func TestValidateInlineAttributes(t *testing.T) {
	body, err := json.Marshal(ValidateRequest{
		Attributes: map[string]any{
			"spatial:dimensions": []any{"Y", "X"},
			"proj:code":          "EPSG:4326",
		},
	})
	require.NoError(t, err)

	rec := postValidate(t, NewServer().Handler(), string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Valid)
	assert.Equal(t, []string{"spatial", "proj"}, resp.Conventions)
	assert.True(t, resp.Results["spatial"].Valid)
	assert.Empty(t, resp.Results["spatial"].Errors)
	assert.True(t, resp.Results["proj"].Valid)
}

func TestValidateInlineAttributesInvalid(t *testing.T) {
	body, err := json.Marshal(ValidateRequest{
		Attributes: map[string]any{
			"spatial:dimensions": []any{},
			"proj:code":          "bogus",
		},
	})
	require.NoError(t, err)

	rec := postValidate(t, NewServer().Handler(), string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Valid)
	assert.False(t, resp.Results["spatial"].Valid)
	assert.Contains(t, resp.Results["spatial"].Errors,
		"spatial:dimensions must contain at least one dimension")
	assert.False(t, resp.Results["proj"].Valid)
}

func TestValidateURL(t *testing.T) {
	grp := &memGroup{
		attrs: map[string]any{
			"spatial:dimensions": []any{"Y", "X"},
		},
	}
	srv := NewServer(WithStoreOpener(func(_ context.Context, url, groupPath string) (store.Group, error) {
		assert.Equal(t, "/data/test.zarr", url)
		assert.Equal(t, "child", groupPath)
		return grp, nil
	}))

	body, err := json.Marshal(ValidateRequest{URL: "/data/test.zarr", Group: "child"})
	require.NoError(t, err)

	rec := postValidate(t, srv.Handler(), string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Valid)
	assert.Equal(t, "/data/test.zarr", resp.URL)
	assert.Equal(t, "child", resp.Group)
	assert.Equal(t, []string{"spatial"}, resp.Conventions)
}

func TestValidateURLOpenFailure(t *testing.T) {
	srv := NewServer(WithStoreOpener(func(context.Context, string, string) (store.Group, error) {
		return nil, store.ErrNotFound
	}))

	body, err := json.Marshal(ValidateRequest{URL: "/missing.zarr", Group: "sub"})
	require.NoError(t, err)

	rec := postValidate(t, srv.Handler(), string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Valid)
	assert.Equal(t, "failed to open Zarr store at '/missing.zarr' (group: 'sub')", resp.Error)
	assert.Empty(t, resp.Conventions)
	assert.Empty(t, resp.Results)
}

func TestValidateURLUnsupportedScheme(t *testing.T) {
	srv := NewServer() // real store.Open

	body, err := json.Marshal(ValidateRequest{URL: "s3://bucket/store.zarr"})
	require.NoError(t, err)

	rec := postValidate(t, srv.Handler(), string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Valid)
	assert.Contains(t, resp.Error, "unsupported store URL scheme")
	assert.Contains(t, resp.Error, "expose the store over HTTP instead")
}

func TestValidateResponseWireFormat(t *testing.T) {
	body, err := json.Marshal(ValidateRequest{
		Attributes: map[string]any{"spatial:dimensions": []any{"Y", "X"}},
	})
	require.NoError(t, err)

	rec := postValidate(t, NewServer().Handler(), string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	// Clean results serialize with an empty errors array, never null.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	results := raw["results"].(map[string]any)
	spatial := results["spatial"].(map[string]any)
	assert.Equal(t, []any{}, spatial["errors"])
}

func TestValidateRequestValidate(t *testing.T) {
	assert.ErrorIs(t, ValidateRequest{}.Validate(), ErrNoInput)
	assert.NoError(t, ValidateRequest{URL: "/data.zarr"}.Validate())
	assert.NoError(t, ValidateRequest{Attributes: map[string]any{}}.Validate())
}

func TestMethodNotAllowed(t *testing.T) {
	handler := NewServer().Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/validate", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
