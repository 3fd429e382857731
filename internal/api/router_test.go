package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavernworks/shopkeep/internal/model"
	"github.com/tavernworks/shopkeep/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st := store.NewFile(filepath.Join(t.TempDir(), "db.json"))
	t.Cleanup(func() { _ = st.Close() })

	srv := httptest.NewServer(NewServer(st).Router([]string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_ListEmptyIsArray(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/items")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var items []model.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRouter_CreateAndGet(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/items", "application/json",
		strings.NewReader(`{"name":"Torch","category":"Gear","stats":{"cost":"1 cp"}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Torch", created.Name)
	require.NotNil(t, created.Stats)
	assert.NotNil(t, created.Stats.Properties, "stats always carry a properties array")

	got, err := http.Get(srv.URL + "/items/" + created.ID)
	require.NoError(t, err)
	defer got.Body.Close()
	assert.Equal(t, http.StatusOK, got.StatusCode)
}

func TestRouter_CreateRequiresName(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/items", "application/json",
		strings.NewReader(`{"category":"Gear"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_CreateRejectsBadJSON(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/items", "application/json",
		strings.NewReader(`{oops`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_PatchUpdatesOnlySentFields(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/items", "application/json",
		strings.NewReader(`{"name":"Torch","category":"Gear"}`))
	require.NoError(t, err)
	var created model.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/items/"+created.ID,
		strings.NewReader(`{"name":"Candle"}`))
	require.NoError(t, err)
	patchResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer patchResp.Body.Close()
	require.Equal(t, http.StatusOK, patchResp.StatusCode)

	var updated model.Item
	require.NoError(t, json.NewDecoder(patchResp.Body).Decode(&updated))
	assert.Equal(t, "Candle", updated.Name)
	assert.Equal(t, "Gear", updated.Category)
}

func TestRouter_DeleteThenNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/items", "application/json",
		strings.NewReader(`{"name":"Torch"}`))
	require.NoError(t, err)
	var created model.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/items/"+created.ID, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	got, err := http.Get(srv.URL + "/items/" + created.ID)
	require.NoError(t, err)
	defer got.Body.Close()
	assert.Equal(t, http.StatusNotFound, got.StatusCode)
}

func TestRouter_GetUnknownIs404(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/items/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "item not found", body["error"])
}

func TestRouter_Categories(t *testing.T) {
	srv := newTestServer(t)

	for _, payload := range []string{
		`{"name":"Torch","category":"Gear"}`,
		`{"name":"Longsword","category":"Weapons"}`,
		`{"name":"Candle","category":"Gear"}`,
	} {
		resp, err := http.Post(srv.URL+"/items", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/categories")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var categories []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&categories))
	assert.Equal(t, []string{"Gear", "Weapons"}, categories)
}

func TestRouter_Presets(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/presets")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var presets []model.ShopPreset
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&presets))
	require.Len(t, presets, len(model.ShopPresets))
	assert.Equal(t, model.ShopPresets[0].Name, presets[0].Name)
}
