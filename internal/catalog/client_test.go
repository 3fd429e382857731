package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavernworks/shopkeep/internal/config"
)

func testConfig() config.CatalogConfig {
	return config.CatalogConfig{
		TimeoutSecs: 5,
		MaxRetries:  1,
		RateLimit:   1000,
	}
}

func writePage(t *testing.T, w http.ResponseWriter, results []ItemRecord, next string) {
	t.Helper()
	p := map[string]any{"results": results}
	if next != "" {
		p["next"] = next
	} else {
		p["next"] = nil
	}
	require.NoError(t, json.NewEncoder(w).Encode(p))
}

func TestFetchAll_FollowsPaginationInOrder(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "", "1":
			writePage(t, w, []ItemRecord{{Name: "Candle"}, {Name: "Torch"}}, srv.URL+"/?page=2")
		case "2":
			writePage(t, w, []ItemRecord{{Name: "Lamp"}}, srv.URL+"/?page=3")
		case "3":
			writePage(t, w, []ItemRecord{{Name: "Lantern, Hooded"}}, "")
		default:
			t.Fatalf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	var pages int
	client := NewClient(testConfig(), WithProgress(func(pageNum, got int) {
		pages = pageNum
	}))

	records, err := FetchAll[ItemRecord](context.Background(), client, srv.URL+"/?page=1")
	require.NoError(t, err)
	assert.Equal(t, 3, pages)

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"Candle", "Torch", "Lamp", "Lantern, Hooded"}, names)
}

func TestFetchAll_NonSuccessKeepsPartialResults(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		writePage(t, w, []ItemRecord{{Name: "Candle"}}, srv.URL+"/?page=2")
	}))
	defer srv.Close()

	client := NewClient(testConfig())
	records, err := FetchAll[ItemRecord](context.Background(), client, srv.URL+"/?page=1")
	require.NoError(t, err, "a failed page ends pagination early, it does not fail the fetch")
	require.Len(t, records, 1)
	assert.Equal(t, "Candle", records[0].Name)
}

func TestFetchAll_FirstPageFailureYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(testConfig())
	records, err := FetchAll[ItemRecord](context.Background(), client, srv.URL)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchAll_RetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"results":[{"name":"Candle"}],"next":null}`)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxRetries = 3
	client := NewClient(cfg)

	records, err := FetchAll[ItemRecord](context.Background(), client, srv.URL)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, calls)
}

func TestFetchAll_DecodeFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": not json`)
	}))
	defer srv.Close()

	client := NewClient(testConfig())
	_, err := FetchAll[ItemRecord](context.Background(), client, srv.URL)
	assert.Error(t, err)
}

func TestFetchAll_TransportFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(testConfig())
	_, err := FetchAll[ItemRecord](context.Background(), client, srv.URL)
	assert.Error(t, err)
}
