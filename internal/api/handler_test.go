package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlab/ampmap/internal/config"
	"github.com/driftlab/ampmap/internal/engine"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ampmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: v1
server:
  max_batch_size: 3
settings:
  api_key: key-1
  track_all_pages: true
`), 0o600))

	loader, err := config.NewLoader(path)
	require.NoError(t, err)
	require.NoError(t, config.Validate(loader.Config()))

	ctx, cancel := context.WithCancel(context.Background())
	eng := engine.New(ctx, &loader.Config().Settings, loader.Config().Server)
	loader.OnChange(func(cfg *config.Config) {
		if config.Validate(cfg) == nil {
			eng.SwapSettings(&cfg.Settings)
		}
	})

	srv := httptest.NewServer(New(eng, loader))
	t.Cleanup(func() {
		srv.Close()
		cancel()
		eng.Shutdown()
	})
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestMapEndpoint(t *testing.T) {
	srv := testServer(t)

	resp, body := postJSON(t, srv.URL+"/v1/map", `{
		"event": {
			"type": "track",
			"event": "Clicked Button",
			"userId": "user-1",
			"anonymousId": "anon-1",
			"timestamp": "2024-03-01T12:30:00Z",
			"properties": {"color": "red"}
		}
	}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["event_id"]) // defaulted message id
	assert.Equal(t, false, body["filtered"])

	payloads, ok := body["payloads"].([]any)
	require.True(t, ok)
	require.Len(t, payloads, 1)
	payload := payloads[0].(map[string]any)
	assert.Equal(t, "Clicked Button", payload["event_type"])
	assert.Equal(t, "user-1", payload["user_id"])
}

func TestMapEndpointInlineSettings(t *testing.T) {
	srv := testServer(t)

	// Loaded settings track all pages; the override turns that off.
	resp, body := postJSON(t, srv.URL+"/v1/map", `{
		"event": {"type": "page", "name": "Index"},
		"settings": {"trackNamedPages": false}
	}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["filtered"])
}

func TestMapEndpointBadRequests(t *testing.T) {
	srv := testServer(t)

	resp, _ := postJSON(t, srv.URL+"/v1/map", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postJSON(t, srv.URL+"/v1/map", `{"event": {"event": "No Type"}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postJSON(t, srv.URL+"/v1/map", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postJSON(t, srv.URL+"/v1/map", `{
		"event": {"type": "track", "event": "X"},
		"settings": {"mapQueryParams": {"a": "", "b": ""}}
	}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBatchEndpoint(t *testing.T) {
	srv := testServer(t)

	resp, body := postJSON(t, srv.URL+"/v1/map/batch", `{
		"events": [
			{"type": "track", "event": "A"},
			{"type": "track", "event": "B"}
		]
	}`)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, 2.0, body["total"])
	assert.Equal(t, 2.0, body["queued"])
	assert.Equal(t, 0.0, body["rejected"])
	assert.NotEmpty(t, body["job_id"])
}

func TestBatchEndpointLimits(t *testing.T) {
	srv := testServer(t)

	resp, _ := postJSON(t, srv.URL+"/v1/map/batch", `{"events": []}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// max_batch_size is 3 in the test config.
	resp, _ = postJSON(t, srv.URL+"/v1/map/batch", `{
		"events": [
			{"type": "track", "event": "A"},
			{"type": "track", "event": "B"},
			{"type": "track", "event": "C"},
			{"type": "track", "event": "D"}
		]
	}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSettingsEndpoint(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/v1/settings")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	settings, ok := body["settings"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "[redacted]", settings["apiKey"])
	assert.Equal(t, true, settings["trackAllPages"])
}

func TestHealthEndpoints(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
