package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyulab/fileflux/internal/chunk"
	"github.com/iyulab/fileflux/internal/config"
)

func newTestServer(apiKey string) *Server {
	cfg := config.Config{
		Port:            "0",
		APIKey:          apiKey,
		MaxBodyBytes:    1 << 20,
		BatchWorkers:    2,
		DefaultStrategy: "hierarchical",
		Chunking:        chunk.DefaultOptions(),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(log, cfg)
}

func postJSON(t *testing.T, srv *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHandleChunk(t *testing.T) {
	srv := newTestServer("")

	rec := postJSON(t, srv, "/api/chunk", map[string]any{
		"content": "# Section\n\nA paragraph with more than enough text to produce a chunk here.",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Strategy string `json:"strategy"`
		GroupID  string `json:"group_id"`
		Count    int    `json:"count"`
		Chunks   []struct {
			ID      string         `json:"id"`
			Content string         `json:"content"`
			GroupID string         `json:"group_id"`
			Props   map[string]any `json:"props"`
		} `json:"chunks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "hierarchical", resp.Strategy)
	assert.NotEmpty(t, resp.GroupID)
	require.Equal(t, resp.Count, len(resp.Chunks))
	require.NotEmpty(t, resp.Chunks)
	for _, c := range resp.Chunks {
		assert.Equal(t, resp.GroupID, c.GroupID)
		assert.Contains(t, c.Props, "chunk_type")
		assert.Contains(t, c.Props, "group_id")
	}
}

func TestHandleChunk_SlidingStrategy(t *testing.T) {
	srv := newTestServer("")

	rec := postJSON(t, srv, "/api/chunk", map[string]any{
		"content":  "A paragraph with more than enough text to produce a chunk here.",
		"strategy": "sliding",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sliding", resp["strategy"])
}

func TestHandleChunk_BlankContent(t *testing.T) {
	srv := newTestServer("")

	rec := postJSON(t, srv, "/api/chunk", map[string]any{"content": "   "})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count)
}

func TestHandleChunk_OptionsOverride(t *testing.T) {
	srv := newTestServer("")

	rec := postJSON(t, srv, "/api/chunk", map[string]any{
		"content": "# T\n\nshort",
		"options": map[string]any{
			"min_section_length":    1000,
			"create_summary_chunks": false,
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count, "section below min length must emit nothing")
}

func TestHandleChunk_InvalidBody(t *testing.T) {
	srv := newTestServer("")

	req := httptest.NewRequest(http.MethodPost, "/api/chunk", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleEstimate(t *testing.T) {
	srv := newTestServer("")

	rec := postJSON(t, srv, "/api/estimate", map[string]any{
		"content": "# A\n\npara one\n\npara two",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Estimated int `json:"estimated_chunks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.GreaterOrEqual(t, resp.Estimated, 1)
}

func TestHandleChunkBatch(t *testing.T) {
	srv := newTestServer("")

	rec := postJSON(t, srv, "/api/chunk/batch", map[string]any{
		"documents": []map[string]string{
			{"name": "a.md", "content": "# A\n\nfirst document paragraph with plenty of text to produce a chunk."},
			{"name": "b.md", "content": "# B\n\nsecond document paragraph with plenty of text to produce a chunk."},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "a.md", resp.Results[0].Name)
	assert.Equal(t, "b.md", resp.Results[1].Name)
	for _, r := range resp.Results {
		assert.Greater(t, r.Count, 0)
	}
}

func TestHandleChunkBatch_EmptyDocuments(t *testing.T) {
	srv := newTestServer("")

	rec := postJSON(t, srv, "/api/chunk/batch", map[string]any{"documents": []any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	srv := newTestServer("secret")

	req := httptest.NewRequest(http.MethodPost, "/api/chunk", bytes.NewBufferString(`{"content":"x"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/chunk", bytes.NewBufferString(`{"content":"x"}`))
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/chunk", bytes.NewBufferString(`{"content":"x"}`))
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer("secret") // health stays public

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
