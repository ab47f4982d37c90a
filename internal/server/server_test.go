package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fruitnuke/maze/pkg/cache"
	"github.com/fruitnuke/maze/pkg/observability"
	"github.com/fruitnuke/maze/pkg/pipeline"
)

func newTestServer(t *testing.T, runner *pipeline.Runner, options ...Option) *httptest.Server {
	t.Helper()
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, nil)
	}
	options = append([]Option{WithAccessLog(false)}, options...)
	server := httptest.NewServer(New(NewConfig(options...), runner, nil).Handler())
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, server *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	res, err := server.Client().Get(server.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, body
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, nil)
	res, _ := get(t, server, "/healthz")
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestGetMazeText(t *testing.T) {
	server := newTestServer(t, nil)

	res, body := get(t, server, "/v1/maze?width=3&height=2&seed=5&algorithm=kruskal&wall=%23&open=.")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "text/plain; charset=utf-8", res.Header.Get("Content-Type"))
	require.Equal(t, "5", res.Header.Get(headerSeed))
	require.Equal(t, "kruskal", res.Header.Get(headerAlgorithm))
	require.NotEmpty(t, res.Header.Get(headerID))
	require.Contains(t, res.Header.Get("Cache-Control"), "immutable")

	lines := strings.Split(strings.TrimSuffix(string(body), "\n"), "\n")
	require.Len(t, lines, 4)
	for i, line := range lines {
		require.Len(t, line, 12)
		if i%2 == 0 {
			require.Equal(t, "##", line[:2], "top row of a cell starts with wall")
		}
	}

	_, again := get(t, server, "/v1/maze?width=3&height=2&seed=5&algorithm=kruskal&wall=%23&open=.")
	require.Equal(t, string(body), string(again))
}

func TestGetMazeRandomSeed(t *testing.T) {
	server := newTestServer(t, nil)

	res, _ := get(t, server, "/v1/maze?width=2&height=2")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "no-store", res.Header.Get("Cache-Control"))
	require.NotEmpty(t, res.Header.Get(headerSeed))
	require.Equal(t, "floodfill", res.Header.Get(headerAlgorithm))
}

func TestGetMazeDOT(t *testing.T) {
	server := newTestServer(t, nil)

	res, body := get(t, server, "/v1/maze?width=2&height=2&seed=1&format=dot&labels=true")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, pipeline.ContentTypes[pipeline.FormatDOT], res.Header.Get("Content-Type"))
	require.Contains(t, string(body), "graph maze {")
	require.Equal(t, 3, strings.Count(string(body), " -- "))
}

func TestGetMazeErrors(t *testing.T) {
	server := newTestServer(t, nil, WithMaxDimension(50))

	tests := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{"zero width", "width=0", http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"non-numeric height", "height=tall", http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"over server max", "width=51", http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"bad seed", "seed=-1", http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"bad bool", "labels=maybe", http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"unknown algorithm", "algorithm=prim", http.StatusBadRequest, "INVALID_ALGORITHM"},
		{"unknown format", "format=gif", http.StatusBadRequest, "INVALID_FORMAT"},
		{"wide glyph", "wall=ab", http.StatusBadRequest, "INVALID_GLYPH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, body := get(t, server, "/v1/maze?"+tt.query)
			require.Equal(t, tt.status, res.StatusCode)

			var errRes ErrResponse
			require.NoError(t, json.Unmarshal(body, &errRes))
			require.Equal(t, tt.code, errRes.Code)
			require.NotEmpty(t, errRes.ErrorText)
		})
	}
}

func TestGetMazeGraphTooLarge(t *testing.T) {
	server := newTestServer(t, nil)

	res, body := get(t, server, "/v1/maze?width=200&height=200&format=svg")
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	require.Contains(t, string(body), "BOUNDS_EXCEEDED")
}

func TestGetMazeCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := pipeline.NewRunner(fc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "test:"), nil)
	server := newTestServer(t, runner)

	first, firstBody := get(t, server, "/v1/maze?width=4&height=4&seed=9")
	require.Equal(t, "MISS", first.Header.Get(headerCache))

	second, secondBody := get(t, server, "/v1/maze?width=4&height=4&seed=9")
	require.Equal(t, "HIT", second.Header.Get(headerCache))
	require.Equal(t, firstBody, secondBody)
	require.NotEqual(t, first.Header.Get(headerID), second.Header.Get(headerID))

	refreshed, _ := get(t, server, "/v1/maze?width=4&height=4&seed=9&refresh=true")
	require.Equal(t, "MISS", refreshed.Header.Get(headerCache))
}

func TestGetStats(t *testing.T) {
	server := newTestServer(t, nil)

	res, body := get(t, server, "/v1/maze/stats?width=4&height=4&seed=1&algorithm=kruskal")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, res.Header.Get("Content-Type"), "application/json")

	var stats MazeResponse
	require.NoError(t, json.Unmarshal(body, &stats))
	require.Equal(t, "kruskal", stats.Algorithm)
	require.Equal(t, uint64(1), stats.Seed)
	require.Equal(t, 16, stats.Stats.Cells)
	require.Equal(t, 15, stats.Stats.Passages)
	require.Contains(t, string(body), `"seed":"1"`)
}

func TestGetVersion(t *testing.T) {
	server := newTestServer(t, nil)

	res, body := get(t, server, "/version")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `"version"`)
}

func TestNotFound(t *testing.T) {
	server := newTestServer(t, nil)

	res, body := get(t, server, "/v2/maze")
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Contains(t, string(body), "/v2/maze")
}

type recordingRequestHooks struct {
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingRequestHooks) OnRequest(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route)
	h.status = append(h.status, status)
}

func TestRequestHooks(t *testing.T) {
	hooks := &recordingRequestHooks{}
	observability.SetRequestHooks(hooks)
	t.Cleanup(observability.Reset)

	server := newTestServer(t, nil)
	get(t, server, "/v1/maze/stats?width=2&height=2")
	get(t, server, "/v1/maze?width=0")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	require.Len(t, hooks.routes, 2)
	require.Equal(t, "GET /v1/maze/stats", hooks.routes[0])
	require.True(t, strings.HasPrefix(hooks.routes[1], "GET /v1/maze"), hooks.routes[1])
	require.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, hooks.status)
}

func TestRunShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(NewConfig(WithAddress("127.0.0.1:0"), WithAccessLog(false), WithShutdownTimeout(time.Second)),
		pipeline.NewRunner(nil, nil, nil), nil)

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStatusFor(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, statusFor("INVALID_MAZE"))
	require.Equal(t, http.StatusUnprocessableEntity, statusFor("BOUNDS_EXCEEDED"))
	require.Equal(t, http.StatusServiceUnavailable, statusFor("OUT_OF_MEMORY"))
	require.Equal(t, http.StatusInternalServerError, statusFor(""))
}
