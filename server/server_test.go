package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysmarterz/lectures/pkg/cache"
	"github.com/studysmarterz/lectures/pkg/config"
	"github.com/studysmarterz/lectures/server/mocks"
)

func testConfig(listen string) *mocks.ConfigProviderMock {
	cfg := config.Default()
	cfg.Server.Listen = listen
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return listen, 5 * time.Second },
		GetFullConfigFunc:   func() *config.Config { return cfg },
	}
}

func snapshotsOf(snap *cache.Snapshot) *mocks.SnapshotProviderMock {
	return &mocks.SnapshotProviderMock{LoadFunc: func() *cache.Snapshot { return snap }}
}

func published() *cache.Snapshot {
	return &cache.Snapshot{
		HTML:      []byte("<html>lectures</html>"),
		RSS:       []byte("<rss></rss>"),
		UpdatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func serve(srv *Server, method, target string, hdrs map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	for k, v := range hdrs {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestServer_New(t *testing.T) {
	srv := New(testConfig(":8080"), snapshotsOf(published()), "1.0.0", false)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
}

func TestServer_pageHandler(t *testing.T) {
	t.Run("published snapshot", func(t *testing.T) {
		srv := New(testConfig(":8080"), snapshotsOf(published()), "test", false)
		w := serve(srv, "GET", "/", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<html>lectures</html>", w.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "public, max-age=59, must-revalidate", w.Header().Get("Cache-Control"))
		assert.Equal(t, "Thu, 02 Jan 2025 03:04:05 GMT", w.Header().Get("Last-Modified"))
	})

	t.Run("not modified", func(t *testing.T) {
		srv := New(testConfig(":8080"), snapshotsOf(published()), "test", false)
		w := serve(srv, "GET", "/", map[string]string{"If-Modified-Since": "Thu, 02 Jan 2025 03:04:05 GMT"})
		assert.Equal(t, http.StatusNotModified, w.Code)
	})

	t.Run("placeholder", func(t *testing.T) {
		snap := cache.Placeholder([]byte("loading"), time.Now())
		srv := New(testConfig(":8080"), snapshotsOf(snap), "test", false)
		w := serve(srv, "GET", "/", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "loading", w.Body.String())
		assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
		assert.Empty(t, w.Header().Get("Last-Modified"))
	})

	t.Run("no snapshot", func(t *testing.T) {
		srv := New(testConfig(":8080"), snapshotsOf(nil), "test", false)
		w := serve(srv, "GET", "/", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Loading...", w.Body.String())
	})

	t.Run("unknown path", func(t *testing.T) {
		srv := New(testConfig(":8080"), snapshotsOf(published()), "test", false)
		w := serve(srv, "GET", "/something", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("post is not routed", func(t *testing.T) {
		srv := New(testConfig(":8080"), snapshotsOf(published()), "test", false)
		w := serve(srv, "POST", "/", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NotContains(t, w.Body.String(), "lectures")
	})
}

func TestServer_rssHandler(t *testing.T) {
	t.Run("published snapshot", func(t *testing.T) {
		srv := New(testConfig(":8080"), snapshotsOf(published()), "test", false)
		w := serve(srv, "GET", "/rss", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<rss></rss>", w.Body.String())
		assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))
	})

	t.Run("placeholder", func(t *testing.T) {
		srv := New(testConfig(":8080"), snapshotsOf(cache.Placeholder([]byte("loading"), time.Now())), "test", false)
		w := serve(srv, "GET", "/rss", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("snapshot without feed", func(t *testing.T) {
		snap := published()
		snap.RSS = nil
		srv := New(testConfig(":8080"), snapshotsOf(snap), "test", false)
		w := serve(srv, "GET", "/rss", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestServer_healthHandler(t *testing.T) {
	snapshots := snapshotsOf(cache.Placeholder(nil, time.Now()))
	srv := New(testConfig(":8080"), snapshots, "1.2.3", false)
	w := serve(srv, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "1.2.3", resp["version"])
	assert.NotEmpty(t, resp["time"])
	assert.Empty(t, snapshots.LoadCalls(), "health does not look at the snapshot")
}

func TestServer_Middleware(t *testing.T) {
	srv := New(testConfig(":8080"), snapshotsOf(published()), "1.2.3", true)

	t.Run("ping", func(t *testing.T) {
		w := serve(srv, "GET", "/ping", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
	})

	t.Run("app info", func(t *testing.T) {
		w := serve(srv, "GET", "/health", nil)
		assert.Equal(t, "lectures", w.Header().Get("App-Name"))
		assert.Equal(t, "1.2.3", w.Header().Get("App-Version"))
	})

	t.Run("security headers", func(t *testing.T) {
		w := serve(srv, "GET", "/", nil)
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
		csp := w.Header().Get("Content-Security-Policy")
		assert.Contains(t, csp, "default-src 'self'")
		assert.Contains(t, csp, "img-src 'self' https://cloudfront.net https://*.cloudfront.net data:")
		assert.Contains(t, csp, "media-src 'self' https://cloudfront.net https://*.cloudfront.net")
		assert.Contains(t, csp, "frame-ancestors 'none'")
	})
}

func TestSecurityHeaders_NoMediaHost(t *testing.T) {
	h := securityHeaders("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", http.NoBody))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "img-src 'self' data:")
}

func TestCacheControl(t *testing.T) {
	assert.Equal(t, "public, max-age=59, must-revalidate", cacheControl(time.Minute))
	assert.Equal(t, "public, max-age=0, must-revalidate", cacheControl(time.Second))
	assert.Equal(t, "public, max-age=0, must-revalidate", cacheControl(0))
	assert.Equal(t, "1", retryAfter(0))
}

func TestServer_ConcurrentReads(t *testing.T) {
	store := cache.NewStore(cache.Placeholder([]byte("loading"), time.Now()))
	srv := New(testConfig(":8080"), store, "test", false)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				w := serve(srv, "GET", "/", nil)
				body := w.Body.String()
				if body != "loading" && body != "<html>lectures</html>" {
					t.Errorf("reader %d got unexpected body %q", i, body)
				}
			}
		}()
	}
	for range 20 {
		store.Publish(published())
	}
	wg.Wait()
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	srv := New(testConfig(fmt.Sprintf("127.0.0.1:%d", port)), snapshotsOf(published()), "1.0.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(fmt.Sprintf("http://127.0.0.1:%d/", port))
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<html>lectures</html>", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
