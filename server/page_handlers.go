package server

import (
	"bytes"
	"net/http"
	"strconv"
	"time"
)

// pageHandler serves the rendered page of the current snapshot. It always responds with 200,
// before the first refresh this is the loading placeholder.
func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshots.Load()
	if snap == nil {
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("Loading..."))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if snap.Placeholder {
		// placeholder is replaced within a refresh cycle, don't let browsers or proxies keep it
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeContent(w, r, "", time.Time{}, bytes.NewReader(snap.HTML))
		return
	}
	w.Header().Set("Cache-Control", cacheControl(s.refreshInterval()))
	http.ServeContent(w, r, "", snap.UpdatedAt, bytes.NewReader(snap.HTML))
}

// healthHandler reports process liveness, it says nothing about snapshot freshness
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	RenderJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	})
}

func (s *Server) refreshInterval() time.Duration {
	return s.config.GetFullConfig().Refresh.Interval
}

// cacheControl lets clients cache the page for one second less than the refresh interval
func cacheControl(interval time.Duration) string {
	maxAge := int(interval.Seconds()) - 1
	if maxAge < 0 {
		maxAge = 0
	}
	return "public, max-age=" + strconv.Itoa(maxAge) + ", must-revalidate"
}
