package server

import (
	"bytes"
	"net/http"
	"strconv"
	"time"
)

// rssHandler serves the RSS feed of the current snapshot.
// Until the first successful refresh there is no feed and the handler responds with 503.
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshots.Load()
	if snap == nil || snap.Placeholder || len(snap.RSS) == 0 {
		w.Header().Set("Retry-After", retryAfter(s.refreshInterval()))
		http.Error(w, "feed is not ready yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", cacheControl(s.refreshInterval()))
	http.ServeContent(w, r, "", snap.UpdatedAt, bytes.NewReader(snap.RSS))
}

func retryAfter(interval time.Duration) string {
	secs := int(interval.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
