package feed

import (
	"math/rand/v2"
	"net/http"
)

// acceptLanguages contains common browser Accept-Language values, the upstream serves
// an Indian audience so regional variants go first
var acceptLanguages = []string{
	"en-IN,en;q=0.9",
	"en-IN,en;q=0.9,hi;q=0.8",
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
}

// addRequestHeaders sets headers for upstream API requests.
// The upstream sits behind a CDN which serves stale or blocked responses to bare clients.
func addRequestHeaders(req *http.Request, userAgent string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	// always ask for fresh data, the refresh interval is our cache
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept-Language", acceptLanguages[rand.IntN(len(acceptLanguages))]) //nolint:gosec // header variation only
}
