package sanitizer

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/studysmarterz/lectures/pkg/domain"
)

// Sanitizer converts upstream items to render items.
// It is safe for concurrent use.
type Sanitizer struct {
	rewriter   *Rewriter
	hostSuffix string
	player     *url.URL
	policy     *bluemonday.Policy
}

// Params configures Sanitizer
type Params struct {
	Replacements []Replacement
	HostSuffix   string // allowed media host suffix, e.g. cloudfront.net
	PlayerURL    string // external player base url, gets the media url as "url" parameter
}

// New creates a sanitizer. An invalid player url disables playback links.
func New(params Params) *Sanitizer {
	res := &Sanitizer{
		rewriter:   NewRewriter(params.Replacements),
		hostSuffix: strings.ToLower(strings.Trim(params.HostSuffix, ". ")),
		policy:     bluemonday.StrictPolicy(),
	}
	if u, ok := parseAbsURL(params.PlayerURL); ok {
		res.player = u
	}
	return res
}

// Transform converts a lecture to its render form. The source item is not modified.
func (s *Sanitizer) Transform(item domain.FeedItem) domain.RenderItem {
	return domain.RenderItem{
		ID:          item.ID,
		Title:       s.Text(item.Title),
		BatchLabel:  s.Text(item.BatchLabel),
		ImageURL:    s.ImageURL(item.ImageURL),
		PlaybackURL: s.PlaybackURL(item.SourceLink),
	}
}

// TransformNotification converts a notification to its render form
func (s *Sanitizer) TransformNotification(item domain.FeedItem) domain.Notification {
	return domain.Notification{
		Title:   s.Text(item.Title),
		Message: s.Text(item.Message),
	}
}

// Text strips all markup from upstream text and applies brand rewrites.
// Entities are decoded exactly once, so "&amp;lt;" gives the literal "&lt;" and calling
// Text on its own output may decode further. Anything that looks like a tag is removed
// together with its brackets, "Maths <Advanced>" gives "Maths".
func (s *Sanitizer) Text(text string) string {
	if text == "" {
		return ""
	}
	// strict policy escapes entities, the renderer escapes again on output
	plain := html.UnescapeString(s.policy.Sanitize(text))
	return s.rewriter.Rewrite(strings.TrimSpace(plain))
}

// ImageURL returns the normalized image url if it is on the allowed host, empty otherwise
func (s *Sanitizer) ImageURL(raw string) string {
	u, ok := parseAbsURL(raw)
	if !ok || !s.allowedHost(u) {
		return ""
	}
	return u.String()
}

// PlaybackURL extracts the media url from the "url" parameter of the source link
// and wraps it into the player url. Empty if any step fails or the media url
// is not on the allowed host.
func (s *Sanitizer) PlaybackURL(sourceLink string) string {
	if s.player == nil {
		return ""
	}
	link, ok := parseAbsURL(sourceLink)
	if !ok {
		return ""
	}
	mediaURL := link.Query().Get("url")
	media, ok := parseAbsURL(mediaURL)
	if !ok || !s.allowedHost(media) {
		return ""
	}

	res := *s.player
	q := res.Query()
	q.Set("url", mediaURL)
	res.RawQuery = q.Encode()
	return res.String()
}

// allowedHost checks the host is the media suffix itself or its subdomain
func (s *Sanitizer) allowedHost(u *url.URL) bool {
	if s.hostSuffix == "" {
		return false
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	return host == s.hostSuffix || strings.HasSuffix(host, "."+s.hostSuffix)
}

// parseAbsURL parses an absolute http(s) url with a host
func parseAbsURL(raw string) (*url.URL, bool) {
	if raw == "" {
		return nil, false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, false
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return nil, false
	}
	if u.User != nil {
		return nil, false // credentials in media urls are never legitimate
	}
	return u, true
}
