package feed

import (
	"encoding/xml"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/studysmarterz/lectures/pkg/domain"
)

// Generator creates RSS feeds from rendered lectures
type Generator struct {
	baseURL string
	title   string
	ttl     time.Duration
}

// NewGenerator creates a new feed generator. ttl is advertised to readers as the polling hint.
func NewGenerator(baseURL, title string, ttl time.Duration) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		title:   title,
		ttl:     ttl,
	}
}

// GenerateRSS creates an RSS 2.0 feed with live and upcoming lectures
func (g *Generator) GenerateRSS(fs *domain.FeedSet) ([]byte, error) {
	if fs == nil {
		return nil, fmt.Errorf("generate RSS: nil feed set")
	}
	updated := fs.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	rssItems := make([]*RSSItem, 0, len(fs.Live)+len(fs.Upcoming))
	for _, item := range fs.Live {
		rssItems = append(rssItems, g.convertToRSSItem(item, domain.CategoryLive, updated))
	}
	for _, item := range fs.Upcoming {
		rssItems = append(rssItems, g.convertToRSSItem(item, domain.CategoryUpcoming, updated))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         g.title,
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("%s live and upcoming lectures", g.title),
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: updated.Format(time.RFC1123Z),
			TTL:           int(g.ttl.Minutes()),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal RSS: %w", err)
	}
	return append([]byte(xml.Header), output...), nil
}

// convertToRSSItem converts a lecture to an RSS item, lectures without playback link point to the page
func (g *Generator) convertToRSSItem(item domain.RenderItem, category domain.Category, ts time.Time) *RSSItem {
	link := item.PlaybackURL
	if link == "" {
		link = g.baseURL + "/"
	}

	desc := fmt.Sprintf("%s lecture", strings.ToUpper(string(category[:1]))+string(category[1:]))
	if item.BatchLabel != "" {
		desc += ", batch " + item.BatchLabel
	}

	res := &RSSItem{
		Title:       item.Title,
		Link:        link,
		GUID:        RSSGUID{Value: string(category) + ":" + item.ID},
		Description: desc,
		PubDate:     ts.Format(time.RFC1123Z),
		Categories:  []string{string(category)},
	}
	if item.BatchLabel != "" {
		res.Categories = append(res.Categories, item.BatchLabel)
	}
	if item.HasImage() {
		res.Enclosure = &RSSFile{URL: item.ImageURL, Type: imageType(item.ImageURL)}
	}
	return res
}

func imageType(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "image/jpeg"
	}
	if t := mime.TypeByExtension(strings.ToLower(path.Ext(u.Path))); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}
