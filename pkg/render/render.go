// Package render builds the html page from a feed set
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/studysmarterz/lectures/pkg/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer renders the lectures page and the loading placeholder
type Renderer struct {
	page         *template.Template
	loading      *template.Template
	title        string
	communityURL string
	reload       time.Duration
}

// Params configures Renderer
type Params struct {
	Title        string
	CommunityURL string
	Reload       time.Duration // browser reload interval, usually the refresh interval
}

type pageData struct {
	Title        string
	CommunityURL string
	Feeds        *domain.FeedSet
	Year         int
	Updated      string
	ReloadMillis int64
}

type loadingData struct {
	Title         string
	ReloadSeconds int
}

// New parses embedded templates and makes a renderer
func New(params Params) (*Renderer, error) {
	page, err := template.ParseFS(templatesFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	loading, err := template.ParseFS(templatesFS, "templates/loading.html")
	if err != nil {
		return nil, fmt.Errorf("parse loading template: %w", err)
	}

	res := &Renderer{
		page:         page,
		loading:      loading,
		title:        params.Title,
		communityURL: params.CommunityURL,
		reload:       params.Reload,
	}
	if res.title == "" {
		res.title = "Lectures"
	}
	if res.reload < time.Second {
		res.reload = time.Minute
	}
	return res, nil
}

// Render makes the full page for the feed set
func (r *Renderer) Render(fs *domain.FeedSet) ([]byte, error) {
	if fs == nil {
		return nil, fmt.Errorf("render page: nil feed set")
	}
	updated := fs.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	data := pageData{
		Title:        r.title,
		CommunityURL: r.communityURL,
		Feeds:        fs,
		Year:         updated.Year(),
		Updated:      updated.UTC().Format("2006-01-02 15:04 UTC"),
		ReloadMillis: r.reload.Milliseconds(),
	}

	var buf bytes.Buffer
	if err := r.page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// Loading makes the placeholder page served until the first refresh succeeds
func (r *Renderer) Loading() ([]byte, error) {
	var buf bytes.Buffer
	data := loadingData{Title: r.title, ReloadSeconds: int(r.reload.Seconds())}
	if err := r.loading.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render loading page: %w", err)
	}
	return buf.Bytes(), nil
}
