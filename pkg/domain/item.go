package domain

import "time"

// Category is a feed category served by the upstream API
type Category string

// feed categories, in the order they are fetched and rendered
const (
	CategoryLive          Category = "live"
	CategoryUpcoming      Category = "upcoming"
	CategoryCompleted     Category = "completed"
	CategoryNotifications Category = "notifications"
)

// Categories lists all feed categories making up one refresh cycle
var Categories = []Category{CategoryLive, CategoryUpcoming, CategoryCompleted, CategoryNotifications}

// Param returns the value of the upstream "get" query parameter for the category
func (c Category) Param() string {
	if c == CategoryUpcoming {
		return "up"
	}
	return string(c)
}

// FeedItem is a lecture or notification as returned by the upstream API.
// Items are never modified after fetching, sanitization produces a RenderItem.
type FeedItem struct {
	ID         string
	Title      string
	BatchLabel string
	ImageURL   string
	SourceLink string // link with the player url embedded in the "url" query parameter
	Message    string // notification body, empty for lectures
}

// RenderItem is a sanitized, display-ready lecture.
// ImageURL and PlaybackURL are either verified URLs on the allowed media host or empty.
type RenderItem struct {
	ID          string
	Title       string
	BatchLabel  string
	ImageURL    string
	PlaybackURL string
}

// HasImage reports whether the item has a verified image
func (r RenderItem) HasImage() bool { return r.ImageURL != "" }

// Clickable reports whether the item has a verified playback link
func (r RenderItem) Clickable() bool { return r.PlaybackURL != "" }

// Notification is a sanitized, display-ready notification
type Notification struct {
	Title   string
	Message string
}

// FeedSet groups everything fetched and transformed in a single refresh cycle
type FeedSet struct {
	Live          []RenderItem
	Upcoming      []RenderItem
	Completed     []RenderItem
	Notifications []Notification
	Batches       []string // distinct batch labels of all lectures, first seen order
	UpdatedAt     time.Time
}

// Lectures returns the number of lectures in all categories
func (f *FeedSet) Lectures() int {
	return len(f.Live) + len(f.Upcoming) + len(f.Completed)
}

// CollectBatches fills Batches from live, upcoming and completed lectures
func (f *FeedSet) CollectBatches() {
	seen := map[string]bool{}
	f.Batches = []string{}
	for _, items := range [][]RenderItem{f.Live, f.Upcoming, f.Completed} {
		for _, item := range items {
			if item.BatchLabel == "" || seen[item.BatchLabel] {
				continue
			}
			seen[item.BatchLabel] = true
			f.Batches = append(f.Batches, item.BatchLabel)
		}
	}
}
