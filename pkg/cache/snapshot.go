// Package cache holds the published page snapshot.
// A snapshot is immutable once published, a refresh replaces the whole snapshot
// with a single atomic pointer swap so readers never lock and never see a mix
// of two refresh cycles.
package cache

import (
	"sync/atomic"
	"time"

	"github.com/studysmarterz/lectures/pkg/domain"
)

// Snapshot is the rendered content served to clients. Must not be modified after Publish.
type Snapshot struct {
	HTML        []byte
	RSS         []byte          // empty if no feed renderer is configured or for placeholder
	Feeds       *domain.FeedSet // nil for placeholder
	UpdatedAt   time.Time
	Placeholder bool
}

// Placeholder makes the snapshot served before the first successful refresh
func Placeholder(html []byte, ts time.Time) *Snapshot {
	return &Snapshot{HTML: html, UpdatedAt: ts, Placeholder: true}
}

// Store keeps the current snapshot. Load is safe for any number of concurrent readers,
// Publish is expected to be called by a single writer.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore makes a store serving the initial snapshot
func NewStore(initial *Snapshot) *Store {
	if initial == nil {
		initial = Placeholder(nil, time.Now())
	}
	res := &Store{}
	res.current.Store(initial)
	return res
}

// Load returns the current snapshot, never nil
func (s *Store) Load() *Snapshot {
	return s.current.Load()
}

// Publish replaces the current snapshot and returns the previous one.
// A nil snapshot is ignored and the current one is kept.
func (s *Store) Publish(snap *Snapshot) (previous *Snapshot) {
	if snap == nil {
		return s.current.Load()
	}
	return s.current.Swap(snap)
}
