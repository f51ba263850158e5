package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/studysmarterz/lectures/pkg/cache"
	"github.com/studysmarterz/lectures/pkg/domain"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/transformer.go -pkg mocks -skip-ensure -fmt goimports . Transformer
//go:generate moq -out mocks/page_renderer.go -pkg mocks -skip-ensure -fmt goimports . PageRenderer
//go:generate moq -out mocks/feed_renderer.go -pkg mocks -skip-ensure -fmt goimports . FeedRenderer

// ErrNoData is returned by a refresh cycle when every category came back empty.
// The previous snapshot is kept, an all-empty result usually means the upstream is down.
var ErrNoData = errors.New("all categories are empty")

// Fetcher retrieves items of one category, returns an empty list on failure
type Fetcher interface {
	Fetch(ctx context.Context, category domain.Category) []domain.FeedItem
}

// Transformer converts upstream items to their render form
type Transformer interface {
	Transform(item domain.FeedItem) domain.RenderItem
	TransformNotification(item domain.FeedItem) domain.Notification
}

// PageRenderer renders the html page
type PageRenderer interface {
	Render(fs *domain.FeedSet) ([]byte, error)
}

// FeedRenderer renders the RSS feed
type FeedRenderer interface {
	GenerateRSS(fs *domain.FeedSet) ([]byte, error)
}

// Phase is the state of the refresh cycle
type Phase int32

// refresh cycle phases
const (
	PhaseIdle Phase = iota
	PhaseFetching
	PhaseEvaluating
	PhasePublishing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFetching:
		return "fetching"
	case PhaseEvaluating:
		return "evaluating"
	case PhasePublishing:
		return "publishing"
	default:
		return fmt.Sprintf("phase(%d)", int32(p))
	}
}

// Scheduler periodically refreshes the published snapshot.
// It is the only writer of the snapshot store.
type Scheduler struct {
	fetcher     Fetcher
	transformer Transformer
	page        PageRenderer
	feed        FeedRenderer
	store       *cache.Store
	interval    time.Duration
	now         func() time.Time

	phase   atomic.Int32
	cycleMu sync.Mutex // refresh cycles never overlap
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// Params holds scheduler dependencies and configuration
type Params struct {
	Fetcher      Fetcher
	Transformer  Transformer
	PageRenderer PageRenderer
	FeedRenderer FeedRenderer // optional, no RSS in snapshots if nil
	Store        *cache.Store
	Interval     time.Duration
	Now          func() time.Time // optional, time.Now if nil
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	res := &Scheduler{
		fetcher:     params.Fetcher,
		transformer: params.Transformer,
		page:        params.PageRenderer,
		feed:        params.FeedRenderer,
		store:       params.Store,
		interval:    params.Interval,
		now:         params.Now,
	}
	if res.interval <= 0 {
		res.interval = time.Minute
	}
	if res.now == nil {
		res.now = time.Now
	}
	if res.store == nil {
		res.store = cache.NewStore(nil)
	}
	return res
}

// Start runs the first refresh immediately and then every interval, in the background
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.refreshWorker(ctx)

	lgr.Printf("[INFO] scheduler started with refresh interval %v", s.interval)
}

// Stop gracefully stops the scheduler, waits for the running cycle to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// Store returns the snapshot store the scheduler publishes to
func (s *Scheduler) Store() *cache.Store {
	return s.store
}

// Phase returns the current phase of the refresh cycle
func (s *Scheduler) Phase() Phase {
	return Phase(s.phase.Load())
}

// refreshWorker runs refresh cycles one after another. Ticks missed while a cycle
// is still running are dropped by the ticker, so a slow cycle never overlaps the next one.
func (s *Scheduler) refreshWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// run immediately on start
	s.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh runs one cycle and logs the outcome, the cycle error is never fatal
func (s *Scheduler) refresh(ctx context.Context) {
	err := s.RefreshNow(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrNoData):
		lgr.Printf("[WARN] cache update skipped, fetched data was empty, keeping snapshot from %s",
			s.store.Load().UpdatedAt.Format(time.RFC3339))
	case ctx.Err() != nil:
		lgr.Printf("[DEBUG] refresh interrupted: %v", err)
	default:
		lgr.Printf("[ERROR] cache update failed, keeping previous snapshot: %v", err)
	}
}

// RefreshNow runs a single refresh cycle: fetch all categories concurrently, evaluate the
// result and publish a new snapshot. On error, including a panic in any stage, the
// published snapshot is left untouched.
func (s *Scheduler) RefreshNow(ctx context.Context) (err error) {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	defer s.setPhase(PhaseIdle)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("refresh cycle panic: %v", r)
		}
	}()

	start := s.now()
	s.setPhase(PhaseFetching)
	results, err := s.fetchAll(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("refresh canceled: %w", err)
	}

	s.setPhase(PhaseEvaluating)
	live, upcoming, completed := results[domain.CategoryLive], results[domain.CategoryUpcoming], results[domain.CategoryCompleted]
	notifications := results[domain.CategoryNotifications]
	total := len(live) + len(upcoming) + len(completed)
	if total == 0 && len(notifications) == 0 {
		return ErrNoData
	}

	s.setPhase(PhasePublishing)
	fs := &domain.FeedSet{
		Live:          s.transformAll(live),
		Upcoming:      s.transformAll(upcoming),
		Completed:     s.transformAll(completed),
		Notifications: make([]domain.Notification, 0, len(notifications)),
		UpdatedAt:     s.now(),
	}
	for _, n := range notifications {
		fs.Notifications = append(fs.Notifications, s.transformer.TransformNotification(n))
	}
	fs.CollectBatches()

	snap, err := s.render(fs)
	if err != nil {
		return err
	}
	s.store.Publish(snap)

	lgr.Printf("[INFO] cache updated, %d lectures (live: %d, upcoming: %d, completed: %d), notifications: %d, took %v",
		fs.Lectures(), len(fs.Live), len(fs.Upcoming), len(fs.Completed), len(fs.Notifications), s.now().Sub(start))
	return nil
}

// fetchAll fetches every category concurrently and waits for all of them.
// A panic in a fetch is turned into an error, so it fails the cycle instead of the process.
func (s *Scheduler) fetchAll(ctx context.Context) (map[domain.Category][]domain.FeedItem, error) {
	items := make([][]domain.FeedItem, len(domain.Categories))

	var g errgroup.Group
	for i, category := range domain.Categories {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("fetch %s panic: %v", category, r)
				}
			}()
			items[i] = s.fetcher.Fetch(ctx, category)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make(map[domain.Category][]domain.FeedItem, len(domain.Categories))
	for i, category := range domain.Categories {
		res[category] = items[i]
	}
	return res, nil
}

func (s *Scheduler) transformAll(items []domain.FeedItem) []domain.RenderItem {
	res := make([]domain.RenderItem, 0, len(items))
	for _, item := range items {
		res = append(res, s.transformer.Transform(item))
	}
	return res
}

// render makes a complete snapshot, nothing is published unless every renderer succeeded
func (s *Scheduler) render(fs *domain.FeedSet) (*cache.Snapshot, error) {
	page, err := s.page.Render(fs)
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	snap := &cache.Snapshot{HTML: page, Feeds: fs, UpdatedAt: fs.UpdatedAt}
	if s.feed != nil {
		if snap.RSS, err = s.feed.GenerateRSS(fs); err != nil {
			return nil, fmt.Errorf("render rss: %w", err)
		}
	}
	return snap, nil
}

func (s *Scheduler) setPhase(p Phase) {
	if prev := Phase(s.phase.Swap(int32(p))); prev != p {
		lgr.Printf("[DEBUG] refresh phase %s -> %s", prev, p)
	}
}
