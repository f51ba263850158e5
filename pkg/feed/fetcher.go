package feed

import (
	"context"
	"crypto/sha1" //nolint:gosec // used for stable item ids, not security
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/studysmarterz/lectures/pkg/domain"
)

const maxBodySize = 10 * 1024 * 1024

// HTTPFetcher retrieves lecture feeds from the upstream JSON API
type HTTPFetcher struct {
	client     *http.Client
	baseURL    string
	timeout    time.Duration
	retries    int
	retryDelay time.Duration
	userAgent  string
}

// FetcherParams configures HTTPFetcher
type FetcherParams struct {
	Client     *http.Client  // optional, http.DefaultClient if nil
	BaseURL    string        // upstream base url, category is selected with the "get" query parameter
	Timeout    time.Duration // per attempt timeout
	Retries    int           // maximum number of attempts
	RetryDelay time.Duration // linear backoff step, delay before attempt n+1 is n*RetryDelay, 1s if not set
	UserAgent  string
}

// NewHTTPFetcher creates a new upstream fetcher
func NewHTTPFetcher(params FetcherParams) *HTTPFetcher {
	res := &HTTPFetcher{
		client:     params.Client,
		baseURL:    params.BaseURL,
		timeout:    params.Timeout,
		retries:    params.Retries,
		retryDelay: params.RetryDelay,
		userAgent:  params.UserAgent,
	}
	if res.client == nil {
		res.client = http.DefaultClient
	}
	if res.timeout <= 0 {
		res.timeout = 10 * time.Second
	}
	if res.retries < 1 {
		res.retries = 3
	}
	if res.retryDelay <= 0 {
		res.retryDelay = time.Second
	}
	if res.userAgent == "" {
		res.userAgent = "Lectures/1.0"
	}
	return res
}

// apiResponse is the upstream payload, items are under "data"
type apiResponse struct {
	Data []apiItem `json:"data"`
}

type apiItem struct {
	ID      any    `json:"id"`
	Title   string `json:"title"`
	Batch   string `json:"batch"`
	Image   string `json:"image"`
	Link    string `json:"link"`
	Message string `json:"message"`
}

// Fetch retrieves all items of the category. It never fails: after the last failed
// attempt, or for a payload without a data array, it returns an empty list.
func (f *HTTPFetcher) Fetch(ctx context.Context, category domain.Category) []domain.FeedItem {
	feedURL, err := f.categoryURL(category)
	if err != nil {
		lgr.Printf("[ERROR] can't build url for %s: %v", category, err)
		return []domain.FeedItem{}
	}

	retrier := repeater.NewBackoff(f.retries, f.retryDelay,
		repeater.WithBackoffType(repeater.BackoffLinear), repeater.WithJitter(0), repeater.WithMaxDelay(time.Minute))

	var items []domain.FeedItem
	attempt := 0
	err = retrier.Do(ctx, func() error {
		attempt++
		res, fetchErr := f.fetchOnce(ctx, feedURL)
		if fetchErr != nil {
			lgr.Printf("[WARN] fetch %s failed, attempt %d/%d: %v", category, attempt, f.retries, fetchErr)
			return fetchErr
		}
		items = res
		return nil
	})
	if err != nil {
		lgr.Printf("[WARN] giving up on %s after %d attempts: %v", category, attempt, err)
		return []domain.FeedItem{}
	}

	lgr.Printf("[DEBUG] fetched %d items for %s", len(items), category)
	return items
}

// fetchOnce makes a single request bounded by the per attempt timeout
func (f *HTTPFetcher) fetchOnce(ctx context.Context, feedURL string) ([]domain.FeedItem, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	addRequestHeaders(req, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, feedURL)
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize))
	dec.UseNumber()
	var payload apiResponse
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", feedURL, err)
	}

	if payload.Data == nil {
		lgr.Printf("[WARN] no data array in response from %s", feedURL)
		return []domain.FeedItem{}, nil
	}

	items := make([]domain.FeedItem, 0, len(payload.Data))
	for _, it := range payload.Data {
		items = append(items, it.toFeedItem())
	}
	return items, nil
}

// categoryURL builds the upstream url for the category, keeping any query already in the base url
func (f *HTTPFetcher) categoryURL(category domain.Category) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("get", category.Param())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (it apiItem) toFeedItem() domain.FeedItem {
	res := domain.FeedItem{
		ID:         itemID(it.ID),
		Title:      it.Title,
		BatchLabel: it.Batch,
		ImageURL:   strings.TrimSpace(it.Image),
		SourceLink: strings.TrimSpace(it.Link),
		Message:    it.Message,
	}
	if res.ID == "" {
		res.ID = derivedID(res)
	}
	return res
}

// itemID converts the upstream id, which may be a string or a number, to a string
func itemID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case json.Number:
		return id.String()
	default:
		return fmt.Sprintf("%v", id)
	}
}

// derivedID makes a stable id from item content for items without upstream id
func derivedID(item domain.FeedItem) string {
	h := sha1.New() //nolint:gosec // not for security
	for _, s := range []string{item.Title, item.BatchLabel, item.SourceLink, item.ImageURL, item.Message} {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}
