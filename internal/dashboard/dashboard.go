package dashboard

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"urlclient/internal/domain"
)

const component = "dashboard"

var ErrUnknownCode = errors.New("short code is not on the dashboard")

// FetchError carries the message the backend call resolved to.
type FetchError struct {
	Message string
}

func (e *FetchError) Error() string {
	return e.Message
}

type Summary struct {
	TotalURLs   int
	TotalClicks int64
	ActiveURLs  int
}

type Card struct {
	URL        domain.ShortenedURL
	Expired    bool
	Expanded   bool
	Stats      *domain.URLStatistics
	StatsError string
}

type View struct {
	Cards   []Card
	Summary Summary
	Banner  string
	Loaded  bool
}

type Option func(*Dashboard)

func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) {
		if now != nil {
			d.now = now
		}
	}
}

// Dashboard is the statistics page state. Click details are fetched lazily
// when a card is expanded and kept in the stats cache until Refresh.
type Dashboard struct {
	client URLClient
	cache  StatsCache
	logger Logger
	now    func() time.Time

	mu       sync.Mutex
	urls     []domain.ShortenedURL
	expanded map[string]bool
	banner   string
	loaded   bool
}

func New(client URLClient, cache StatsCache, logger Logger, opts ...Option) *Dashboard {
	d := &Dashboard{
		client:   client,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
		expanded: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dashboard) Load(ctx context.Context) error {
	const method = "Load"
	d.logger.Info(component, method, "Fetching URLs for statistics")

	res := d.client.GetShortenedURLs(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.loaded = true
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = "Failed to fetch URLs"
		}
		d.logger.Error(component, method, "Failed to fetch URLs", "error", msg)
		d.banner = msg
		return &FetchError{Message: msg}
	}

	d.logger.Info(component, method, "Successfully fetched URLs", "urlCount", len(res.Data))
	d.urls = slices.Clone(res.Data)
	d.banner = ""

	present := make(map[string]bool, len(d.urls))
	for _, u := range d.urls {
		present[u.ShortCode] = true
	}
	for code := range d.expanded {
		if !present[code] {
			delete(d.expanded, code)
		}
	}
	return nil
}

// Refresh reloads the list and drops every cached statistics entry.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.logger.Info(component, "Refresh", "Refreshing statistics data")

	d.cache.Clear()
	return d.Load(ctx)
}

func (d *Dashboard) Summary() Summary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.summary()
}

func (d *Dashboard) summary() Summary {
	now := d.now()
	s := Summary{TotalURLs: len(d.urls)}
	for _, u := range d.urls {
		s.TotalClicks += u.ClickCount
		if !u.ExpiredAt(now) {
			s.ActiveURLs++
		}
	}
	return s
}

// Toggle flips a card between collapsed and expanded and reports the new
// state. Expanding a card without cached statistics fetches them; a failed
// fetch leaves the card expanded and is returned.
func (d *Dashboard) Toggle(ctx context.Context, shortCode string) (bool, error) {
	const method = "Toggle"

	d.mu.Lock()
	if !d.has(shortCode) {
		d.mu.Unlock()
		return false, ErrUnknownCode
	}
	expanded := !d.expanded[shortCode]
	if expanded {
		d.expanded[shortCode] = true
	} else {
		delete(d.expanded, shortCode)
	}
	d.mu.Unlock()

	d.logger.Info(component, method, "Toggling statistics details", "shortCode", shortCode, "expanded", expanded)
	if !expanded {
		return false, nil
	}

	_, err := d.Statistics(ctx, shortCode)
	return true, err
}

// Statistics returns click details for shortCode from the cache, fetching
// them on a miss.
func (d *Dashboard) Statistics(ctx context.Context, shortCode string) (domain.URLStatistics, error) {
	const method = "Statistics"

	if stats, ok := d.cache.Get(shortCode); ok {
		return stats, nil
	}

	d.logger.Info(component, method, "Fetching detailed statistics for URL", "shortCode", shortCode)

	res := d.client.GetURLStatistics(ctx, shortCode)
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = "Failed to fetch statistics"
		}
		d.logger.Error(component, method, "Failed to fetch URL statistics", "shortCode", shortCode, "error", msg)
		return domain.URLStatistics{}, &FetchError{Message: msg}
	}

	d.logger.Info(component, method, "Successfully fetched URL statistics",
		"shortCode", shortCode,
		"clickCount", len(res.Data.ClickDetails))
	d.cache.Set(shortCode, res.Data)
	return res.Data, nil
}

// View renders the page state. Expanded cards whose statistics fell out of
// the cache are fetched again.
func (d *Dashboard) View(ctx context.Context) View {
	d.mu.Lock()
	var codes []string
	for code := range d.expanded {
		codes = append(codes, code)
	}
	d.mu.Unlock()

	stats := make(map[string]domain.URLStatistics, len(codes))
	fetchErrs := make(map[string]string)
	for _, code := range codes {
		s, err := d.Statistics(ctx, code)
		if err != nil {
			fetchErrs[code] = err.Error()
			continue
		}
		stats[code] = s
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	v := View{
		Cards:   make([]Card, 0, len(d.urls)),
		Summary: d.summary(),
		Banner:  d.banner,
		Loaded:  d.loaded,
	}

	for _, u := range d.urls {
		card := Card{
			URL:      u,
			Expired:  u.ExpiredAt(now),
			Expanded: d.expanded[u.ShortCode],
		}
		if card.Expanded {
			if s, ok := stats[u.ShortCode]; ok {
				card.Stats = &s
			} else {
				card.StatsError = fetchErrs[u.ShortCode]
			}
		}
		v.Cards = append(v.Cards, card)
	}
	return v
}

func (d *Dashboard) Loaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loaded
}

func (d *Dashboard) has(shortCode string) bool {
	return slices.ContainsFunc(d.urls, func(u domain.ShortenedURL) bool { return u.ShortCode == shortCode })
}
