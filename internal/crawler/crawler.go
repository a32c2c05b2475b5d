// Package crawler scrapes LE and GR cards from the I-Chu fandom wiki into
// the import file format.
package crawler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/Ryuseikaiz/Ichu-Database/internal/importer"
	"github.com/Ryuseikaiz/Ichu-Database/internal/ratelimit"
)

const (
	// DefaultBaseURL is the wiki the crawler reads.
	DefaultBaseURL = "https://ichu.fandom.com"

	// DefaultWorkers bounds concurrent card page fetches.
	DefaultWorkers = 10

	// Rate limit: 5 requests per second per host, burst of 10
	defaultRPS   = 5.0
	defaultBurst = 10

	defaultTimeout = 30 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Sentinel errors for page fetches.
var (
	ErrNotFound = errors.New("crawler: page not found")
	ErrStatus   = errors.New("crawler: unexpected status")
)

// Options configures a Crawler. Zero values take the defaults.
type Options struct {
	BaseURL string
	Workers int
	RPS     float64
	Burst   int
	Timeout time.Duration
	Logger  *slog.Logger
}

// Crawler is a rate-limited wiki client.
type Crawler struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
	baseURL string
	workers int
}

// New creates a crawler. Call Close when done.
func New(opts Options) *Crawler {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	if opts.RPS <= 0 {
		opts.RPS = defaultRPS
	}
	if opts.Burst < 1 {
		opts.Burst = defaultBurst
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Crawler{
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: ratelimit.New(opts.RPS, opts.Burst),
		logger:  opts.Logger,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		workers: opts.Workers,
	}
}

// Close releases resources held by the crawler.
func (c *Crawler) Close() {
	c.limiter.Stop()
}

// Crawl fetches every card and returns them sorted by name.
// Card pages that fail to load are logged and skipped.
func (c *Crawler) Crawl(ctx context.Context) ([]importer.SourceCard, error) {
	links, err := c.CardLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect card links: %w", err)
	}
	c.logger.Info("Found LE/GR cards", "count", len(links))

	var (
		mu    sync.Mutex
		cards = make([]importer.SourceCard, 0, len(links))
		done  atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for _, link := range links {
		g.Go(func() error {
			card, err := c.Card(gctx, link)
			if n := done.Add(1); n%10 == 0 {
				c.logger.Info("Crawl progress", "done", n, "total", len(links))
			}
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				c.logger.Warn("Skipping card", "url", link, "error", err)
				return nil
			}

			mu.Lock()
			cards = append(cards, card)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(cards, func(a, b importer.SourceCard) int {
		return strings.Compare(a.Name, b.Name)
	})
	return cards, nil
}

// Card fetches and parses one card page.
func (c *Crawler) Card(ctx context.Context, pageURL string) (importer.SourceCard, error) {
	doc, err := c.fetch(ctx, pageURL)
	if err != nil {
		return importer.SourceCard{}, err
	}
	card := ParseCard(doc, pageURL)
	c.logger.Debug("Parsed card", "name", card.Name)
	return card, nil
}

// fetch downloads and parses an HTML page, waiting on the per-host limiter.
func (c *Crawler) fetch(ctx context.Context, pageURL string) (*html.Node, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}

	if err := c.limiter.Wait(ctx, u.Host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("wiki request", "url", pageURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w %d", ErrStatus, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// WriteJSON writes cards the way the import expects them: an array
// indented with four spaces, with non-ASCII text left unescaped.
func WriteJSON(w io.Writer, cards []importer.SourceCard) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(cards)
}
