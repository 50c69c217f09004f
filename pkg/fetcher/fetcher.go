package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dtnitsch/url-summarizer/models"
	"github.com/dtnitsch/url-summarizer/pkg/caching"
	"github.com/dtnitsch/url-summarizer/pkg/parser"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 << 20

type Fetcher struct {
	client    *http.Client
	userAgent string
	cache     *caching.Cache
	parser    *parser.Parser
	logger    *slog.Logger
}

type Option func(*Fetcher)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.client.Timeout = d }
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithCache serves fresh bodies from c and stores fetched ones in it.
func WithCache(c *caching.Cache) Option {
	return func(f *Fetcher) { f.cache = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: models.DefaultFetchTimeout},
		userAgent: models.DefaultUserAgent,
		parser:    &parser.Parser{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads url and extracts the text to summarize. Video pages yield
// the title and description plus duration and channel when the page has them.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*models.Content, error) {
	body, err := f.GetHtmlBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	if parser.IsYouTubeURL(url) {
		video, err := f.parser.ParseVideo(string(body))
		if err != nil {
			return nil, fmt.Errorf("failed to extract video details: %w", err)
		}
		return &models.Content{
			URL:           url,
			Title:         video.Title,
			Text:          video.Text(),
			IsVideo:       true,
			VideoDuration: video.Duration,
			VideoChannel:  video.Channel,
		}, nil
	}

	page, err := f.parser.ParseArticle(url, string(body))
	if err != nil {
		return nil, err
	}
	text := page.ToPlainText()
	if text == "" {
		return nil, fmt.Errorf("no readable content found at %s", url)
	}
	return &models.Content{
		URL:   url,
		Title: page.Title,
		Text:  text,
	}, nil
}

func (f *Fetcher) GetHtmlBytes(ctx context.Context, url string) ([]byte, error) {
	if cached, ok := f.cache.Get(url); ok {
		f.logger.Debug("serving page from cache", "url", url)
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch HTML, status code: %d", resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if err := f.cache.Set(url, bodyBytes); err != nil {
		f.logger.Warn("failed to cache page", "url", url, "error", err)
	}
	return bodyBytes, nil
}
