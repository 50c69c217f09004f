package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/url-summarizer/pkg/caching"
)

const articlePage = `<!DOCTYPE html>
<html><head><title>Release Notes</title></head>
<body><article>
<h1>Release Notes</h1>
<p>This release adds structured logging throughout the service and replaces the ad hoc log lines that were hard to search in production.</p>
<p>It also introduces a configurable cache for fetched pages so that repeated requests for the same address do not hit the network again within the cache lifetime.</p>
<p>Finally, exports can now be written as HTML in addition to Markdown, JSON and CSV, which makes sharing a batch of summaries easier.</p>
</article></body></html>`

const videoPage = `<!DOCTYPE html>
<html><head><meta name="title" content="Gophers in Space"></head>
<body>
<meta itemprop="duration" content="PT4M13S">
<span itemprop="author"><link itemprop="name" content="Gopher TV"></span>
<script>{"shortDescription":"A short film about gophers."}</script>
</body></html>`

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (fn roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return fn(r)
}

func TestGetHtmlBytes_SendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, "<html>ok</html>")
	}))
	defer srv.Close()

	f := NewFetcher(WithUserAgent("test-agent/1.0"))
	body, err := f.GetHtmlBytes(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "<html>ok</html>", string(body))
	require.Equal(t, "test-agent/1.0", gotUA)
}

func TestGetHtmlBytes_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher().GetHtmlBytes(context.Background(), srv.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status code: 404")
}

func TestGetHtmlBytes_UsesCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = io.WriteString(w, "<html>cached</html>")
	}))
	defer srv.Close()

	cache, err := caching.NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	f := NewFetcher(WithCache(cache))
	for i := 0; i < 3; i++ {
		body, err := f.GetHtmlBytes(context.Background(), srv.URL)
		require.NoError(t, err)
		require.Equal(t, "<html>cached</html>", string(body))
	}
	require.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestGetHtmlBytes_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "late")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher().GetHtmlBytes(ctx, srv.URL)
	require.Error(t, err)
}

func TestFetch_Article(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, articlePage)
	}))
	defer srv.Close()

	content, err := NewFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, srv.URL, content.URL)
	require.Equal(t, "Release Notes", content.Title)
	require.False(t, content.IsVideo)
	require.Contains(t, content.Text, "structured logging")
	require.Empty(t, content.VideoDuration)
}

func TestFetch_Video(t *testing.T) {
	client := &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"text/html"}},
			Body:       io.NopCloser(strings.NewReader(videoPage)),
			Request:    r,
		}, nil
	})}

	f := NewFetcher(WithHTTPClient(client))
	content, err := f.Fetch(context.Background(), "https://youtu.be/abc123")
	require.NoError(t, err)
	require.True(t, content.IsVideo)
	require.Equal(t, "Gophers in Space", content.Title)
	require.Equal(t, "4:13", content.VideoDuration)
	require.Equal(t, "Gopher TV", content.VideoChannel)
	require.Equal(t, "Gophers in Space\n\nA short film about gophers.", content.Text)
}
