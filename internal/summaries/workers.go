package summaries

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/dtnitsch/url-summarizer/models"
	"github.com/dtnitsch/url-summarizer/pkg/fetcher"
	"github.com/dtnitsch/url-summarizer/pkg/summarizer"
)

// Job defines a URL for a worker to fetch and summarize.
type Job struct {
	Index int
	URL   string
}

// Failure kinds recorded in Result.ErrorType.
const (
	errFetch     = "fetch_error"
	errSummarize = "summarize_error"
)

// Result holds the outcome of a processed job.
type Result struct {
	Index     int
	URL       string
	Content   *models.Content
	Summary   string
	Error     error
	ErrorType string
}

// run fans jobs out to workerCount workers and returns results in input order.
func run(ctx context.Context, logger *slog.Logger, f *fetcher.Fetcher, s *summarizer.Summarizer, tmpl summarizer.Request, urls []string, workerCount int) []Result {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(urls) {
		workerCount = len(urls)
	}

	logger.Info("Starting summarize phase", "url_count", len(urls), "workers", workerCount)
	var wg sync.WaitGroup
	jobs := make(chan Job, len(urls))
	results := make(chan Result, len(urls))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, f, s, tmpl, &wg, jobs, results)
	}

	for i, u := range urls {
		jobs <- Job{Index: i, URL: u}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All summarize workers finished")

	all := make([]Result, 0, len(urls))
	for result := range results {
		all = append(all, result)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Index < all[j].Index })
	return all
}

func worker(ctx context.Context, id int, logger *slog.Logger, f *fetcher.Fetcher, s *summarizer.Summarizer, tmpl summarizer.Request, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("Worker started job", "worker_id", id, "url", job.URL)
		result := Result{Index: job.Index, URL: job.URL}

		content, err := f.Fetch(ctx, job.URL)
		if err != nil {
			logger.Error("Error fetching content", "worker_id", id, "url", job.URL, "error", err)
			result.Error = err
			result.ErrorType = errFetch
			results <- result
			continue
		}
		result.Content = content

		req := tmpl
		req.Content = content.Text
		req.Title = content.Title
		summary, err := s.Summarize(ctx, req)
		if err != nil {
			logger.Error("Error summarizing content", "worker_id", id, "url", job.URL, "error", err)
			result.Error = err
			result.ErrorType = errSummarize
			results <- result
			continue
		}

		result.Summary = summary
		results <- result
		logger.Info("Worker finished processing", "worker_id", id, "url", job.URL)
	}
}
