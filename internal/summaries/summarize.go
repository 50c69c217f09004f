package summaries

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/url-summarizer/internal/common"
	"github.com/dtnitsch/url-summarizer/models"
	"github.com/dtnitsch/url-summarizer/pkg/caching"
	"github.com/dtnitsch/url-summarizer/pkg/db"
	"github.com/dtnitsch/url-summarizer/pkg/fetcher"
	"github.com/dtnitsch/url-summarizer/pkg/storage"
	"github.com/dtnitsch/url-summarizer/pkg/summarizer"
)

// SummarizeAction fetches each URL, summarizes it and saves the result to
// history unless --no-save is given.
func SummarizeAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}

	rawURLs := c.Args().Slice()
	if c.IsSet("file") {
		fromFile, err := readURLFile(c.String("file"))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		rawURLs = append(rawURLs, fromFile...)
	}
	if len(rawURLs) == 0 {
		return cli.Exit("Please enter a URL to summarize", 1)
	}

	urls := validateURLs(env, rawURLs)
	if len(urls) == 0 {
		return cli.Exit("No valid URLs to summarize", 1)
	}

	length := c.String("length")
	if !c.IsSet("length") {
		length = env.cfg.DefaultLength
	}
	lengthLabel, targetWords, err := summarizer.ResolveLength(length, c.Int("words"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	tone := c.String("tone")
	if tone == "" {
		tone = env.cfg.DefaultTone
	}

	s, err := summarizer.New(env.cfg.Provider, summarizer.WithLogger(env.logger))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cache, err := caching.NewCache(env.cfg.CacheDir, env.cfg.CacheTTL)
	if err != nil {
		env.logger.Warn("page cache disabled", "dir", env.cfg.CacheDir, "error", err)
		cache = nil
	}
	f := fetcher.NewFetcher(
		fetcher.WithTimeout(env.cfg.FetchTimeout),
		fetcher.WithUserAgent(env.cfg.UserAgent),
		fetcher.WithCache(cache),
		fetcher.WithLogger(env.logger),
	)

	tmpl := summarizer.Request{
		TargetWords: targetWords,
		Tone:        tone,
		Language:    c.String("language"),
	}
	results := run(c.Context, env.logger, f, s, tmpl, urls, c.Int("workers"))

	failed := 0
	for _, result := range results {
		if result.Error != nil {
			failed++
			verb := "summarize"
			if result.ErrorType == errFetch {
				verb = "fetch"
			}
			fmt.Fprintf(env.errOut, "Error: could not %s %s: %v\n", verb, result.URL, result.Error)
			continue
		}
		printSummary(env, result, lengthLabel)

		if c.Bool("no-save") {
			continue
		}
		id, ok := env.store.Save(models.SaveParams{
			URL:           result.URL,
			Title:         result.Content.Title,
			SummaryText:   result.Summary,
			SummaryLength: lengthLabel,
			SummaryTone:   tone,
			ModelUsed:     s.Model(),
			VideoDuration: db.NewNullString(result.Content.VideoDuration),
			VideoChannel:  db.NewNullString(result.Content.VideoChannel),
		})
		if !ok {
			fmt.Fprintln(env.errOut, "Warning: the summary was generated but could not be saved to history.")
			continue
		}
		fmt.Fprintf(env.out, "Saved to history as #%d\n\n", id)
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d URLs failed", failed, len(results)), 1)
	}
	return nil
}

// validateURLs keeps the URLs that pass validation and reports the rest.
func validateURLs(env *appEnv, rawURLs []string) []string {
	valid := make([]string, 0, len(rawURLs))
	for _, raw := range rawURLs {
		u, err := common.ValidateAndFixURL(raw)
		if err == nil {
			valid = append(valid, u)
			continue
		}

		fmt.Fprintf(env.errOut, "Error: %q: %v\n", raw, err)
		var missing *common.MissingSchemeError
		if errors.As(err, &missing) {
			fmt.Fprintf(env.errOut, "Tip: re-run with %s\n", missing.Suggestion)
		}
	}
	return valid
}

// readURLFile reads one URL per line, skipping blank lines and # comments.
func readURLFile(path string) ([]string, error) {
	s := &storage.Storage{}
	data, err := s.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}

func printSummary(env *appEnv, result Result, lengthLabel string) {
	content := result.Content
	title := content.Title
	if title == "" {
		title = models.UntitledTitle
	}

	fmt.Fprintf(env.out, "## %s\n", title)
	fmt.Fprintf(env.out, "URL: %s\n", result.URL)
	if content.IsVideo {
		if content.VideoDuration != "" {
			fmt.Fprintf(env.out, "Duration: %s\n", content.VideoDuration)
		}
		if content.VideoChannel != "" {
			fmt.Fprintf(env.out, "Channel: %s\n", content.VideoChannel)
		}
	}
	fmt.Fprintf(env.out, "Length: %s | Words: %d\n\n", lengthLabel, db.CountWords(result.Summary))
	fmt.Fprintln(env.out, result.Summary)
	fmt.Fprintln(env.out)
}
