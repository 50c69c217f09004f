package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dtnitsch/url-summarizer/models"
)

// maxContentRunes bounds how much page text goes into a prompt.
const maxContentRunes = 24000

const systemPrompt = "You are a helpful assistant that writes accurate, well-structured summaries of web pages and videos. " +
	"Only use information from the provided content."

// Request describes one summary to generate.
type Request struct {
	Content     string
	Title       string
	TargetWords int
	Tone        string
	// Language is the output language name. Empty means detect it from Content.
	Language string
}

type Summarizer struct {
	generate generateFunc
	model    string
	logger   *slog.Logger
}

type Option func(*options)

type options struct {
	client *http.Client
	logger *slog.Logger
}

// WithHTTPClient sets the client used for openai-compatible providers.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New builds a Summarizer for the configured provider.
func New(provider models.ProviderConfig, opts ...Option) (*Summarizer, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	generate, modelID, err := buildGenerator(provider, o.client)
	if err != nil {
		return nil, err
	}
	return &Summarizer{generate: generate, model: modelID, logger: o.logger}, nil
}

// Model returns the model ID recorded with each summary.
func (s *Summarizer) Model() string {
	return s.model
}

// Summarize asks the model for a summary of req.Content.
func (s *Summarizer) Summarize(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Content) == "" {
		return "", errors.New("nothing to summarize: content is empty")
	}
	if req.TargetWords <= 0 {
		req.TargetWords = mediumWords
	}
	if req.Tone == "" {
		req.Tone = models.DefaultSummaryTone
	}
	if req.Language == "" {
		req.Language = DetectLanguage(req.Content)
	}

	s.logger.Info("requesting summary",
		"model", s.model,
		"target_words", req.TargetWords,
		"tone", req.Tone,
		"language", req.Language,
		"content_chars", len(req.Content),
	)

	summary, err := s.generate(ctx, systemPrompt, BuildPrompt(req), maxTokensFor(req.TargetWords))
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

// BuildPrompt renders the user prompt for req.
func BuildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Provide a summary of the following content in about %d words.\n", req.TargetWords)
	fmt.Fprintf(&b, "Use a %s tone.\n", strings.ToLower(req.Tone))
	fmt.Fprintf(&b, "Write the summary in %s.\n\n", req.Language)
	if title := strings.TrimSpace(req.Title); title != "" {
		fmt.Fprintf(&b, "Title: %s\n\n", title)
	}
	b.WriteString("Content:\n")
	b.WriteString(truncateText(strings.TrimSpace(req.Content), maxContentRunes))
	return b.String()
}

// maxTokensFor leaves headroom over the target, roughly two tokens per word.
func maxTokensFor(words int) int {
	return words*2 + 200
}

func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
