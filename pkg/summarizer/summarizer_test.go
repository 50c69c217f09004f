package summarizer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/url-summarizer/models"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestResolveLength(t *testing.T) {
	tests := []struct {
		name      string
		length    string
		custom    int
		wantLabel string
		wantWords int
		wantErr   bool
	}{
		{name: "short", length: "short", wantLabel: LengthShort, wantWords: 150},
		{name: "medium default", length: "", wantLabel: LengthMedium, wantWords: 300},
		{name: "medium mixed case", length: "Medium", wantLabel: LengthMedium, wantWords: 300},
		{name: "long", length: "LONG", wantLabel: LengthLong, wantWords: 500},
		{name: "stored long label", length: "Long (400-500 words)", wantLabel: LengthLong, wantWords: 500},
		{name: "custom wins", length: "short", custom: 75, wantLabel: "Custom (75 words)", wantWords: 75},
		{name: "custom too small", custom: 10, wantErr: true},
		{name: "custom too large", custom: 5000, wantErr: true},
		{name: "unknown", length: "epic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, words, err := ResolveLength(tt.length, tt.custom)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantLabel, label)
			require.Equal(t, tt.wantWords, words)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(Request{
		Content:     "  Go is an open source programming language.  ",
		Title:       "About Go",
		TargetWords: 150,
		Tone:        "Casual",
		Language:    "German",
	})

	require.Contains(t, prompt, "in about 150 words")
	require.Contains(t, prompt, "Use a casual tone.")
	require.Contains(t, prompt, "Write the summary in German.")
	require.Contains(t, prompt, "Title: About Go\n\n")
	require.True(t, strings.HasSuffix(prompt, "Content:\nGo is an open source programming language."))
}

func TestBuildPrompt_TruncatesContent(t *testing.T) {
	prompt := BuildPrompt(Request{
		Content:     strings.Repeat("ü", maxContentRunes+10),
		TargetWords: 300,
		Tone:        "Professional",
		Language:    "English",
	})

	require.NotContains(t, prompt, "Title:")
	require.True(t, strings.HasSuffix(prompt, "..."))
	require.Equal(t, maxContentRunes, strings.Count(prompt, "ü"))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(models.ProviderConfig{Type: "openai"})
	require.Error(t, err)
	require.Contains(t, err.Error(), models.APIKeyEnv)

	_, err = New(models.ProviderConfig{Type: "cohere", APIKey: "k"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown AI provider type")
}

func TestNew_DefaultModels(t *testing.T) {
	tests := []struct {
		provider  models.ProviderConfig
		wantModel string
	}{
		{models.ProviderConfig{APIKey: "k"}, defaultOpenAIModel},
		{models.ProviderConfig{Type: "OpenAI", APIKey: "k", Model: "gpt-4.1"}, "gpt-4.1"},
		{models.ProviderConfig{Type: "anthropic", APIKey: "k"}, defaultAnthropicModel},
		{models.ProviderConfig{Type: "openai_compatible", APIKey: "k", Model: "llama3"}, "llama3"},
	}

	for _, tt := range tests {
		s, err := New(tt.provider, WithLogger(quietLogger))
		require.NoError(t, err, tt.provider.Type)
		require.Equal(t, tt.wantModel, s.Model())
	}
}

func TestSummarize_OpenAICompatible(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"  A tidy summary.  "}}]}`)
	}))
	defer srv.Close()

	s, err := New(models.ProviderConfig{
		Type:     ProviderOpenAICompatible,
		APIKey:   "secret",
		Endpoint: srv.URL + "/v1/",
		Model:    "local-model",
	}, WithHTTPClient(srv.Client()), WithLogger(quietLogger))
	require.NoError(t, err)

	summary, err := s.Summarize(context.Background(), Request{
		Content:     "Some article text.",
		Title:       "Article",
		TargetWords: 150,
		Tone:        "Professional",
		Language:    "English",
	})
	require.NoError(t, err)
	require.Equal(t, "A tidy summary.", summary)

	require.Equal(t, "local-model", got.Model)
	require.Equal(t, maxTokensFor(150), got.MaxTokens)
	require.Len(t, got.Messages, 2)
	require.Equal(t, "system", got.Messages[0].Role)
	require.Equal(t, "user", got.Messages[1].Role)
	require.Contains(t, got.Messages[1].Content, "Some article text.")
}

func TestSummarize_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s, err := New(models.ProviderConfig{Type: ProviderOpenAICompatible, APIKey: "k", Endpoint: srv.URL},
		WithHTTPClient(srv.Client()), WithLogger(quietLogger))
	require.NoError(t, err)

	_, err = s.Summarize(context.Background(), Request{Content: "text", Language: "English"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 429")
}

func TestSummarize_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	s, err := New(models.ProviderConfig{Type: ProviderOpenAICompatible, APIKey: "k", Endpoint: srv.URL},
		WithHTTPClient(srv.Client()), WithLogger(quietLogger))
	require.NoError(t, err)

	_, err = s.Summarize(context.Background(), Request{Content: "text", Language: "English"})
	require.ErrorIs(t, err, errEmptyResponse)
}

func TestSummarize_EmptyContent(t *testing.T) {
	s := &Summarizer{
		generate: func(context.Context, string, string, int) (string, error) {
			t.Fatal("generate should not be called")
			return "", nil
		},
		logger: quietLogger,
	}

	_, err := s.Summarize(context.Background(), Request{Content: "   "})
	require.Error(t, err)
}

func TestSummarize_Defaults(t *testing.T) {
	var gotPrompt string
	var gotTokens int
	s := &Summarizer{
		generate: func(_ context.Context, _ string, prompt string, maxTokens int) (string, error) {
			gotPrompt, gotTokens = prompt, maxTokens
			return "ok", nil
		},
		model:  "fake",
		logger: quietLogger,
	}

	_, err := s.Summarize(context.Background(), Request{
		Content: "The quick brown fox jumps over the lazy dog while the farmer watches from the porch.",
	})
	require.NoError(t, err)
	require.Contains(t, gotPrompt, "in about 300 words")
	require.Contains(t, gotPrompt, "Use a professional tone.")
	require.Contains(t, gotPrompt, "Write the summary in English.")
	require.Equal(t, maxTokensFor(300), gotTokens)
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"The weather today is sunny and warm, perfect for a walk in the park with friends.", "English"},
		{"Das Wetter ist heute sonnig und warm, perfekt für einen Spaziergang im Park mit Freunden.", "German"},
		{"Il fait beau et chaud aujourd'hui, parfait pour une promenade dans le parc avec des amis.", "French"},
		{"", defaultLanguage},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, DetectLanguage(tt.text), tt.text)
	}
}

func TestNormalizeEndpoints(t *testing.T) {
	require.Equal(t, "", normalizeOpenAIBaseURL(""))
	require.Equal(t, "https://proxy.example.com/v1", normalizeOpenAIBaseURL("https://proxy.example.com"))
	require.Equal(t, "https://proxy.example.com/v1", normalizeOpenAIBaseURL("https://proxy.example.com/v1/"))

	require.Equal(t, "https://api.openai.com", normalizeOpenAICompatibleEndpoint(""))
	require.Equal(t, "http://localhost:11434", normalizeOpenAICompatibleEndpoint("http://localhost:11434/v1"))
	require.Equal(t, "http://localhost:11434", normalizeOpenAICompatibleEndpoint("http://localhost:11434/"))
}
