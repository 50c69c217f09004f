package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"

	"github.com/dtnitsch/url-summarizer/models"
)

const (
	ProviderOpenAI           = "openai"
	ProviderAnthropic        = "anthropic"
	ProviderOpenAICompatible = "openai-compatible"

	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
)

var errEmptyResponse = errors.New("empty response from AI")

// generateFunc sends one system/user prompt pair and returns the reply text.
type generateFunc func(ctx context.Context, systemPrompt, prompt string, maxTokens int) (string, error)

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	switch t {
	case "", ProviderOpenAI:
		return ProviderOpenAI
	case "openaicompatible":
		return ProviderOpenAICompatible
	}
	return t
}

// buildGenerator returns the generate function for provider along with the
// resolved model ID.
func buildGenerator(provider models.ProviderConfig, client *http.Client) (generateFunc, string, error) {
	apiKey := strings.TrimSpace(provider.APIKey)
	if apiKey == "" {
		return nil, "", fmt.Errorf("AI provider api key is empty (set %s or provider.api_key)", models.APIKeyEnv)
	}

	modelID := strings.TrimSpace(provider.Model)
	endpoint := strings.TrimSpace(provider.Endpoint)

	switch normalizeProviderType(provider.Type) {
	case ProviderAnthropic:
		if modelID == "" {
			modelID = defaultAnthropicModel
		}
		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			anthropicoption.WithMaxRetries(0),
		}
		if endpoint != "" {
			opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
		}
		model := jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(anthropicclient.NewClient(opts...)))
		return languageModelGenerator(model), modelID, nil

	case ProviderOpenAI:
		if modelID == "" {
			modelID = defaultOpenAIModel
		}
		opts := []openaioption.RequestOption{
			openaioption.WithAPIKey(apiKey),
			openaioption.WithMaxRetries(0),
		}
		if normalized := normalizeOpenAIBaseURL(endpoint); normalized != "" {
			opts = append(opts, openaioption.WithBaseURL(normalized))
		}
		model := jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(openaiclient.NewClient(opts...)))
		return languageModelGenerator(model), modelID, nil

	case ProviderOpenAICompatible:
		if modelID == "" {
			modelID = defaultOpenAIModel
		}
		base := normalizeOpenAICompatibleEndpoint(endpoint)
		return chatCompletionsGenerator(client, base, apiKey, modelID), modelID, nil

	default:
		return nil, "", fmt.Errorf("unknown AI provider type: %s (use: openai, anthropic, or openai-compatible)", provider.Type)
	}
}

func languageModelGenerator(model jetapi.LanguageModel) generateFunc {
	return func(ctx context.Context, systemPrompt, prompt string, maxTokens int) (string, error) {
		resp, err := jetai.GenerateText(
			ctx,
			buildPromptMessages(systemPrompt, prompt),
			jetai.WithModel(model),
			jetai.WithMaxOutputTokens(maxTokens),
		)
		if err != nil {
			return "", err
		}

		var full strings.Builder
		for _, block := range resp.Content {
			textBlock, ok := block.(*jetapi.TextBlock)
			if !ok || textBlock.Text == "" {
				continue
			}
			full.WriteString(textBlock.Text)
		}
		if strings.TrimSpace(full.String()) == "" {
			return "", errEmptyResponse
		}
		return full.String(), nil
	}
}

func buildPromptMessages(systemPrompt, prompt string) []jetapi.Message {
	messages := make([]jetapi.Message, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, &jetapi.SystemMessage{Content: systemPrompt})
	}
	messages = append(messages, &jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)})
	return messages
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// chatCompletionsGenerator talks to any server exposing /v1/chat/completions.
func chatCompletionsGenerator(client *http.Client, base, apiKey, modelID string) generateFunc {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	return func(ctx context.Context, systemPrompt, prompt string, maxTokens int) (string, error) {
		messages := make([]chatMessage, 0, 2)
		if strings.TrimSpace(systemPrompt) != "" {
			messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
		}
		messages = append(messages, chatMessage{Role: "user", Content: prompt})

		body, err := json.Marshal(chatRequest{Model: modelID, Messages: messages, MaxTokens: maxTokens})
		if err != nil {
			return "", fmt.Errorf("failed to encode chat request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/v1/chat/completions", bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("failed to create chat request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return "", fmt.Errorf("failed to call chat completions: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("failed to read chat response: %w", err)
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return "", fmt.Errorf("openai-compatible error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		}

		var result chatResponse
		if err := json.Unmarshal(respBody, &result); err != nil {
			return "", fmt.Errorf("failed to decode chat response: %w", err)
		}
		if result.Error != nil && strings.TrimSpace(result.Error.Message) != "" {
			return "", fmt.Errorf("openai-compatible error: %s", result.Error.Message)
		}
		if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
			return "", errEmptyResponse
		}
		return result.Choices[0].Message.Content, nil
	}
}

func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}

func normalizeOpenAICompatibleEndpoint(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return "https://api.openai.com"
	}

	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimSuffix(strings.TrimRight(base, "/"), "/v1")
	}

	parsed.Path = strings.TrimSuffix(strings.TrimRight(parsed.Path, "/"), "/v1")
	return strings.TrimRight(parsed.String(), "/")
}
