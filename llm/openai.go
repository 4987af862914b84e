package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const openAIChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

// OpenAIProvider implements the Provider interface against the OpenAI chat
// completions API over plain HTTP.
type OpenAIProvider struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	debug       bool
}

// NewOpenAIProvider creates a new OpenAIProvider with options.
func NewOpenAIProvider(apiKey, model string, maxTokens int, temperature float64, timeout time.Duration, debug bool) *OpenAIProvider {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		timeout:     timeout,
		debug:       debug,
	}
}

// openAIRequestPayload defines the structure for the OpenAI API request.
type openAIRequestPayload struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

// openAIMessage defines a message in the conversation for OpenAI.
type openAIMessage struct {
	Role    string `json:"role"` // "system", "user", or "assistant"
	Content string `json:"content"`
}

// openAIResponsePayload defines the structure for the OpenAI API response.
type openAIResponsePayload struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []openAIChoice `json:"choices"`
}

type openAIChoice struct {
	Index        int           `json:"index"`
	Message      openAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// Complete sends the prompt pair to OpenAI and returns the raw completion
// text. Timeouts and non-2xx statuses surface as errors; the caller decides
// whether to fall back.
func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key is not set")
	}

	payload := openAIRequestPayload{
		Model: p.model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal OpenAI request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIChatCompletionsURL, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create OpenAI request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: p.timeout}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		if strings.Contains(err.Error(), "context deadline exceeded") || strings.Contains(err.Error(), "Client.Timeout exceeded") {
			return "", fmt.Errorf("OpenAI API request timed out after %v", p.timeout)
		}
		return "", fmt.Errorf("failed to call OpenAI: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(resp.Body)
	if p.debug {
		fmt.Printf("[LLM] OpenAI %s in %v (status %s, bytes %d)\n", p.model, time.Since(start), resp.Status, len(raw))
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API error (%s): %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var parsed openAIResponsePayload
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal OpenAI response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("OpenAI response contained no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
