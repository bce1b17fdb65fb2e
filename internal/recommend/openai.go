package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OpenAICompat calls any chat/completions endpoint that speaks the OpenAI
// wire format. Perplexity and Groq both do.
type OpenAICompat struct {
	name   string
	apiKey string
	url    string
	model  string
	client *http.Client
}

func NewPerplexity(apiKey string) *OpenAICompat {
	return &OpenAICompat{
		name:   "perplexity",
		apiKey: apiKey,
		url:    "https://api.perplexity.ai/chat/completions",
		model:  "sonar",
		client: defaultHTTPClient,
	}
}

func NewGroq(apiKey string) *OpenAICompat {
	return &OpenAICompat{
		name:   "groq",
		apiKey: apiKey,
		url:    "https://api.groq.com/openai/v1/chat/completions",
		model:  "llama-3.3-70b-versatile",
		client: defaultHTTPClient,
	}
}

func (o *OpenAICompat) Name() string { return o.name }

func (o *OpenAICompat) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("marshal %s request: %w", o.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build %s request: %w", o.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call %s: %w", o.name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", o.name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Provider: o.name, Status: resp.StatusCode, Body: truncate(string(raw), 200)}
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode %s response: %w", o.name, err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%s response has no choices", o.name)
	}
	return parsed.Choices[0].Message.Content, nil
}
