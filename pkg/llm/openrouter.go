package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"go-screening-backend/pkg/logger"
)

// OpenRouterClient speaks the OpenAI-compatible chat completions API.
// The base URL is configurable so tests can point it at a stub server.
type OpenRouterClient struct {
	http        *resty.Client
	model       string
	temperature float64
	policy      RetryPolicy
}

func NewOpenRouterClient(baseURL, apiKey, model string, temperature float64) (*OpenRouterClient, error) {
	if apiKey == "" {
		return nil, errors.New("llm: openrouter API key is empty")
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")
	return &OpenRouterClient{
		http:        client,
		model:       model,
		temperature: temperature,
		policy:      DefaultRetryPolicy(),
	}, nil
}

// WithRetryPolicy replaces the retry policy and returns the client.
func (o *OpenRouterClient) WithRetryPolicy(p RetryPolicy) *OpenRouterClient {
	o.policy = p
	return o
}

func (o *OpenRouterClient) Provider() string { return "openrouter" }

func (o *OpenRouterClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	messages := make([]map[string]string, 0, 2)
	if system != "" {
		messages = append(messages, map[string]string{"role": "system", "content": system})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	payload := map[string]any{
		"model":       o.model,
		"temperature": o.temperature,
		"messages":    messages,
	}

	return o.policy.run(ctx, func(ctx context.Context) (string, error) {
		resp, err := o.http.R().
			SetContext(ctx).
			SetBody(payload).
			Post("/chat/completions")
		if err != nil {
			return "", err
		}
		body := resp.String()
		if resp.StatusCode() != 200 {
			if gjson.Get(body, "error.code").String() == "insufficient_quota" {
				logger.Log.Warn("openrouter quota exhausted", "model", o.model)
				return "", fmt.Errorf("%w: %s", ErrQuotaExhausted, gjson.Get(body, "error.message").String())
			}
			return "", &HTTPError{Status: resp.StatusCode(), Body: truncateBody(body)}
		}
		content := gjson.Get(body, "choices.0.message.content").String()
		if strings.TrimSpace(content) == "" {
			return "", errors.New("llm: empty content in response")
		}
		return content, nil
	}, openRouterRetryable)
}

func openRouterRetryable(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status == 429 || httpErr.Status >= 500
	}
	if strings.Contains(err.Error(), "context canceled") {
		return false
	}
	// Network failures, per-attempt timeouts and malformed payloads are
	// all worth another try.
	return true
}

func truncateBody(s string) string {
	const max = 300
	s = strings.TrimSpace(s)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
