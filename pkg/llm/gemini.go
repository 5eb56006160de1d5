package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"go-screening-backend/pkg/logger"
)

// GeminiClient talks to the Gemini API through the official SDK.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	policy      RetryPolicy
}

func NewGeminiClient(ctx context.Context, apiKey, model string, temperature float64) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("llm: gemini API key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create gemini client: %w", err)
	}
	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: float32(temperature),
		policy:      DefaultRetryPolicy(),
	}, nil
}

// WithRetryPolicy replaces the retry policy and returns the client.
func (g *GeminiClient) WithRetryPolicy(p RetryPolicy) *GeminiClient {
	g.policy = p
	return g
}

func (g *GeminiClient) Provider() string { return "gemini" }

func (g *GeminiClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	full := prompt
	if system != "" {
		full = system + "\n\n" + prompt
	}
	return g.policy.run(ctx, func(ctx context.Context) (string, error) {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(full), &genai.GenerateContentConfig{
			Temperature: genai.Ptr(g.temperature),
		})
		if err != nil {
			return "", g.classify(err)
		}
		if err := validateGeminiResponse(resp); err != nil {
			return "", err
		}
		return resp.Text(), nil
	}, geminiRetryable)
}

// classify maps SDK errors onto the shared taxonomy so the retry loop
// can short-circuit quota failures.
func (g *GeminiClient) classify(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 && strings.Contains(strings.ToLower(apiErr.Message), "quota") {
			logger.Log.Warn("gemini quota exhausted", "model", g.model)
			return fmt.Errorf("%w: %s", ErrQuotaExhausted, apiErr.Message)
		}
	}
	return err
}

func geminiRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "context canceled") {
		return false
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		case 400, 401, 403, 404:
			return false
		}
	}

	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "deadline exceeded") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "EOF") {
		return true
	}
	// Empty or truncated payloads are transient often enough to retry.
	return strings.Contains(msg, "response")
}

func validateGeminiResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return errors.New("llm: response is nil")
	}
	if len(resp.Candidates) == 0 {
		return errors.New("llm: no candidates in response")
	}
	if resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return errors.New("llm: empty content in response")
	}
	return nil
}
