package llm_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"go-screening-backend/pkg/llm"
	"go-screening-backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("error")
	os.Exit(m.Run())
}

func fastPolicy() llm.RetryPolicy {
	return llm.RetryPolicy{
		MaxAttempts:    3,
		BaseDelay:      time.Millisecond,
		MaxDelay:       2 * time.Millisecond,
		RequestTimeout: 5 * time.Second,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *llm.OpenRouterClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := llm.NewOpenRouterClient(srv.URL, "test-key", "test-model", 0.3)
	assert.NoError(t, err)
	return client.WithRetryPolicy(fastPolicy())
}

func TestOpenRouterComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("Should send the chat payload and return the content", func(t *testing.T) {
		var gotAuth, gotPath string
		var gotBody []byte
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotPath = r.URL.Path
			gotBody, _ = io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"choices": [{"message": {"content": "Q1 text"}}]}`))
		})

		out, err := client.Complete(ctx, "you are an interviewer", "ask about Go")
		assert.NoError(t, err)
		assert.Equal(t, "Q1 text", out)
		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t, "/chat/completions", gotPath)

		body := string(gotBody)
		assert.Equal(t, "test-model", gjson.Get(body, "model").String())
		assert.Equal(t, "system", gjson.Get(body, "messages.0.role").String())
		assert.Equal(t, "ask about Go", gjson.Get(body, "messages.1.content").String())
	})

	t.Run("Should retry transient server errors", func(t *testing.T) {
		var attempts atomic.Int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if attempts.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"choices": [{"message": {"content": "recovered"}}]}`))
		})

		out, err := client.Complete(ctx, "", "prompt")
		assert.NoError(t, err)
		assert.Equal(t, "recovered", out)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("Should stop immediately on quota exhaustion", func(t *testing.T) {
		var attempts atomic.Int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusPaymentRequired)
			w.Write([]byte(`{"error": {"code": "insufficient_quota", "message": "billing limit reached"}}`))
		})

		_, err := client.Complete(ctx, "", "prompt")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, llm.ErrQuotaExhausted))
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("Should not retry client errors", func(t *testing.T) {
		var attempts atomic.Int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": {"message": "model not found"}}`))
		})

		_, err := client.Complete(ctx, "", "prompt")
		assert.Error(t, err)
		var httpErr *llm.HTTPError
		assert.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("Should give up after the attempt budget", func(t *testing.T) {
		var attempts atomic.Int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.Complete(ctx, "", "prompt")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "attempts exhausted")
		assert.Equal(t, int32(3), attempts.Load())

		var httpErr *llm.HTTPError
		assert.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
	})

	t.Run("Should treat empty content as a failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices": []}`))
		})

		_, err := client.Complete(ctx, "", "prompt")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "empty content")
	})
}

func TestNewOpenRouterClient(t *testing.T) {
	t.Run("Should require an API key", func(t *testing.T) {
		_, err := llm.NewOpenRouterClient("https://example.com", "", "model", 0.3)
		assert.Error(t, err)
	})
}
