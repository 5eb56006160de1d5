package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-screening-backend/internal/usecase"
)

func TestHealthCheck(t *testing.T) {
	t.Run("Should report ok with the configured runtime mode", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(nil, "gemini", "file")

		out := uc.Check(context.Background())

		assert.Equal(t, "ok", out["status"])
		assert.Equal(t, "gemini", out["provider"])
		assert.Equal(t, "file", out["storage"])
		assert.Equal(t, "disabled", out["redis"])
		assert.NotContains(t, out, "database")
	})
}
