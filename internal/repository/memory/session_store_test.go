package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-screening-backend/internal/domain"
	"go-screening-backend/internal/repository/memory"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Should store and fetch a session", func(t *testing.T) {
		store := memory.NewSessionStore(time.Minute)
		session := &domain.Session{ID: "s1", Phase: domain.PhaseConsent}
		assert.NoError(t, store.Create(ctx, session))

		got, err := store.Get(ctx, "s1")
		assert.NoError(t, err)
		assert.Equal(t, session, got)
	})

	t.Run("Should return nil for unknown sessions", func(t *testing.T) {
		store := memory.NewSessionStore(time.Minute)
		got, err := store.Get(ctx, "missing")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Should expire sessions after the ttl", func(t *testing.T) {
		store := memory.NewSessionStore(10 * time.Millisecond)
		assert.NoError(t, store.Create(ctx, &domain.Session{ID: "s1"}))

		time.Sleep(30 * time.Millisecond)

		got, err := store.Get(ctx, "s1")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Should refresh the ttl on update", func(t *testing.T) {
		store := memory.NewSessionStore(100 * time.Millisecond)
		session := &domain.Session{ID: "s1", Phase: domain.PhaseConsent}
		assert.NoError(t, store.Create(ctx, session))

		time.Sleep(60 * time.Millisecond)
		session.Phase = domain.PhaseName
		assert.NoError(t, store.Update(ctx, session))
		time.Sleep(60 * time.Millisecond)

		got, err := store.Get(ctx, "s1")
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Equal(t, domain.PhaseName, got.Phase)
	})

	t.Run("Should delete sessions", func(t *testing.T) {
		store := memory.NewSessionStore(time.Minute)
		assert.NoError(t, store.Create(ctx, &domain.Session{ID: "s1"}))
		assert.NoError(t, store.Delete(ctx, "s1"))

		got, err := store.Get(ctx, "s1")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
