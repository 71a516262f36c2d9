package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchdeck-ai-api/internal/config"
	"pitchdeck-ai-api/internal/domain/entity"
	apperrors "pitchdeck-ai-api/pkg/errors"
)

func newTestStore(ttl time.Duration) *SessionStore {
	return NewSessionStore(&config.Config{
		Session: config.SessionConfig{TTL: ttl, SweepInterval: time.Minute},
	})
}

func TestSessionStore_PutGetDelete(t *testing.T) {
	store := newTestStore(time.Hour)
	ctx := context.Background()

	sess := &entity.Session{ID: "s1", State: entity.StateNoOutline, Context: entity.StartupContext{Topic: "fintech"}}
	require.NoError(t, store.Put(ctx, sess))
	assert.False(t, sess.UpdatedAt.IsZero())

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "fintech", got.Context.Topic)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestSessionStore_GetMissing(t *testing.T) {
	store := newTestStore(time.Hour)
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestSessionStore_ExpiredSessionNotReturned(t *testing.T) {
	store := newTestStore(time.Hour)
	ctx := context.Background()

	sess := &entity.Session{ID: "s1"}
	require.NoError(t, store.Put(ctx, sess))

	// 把最后活跃时间拨回过期线之外
	sess.UpdatedAt = time.Now().UTC().Add(-2 * time.Hour)
	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestSessionStore_PutRefreshesExpiry(t *testing.T) {
	store := newTestStore(time.Hour)
	ctx := context.Background()

	sess := &entity.Session{ID: "s1"}
	require.NoError(t, store.Put(ctx, sess))
	sess.UpdatedAt = time.Now().UTC().Add(-2 * time.Hour)

	// 重新写入应刷新 UpdatedAt，会话重新可见
	require.NoError(t, store.Put(ctx, sess))
	_, err := store.Get(ctx, "s1")
	assert.NoError(t, err)
}

func TestSessionStore_SweepRemovesExpired(t *testing.T) {
	store := newTestStore(time.Hour)
	ctx := context.Background()

	fresh := &entity.Session{ID: "fresh"}
	stale := &entity.Session{ID: "stale"}
	require.NoError(t, store.Put(ctx, fresh))
	require.NoError(t, store.Put(ctx, stale))
	stale.UpdatedAt = time.Now().UTC().Add(-2 * time.Hour)

	store.sweep(ctx)

	_, err := store.Get(ctx, "fresh")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "stale")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestSessionStore_ZeroTTLNeverExpires(t *testing.T) {
	store := newTestStore(0)
	ctx := context.Background()

	sess := &entity.Session{ID: "s1"}
	require.NoError(t, store.Put(ctx, sess))
	sess.UpdatedAt = time.Now().UTC().Add(-100 * time.Hour)

	_, err := store.Get(ctx, "s1")
	assert.NoError(t, err)
}
