package taskqueue

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	redisc "github.com/serenitysphere/core/internal/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	rc, err := redisc.Connect(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	return NewService(rc)
}

func TestEnqueueDedup(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	key := uuid.NewString()

	first, created, err := s.Enqueue(ctx, "test:dedup", map[string]string{"k": key}, key)
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := s.Enqueue(ctx, "test:dedup", nil, key)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	require.NoError(t, s.UpdateStatus(ctx, first.ID, TaskCompleted, map[string]int{"n": 1}, ""))
	done, err := s.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, TaskCompleted, done.Status)
	assert.JSONEq(t, `{"n":1}`, string(done.Result))

	next, created, err := s.Enqueue(ctx, "test:dedup", nil, key)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, next.ID)
}

func TestRunningTaskDoesNotBlock(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	key := uuid.NewString()

	first, _, err := s.Enqueue(ctx, "test:running", nil, key)
	require.NoError(t, err)
	require.NoError(t, s.UpdateStatus(ctx, first.ID, TaskRunning, nil, ""))

	second, created, err := s.Enqueue(ctx, "test:running", nil, key)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, second.ID)

	// Finishing the older task must not free the key the newer one holds.
	require.NoError(t, s.UpdateStatus(ctx, first.ID, TaskCompleted, nil, ""))
	again, created, err := s.Enqueue(ctx, "test:running", nil, key)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, second.ID, again.ID)
}

func TestStaleTaskDoesNotBlock(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	key := uuid.NewString()

	first, _, err := s.Enqueue(ctx, "test:stale", nil, key)
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(staleAfter + time.Minute) }
	second, created, err := s.Enqueue(ctx, "test:stale", nil, key)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestPurgeFinished(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	done, _, err := s.Enqueue(ctx, "test:purge", nil, "")
	require.NoError(t, err)
	pending, _, err := s.Enqueue(ctx, "test:purge", nil, "")
	require.NoError(t, err)
	require.NoError(t, s.UpdateStatus(ctx, done.ID, TaskFailed, nil, "boom"))

	_, err = s.PurgeFinished(ctx, time.Now().Add(time.Second))
	require.NoError(t, err)

	_, err = s.GetByID(ctx, done.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	_, err = s.GetByID(ctx, pending.ID)
	assert.NoError(t, err)
}

func TestGetMissing(t *testing.T) {
	s := newService(t)
	_, err := s.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
