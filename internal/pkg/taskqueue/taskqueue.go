package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	redisc "github.com/serenitysphere/core/internal/pkg/redis"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// Task is a unit of background work stored in Redis.
type Task struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Status    TaskStatus      `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	DedupKey  string          `json:"dedup_key,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (t *Task) finished() bool {
	return t.Status == TaskCompleted || t.Status == TaskFailed
}

const (
	keyPrefix   = "serenity:task:"
	keyIndex    = "serenity:tasks:index"  // sorted set: score=created_at, member=task_id
	keyDedupSet = "serenity:tasks:dedup:" // hash: dedup_key -> task_id
	taskTTL     = 24 * time.Hour

	// A pending task untouched for this long no longer blocks new work with
	// the same dedup key; its worker is assumed dead.
	staleAfter = 10 * time.Minute
)

// releaseDedup drops the dedup entry only while it still points at the task
// being updated; a newer task may already own the key.
var releaseDedup = redis.NewScript(`
if redis.call("HGET", KEYS[1], ARGV[1]) == ARGV[2] then
	return redis.call("HDEL", KEYS[1], ARGV[1])
end
return 0
`)

var ErrTaskNotFound = errors.New("task not found")

// Service manages the Redis-backed task queue.
type Service struct {
	rc  *redisc.Client
	now func() time.Time
}

func NewService(rc *redisc.Client) *Service {
	return &Service{rc: rc, now: time.Now}
}

func (s *Service) taskKey(id string) string { return keyPrefix + id }

// Enqueue creates a new task unless a pending task with the same dedup key
// exists, in which case that task is returned and created is false. A task
// that is already running does not absorb new work: it may have read its
// inputs before the caller's write.
func (s *Service) Enqueue(ctx context.Context, taskType string, payload any, dedupKey string) (task *Task, created bool, err error) {
	if dedupKey != "" {
		existing, err := s.rc.Raw().HGet(ctx, keyDedupSet+taskType, dedupKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, false, err
		}
		if existing != "" {
			t, err := s.GetByID(ctx, existing)
			if err != nil && !errors.Is(err, ErrTaskNotFound) {
				return nil, false, err
			}
			if t != nil && t.Status == TaskPending && s.now().Sub(t.UpdatedAt) < staleAfter {
				return t, false, nil
			}
		}
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, false, err
	}

	now := s.now()
	task = &Task{
		ID:        uuid.New().String(),
		Type:      taskType,
		Payload:   payloadBytes,
		Status:    TaskPending,
		DedupKey:  dedupKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
	data, err := json.Marshal(task)
	if err != nil {
		return nil, false, err
	}

	pipe := s.rc.Raw().TxPipeline()
	pipe.Set(ctx, s.taskKey(task.ID), data, taskTTL)
	pipe.ZAdd(ctx, keyIndex, redis.Z{
		Score:  float64(task.CreatedAt.UnixMilli()),
		Member: task.ID,
	})
	if dedupKey != "" {
		pipe.HSet(ctx, keyDedupSet+taskType, dedupKey, task.ID)
		pipe.Expire(ctx, keyDedupSet+taskType, taskTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, false, err
	}
	return task, true, nil
}

// GetByID retrieves a task by its ID.
func (s *Service) GetByID(ctx context.Context, id string) (*Task, error) {
	data, err := s.rc.Raw().Get(ctx, s.taskKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	var task Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("decode task %s: %w", id, err)
	}
	return &task, nil
}

// UpdateStatus sets a task's status and optional result/error. Any move out
// of pending releases the task's dedup key.
func (s *Service) UpdateStatus(ctx context.Context, id string, status TaskStatus, result any, errMsg string) error {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	task.Status = status
	task.UpdatedAt = s.now()
	task.Error = errMsg
	if result != nil {
		if task.Result, err = json.Marshal(result); err != nil {
			return err
		}
	}

	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	if err := s.rc.Raw().Set(ctx, s.taskKey(id), data, taskTTL).Err(); err != nil {
		return err
	}
	if status != TaskPending && task.DedupKey != "" {
		return releaseDedup.Run(ctx, s.rc.Raw(), []string{keyDedupSet + task.Type}, task.DedupKey, task.ID).Err()
	}
	return nil
}

// PurgeFinished drops finished tasks created before the cutoff along with
// index entries whose task key already expired. It returns how many index
// entries were removed.
func (s *Service) PurgeFinished(ctx context.Context, before time.Time) (int, error) {
	ids, err := s.rc.Raw().ZRangeByScore(ctx, keyIndex, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", before.UnixMilli()),
	}).Result()
	if err != nil {
		return 0, err
	}

	removed := 0
	pipe := s.rc.Raw().TxPipeline()
	for _, id := range ids {
		task, err := s.GetByID(ctx, id)
		switch {
		case errors.Is(err, ErrTaskNotFound):
		case err != nil:
			return removed, err
		case !task.finished():
			continue
		default:
			pipe.Del(ctx, s.taskKey(id))
		}
		pipe.ZRem(ctx, keyIndex, id)
		removed++
	}
	if removed == 0 {
		return 0, nil
	}
	_, err = pipe.Exec(ctx)
	return removed, err
}
