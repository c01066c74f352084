package trend

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/serenitysphere/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
)

const TaskTypeAnalyze = "trend:analyze"

// InlineTrigger runs analysis synchronously after a write. Failures are
// logged; the write that caused them has already committed.
type InlineTrigger struct {
	svc    *Service
	logger *zap.Logger
}

func NewInlineTrigger(svc *Service, logger *zap.Logger) *InlineTrigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InlineTrigger{svc: svc, logger: logger.Named("TrendTrigger")}
}

func (t *InlineTrigger) Trigger(ctx context.Context, ownerID string) {
	if _, err := t.svc.Analyze(ctx, ownerID); err != nil {
		t.logger.Warn("trend analysis failed", zap.String("owner", ownerID), zap.Error(err))
	}
}

type analyzePayload struct {
	OwnerID string `json:"owner_id"`
}

// QueueTrigger records an analysis task in Redis keyed by owner and runs it in
// the background. A burst of writes for one owner collapses into the task
// that is still pending.
type QueueTrigger struct {
	svc    *Service
	queue  *taskqueue.Service
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewQueueTrigger(svc *Service, queue *taskqueue.Service, logger *zap.Logger) *QueueTrigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueueTrigger{svc: svc, queue: queue, logger: logger.Named("TrendQueue")}
}

func (t *QueueTrigger) Trigger(ctx context.Context, ownerID string) {
	task, created, err := t.queue.Enqueue(ctx, TaskTypeAnalyze, analyzePayload{OwnerID: ownerID}, ownerID)
	if err != nil {
		t.logger.Warn("enqueue trend analysis failed, running inline", zap.String("owner", ownerID), zap.Error(err))
		if _, err := t.svc.Analyze(ctx, ownerID); err != nil {
			t.logger.Warn("trend analysis failed", zap.String("owner", ownerID), zap.Error(err))
		}
		return
	}
	if !created {
		return
	}
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.execute(context.WithoutCancel(ctx), task)
	}()
}

func (t *QueueTrigger) execute(ctx context.Context, task *taskqueue.Task) {
	var p analyzePayload
	if err := json.Unmarshal(task.Payload, &p); err != nil {
		_ = t.queue.UpdateStatus(ctx, task.ID, taskqueue.TaskFailed, nil, err.Error())
		return
	}
	_ = t.queue.UpdateStatus(ctx, task.ID, taskqueue.TaskRunning, nil, "")

	created, err := t.svc.Analyze(ctx, p.OwnerID)
	if err != nil {
		t.logger.Warn("trend analysis task failed", zap.String("task", task.ID), zap.Error(err))
		_ = t.queue.UpdateStatus(ctx, task.ID, taskqueue.TaskFailed, nil, err.Error())
		return
	}
	kinds := make([]string, len(created))
	for i := range created {
		kinds[i] = string(created[i].Kind)
	}
	_ = t.queue.UpdateStatus(ctx, task.ID, taskqueue.TaskCompleted, map[string]any{"emitted": kinds}, "")
}

// Wait blocks until background tasks started so far have finished.
func (t *QueueTrigger) Wait() { t.wg.Wait() }
