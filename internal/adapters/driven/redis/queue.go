package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TaskQueue = (*Queue)(nil)

const (
	taskList      = "snapkeep:tasks"
	taskKeyPrefix = "snapkeep:task:"

	// TTL for task records, so abandoned tasks don't accumulate
	taskTTL = 24 * time.Hour
)

// Queue implements TaskQueue on a Redis list. Task bodies live under
// their own keys; the list carries IDs only. This is the preferred
// queue; the Postgres queue is the fallback.
type Queue struct {
	client *redis.Client
}

// NewQueue creates a new Redis-backed task queue
func NewQueue(client *redis.Client) (*Queue, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &Queue{client: client}, nil
}

// Enqueue adds a task to the queue for processing
func (q *Queue) Enqueue(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return errors.New("task is required")
	}

	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	pipe := q.client.Pipeline()
	pipe.Set(ctx, taskKeyPrefix+task.ID, data, taskTTL)
	pipe.LPush(ctx, taskList, task.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

// DequeueWithTimeout retrieves the next available task, waiting up to
// timeout seconds. Returns nil, nil when the timeout elapses with no
// task available.
func (q *Queue) DequeueWithTimeout(ctx context.Context, timeout int) (*domain.Task, error) {
	res, err := q.client.BRPop(ctx, time.Duration(timeout)*time.Second, taskList).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop task: %w", err)
	}
	if len(res) < 2 {
		return nil, nil
	}

	task, err := q.getTask(ctx, res[1])
	if err != nil {
		return nil, err
	}
	if task == nil {
		// Task body expired, skip the stale ID
		return nil, nil
	}

	task.Status = domain.TaskStatusProcessing
	task.Attempts++
	task.UpdatedAt = time.Now().UTC()
	if err := q.putTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Ack acknowledges successful completion of a task
func (q *Queue) Ack(ctx context.Context, taskID string) error {
	task, err := q.getTask(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return domain.ErrNotFound
	}

	task.Status = domain.TaskStatusCompleted
	task.Error = ""
	task.UpdatedAt = time.Now().UTC()
	return q.putTask(ctx, task)
}

// Nack requeues a failed task, or marks it failed once MaxAttempts is
// exhausted.
func (q *Queue) Nack(ctx context.Context, taskID string, reason string) error {
	task, err := q.getTask(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return domain.ErrNotFound
	}

	task.Error = reason
	task.UpdatedAt = time.Now().UTC()

	if task.Attempts >= task.MaxAttempts {
		task.Status = domain.TaskStatusFailed
		return q.putTask(ctx, task)
	}

	task.Status = domain.TaskStatusPending
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	pipe := q.client.Pipeline()
	pipe.Set(ctx, taskKeyPrefix+task.ID, data, taskTTL)
	pipe.LPush(ctx, taskList, task.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to requeue task: %w", err)
	}
	return nil
}

// Ping checks if the queue backend is healthy
func (q *Queue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Close cleans up resources
func (q *Queue) Close() error {
	return q.client.Close()
}

func (q *Queue) getTask(ctx context.Context, taskID string) (*domain.Task, error) {
	data, err := q.client.Get(ctx, taskKeyPrefix+taskID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	var task domain.Task
	if err := json.Unmarshal([]byte(data), &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return &task, nil
}

func (q *Queue) putTask(ctx context.Context, task *domain.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}
	return q.client.Set(ctx, taskKeyPrefix+task.ID, data, taskTTL).Err()
}
