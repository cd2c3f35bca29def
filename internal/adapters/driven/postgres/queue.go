package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driven"
)

// Ensure Queue implements TaskQueue
var _ driven.TaskQueue = (*Queue)(nil)

// Queue implements TaskQueue using PostgreSQL with SKIP LOCKED so only
// one worker claims each task. This is the fallback queue when Redis is
// not available.
type Queue struct {
	db *DB
}

// NewQueue creates a new PostgreSQL-backed task queue
func NewQueue(db *DB) *Queue {
	return &Queue{db: db}
}

// Enqueue adds a task to the queue
func (q *Queue) Enqueue(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return errors.New("task is required")
	}

	query := `
		INSERT INTO tasks (id, type, payload, status, attempts, max_attempts, error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.db.ExecContext(ctx, query,
		task.ID,
		task.Type,
		[]byte(task.Payload),
		task.Status,
		task.Attempts,
		task.MaxAttempts,
		task.Error,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// DequeueWithTimeout retrieves the next pending task, waiting up to
// timeout seconds before giving up. Returns nil, nil when nothing is
// available.
func (q *Queue) DequeueWithTimeout(ctx context.Context, timeout int) (*domain.Task, error) {
	deadline := time.Now().Add(time.Duration(timeout) * time.Second)
	for {
		task, err := q.dequeue(ctx)
		if err != nil || task != nil {
			return task, err
		}
		if timeout <= 0 || time.Now().After(deadline) {
			return nil, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
}

func (q *Queue) dequeue(ctx context.Context) (*domain.Task, error) {
	var task *domain.Task

	err := q.db.Transaction(ctx, func(tx *sql.Tx) error {
		query := `
			SELECT id, type, payload, status, attempts, max_attempts, error, created_at, updated_at
			FROM tasks
			WHERE status = $1
			ORDER BY created_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		`

		var t domain.Task
		var payload []byte
		err := tx.QueryRowContext(ctx, query, domain.TaskStatusPending).Scan(
			&t.ID,
			&t.Type,
			&payload,
			&t.Status,
			&t.Attempts,
			&t.MaxAttempts,
			&t.Error,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("select task: %w", err)
		}
		t.Payload = payload

		now := time.Now()
		_, err = tx.ExecContext(ctx,
			`UPDATE tasks SET status = $1, attempts = attempts + 1, updated_at = $2 WHERE id = $3`,
			domain.TaskStatusProcessing, now, t.ID,
		)
		if err != nil {
			return fmt.Errorf("mark processing: %w", err)
		}

		t.Status = domain.TaskStatusProcessing
		t.Attempts++
		t.UpdatedAt = now
		task = &t
		return nil
	})
	return task, err
}

// Ack marks a task as completed
func (q *Queue) Ack(ctx context.Context, taskID string) error {
	result, err := q.db.ExecContext(ctx,
		`UPDATE tasks SET status = $1, error = '', updated_at = $2 WHERE id = $3`,
		domain.TaskStatusCompleted, time.Now(), taskID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Nack requeues a failed task, or marks it failed once attempts are
// exhausted.
func (q *Queue) Nack(ctx context.Context, taskID string, reason string) error {
	query := `
		UPDATE tasks
		SET status = CASE WHEN attempts >= max_attempts THEN $1 ELSE $2 END,
		    error = $3,
		    updated_at = $4
		WHERE id = $5
	`
	result, err := q.db.ExecContext(ctx, query,
		domain.TaskStatusFailed, domain.TaskStatusPending, reason, time.Now(), taskID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Ping checks if the queue backend is healthy
func (q *Queue) Ping(ctx context.Context) error {
	return q.db.Ping(ctx)
}

// Close is a no-op; the shared DB pool is closed by its owner
func (q *Queue) Close() error {
	return nil
}
