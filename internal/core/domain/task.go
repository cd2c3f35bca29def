package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NewID creates a unique identifier for documents, sessions and tasks.
func NewID() string {
	return uuid.NewString()
}

// TaskType identifies the type of background task
type TaskType string

const (
	// TaskTypeIngestDocument runs the ingestion pipeline for one upload
	TaskTypeIngestDocument TaskType = "ingest_document"
)

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task represents a background job to be processed by workers.
type Task struct {
	ID          string          `json:"id"`
	Type        TaskType        `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Status      TaskStatus      `json:"status"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IngestTaskPayload is the payload for ingest_document tasks.
type IngestTaskPayload struct {
	Input      IngestInput         `json:"input"`
	Resolution DuplicateResolution `json:"resolution"`
}

// NewIngestTask builds a pending ingestion task for an upload.
func NewIngestTask(input IngestInput, resolution DuplicateResolution) (*Task, error) {
	payload, err := json.Marshal(IngestTaskPayload{Input: input, Resolution: resolution})
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Task{
		ID:          NewID(),
		Type:        TaskTypeIngestDocument,
		Payload:     payload,
		Status:      TaskStatusPending,
		MaxAttempts: 3,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
