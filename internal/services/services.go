package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/adanyl0v/taskboard/internal/models"
)

// ErrBackend matches every failure reported by the backing store.
var ErrBackend = errors.New("backend error")

// BackendError is the only error kind a TaskStore operation reports
// for a failed round trip. The snapshot is unchanged when it is returned.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}

// TaskService is what view collaborators need from the task store.
type TaskService interface {
	// LoadAll replaces the snapshot with the full task collection,
	// newest first. On failure the previous snapshot is kept.
	LoadAll(ctx context.Context) error

	// Tasks returns a copy of the current snapshot.
	Tasks() []models.Task

	// GetByID looks the task up in the current snapshot only.
	GetByID(id string) (models.Task, bool)

	// Add creates a task from the form data and reloads the snapshot.
	//
	// It returns a parse error wrapping models.ErrInvalidPriority,
	// models.ErrInvalidStatus or models.ErrInvalidDueDate before any
	// round trip is made.
	Add(ctx context.Context, form models.FormData) error

	// Update overwrites the editable fields of the task with the given
	// ID and reloads the snapshot. Comments are left untouched.
	Update(ctx context.Context, id string, form models.FormData) error

	// Remove deletes the task with the given ID and reloads the snapshot.
	Remove(ctx context.Context, id string) error

	// ToggleStatus flips a completed task back to pending and any
	// other task to completed. Unknown IDs are a no-op.
	ToggleStatus(ctx context.Context, id string) error

	// AddComment appends a comment to the task with the given ID.
	// Unknown task IDs are a no-op.
	AddComment(ctx context.Context, taskID, text string) error

	// RemoveComment drops the comment with the given ID from the task.
	// Unknown task IDs are a no-op and so is an unknown comment ID.
	RemoveComment(ctx context.Context, taskID, commentID string) error

	// Subscribe delivers the current snapshot immediately and every
	// later one on the returned channel until cancel is called.
	Subscribe() (<-chan []models.Task, func())
}
