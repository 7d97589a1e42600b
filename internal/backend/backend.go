// Package backend defines the contract of the remote task collection
// and its drivers.
package backend

import (
	"context"
	"time"

	"github.com/adanyl0v/taskboard/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Backend interface {
	// FetchAll returns every task ordered by creation time, newest first.
	FetchAll(ctx context.Context) ([]models.Task, error)

	// Insert stores a new task record as is.
	Insert(ctx context.Context, task models.Task) error

	// UpdateByID writes the non-nil fields of the patch to the task
	// with the given ID. Matching zero rows is not an error.
	UpdateByID(ctx context.Context, id string, patch Patch) error

	// DeleteByID removes the task with the given ID. Matching zero
	// rows is not an error.
	DeleteByID(ctx context.Context, id string) error

	Close() error
}

// Migrator is implemented by drivers that own a schema.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Patch is a partial task update. A nil field is left unchanged.
type Patch struct {
	Title       *string
	Description *string
	Priority    *models.Priority
	Status      *models.Status
	DueDate     *time.Time
	UpdatedAt   *time.Time
	Comments    *[]models.Comment
}

// FieldsPatch builds the patch of an edit-form submission.
func FieldsPatch(fields models.TaskFields, updatedAt time.Time) Patch {
	return Patch{
		Title:       &fields.Title,
		Description: &fields.Description,
		Priority:    &fields.Priority,
		Status:      &fields.Status,
		DueDate:     &fields.DueDate,
		UpdatedAt:   &updatedAt,
	}
}

// CommentsPatch builds a patch that rewrites the whole comment list.
func CommentsPatch(comments []models.Comment) Patch {
	if comments == nil {
		comments = []models.Comment{}
	}
	return Patch{Comments: &comments}
}

func (p Patch) Empty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Priority == nil &&
		p.Status == nil &&
		p.DueDate == nil &&
		p.UpdatedAt == nil &&
		p.Comments == nil
}

func (p Patch) apply(task *models.Task) {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Priority != nil {
		task.Priority = *p.Priority
	}
	if p.Status != nil {
		task.Status = *p.Status
	}
	if p.DueDate != nil {
		task.DueDate = *p.DueDate
	}
	if p.UpdatedAt != nil {
		task.UpdatedAt = *p.UpdatedAt
	}
	if p.Comments != nil {
		task.Comments = append([]models.Comment{}, *p.Comments...)
	}
}
