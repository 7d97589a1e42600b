package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// DueDateLayout is the layout of date-only due dates sent by forms.
const DueDateLayout = time.DateOnly

var (
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidDueDate  = errors.New("invalid due date")
)

type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	DueDate     time.Time `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Comments    []Comment `json:"comments"`
}

// Clone returns a copy of the task that shares no comment storage with t.
func (t Task) Clone() Task {
	comments := make([]Comment, len(t.Comments))
	copy(comments, t.Comments)
	t.Comments = comments
	return t
}

// FormData is the raw, string-typed input of the task form.
type FormData struct {
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     string
}

// TaskFields holds the typed, user-editable fields of a task.
type TaskFields struct {
	Title       string
	Description string
	Priority    Priority
	Status      Status
	DueDate     time.Time
}

func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusInProgress, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ParseDueDate accepts either a date (UTC midnight) or an RFC 3339 timestamp.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DueDateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
	}
	return t, nil
}

// Parse converts raw form input into typed task fields.
func (f FormData) Parse() (TaskFields, error) {
	priority, err := ParsePriority(f.Priority)
	if err != nil {
		return TaskFields{}, err
	}
	status, err := ParseStatus(f.Status)
	if err != nil {
		return TaskFields{}, err
	}
	dueDate, err := ParseDueDate(f.DueDate)
	if err != nil {
		return TaskFields{}, err
	}

	return TaskFields{
		Title:       f.Title,
		Description: f.Description,
		Priority:    priority,
		Status:      status,
		DueDate:     dueDate,
	}, nil
}
