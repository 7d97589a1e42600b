package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskboard/internal/backend"
	"github.com/adanyl0v/taskboard/internal/models"
)

// TaskStore keeps an in-memory snapshot of every task and routes all
// mutations through the backend. After each successful mutation the
// whole collection is fetched again; the snapshot is never patched
// locally.
type TaskStore struct {
	logger   zerolog.Logger
	backend  backend.Backend
	snapshot *snapshot
	now      func() time.Time
	newID    IDGenerator
}

type Option func(*TaskStore)

// WithClock overrides the source of createdAt and updatedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		s.now = now
	}
}

func WithIDGenerator(gen IDGenerator) Option {
	return func(s *TaskStore) {
		s.newID = gen
	}
}

func NewTaskStore(
	logger zerolog.Logger,
	backend backend.Backend,
	opts ...Option,
) *TaskStore {
	s := &TaskStore{
		logger:   logger,
		backend:  backend,
		snapshot: newSnapshot(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.newID == nil {
		s.newID = NewIDGenerator(s.now)
	}
	return s
}

func (s *TaskStore) LoadAll(ctx context.Context) error {
	tasks, err := s.backend.FetchAll(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to load tasks")
		return &BackendError{Op: "load tasks", Err: err}
	}
	s.snapshot.publish(tasks)

	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("loaded tasks")
	return nil
}

func (s *TaskStore) Tasks() []models.Task {
	return s.snapshot.get()
}

func (s *TaskStore) GetByID(id string) (models.Task, bool) {
	return s.snapshot.find(id)
}

func (s *TaskStore) Subscribe() (<-chan []models.Task, func()) {
	return s.snapshot.subscribe()
}

func (s *TaskStore) Add(ctx context.Context, form models.FormData) error {
	fields, err := form.Parse()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to parse task form")
		return err
	}

	now := s.now()
	task := models.Task{
		ID:          s.newID(),
		Title:       fields.Title,
		Description: fields.Description,
		Priority:    fields.Priority,
		Status:      fields.Status,
		DueDate:     fields.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		Comments:    []models.Comment{},
	}

	err = s.backend.Insert(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to add task")
		return &BackendError{Op: "add task", Err: err}
	}
	s.logger.Info().
		Str("task_id", task.ID).
		Msg("added task")

	return s.LoadAll(ctx)
}

func (s *TaskStore) Update(ctx context.Context, id string, form models.FormData) error {
	fields, err := form.Parse()
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to parse task form")
		return err
	}
	return s.update(ctx, id, fields)
}

func (s *TaskStore) update(ctx context.Context, id string, fields models.TaskFields) error {
	err := s.backend.UpdateByID(ctx, id, backend.FieldsPatch(fields, s.now()))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to update task")
		return &BackendError{Op: "update task", Err: err}
	}
	s.logger.Info().
		Str("task_id", id).
		Str("status", string(fields.Status)).
		Msg("updated task")

	return s.LoadAll(ctx)
}

func (s *TaskStore) ToggleStatus(ctx context.Context, id string) error {
	task, ok := s.GetByID(id)
	if !ok {
		s.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return nil
	}

	status := models.StatusCompleted
	if task.Status == models.StatusCompleted {
		status = models.StatusPending
	}
	return s.update(ctx, id, models.TaskFields{
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      status,
		DueDate:     task.DueDate,
	})
}

func (s *TaskStore) Remove(ctx context.Context, id string) error {
	err := s.backend.DeleteByID(ctx, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to remove task")
		return &BackendError{Op: "remove task", Err: err}
	}
	s.logger.Info().
		Str("task_id", id).
		Msg("removed task")

	return s.LoadAll(ctx)
}

func (s *TaskStore) AddComment(ctx context.Context, taskID, text string) error {
	task, ok := s.GetByID(taskID)
	if !ok {
		s.logger.Warn().
			Str("task_id", taskID).
			Msg("task not found")
		return nil
	}

	comment := models.Comment{
		ID:        s.newID(),
		Text:      text,
		CreatedAt: s.now(),
	}
	comments := append(task.Comments, comment)

	err := s.backend.UpdateByID(ctx, taskID, backend.CommentsPatch(comments))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to add comment")
		return &BackendError{Op: "add comment", Err: err}
	}
	s.logger.Info().
		Str("task_id", taskID).
		Str("comment_id", comment.ID).
		Msg("added comment")

	return s.LoadAll(ctx)
}

func (s *TaskStore) RemoveComment(ctx context.Context, taskID, commentID string) error {
	task, ok := s.GetByID(taskID)
	if !ok {
		s.logger.Warn().
			Str("task_id", taskID).
			Msg("task not found")
		return nil
	}

	comments := make([]models.Comment, 0, len(task.Comments))
	for _, c := range task.Comments {
		if c.ID != commentID {
			comments = append(comments, c)
		}
	}

	err := s.backend.UpdateByID(ctx, taskID, backend.CommentsPatch(comments))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Str("comment_id", commentID).
			Msg("failed to remove comment")
		return &BackendError{Op: "remove comment", Err: err}
	}
	s.logger.Info().
		Str("task_id", taskID).
		Str("comment_id", commentID).
		Msg("removed comment")

	return s.LoadAll(ctx)
}

var _ TaskService = (*TaskStore)(nil)
