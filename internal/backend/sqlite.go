package backend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskboard/internal/models"
)

// sqliteTimeLayout is fixed width so that text order equals time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

type SQLite struct {
	logger zerolog.Logger
	db     *sql.DB
}

// OpenSQLite opens the database file at path, creating its directory
// if needed. The schema is created by Migrate.
func OpenSQLite(logger zerolog.Logger, path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		logger.Error().
			Err(err).
			Str("path", path).
			Msg("failed to open sqlite database")
		return nil, err
	}
	// A single connection keeps writes serialized.
	db.SetMaxOpenConns(1)

	logger.Info().
		Str("path", path).
		Msg("opened sqlite database")
	return &SQLite{logger: logger, db: db}, nil
}

const createSQLiteTasksTableQuery = `
CREATE TABLE IF NOT EXISTS tasks (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT NOT NULL,
    priority    TEXT NOT NULL,
    status      TEXT NOT NULL,
    due_date    TEXT NOT NULL,
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL,
    comments    TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS tasks_created_at_idx ON tasks (created_at DESC);
`

func (s *SQLite) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createSQLiteTasksTableQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create tasks table")
		return err
	}
	s.logger.Info().Msg("migrated tasks table")
	return nil
}

func formatSQLiteTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseSQLiteTime(s string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, s)
}

func (s *SQLite) FetchAll(ctx context.Context) ([]models.Task, error) {
	const selectTasksQuery = `
SELECT id,
       title,
       description,
       priority,
       status,
       due_date,
       created_at,
       updated_at,
       comments
FROM tasks
ORDER BY created_at DESC, id DESC
`
	rows, err := s.db.QueryContext(ctx, selectTasksQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, err := scanSQLiteTask(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")
	return tasks, nil
}

func scanSQLiteTask(rows *sql.Rows) (models.Task, error) {
	var (
		task                          models.Task
		priority, status              string
		dueDate, createdAt, updatedAt string
		comments                      string
	)
	err := rows.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&priority,
		&status,
		&dueDate,
		&createdAt,
		&updatedAt,
		&comments,
	)
	if err != nil {
		return models.Task{}, err
	}
	task.Priority = models.Priority(priority)
	task.Status = models.Status(status)

	if task.DueDate, err = parseSQLiteTime(dueDate); err != nil {
		return models.Task{}, fmt.Errorf("due_date: %w", err)
	}
	if task.CreatedAt, err = parseSQLiteTime(createdAt); err != nil {
		return models.Task{}, fmt.Errorf("created_at: %w", err)
	}
	if task.UpdatedAt, err = parseSQLiteTime(updatedAt); err != nil {
		return models.Task{}, fmt.Errorf("updated_at: %w", err)
	}
	if err = json.Unmarshal([]byte(comments), &task.Comments); err != nil {
		return models.Task{}, fmt.Errorf("comments: %w", err)
	}
	if task.Comments == nil {
		task.Comments = []models.Comment{}
	}
	return task, nil
}

func marshalComments(comments []models.Comment) (string, error) {
	if comments == nil {
		comments = []models.Comment{}
	}
	b, err := json.Marshal(comments)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *SQLite) Insert(ctx context.Context, task models.Task) error {
	comments, err := marshalComments(task.Comments)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to marshal comments")
		return err
	}

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   title,
                   description,
                   priority,
                   status,
                   due_date,
                   created_at,
                   updated_at,
                   comments)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err = s.db.ExecContext(
		ctx,
		insertTaskQuery,
		task.ID,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Status),
		formatSQLiteTime(task.DueDate),
		formatSQLiteTime(task.CreatedAt),
		formatSQLiteTime(task.UpdatedAt),
		comments,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			s.logger.Error().
				Str("task_id", task.ID).
				Msg("task already exists")
			return fmt.Errorf("%w: %w", ErrDuplicateID, err)
		}

		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to insert task")
		return err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")
	return nil
}

func (s *SQLite) UpdateByID(ctx context.Context, id string, patch Patch) error {
	if patch.Empty() {
		s.logger.Warn().
			Str("task_id", id).
			Msg("no fields to update")
		return nil
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Priority != nil {
		set("priority", string(*patch.Priority))
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.DueDate != nil {
		set("due_date", formatSQLiteTime(*patch.DueDate))
	}
	if patch.UpdatedAt != nil {
		set("updated_at", formatSQLiteTime(*patch.UpdatedAt))
	}
	if patch.Comments != nil {
		comments, err := marshalComments(*patch.Comments)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("task_id", id).
				Msg("failed to marshal comments")
			return err
		}
		set("comments", comments)
	}
	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := s.db.ExecContext(ctx, query, append(args, id)...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to update task")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		s.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return nil
	}
	s.logger.Debug().
		Str("task_id", id).
		Msg("updated task")
	return nil
}

func (s *SQLite) DeleteByID(ctx context.Context, id string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = ?
`
	res, err := s.db.ExecContext(ctx, deleteTaskQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		s.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return nil
	}
	s.logger.Debug().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
