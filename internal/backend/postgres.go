package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskboard/internal/models"
)

type Postgres struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewPostgres(logger zerolog.Logger, pgPool *pgxpool.Pool) *Postgres {
	return &Postgres{
		logger: logger,
		pgPool: pgPool,
	}
}

const createTasksTableQuery = `
CREATE TABLE IF NOT EXISTS tasks (
    id          TEXT PRIMARY KEY,
    title       TEXT        NOT NULL,
    description TEXT        NOT NULL,
    priority    TEXT        NOT NULL,
    status      TEXT        NOT NULL,
    due_date    TIMESTAMPTZ NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL,
    comments    JSONB       NOT NULL DEFAULT '[]'::jsonb
);
CREATE INDEX IF NOT EXISTS tasks_created_at_idx ON tasks (created_at DESC);
`

func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pgPool.Exec(ctx, createTasksTableQuery)
	if err != nil {
		p.logger.Error().
			Err(err).
			Msg("failed to create tasks table")
		return err
	}
	p.logger.Info().Msg("migrated tasks table")
	return nil
}

// selectPostgresTasksQuery breaks createdAt ties by id like the other drivers.
const selectPostgresTasksQuery = `
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

func (p *Postgres) FetchAll(ctx context.Context) ([]models.Task, error) {
	rows, err := p.pgPool.Query(ctx, selectPostgresTasksQuery)
	if err != nil {
		p.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var (
			task     models.Task
			priority string
			status   string
		)
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&priority,
			&status,
			&task.DueDate,
			&task.CreatedAt,
			&task.UpdatedAt,
			&task.Comments,
		)
		if err != nil {
			p.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		task.Priority = models.Priority(priority)
		task.Status = models.Status(status)
		if task.Comments == nil {
			task.Comments = []models.Comment{}
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		p.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	p.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")
	return tasks, nil
}

func (p *Postgres) Insert(ctx context.Context, task models.Task) error {
	comments := task.Comments
	if comments == nil {
		comments = []models.Comment{}
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
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := p.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Status),
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
		comments,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			p.logger.Error().
				Str("task_id", task.ID).
				Msg("task already exists")
			return fmt.Errorf("%w: %w", ErrDuplicateID, err)
		}

		p.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to insert task")
		return err
	}
	p.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")
	return nil
}

// updateTaskQuery renders the UPDATE statement for the non-nil patch
// fields. It returns false if there is nothing to set.
func updateTaskQuery(id string, patch Patch) (string, pgx.NamedArgs, bool) {
	var sets []string
	args := pgx.NamedArgs{"id": id}

	set := func(column string, value any) {
		sets = append(sets, column+" = @"+column)
		args[column] = value
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
		set("due_date", *patch.DueDate)
	}
	if patch.UpdatedAt != nil {
		set("updated_at", *patch.UpdatedAt)
	}
	if patch.Comments != nil {
		comments := *patch.Comments
		if comments == nil {
			comments = []models.Comment{}
		}
		set("comments", comments)
	}
	if len(sets) == 0 {
		return "", nil, false
	}

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = @id"
	return query, args, true
}

func (p *Postgres) UpdateByID(ctx context.Context, id string, patch Patch) error {
	query, args, ok := updateTaskQuery(id, patch)
	if !ok {
		p.logger.Warn().
			Str("task_id", id).
			Msg("no fields to update")
		return nil
	}

	tag, err := p.pgPool.Exec(ctx, query, args)
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to update task")
		return err
	}
	if tag.RowsAffected() == 0 {
		p.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return nil
	}
	p.logger.Debug().
		Str("task_id", id).
		Msg("updated task")
	return nil
}

func (p *Postgres) DeleteByID(ctx context.Context, id string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := p.pgPool.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		p.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return nil
	}
	p.logger.Debug().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}

func (p *Postgres) Close() error {
	p.pgPool.Close()
	return nil
}
