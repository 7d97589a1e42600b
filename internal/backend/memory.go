package backend

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskboard/internal/models"
)

var ErrDuplicateID = errors.New("duplicate task id")

// Memory is a process-local task collection. It copies tasks on the
// way in and out so callers never share comment slices with it.
type Memory struct {
	logger zerolog.Logger

	mu    sync.RWMutex
	tasks map[string]models.Task
}

func NewMemory(logger zerolog.Logger) *Memory {
	return &Memory{
		logger: logger,
		tasks:  make(map[string]models.Task),
	}
}

func (m *Memory) FetchAll(_ context.Context) ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tasks := make([]models.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		tasks = append(tasks, task.Clone())
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID > tasks[j].ID
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	m.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")
	return tasks, nil
}

func (m *Memory) Insert(_ context.Context, task models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tasks[task.ID]; exists {
		m.logger.Error().
			Str("task_id", task.ID).
			Msg("task already exists")
		return ErrDuplicateID
	}
	m.tasks[task.ID] = task.Clone()

	m.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")
	return nil
}

func (m *Memory) UpdateByID(_ context.Context, id string, patch Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		m.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return nil
	}
	patch.apply(&task)
	m.tasks[id] = task.Clone()

	m.logger.Debug().
		Str("task_id", id).
		Msg("updated task")
	return nil
}

func (m *Memory) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		m.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return nil
	}
	delete(m.tasks, id)

	m.logger.Debug().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}

func (m *Memory) Close() error {
	return nil
}
