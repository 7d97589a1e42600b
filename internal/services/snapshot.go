package services

import (
	"sync"

	"github.com/adanyl0v/taskboard/internal/models"
)

// snapshot is a publish-subscribe cell holding the current task list.
//
// Each subscriber has a channel with a buffer of one. Publishing
// replaces an undelivered value, so slow subscribers skip straight to
// the newest snapshot instead of blocking the publisher.
type snapshot struct {
	mu     sync.RWMutex
	tasks  []models.Task
	nextID int
	subs   map[int]chan []models.Task
}

func newSnapshot() *snapshot {
	return &snapshot{
		tasks: []models.Task{},
		subs:  make(map[int]chan []models.Task),
	}
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, task := range tasks {
		out[i] = task.Clone()
	}
	return out
}

func (s *snapshot) get() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

func (s *snapshot) find(id string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, task := range s.tasks {
		if task.ID == id {
			return task.Clone(), true
		}
	}
	return models.Task{}, false
}

func (s *snapshot) publish(tasks []models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = cloneTasks(tasks)
	for _, ch := range s.subs {
		offer(ch, cloneTasks(s.tasks))
	}
}

// offer puts v into ch, dropping a value nobody has read yet.
func offer(ch chan []models.Task, v []models.Task) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}

func (s *snapshot) subscribe() (<-chan []models.Task, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan []models.Task, 1)
	ch <- cloneTasks(s.tasks)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}
