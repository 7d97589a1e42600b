// Package filter derives the visible subset of a task snapshot.
package filter

import (
	"strings"

	"github.com/adanyl0v/taskboard/internal/models"
)

// Criteria are combined with a logical AND. An empty criterion, or
// one of "all" and "any", matches every task.
type Criteria struct {
	Search   string
	Status   string
	Priority string
}

func isAny(s string) bool {
	switch s {
	case "", "all", "any":
		return true
	}
	return false
}

// Matcher returns the predicate for the given criteria. Status and
// priority are trimmed; the search text is matched as given.
func Matcher(c Criteria) func(models.Task) bool {
	search := strings.ToLower(c.Search)
	status := strings.TrimSpace(c.Status)
	priority := strings.TrimSpace(c.Priority)
	anyStatus := isAny(status)
	anyPriority := isAny(priority)

	return func(t models.Task) bool {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			return false
		}
		if !anyStatus && string(t.Status) != status {
			return false
		}
		if !anyPriority && string(t.Priority) != priority {
			return false
		}
		return true
	}
}

// Apply returns the tasks matching c in their original order.
func Apply(tasks []models.Task, c Criteria) []models.Task {
	matched, _ := Partition(tasks, c)
	return matched
}

// Partition splits tasks into those matching c and the rest, keeping
// the original order in both.
func Partition(tasks []models.Task, c Criteria) (matched, rest []models.Task) {
	match := Matcher(c)
	matched = make([]models.Task, 0, len(tasks))
	rest = make([]models.Task, 0)
	for _, t := range tasks {
		if match(t) {
			matched = append(matched, t)
		} else {
			rest = append(rest, t)
		}
	}
	return matched, rest
}
