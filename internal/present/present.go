// Package present holds read-only derivations over a single task used
// when rendering it.
package present

import (
	"fmt"
	"math"
	"time"

	"github.com/adanyl0v/taskboard/internal/models"
)

const day = 24 * time.Hour

// IsOverdue reports whether an unfinished task is past its due date.
func IsOverdue(task models.Task, now time.Time) bool {
	return task.Status != models.StatusCompleted && now.After(task.DueDate)
}

// DaysUntilDue is the ceiling of the remaining time in days. It is
// negative once the due date has passed by more than a day.
func DaysUntilDue(task models.Task, now time.Time) int {
	days := math.Ceil(float64(task.DueDate.Sub(now)) / float64(day))
	return int(days)
}

func DueLabel(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%d days overdue", -days)
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("%d days remaining", days)
	}
}

func PriorityDescription(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "Urgent - needs immediate attention"
	case models.PriorityMedium:
		return "Important - should be completed soon"
	case models.PriorityLow:
		return "Normal - can be completed when convenient"
	}
	return ""
}

func StatusDescription(s models.Status) string {
	switch s {
	case models.StatusPending:
		return "Task is waiting to be started"
	case models.StatusInProgress:
		return "Currently being worked on"
	case models.StatusCompleted:
		return "Task has been finished"
	}
	return ""
}

// View is a task together with its derived presentation fields.
type View struct {
	models.Task
	Overdue             bool   `json:"overdue"`
	DaysUntilDue        int    `json:"daysUntilDue"`
	DueLabel            string `json:"dueLabel"`
	PriorityDescription string `json:"priorityDescription"`
	StatusDescription   string `json:"statusDescription"`
}

func NewView(task models.Task, now time.Time) View {
	days := DaysUntilDue(task, now)
	return View{
		Task:                task,
		Overdue:             IsOverdue(task, now),
		DaysUntilDue:        days,
		DueLabel:            DueLabel(days),
		PriorityDescription: PriorityDescription(task.Priority),
		StatusDescription:   StatusDescription(task.Status),
	}
}

func NewViews(tasks []models.Task, now time.Time) []View {
	views := make([]View, len(tasks))
	for i, task := range tasks {
		views[i] = NewView(task, now)
	}
	return views
}
