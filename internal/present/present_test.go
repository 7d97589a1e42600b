package present

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskboard/internal/models"
)

var now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func due(d time.Duration, status models.Status) models.Task {
	return models.Task{DueDate: now.Add(d), Status: status}
}

func TestIsOverdue(t *testing.T) {
	assert.True(t, IsOverdue(due(-time.Minute, models.StatusPending), now))
	assert.True(t, IsOverdue(due(-72*time.Hour, models.StatusInProgress), now))
	assert.False(t, IsOverdue(due(time.Minute, models.StatusPending), now))
	assert.False(t, IsOverdue(due(0, models.StatusPending), now))
}

func TestIsOverdue_CompletedNeverOverdue(t *testing.T) {
	for _, d := range []time.Duration{-365 * 24 * time.Hour, -time.Second, 0, time.Hour} {
		assert.False(t, IsOverdue(due(d, models.StatusCompleted), now), d.String())
	}
}

func TestDaysUntilDue(t *testing.T) {
	tests := []struct {
		name  string
		d     time.Duration
		days  int
		label string
	}{
		{"now", 0, 0, "Due today"},
		{"earlier today", -23*time.Hour - 59*time.Minute, 0, "Due today"},
		{"in an hour", time.Hour, 1, "Due tomorrow"},
		{"in 23h59m", 23*time.Hour + 59*time.Minute, 1, "Due tomorrow"},
		{"in exactly a day", 24 * time.Hour, 1, "Due tomorrow"},
		{"in 25 hours", 25 * time.Hour, 2, "2 days remaining"},
		{"in a week", 7 * 24 * time.Hour, 7, "7 days remaining"},
		{"a day ago", -24 * time.Hour, -1, "1 days overdue"},
		{"three days ago", -72*time.Hour - time.Minute, -3, "3 days overdue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := DaysUntilDue(due(tt.d, models.StatusPending), now)
			assert.Equal(t, tt.days, days)
			assert.Equal(t, tt.label, DueLabel(days))
		})
	}
}

func TestDescriptions(t *testing.T) {
	assert.Equal(t, "Urgent - needs immediate attention", PriorityDescription(models.PriorityHigh))
	assert.Equal(t, "Normal - can be completed when convenient", PriorityDescription(models.PriorityLow))
	assert.Equal(t, "Currently being worked on", StatusDescription(models.StatusInProgress))
	assert.Equal(t, "Task has been finished", StatusDescription(models.StatusCompleted))
	assert.Empty(t, PriorityDescription("unknown"))
	assert.Empty(t, StatusDescription("unknown"))
}

func TestNewView_JSON(t *testing.T) {
	task := models.Task{
		ID:       "t1",
		Title:    "Write report",
		Priority: models.PriorityMedium,
		Status:   models.StatusPending,
		DueDate:  now.Add(-48 * time.Hour),
		Comments: []models.Comment{},
	}

	b, err := json.Marshal(NewView(task, now))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "t1", got["id"])
	assert.Equal(t, "Write report", got["title"])
	assert.Equal(t, true, got["overdue"])
	assert.Equal(t, "2 days overdue", got["dueLabel"])
	assert.Equal(t, "Task is waiting to be started", got["statusDescription"])
}
