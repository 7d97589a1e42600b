package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adanyl0v/taskboard/internal/models"
)

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: "1", Title: "Write report", Description: "Draft the design document", Priority: models.PriorityHigh, Status: models.StatusPending},
		{ID: "2", Title: "Review PR", Description: "Check the REPORT changes", Priority: models.PriorityMedium, Status: models.StatusInProgress},
		{ID: "3", Title: "Deploy", Description: "Ship the release", Priority: models.PriorityHigh, Status: models.StatusCompleted},
		{ID: "4", Title: "Groceries", Description: "Milk and eggs", Priority: models.PriorityLow, Status: models.StatusCompleted},
	}
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestApply_EmptyCriteriaIsIdentity(t *testing.T) {
	tasks := sampleTasks()
	assert.Equal(t, tasks, Apply(tasks, Criteria{}))
}

func TestApply_AnyAliases(t *testing.T) {
	tasks := sampleTasks()
	assert.Equal(t, tasks, Apply(tasks, Criteria{Status: "all", Priority: "any"}))
}

func TestApply_EmptySnapshot(t *testing.T) {
	assert.Empty(t, Apply(nil, Criteria{Search: "x"}))
}

func TestApply_SearchIsCaseInsensitiveOverTitleOrDescription(t *testing.T) {
	tasks := sampleTasks()

	assert.Equal(t, []string{"1", "2"}, ids(Apply(tasks, Criteria{Search: "report"})))
	assert.Equal(t, []string{"3"}, ids(Apply(tasks, Criteria{Search: "RELEASE"})))
	assert.Empty(t, Apply(tasks, Criteria{Search: "nothing matches"}))
}

func TestApply_CriteriaAreANDed(t *testing.T) {
	tasks := sampleTasks()

	got := Apply(tasks, Criteria{Status: "completed", Priority: "high"})
	assert.Equal(t, []string{"3"}, ids(got))

	got = Apply(tasks, Criteria{Search: "report", Status: "pending", Priority: "high"})
	assert.Equal(t, []string{"1"}, ids(got))

	got = Apply(tasks, Criteria{Search: "report", Status: "completed"})
	assert.Empty(t, got)
}

func TestApply_StatusExactMatch(t *testing.T) {
	tasks := sampleTasks()

	matched, rest := Partition(tasks, Criteria{Status: "completed"})
	for _, task := range matched {
		assert.Equal(t, models.StatusCompleted, task.Status)
	}
	for _, task := range rest {
		assert.NotEqual(t, models.StatusCompleted, task.Status)
	}
	assert.Equal(t, len(tasks), len(matched)+len(rest))
	assert.Equal(t, []string{"3", "4"}, ids(matched))
}

func TestApply_TrimsStatusAndPriority(t *testing.T) {
	tasks := sampleTasks()

	assert.Equal(t, []string{"3", "4"}, ids(Apply(tasks, Criteria{Status: " completed "})))
	assert.Equal(t, []string{"4"}, ids(Apply(tasks, Criteria{Priority: "low\t"})))
	assert.Equal(t, tasks, Apply(tasks, Criteria{Status: "  all "}))
}

func TestApply_PreservesOrder(t *testing.T) {
	tasks := sampleTasks()
	tasks[0], tasks[3] = tasks[3], tasks[0]

	got := Apply(tasks, Criteria{Status: "completed"})
	assert.Equal(t, []string{"4", "3"}, ids(got))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	before := sampleTasks()

	Apply(tasks, Criteria{Search: "report", Priority: "high"})
	assert.Equal(t, before, tasks)
}
