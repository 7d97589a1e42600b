package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskboard/internal/backend"
	"github.com/adanyl0v/taskboard/internal/models"
	"github.com/adanyl0v/taskboard/internal/present"
	"github.com/adanyl0v/taskboard/internal/services"
)

var testNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

type brokenBackend struct {
	backend.Backend
}

func (brokenBackend) Insert(context.Context, models.Task) error {
	return errors.New("connection reset by peer")
}

type testServer struct {
	router *gin.Engine
	store  *services.TaskStore
}

func newTestServer(t *testing.T, b backend.Backend) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	timeNow = func() time.Time { return testNow }
	t.Cleanup(func() { timeNow = time.Now })

	store := services.NewTaskStore(zerolog.Nop(), b, services.WithClock(func() time.Time { return testNow }))
	require.NoError(t, store.LoadAll(context.Background()))

	h := New(zerolog.Nop(), store).(*handlerImpl)
	h.now = func() time.Time { return testNow }

	router := gin.New()
	router.Use(h.HandleRequestLogger)
	RegisterRoutes(router.Group("/api/v1"), h)

	return &testServer{router: router, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func validTaskBody() gin.H {
	return gin.H{
		"title":       "Write report",
		"description": "Draft the design document",
		"priority":    "high",
		"status":      "pending",
		"dueDate":     "2026-10-15",
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func (s *testServer) createTask(t *testing.T) present.View {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/v1/tasks", validTaskBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	views := decode[[]present.View](t, w)
	require.NotEmpty(t, views)
	return views[0]
}

func TestHandleCreateTask(t *testing.T) {
	s := newTestServer(t, backend.NewMemory(zerolog.Nop()))

	task := s.createTask(t)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.Equal(t, "Due tomorrow", task.DueLabel)
	assert.False(t, task.Overdue)
	assert.Empty(t, task.Comments)
	assert.NotEmpty(t, task.ID)
}

func TestHandleCreateTask_Validation(t *testing.T) {
	s := newTestServer(t, backend.NewMemory(zerolog.Nop()))

	tests := []struct {
		name  string
		field string
		value any
		want  string
	}{
		{"short title", "title", "ab", "title must be at least 3 characters long"},
		{"short description", "description", "too short", "description must be at least 10 characters long"},
		{"missing title", "title", "", "title is required"},
		{"blank title", "title", "     ", "title is required"},
		{"padded short title", "title", "  ab  ", "title must be at least 3 characters long"},
		{"padded short description", "description", "   short    ", "description must be at least 10 characters long"},
		{"not an object", "title", 42, "invalid request body"},
		{"bad priority", "priority", "urgent", "priority must be one of: low medium high"},
		{"bad status", "status", "done", "status must be one of: pending in-progress completed"},
		{"past due date", "dueDate", "2026-10-13", "dueDate cannot be in the past"},
		{"unparsable due date", "dueDate", "next week", "dueDate cannot be in the past"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validTaskBody()
			body[tt.field] = tt.value

			w := s.do(t, http.MethodPost, "/api/v1/tasks", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode[map[string]string](t, w)["error"], tt.want)
		})
	}
	assert.Empty(t, s.store.Tasks())
}

func TestHandleCreateTask_TrimsFields(t *testing.T) {
	s := newTestServer(t, backend.NewMemory(zerolog.Nop()))

	body := validTaskBody()
	body["title"] = "  Write report  "
	body["description"] = "\tDraft the design document\n"
	w := s.do(t, http.MethodPost, "/api/v1/tasks", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	tasks := s.store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write report", tasks[0].Title)
	assert.Equal(t, "Draft the design document", tasks[0].Description)
}

func TestHandleUpdateTask_RejectsPaddedShortFields(t *testing.T) {
	s := newTestServer(t, backend.NewMemory(zerolog.Nop()))
	task := s.createTask(t)

	body := validTaskBody()
	body["title"] = "   x   "
	w := s.do(t, http.MethodPut, "/api/v1/tasks/"+task.ID, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	got, ok := s.store.GetByID(task.ID)
	require.True(t, ok)
	assert.Equal(t, "Write report", got.Title)
}

func TestMustRegisterValidation_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		mustRegisterValidation(zerolog.Nop(), validator.New(), "", validateDueDate)
	})
	assert.NotPanics(t, func() {
		mustRegisterValidation(zerolog.Nop(), validator.New(), "duedate", validateDueDate)
	})
}

func TestHandleCreateTask_DueToday(t *testing.T) {
	s := newTestServer(t, backend.NewMemory(zerolog.Nop()))

	body := validTaskBody()
	body["dueDate"] = "2026-10-14"
	w := s.do(t, http.MethodPost, "/api/v1/tasks", body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandleCreateTask_BackendFailure(t *testing.T) {
	s := newTestServer(t, brokenBackend{Backend: backend.NewMemory(zerolog.Nop())})

	w := s.do(t, http.MethodPost, "/api/v1/tasks", validTaskBody())
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, s.store.Tasks())
}

func TestHandleGetTasks_Filters(t *testing.T) {
	s := newTestServer(t, backend.NewMemory(zerolog.Nop()))
	s.createTask(t)

	body := validTaskBody()
	body["title"] = "Buy groceries"
	body["description"] = "Milk, eggs and bread"
	body["priority"] = "low"
	w := s.do(t, http.MethodPost, "/api/v1/tasks", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]present.View](t, w), 2)

	w = s.do(t, http.MethodGet, "/api/v1/tasks?search=DESIGN", nil)
	views := decode[[]present.View](t, w)
	require.Len(t, views, 1)
	assert.Equal(t, "Write report", views[0].Title)

	w = s.do(t, http.MethodGet, "/api/v1/tasks?priority=low&status=pending", nil)
	views = decode[[]present.View](t, w)
	require.Len(t, views, 1)
	assert.Equal(t, "Buy groceries", views[0].Title)

	w = s.do(t, http.MethodGet, "/api/v1/tasks?status=completed", nil)
	assert.Empty(t, decode[[]present.View](t, w))
}

func TestHandleGetTask(t *testing.T) {
	s := newTestServer(t, backend.NewMemory(zerolog.Nop()))
	task := s.createTask(t)

	w := s.do(t, http.MethodGet, "/api/v1/tasks/"+task.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[present.View](t, w)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "Urgent - needs immediate attention", got.PriorityDescription)

	w = s.do(t, http.MethodGet, "/api/v1/tasks/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleUpdateTask(t *testing.T) {
	s := newTestServer(t, backend.NewMemory(zerolog.Nop()))
	task := s.createTask(t)

	body := validTaskBody()
	body["status"] = "in-progress"
	body["dueDate"] = "2026-10-01"
	w := s.do(t, http.MethodPut, "/api/v1/tasks/"+task.ID, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[present.View](t, w)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.True(t, got.Overdue)
	assert.Equal(t, "13 days overdue", got.DueLabel)
}

func TestHandleUpdateTask_UnknownID(t *testing.T) {
	s := newTestServer(t, backend.NewMemory(zerolog.Nop()))

	w := s.do(t, http.MethodPut, "/api/v1/tasks/missing", validTaskBody())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleToggleTaskStatus(t *testing.T) {
	s := newTestServer(t, backend.NewMemory(zerolog.Nop()))
	task := s.createTask(t)

	w := s.do(t, http.MethodPatch, "/api/v1/tasks/"+task.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusCompleted, decode[present.View](t, w).Status)

	w = s.do(t, http.MethodPatch, "/api/v1/tasks/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDeleteTask(t *testing.T) {
	s := newTestServer(t, backend.NewMemory(zerolog.Nop()))
	task := s.createTask(t)

	w := s.do(t, http.MethodDelete, "/api/v1/tasks/"+task.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, s.store.Tasks())
}

func TestHandleComments(t *testing.T) {
	s := newTestServer(t, backend.NewMemory(zerolog.Nop()))
	task := s.createTask(t)

	w := s.do(t, http.MethodPost, "/api/v1/tasks/"+task.ID+"/comments", gin.H{"text": "  Looks good  "})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decode[present.View](t, w)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "Looks good", got.Comments[0].Text)

	w = s.do(t, http.MethodDelete, "/api/v1/tasks/"+task.ID+"/comments/"+got.Comments[0].ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	reloaded, ok := s.store.GetByID(task.ID)
	require.True(t, ok)
	assert.Empty(t, reloaded.Comments)
}

func TestHandleCreateComment_Rejects(t *testing.T) {
	s := newTestServer(t, backend.NewMemory(zerolog.Nop()))
	task := s.createTask(t)

	w := s.do(t, http.MethodPost, "/api/v1/tasks/"+task.ID+"/comments", gin.H{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/tasks/"+task.ID+"/comments", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/tasks/missing/comments", gin.H{"text": "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleReloadTasks(t *testing.T) {
	b := backend.NewMemory(zerolog.Nop())
	s := newTestServer(t, b)

	require.NoError(t, b.Insert(context.Background(), models.Task{
		ID:        "external",
		Title:     "Added elsewhere",
		Priority:  models.PriorityLow,
		Status:    models.StatusPending,
		DueDate:   testNow,
		CreatedAt: testNow,
	}))
	assert.Empty(t, s.store.Tasks())

	w := s.do(t, http.MethodPost, "/api/v1/reload", nil)
	require.Equal(t, http.StatusOK, w.Code)
	views := decode[[]present.View](t, w)
	require.Len(t, views, 1)
	assert.Equal(t, "external", views[0].ID)
}

func TestHandleRequestLogger_SetsRequestID(t *testing.T) {
	s := newTestServer(t, backend.NewMemory(zerolog.Nop()))

	w := s.do(t, http.MethodGet, "/api/v1/tasks", nil)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}
