package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskboard/internal/filter"
	"github.com/adanyl0v/taskboard/internal/models"
	"github.com/adanyl0v/taskboard/internal/present"
)

type createTaskRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=255"`
	Description string `json:"description" binding:"required,min=10"`
	Priority    string `json:"priority" binding:"required,oneof=low medium high"`
	Status      string `json:"status" binding:"required,oneof=pending in-progress completed"`
	DueDate     string `json:"dueDate" binding:"required,notpast"`
}

func (r *createTaskRequest) trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Priority = strings.TrimSpace(r.Priority)
	r.Status = strings.TrimSpace(r.Status)
	r.DueDate = strings.TrimSpace(r.DueDate)
}

func (r createTaskRequest) form() models.FormData {
	return models.FormData{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		DueDate:     r.DueDate,
	}
}

// updateTaskRequest differs from createTaskRequest in allowing due
// dates in the past, so existing overdue tasks stay editable.
type updateTaskRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=255"`
	Description string `json:"description" binding:"required,min=10"`
	Priority    string `json:"priority" binding:"required,oneof=low medium high"`
	Status      string `json:"status" binding:"required,oneof=pending in-progress completed"`
	DueDate     string `json:"dueDate" binding:"required,duedate"`
}

func (r *updateTaskRequest) trim() {
	(*createTaskRequest)(r).trim()
}

func (r updateTaskRequest) form() models.FormData {
	return createTaskRequest(r).form()
}

func (h *handlerImpl) taskViews(tasks []models.Task) []present.View {
	return present.NewViews(tasks, h.now())
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	criteria := filter.Criteria{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	tasks := filter.Apply(h.tasks.Tasks(), criteria)

	h.logger.Debug().
		Str("search", criteria.Search).
		Str("status", criteria.Status).
		Str("priority", criteria.Priority).
		Int("count", len(tasks)).
		Msg("filtered tasks")
	c.JSON(http.StatusOK, h.taskViews(tasks))
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	taskID := c.Param("id")
	task, ok := h.tasks.GetByID(taskID)
	if !ok {
		h.logger.Warn().
			Str("task_id", taskID).
			Msg("task not found")
		abort(c, newNotFoundError(errTaskNotFound.Error()))
		return
	}

	c.JSON(http.StatusOK, present.NewView(task, h.now()))
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := bindTrimmedJSON(c, &req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(validationMessage(err)))
		return
	}

	err = h.tasks.Add(c, req.form())
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abort(c, newStoreError(err))
		return
	}

	c.JSON(http.StatusCreated, h.taskViews(h.tasks.Tasks()))
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID := c.Param("id")

	var req updateTaskRequest
	err := bindTrimmedJSON(c, &req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(validationMessage(err)))
		return
	}

	err = h.tasks.Update(c, taskID, req.form())
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task")
		abort(c, newStoreError(err))
		return
	}

	task, ok := h.tasks.GetByID(taskID)
	if !ok {
		h.logger.Warn().
			Str("task_id", taskID).
			Msg("task not found")
		abort(c, newNotFoundError(errTaskNotFound.Error()))
		return
	}
	c.JSON(http.StatusOK, present.NewView(task, h.now()))
}

func (h *handlerImpl) HandleToggleTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if _, ok := h.tasks.GetByID(taskID); !ok {
		h.logger.Warn().
			Str("task_id", taskID).
			Msg("task not found")
		abort(c, newNotFoundError(errTaskNotFound.Error()))
		return
	}

	err := h.tasks.ToggleStatus(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to toggle task status")
		abort(c, newStoreError(err))
		return
	}

	task, ok := h.tasks.GetByID(taskID)
	if !ok {
		abort(c, newNotFoundError(errTaskNotFound.Error()))
		return
	}
	c.JSON(http.StatusOK, present.NewView(task, h.now()))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID := c.Param("id")

	err := h.tasks.Remove(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		abort(c, newStoreError(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleReloadTasks(c *gin.Context) {
	err := h.tasks.LoadAll(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to reload tasks")
		abort(c, newStoreError(err))
		return
	}

	c.JSON(http.StatusOK, h.taskViews(h.tasks.Tasks()))
}
