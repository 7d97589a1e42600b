package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskboard/internal/present"
)

type createCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (r *createCommentRequest) trim() {
	r.Text = strings.TrimSpace(r.Text)
}

func (h *handlerImpl) HandleCreateComment(c *gin.Context) {
	taskID := c.Param("id")

	var req createCommentRequest
	err := bindTrimmedJSON(c, &req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to bind json")
		abort(c, newBadRequestError(validationMessage(err)))
		return
	}

	if _, ok := h.tasks.GetByID(taskID); !ok {
		h.logger.Warn().
			Str("task_id", taskID).
			Msg("task not found")
		abort(c, newNotFoundError(errTaskNotFound.Error()))
		return
	}

	err = h.tasks.AddComment(c, taskID, req.Text)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to add comment")
		abort(c, newStoreError(err))
		return
	}

	task, ok := h.tasks.GetByID(taskID)
	if !ok {
		abort(c, newNotFoundError(errTaskNotFound.Error()))
		return
	}
	c.JSON(http.StatusCreated, present.NewView(task, h.now()))
}

func (h *handlerImpl) HandleDeleteComment(c *gin.Context) {
	taskID := c.Param("id")
	commentID := c.Param("commentId")

	if _, ok := h.tasks.GetByID(taskID); !ok {
		h.logger.Warn().
			Str("task_id", taskID).
			Msg("task not found")
		abort(c, newNotFoundError(errTaskNotFound.Error()))
		return
	}

	err := h.tasks.RemoveComment(c, taskID, commentID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Str("comment_id", commentID).
			Msg("failed to remove comment")
		abort(c, newStoreError(err))
		return
	}

	c.Status(http.StatusNoContent)
}
