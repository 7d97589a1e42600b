package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskboard/internal/services"
)

type Handler interface {
	HandleRequestLogger(c *gin.Context)

	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleToggleTaskStatus(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleReloadTasks(c *gin.Context)

	HandleCreateComment(c *gin.Context)
	HandleDeleteComment(c *gin.Context)

	HandleTaskEvents(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	tasks  services.TaskService
	now    func() time.Time
}

func New(
	logger zerolog.Logger,
	taskService services.TaskService,
) Handler {
	registerValidators(logger)

	return &handlerImpl{
		logger: logger,
		tasks:  taskService,
		now:    time.Now,
	}
}

// RegisterRoutes mounts the handler under router.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/events", h.HandleTaskEvents)
	router.POST("/reload", h.HandleReloadTasks)

	tasksRouter := router.Group("/tasks")
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.GET("/:id", h.HandleGetTask)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.PATCH("/:id/toggle", h.HandleToggleTaskStatus)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)
	tasksRouter.POST("/:id/comments", h.HandleCreateComment)
	tasksRouter.DELETE("/:id/comments/:commentId", h.HandleDeleteComment)
}
