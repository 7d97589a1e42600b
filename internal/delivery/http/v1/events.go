package v1

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskboard/internal/filter"
)

const snapshotEvent = "snapshot"

// HandleTaskEvents streams a "snapshot" server-sent event with the
// filtered task list on connect and after every reload.
func (h *handlerImpl) HandleTaskEvents(c *gin.Context) {
	criteria := filter.Criteria{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}

	snapshots, cancel := h.tasks.Subscribe()
	defer cancel()

	h.logger.Debug().Msg("subscribed to task events")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case tasks, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent(snapshotEvent, h.taskViews(filter.Apply(tasks, criteria)))
			return true
		}
	})
	h.logger.Debug().Msg("unsubscribed from task events")
}
