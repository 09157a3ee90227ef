package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusCancelled = "cancelled"
	errTaskNotFound = "task not found or already fired"
)

// @Summary      Pending deferred writes
// @Description  Lists scheduled auto-resets ordered by due time.
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, tasks"
// @Router       /api/tasks [get]
func (h *Handler) listTasks(c *gin.Context) {
	tasks := h.services.Tasks.Pending()
	c.JSON(http.StatusOK, gin.H{
		"count": len(tasks),
		"tasks": tasks,
	})
}

// @Summary      Cancel a deferred write
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/tasks/{id} [delete]
// @Security     BearerAuth
func (h *Handler) cancelTask(c *gin.Context) {
	id := c.Param("id")
	if !h.services.Tasks.Cancel(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
		return
	}
	if h.log != nil {
		h.log.Infow("task_cancelled", "task_id", id)
	}
	c.JSON(http.StatusOK, gin.H{"status": statusCancelled, "id": id})
}
