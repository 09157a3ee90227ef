package handlers

import (
	"net/http"

	"blynk_bridge/internal/models"

	"github.com/gin-gonic/gin"
)

// Command failures are part of the body; the HTTP status stays 200.
func (h *Handler) respondCommand(c *gin.Context, command string, res models.CommandResult) {
	if !res.Success && h.log != nil {
		h.log.Warnw("command_unsuccessful", "command", command, "message", res.Message)
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Trigger doorbell
// @Description  Writes 1 to the doorbell pin and schedules an automatic reset to 0.
// @Tags         commands
// @Produce      json
// @Success      200  {object}  models.CommandResult
// @Failure      401  {object}  map[string]string
// @Router       /api/trigger/doorbell [post]
// @Security     BearerAuth
func (h *Handler) triggerDoorbell(c *gin.Context) {
	h.respondCommand(c, models.EventTriggerDoorbell, h.services.Commands.TriggerDoorbell(c.Request.Context()))
}

// @Summary      Trigger smoke alarm
// @Tags         commands
// @Produce      json
// @Success      200  {object}  models.CommandResult
// @Failure      401  {object}  map[string]string
// @Router       /api/trigger/smoke [post]
// @Security     BearerAuth
func (h *Handler) triggerSmoke(c *gin.Context) {
	h.respondCommand(c, models.EventTriggerSmoke, h.services.Commands.TriggerSmoke(c.Request.Context()))
}

// @Summary      Reset smoke alarm
// @Tags         commands
// @Produce      json
// @Success      200  {object}  models.CommandResult
// @Failure      401  {object}  map[string]string
// @Router       /api/reset/smoke [post]
// @Security     BearerAuth
func (h *Handler) resetSmoke(c *gin.Context) {
	h.respondCommand(c, models.EventResetSmoke, h.services.Commands.ResetSmoke(c.Request.Context()))
}
