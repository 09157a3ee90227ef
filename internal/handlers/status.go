package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Sensor status
// @Description  Reads doorbell, smoke state and smoke value concurrently. When the remote is unreachable a synthetic snapshot with connected=false is returned.
// @Tags         status
// @Produce      json
// @Success      200  {object}  models.StatusSnapshot
// @Router       /api/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Status.GetStatus(c.Request.Context()))
}
