package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Index page
// @Description  HTML page listing the endpoints. The token is shown redacted.
// @Tags         system
// @Produce      html
// @Success      200  {string}  string  "html"
// @Router       / [get]
func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Name":     h.opts.ServerName,
		"Port":     h.opts.Port,
		"BlynkURL": h.opts.BlynkURL,
		"Token":    h.opts.RedactedToken,
	})
}

// @Summary      Health check
// @Description  Local liveness check; never calls the remote API.
// @Tags         system
// @Produce      json
// @Success      200  {object}  models.Health
// @Router       /api/health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Diagnostics.Health())
}

// @Summary      Test remote connection
// @Description  Reads the doorbell pin once and echoes the raw answer. Failures are reported in the body with HTTP 200.
// @Tags         system
// @Produce      json
// @Success      200  {object}  models.ConnectionProbe
// @Router       /api/test-blynk [get]
func (h *Handler) testBlynk(c *gin.Context) {
	probe := h.services.Diagnostics.TestConnection(c.Request.Context())
	if !probe.Success && h.log != nil {
		h.log.Warnw("blynk_probe_failed", "err", probe.Error, "url", probe.URL)
	}
	c.JSON(http.StatusOK, probe)
}
