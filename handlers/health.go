package handlers

import (
	"net/http"

	"servicefinder/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last observed state of the backing stores.
type HealthHandler struct {
	Status func() utils.HealthStatus
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{Status: utils.GetHealthStatus}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.Status()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": http.StatusText(code), "checks": status})
}
