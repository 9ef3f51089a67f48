package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"earnapi/internal/ledger"
)

type HealthHandler struct {
	Provider ledger.StateProvider
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)
}

// @Summary Health check
// @Tags health
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *HealthHandler) health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// @Summary Readiness check
// @Tags health
// @Success 200 {object} map[string]string
// @Router /readyz [get]
func (h *HealthHandler) ready(c *gin.Context) {
	if h.Provider == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "provider_missing"})
		return
	}
	if _, err := h.Provider.GetLpPool(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "ledger_unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
