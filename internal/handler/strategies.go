package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"earnapi/internal/service"
)

type StrategyHandler struct {
	Service *service.StrategyService
}

func (h *StrategyHandler) Register(r *gin.Engine) {
	group := r.Group("/v1/strategies")
	group.GET("", h.list)
	group.GET("/:strategyId", h.get)
}

// @Summary List all strategies
// @Tags strategies
// @Produce json
// @Success 200 {object} map[string][]service.StrategyView
// @Failure 502 {object} handler.ErrorBody
// @Router /v1/strategies [get]
func (h *StrategyHandler) list(c *gin.Context) {
	items, err := h.Service.List(c.Request.Context())
	if err != nil {
		Upstream(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"strategies": items})
}

// @Summary Get strategy details
// @Tags strategies
// @Produce json
// @Param strategyId path string true "Strategy identifier"
// @Success 200 {object} map[string]service.StrategyView
// @Failure 404 {object} handler.ErrorBody
// @Failure 502 {object} handler.ErrorBody
// @Router /v1/strategies/{strategyId} [get]
func (h *StrategyHandler) get(c *gin.Context) {
	strategyID := strings.TrimSpace(c.Param("strategyId"))
	if strategyID == "" {
		ValidationFailed(c, "strategyId required")
		return
	}
	item, err := h.Service.Get(c.Request.Context(), strategyID)
	if err != nil {
		Upstream(c, err)
		return
	}
	if item == nil {
		NotFound(c, "strategy not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"strategy": item})
}
