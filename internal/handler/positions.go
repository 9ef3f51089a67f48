package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"earnapi/internal/service"
)

type PositionHandler struct {
	Service *service.PositionService
}

func (h *PositionHandler) Register(r *gin.Engine) {
	group := r.Group("/v1/positions")
	group.GET("", h.list)
	group.GET("/:positionId", h.get)
}

// @Summary List user positions
// @Tags positions
// @Produce json
// @Param address query string true "User's wallet address"
// @Success 200 {object} map[string][]service.PositionView
// @Failure 400 {object} handler.ErrorBody
// @Failure 502 {object} handler.ErrorBody
// @Router /v1/positions [get]
func (h *PositionHandler) list(c *gin.Context) {
	address := strings.TrimSpace(c.Query("address"))
	if address == "" {
		ValidationFailed(c, "Missing address query parameter")
		return
	}
	items, err := h.Service.ListByAddress(c.Request.Context(), address)
	if err != nil {
		Upstream(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"positions": items})
}

// @Summary Get position details
// @Tags positions
// @Produce json
// @Param positionId path string true "Position identifier"
// @Success 200 {object} map[string]service.PositionView
// @Failure 404 {object} handler.ErrorBody
// @Failure 502 {object} handler.ErrorBody
// @Router /v1/positions/{positionId} [get]
func (h *PositionHandler) get(c *gin.Context) {
	positionID := strings.TrimSpace(c.Param("positionId"))
	if positionID == "" {
		ValidationFailed(c, "positionId required")
		return
	}
	item, err := h.Service.Get(c.Request.Context(), positionID)
	if err != nil {
		Upstream(c, err)
		return
	}
	if item == nil {
		NotFound(c, "position not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"position": item})
}
