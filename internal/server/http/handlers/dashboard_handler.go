package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hypnotizedent/printshop-os-sub005/internal/server/http/dto"
)

// DashboardHandler serves portal aggregates.
type DashboardHandler struct {
	facade StatsFacade
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(facade StatsFacade) *DashboardHandler {
	return &DashboardHandler{facade: facade}
}

// Stats handles GET /api/dashboard/stats.
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID := CurrentUserID(c)

	stats, err := h.facade.DashboardStats(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := dto.DashboardResponse{
		StatusCounts: make(map[string]int, len(stats.StatusCounts)),
		OpenOrders:   stats.OpenOrders,
		Outstanding:  stats.Outstanding,
	}
	for status, count := range stats.StatusCounts {
		resp.StatusCounts[string(status)] = count
	}
	c.JSON(http.StatusOK, resp)
}
