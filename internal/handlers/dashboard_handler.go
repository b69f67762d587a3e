package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixalara/placement-service/internal/services"
	"github.com/pixalara/placement-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetOverview returns the admin landing-page aggregates: headline counters
// and the per-course enrollment distribution.
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	h.LogRequest(c, "getting dashboard overview")

	overview, err := h.service.GetOverview(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
