package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-admin/internal/httpresp"
	"github.com/BruksfildServices01/barber-admin/internal/middleware"
	"github.com/BruksfildServices01/barber-admin/internal/usecase/report"
)

type DashboardHandler struct {
	uc *report.Dashboard
}

func NewDashboardHandler(uc *report.Dashboard) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.uc.Execute(c.Request.Context(), middleware.BarbershopID(c))
	if err != nil {
		writeError(c, err, "dashboard_failed")
		return
	}
	httpresp.OK(c, summary)
}
