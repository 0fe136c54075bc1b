package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salestracker/salestracker-server/internal/dashboard"
	"github.com/salestracker/salestracker-server/internal/server/respond"
)

// DashboardHandler exposes the analytics engine over HTTP. Everything here
// is read-only.
type DashboardHandler struct {
	uc     dashboard.UseCase
	logger *zap.Logger
}

func NewDashboardHandler(uc dashboard.UseCase, log *zap.Logger) *DashboardHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &DashboardHandler{uc: uc, logger: log}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.uc.Summary(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) MonthlySales(c *gin.Context) {
	months, _ := strconv.Atoi(c.Query("months"))
	buckets, err := h.uc.MonthlySales(c.Request.Context(), months)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

func (h *DashboardHandler) DailySales(c *gin.Context) {
	buckets, err := h.uc.DailySalesForCurrentMonth(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

func (h *DashboardHandler) TopItems(c *gin.Context) {
	n, _ := strconv.Atoi(c.Query("n"))
	top, err := h.uc.TopSellingItems(c.Request.Context(), n)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, top)
}

func (h *DashboardHandler) Backordered(c *gin.Context) {
	items, err := h.uc.BackorderedItems(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *DashboardHandler) InventorySummary(c *gin.Context) {
	threshold, _ := strconv.Atoi(c.Query("threshold"))
	summary, err := h.uc.InventorySummary(c.Request.Context(), threshold)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
