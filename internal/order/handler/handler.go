package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salestracker/salestracker-server/internal/apperr"
	"github.com/salestracker/salestracker-server/internal/order"
	"github.com/salestracker/salestracker-server/internal/order/dto"
	"github.com/salestracker/salestracker-server/internal/server/respond"
)

// OrderHandler adapts the order usecase to HTTP.
type OrderHandler struct {
	uc     order.UseCase
	logger *zap.Logger
}

func NewOrderHandler(uc order.UseCase, log *zap.Logger) *OrderHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderHandler{uc: uc, logger: log}
}

type createOrderRequest struct {
	CustomerName string          `json:"customer_name" binding:"required"`
	ItemID       int64           `json:"item_id" binding:"required"`
	SellDate     *time.Time      `json:"sell_date"`
	Price        decimal.Decimal `json:"price"`
	Qty          int             `json:"qty"`
	Paid         bool            `json:"paid"`
}

type updateOrderRequest struct {
	CustomerName string          `json:"customer_name" binding:"required"`
	ItemID       int64           `json:"item_id" binding:"required"`
	SellDate     time.Time       `json:"sell_date" binding:"required"`
	Price        decimal.Decimal `json:"price"`
	Qty          int             `json:"qty"`
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.uc.GetAllOrders(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	o, err := h.uc.GetOrder(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	if o == nil {
		respond.Error(c, h.logger, apperr.NotFound("order", id))
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := &dto.CreateOrderInput{
		CustomerName: req.CustomerName,
		ItemID:       req.ItemID,
		Price:        req.Price,
		Qty:          req.Qty,
		Paid:         req.Paid,
	}
	if req.SellDate != nil {
		input.SellDate = *req.SellDate
	}

	o, err := h.uc.CreateOrder(c.Request.Context(), input)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.uc.UpdateOrder(c.Request.Context(), &dto.UpdateOrderInput{
		ID:           id,
		CustomerName: req.CustomerName,
		ItemID:       req.ItemID,
		SellDate:     req.SellDate,
		Price:        req.Price,
		Qty:          req.Qty,
	})
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteOrder(c.Request.Context(), id); err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	o, err := h.uc.MarkAsDelivered(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) MarkPaid(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	o, err := h.uc.MarkAsPaid(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) SearchByCustomer(c *gin.Context) {
	orders, err := h.uc.SearchByCustomer(c.Request.Context(), c.Query("q"))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ByDateRange(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
		return
	}

	orders, err := h.uc.OrdersByDateRange(c.Request.Context(), start, end)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) PendingDeliveries(c *gin.Context) {
	orders, err := h.uc.PendingDeliveries(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Unpaid(c *gin.Context) {
	orders, err := h.uc.UnpaidOrders(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
