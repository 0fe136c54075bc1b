package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salestracker/salestracker-server/internal/apperr"
	"github.com/salestracker/salestracker-server/internal/item"
	"github.com/salestracker/salestracker-server/internal/item/dto"
	"github.com/salestracker/salestracker-server/internal/model"
	"github.com/salestracker/salestracker-server/internal/server/respond"
)

// ItemHandler adapts the item usecase to HTTP.
type ItemHandler struct {
	uc     item.UseCase
	logger *zap.Logger
}

func NewItemHandler(uc item.UseCase, log *zap.Logger) *ItemHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ItemHandler{uc: uc, logger: log}
}

type itemRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	Cost        decimal.Decimal  `json:"cost"`
	CurrentQty  int              `json:"current_qty"`
}

type quantityRequest struct {
	Qty int `json:"qty"`
}

type itemResponse struct {
	*model.Item
	Available   int  `json:"available"`
	Backordered bool `json:"backordered"`
}

func toResponse(it *model.Item) itemResponse {
	return itemResponse{Item: it, Available: it.Available(), Backordered: it.Backordered()}
}

func toResponseList(items []*model.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toResponse(it))
	}
	return out
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.uc.GetAllItems(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toResponseList(items))
}

func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	it, err := h.uc.GetItem(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	if it == nil {
		respond.Error(c, h.logger, apperr.NotFound("item", id))
		return
	}
	c.JSON(http.StatusOK, toResponse(it))
}

func (h *ItemHandler) Create(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	it, err := h.uc.CreateItem(c.Request.Context(), &dto.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		SalePrice:   req.SalePrice,
		Cost:        req.Cost,
		CurrentQty:  req.CurrentQty,
	})
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(it))
}

func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	it, err := h.uc.UpdateItem(c.Request.Context(), &dto.UpdateItemInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		SalePrice:   req.SalePrice,
		Cost:        req.Cost,
	})
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(it))
}

func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteItem(c.Request.Context(), id); err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ItemHandler) Search(c *gin.Context) {
	items, err := h.uc.SearchItems(c.Request.Context(), c.Query("q"))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toResponseList(items))
}

func (h *ItemHandler) LowStock(c *gin.Context) {
	threshold, _ := strconv.Atoi(c.Query("threshold"))
	items, err := h.uc.LowStockItems(c.Request.Context(), threshold)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toResponseList(items))
}

func (h *ItemHandler) Backordered(c *gin.Context) {
	items, err := h.uc.BackorderedItems(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toResponseList(items))
}

func (h *ItemHandler) AddInventory(c *gin.Context) {
	h.adjustInventory(c, h.uc.AddInventory)
}

func (h *ItemHandler) RemoveInventory(c *gin.Context) {
	h.adjustInventory(c, h.uc.RemoveInventory)
}

func (h *ItemHandler) SetInventory(c *gin.Context) {
	h.adjustInventory(c, h.uc.SetInventory)
}

func (h *ItemHandler) adjustInventory(c *gin.Context, op func(ctx context.Context, id int64, qty int) (*model.Item, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	it, err := op(c.Request.Context(), id, req.Qty)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(it))
}
