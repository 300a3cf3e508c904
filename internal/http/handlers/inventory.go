package handlers

import (
	"strconv"

	"github.com/yanhua-ledger/internal/http/response"
	"github.com/yanhua-ledger/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetInventory 查询单个商品库存
func (h *Handler) GetInventory(c *gin.Context) {
	inventory, err := h.InventoryService.Get(c.Param("id"), c.Query("warehouse_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, inventory)
}

type adjustInventoryRequest struct {
	DeltaUnits  int    `json:"delta_units" binding:"required"`
	WarehouseID string `json:"warehouse_id"`
}

// AdjustInventory 盘点修正库存（带符号件数）
func (h *Handler) AdjustInventory(c *gin.Context) {
	var req adjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	inventory, err := h.InventoryService.AdjustByProductID(
		c.Param("id"), req.WarehouseID, req.DeltaUnits, actorName(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, inventory)
}

// GetInventoryLogs 库存流水
func (h *Handler) GetInventoryLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	logs, total, err := h.InventoryService.ListLogs(repository.InventoryLogFilter{
		Page:        page,
		PageSize:    pageSize,
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		RefType:     c.Query("ref_type"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, logs, response.NewPagination(page, pageSize, total))
}
