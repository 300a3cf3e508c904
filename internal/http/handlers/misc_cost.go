package handlers

import (
	"strconv"

	"github.com/yanhua-ledger/internal/http/response"
	"github.com/yanhua-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateMiscCost 记一笔杂费
func (h *Handler) CreateMiscCost(c *gin.Context) {
	var input service.MiscCostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	cost, err := h.MiscCostService.Create(input, actorName(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, cost)
}

// GetMiscCosts 杂费列表
func (h *Handler) GetMiscCosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	costs, total, err := h.MiscCostService.List(page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, costs, response.NewPagination(page, pageSize, total))
}

// DeleteMiscCost 删除杂费记录（仅老板）
func (h *Handler) DeleteMiscCost(c *gin.Context) {
	if !isOwner(c) {
		respondServiceError(c, service.ErrForbidden)
		return
	}
	if err := h.MiscCostService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "杂费记录已删除", nil)
}
