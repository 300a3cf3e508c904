package handlers

import (
	"strconv"

	"github.com/yanhua-ledger/internal/http/response"
	"github.com/yanhua-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProductPrice 计算商品当前标准价（纯查询，不回写系数）
func (h *Handler) GetProductPrice(c *gin.Context) {
	resolution, err := h.PricingService.ResolvePriceByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, resolution)
}

// GetGlobalMultiplier 读取全局系数
func (h *Handler) GetGlobalMultiplier(c *gin.Context) {
	response.Success(c, gin.H{"global_multiplier": h.ConfigService.GlobalMultiplier()})
}

type setMultiplierRequest struct {
	GlobalMultiplier float64 `json:"global_multiplier" binding:"required"`
}

// SetGlobalMultiplier 设置全局系数（仅老板）
func (h *Handler) SetGlobalMultiplier(c *gin.Context) {
	if !isOwner(c) {
		respondServiceError(c, service.ErrForbidden)
		return
	}
	var req setMultiplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	if err := h.ConfigService.SetGlobalMultiplier(req.GlobalMultiplier); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "全局系数已更新", gin.H{
		"global_multiplier": strconv.FormatFloat(req.GlobalMultiplier, 'f', -1, 64),
	})
}
