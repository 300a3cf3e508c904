package handlers

import (
	"time"

	"github.com/yanhua-ledger/internal/http/response"
	"github.com/yanhua-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

type overrideReceiptRequest struct {
	Date   string  `json:"date"` // YYYY-MM-DD，缺省为今日
	Amount float64 `json:"amount"`
}

// OverrideDailyReceipt 人工覆盖某日收款额（仅老板）
func (h *Handler) OverrideDailyReceipt(c *gin.Context) {
	if !isOwner(c) {
		respondServiceError(c, service.ErrForbidden)
		return
	}
	var req overrideReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		response.BadRequest(c, "日期格式错误")
		return
	}
	if err := h.ConfigService.OverrideDailyReceipt(date, req.Amount); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "日收款已覆盖", nil)
}

// GetDailyReceipts 日收款列表
func (h *Handler) GetDailyReceipts(c *gin.Context) {
	receipts, err := h.ConfigService.ListDailyReceipts(c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, receipts)
}
