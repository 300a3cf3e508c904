package handlers

import (
	"time"

	"github.com/yanhua-ledger/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetDashboardOverview 经营总览
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	overview, err := h.DashboardService.Overview()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, overview)
}

// GetInventoryValuation 库存估值
func (h *Handler) GetInventoryValuation(c *gin.Context) {
	valuation, err := h.DashboardService.InventoryValuation()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, valuation)
}

// GetDailyPerformance 某日销售汇总（默认今日）
func (h *Handler) GetDailyPerformance(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	aggregate, err := h.DashboardService.DailyPerformance(date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	receipt, err := h.ConfigService.GetDailyReceipt(date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	diff := aggregate.ActualTotal.Sub(aggregate.StandardTotal)
	diffRate := decimal.Zero
	if aggregate.StandardTotal.IsPositive() {
		diffRate = diff.DivRound(aggregate.StandardTotal, 4)
	}
	response.Success(c, gin.H{
		"date":           date,
		"actual_total":   aggregate.ActualTotal.StringFixed(2),
		"standard_total": aggregate.StandardTotal.StringFixed(2),
		"cost_total":     aggregate.CostTotal.StringFixed(2),
		"diff":           diff.StringFixed(2),
		"diff_rate":      diffRate.String(),
		"line_count":     aggregate.LineCount,
		"order_count":    aggregate.OrderCount,
		"daily_receipt":  receipt,
	})
}
