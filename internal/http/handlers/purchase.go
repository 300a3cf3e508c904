package handlers

import (
	"strconv"
	"time"

	"github.com/yanhua-ledger/internal/http/response"
	"github.com/yanhua-ledger/internal/repository"
	"github.com/yanhua-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

type createPurchaseRequest struct {
	Supplier     string                 `json:"supplier"`
	ExpectedDate string                 `json:"expected_date"` // YYYY-MM-DD
	Remark       string                 `json:"remark"`
	Lines        []service.PurchaseLine `json:"lines" binding:"required"`
}

// CreatePurchase 创建采购单
func (h *Handler) CreatePurchase(c *gin.Context) {
	var req createPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	var expectedDate *time.Time
	if req.ExpectedDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpectedDate)
		if err != nil {
			response.BadRequest(c, "预计到货日期格式错误")
			return
		}
		expectedDate = &parsed
	}
	order, err := h.PurchaseService.Create(req.Supplier, expectedDate, req.Remark, req.Lines, actorName(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

type receivePurchaseRequest struct {
	Lines []service.ReceiveLine `json:"lines" binding:"required"`
}

// ReceivePurchase 记录一次（部分）到货
func (h *Handler) ReceivePurchase(c *gin.Context) {
	var req receivePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	order, err := h.PurchaseService.Receive(c.Param("id"), req.Lines, actorName(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// GetPurchase 采购单详情
func (h *Handler) GetPurchase(c *gin.Context) {
	order, err := h.PurchaseService.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// GetPurchases 采购单列表
func (h *Handler) GetPurchases(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.PurchaseService.List(repository.PurchaseOrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Supplier: c.Query("supplier"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// DeletePurchase 删除采购单
func (h *Handler) DeletePurchase(c *gin.Context) {
	if err := h.PurchaseService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "采购单已删除", nil)
}
