package handlers

import (
	"strconv"

	"github.com/yanhua-ledger/internal/http/response"
	"github.com/yanhua-ledger/internal/repository"
	"github.com/yanhua-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

type createSaleRequest struct {
	Lines []service.SaleLine `json:"lines" binding:"required"`
}

// CreateSale 开销售单
func (h *Handler) CreateSale(c *gin.Context) {
	var req createSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	order, err := h.SalesService.CreateSale(req.Lines, actorName(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// GetSale 销售单详情
func (h *Handler) GetSale(c *gin.Context) {
	order, err := h.SalesService.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// GetSales 销售单列表
func (h *Handler) GetSales(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.SalesService.List(repository.SalesOrderListFilter{
		Page:      page,
		PageSize:  pageSize,
		CreatedBy: c.Query("created_by"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}
