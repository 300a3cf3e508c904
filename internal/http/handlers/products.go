package handlers

import (
	"strconv"
	"strings"

	"github.com/yanhua-ledger/internal/http/response"
	"github.com/yanhua-ledger/internal/repository"
	"github.com/yanhua-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 商品列表（含库存折算与当前标准价）
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}
	if categoryID := strings.TrimSpace(c.Query("category_id")); categoryID != "" {
		filter.CategoryIDs = strings.Split(categoryID, ",")
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	product, err := h.ProductService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	product, err := h.ProductService.Update(c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.ProductService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "商品已删除", nil)
}
