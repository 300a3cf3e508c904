package handlers

import (
	"github.com/yanhua-ledger/internal/http/response"
	"github.com/yanhua-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	category, err := h.CategoryService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	category, err := h.CategoryService.Update(c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类（仅老板）。带商品时需 force=true。
func (h *Handler) DeleteCategory(c *gin.Context) {
	if !isOwner(c) {
		respondServiceError(c, service.ErrForbidden)
		return
	}
	force := c.Query("force") == "true"
	if err := h.CategoryService.Delete(c.Param("id"), force); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "分类已删除", nil)
}
