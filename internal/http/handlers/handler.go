package handlers

import (
	"github.com/yanhua-ledger/internal/provider"
)

// Handler HTTP 处理器，持有全部依赖
type Handler struct {
	*provider.Container
}

// NewHandler 创建处理器
func NewHandler(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func normalizePagination(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}
	return page, pageSize
}
