package handlers

import (
	"errors"

	"github.com/yanhua-ledger/internal/http/response"
	"github.com/yanhua-ledger/internal/logger"
	"github.com/yanhua-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError 把服务层错误映射为统一响应
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrPurchaseOrderNotFound),
		errors.Is(err, service.ErrSalesOrderNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCategoryInUse),
		errors.Is(err, service.ErrUsernameExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrEmptySaleLines),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidMultiplier):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	default:
		logger.Errorw("request_failed", "path", c.FullPath(), "error", err)
		response.Error(c, response.CodeInternal, "服务器内部错误")
	}
}
