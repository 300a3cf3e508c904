package service

import "errors"

// 服务层业务错误。handler 层据此映射为响应码。
var (
	ErrProductNotFound       = errors.New("商品不存在")
	ErrCategoryNotFound      = errors.New("分类不存在")
	ErrPurchaseOrderNotFound = errors.New("采购单不存在")
	ErrSalesOrderNotFound    = errors.New("销售单不存在")
	ErrUserNotFound          = errors.New("用户不存在")
	ErrCategoryInUse         = errors.New("分类下仍有商品，需强制删除")
	ErrUsernameExists        = errors.New("登录名已存在")
	ErrInvalidCredentials    = errors.New("用户名或密码错误")
	ErrInvalidToken          = errors.New("无效的 token")
	ErrForbidden             = errors.New("没有操作权限")
	ErrEmptySaleLines        = errors.New("销售单至少需要一条明细")
	ErrInvalidQuantity       = errors.New("数量必须为正整数")
	ErrInvalidAmount         = errors.New("金额不合法")
	ErrInvalidMultiplier     = errors.New("系数必须大于 0")
)
