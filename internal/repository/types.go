package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page        int
	PageSize    int
	CategoryIDs []string
	Search      string
}

// InventoryLogFilter 查询库存流水的过滤条件
type InventoryLogFilter struct {
	Page        int
	PageSize    int
	ProductID   string
	WarehouseID string
	RefType     string
}

// PurchaseOrderListFilter 查询采购单列表的过滤条件
type PurchaseOrderListFilter struct {
	Page     int
	PageSize int
	Status   string
	Supplier string
}

// SalesOrderListFilter 查询销售单列表的过滤条件
type SalesOrderListFilter struct {
	Page        int
	PageSize    int
	CreatedBy   string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

func applyPagination(page, pageSize int) (offset, limit int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}
	return (page - 1) * pageSize, pageSize
}
