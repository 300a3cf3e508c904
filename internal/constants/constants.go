package constants

// 采购单状态常量
const (
	PurchaseStatusPending  = "pending"
	PurchaseStatusPartial  = "partial"
	PurchaseStatusComplete = "complete"
)

// 定价依据常量
const (
	PriceBasisException = "exception_price"
	PriceBasisCategory  = "category_coefficient"
	PriceBasisGlobal    = "global_coefficient"
)

// 库存流水引用类型常量
const (
	InventoryRefSales    = "sales"
	InventoryRefAdjust   = "adjust"
	InventoryRefPurchase = "purchase"
)

// 库存流水记录方式常量
const (
	InventoryLogTypeAuto = "auto"
)

// 系统配置键常量
const (
	ConfigKeyGlobalMultiplier = "global_multiplier"
)

// 默认值常量
const (
	DefaultGlobalMultiplier = 1.5
	DefaultWarehouseID      = "default"
	DefaultWarehouseName    = "默认仓"
)

// 用户角色常量
const (
	RoleOwner = "owner"
	RoleClerk = "clerk"
)

// 队列与任务常量
const (
	QueueDefault      = "default"
	TaskReceiptRollup = "receipt:rollup"
	TaskLowStockScan  = "inventory:low_stock_scan"
)
