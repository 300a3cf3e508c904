package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inventory 库存表（按商品+仓库复合主键）
type Inventory struct {
	ProductID   string    `gorm:"primarykey;size:64" json:"product_id"`   // 商品ID
	WarehouseID string    `gorm:"primarykey;size:64" json:"warehouse_id"` // 仓库ID
	BoxCount    int       `gorm:"not null;default:0" json:"box_count"`    // 整箱数
	LooseUnits  int       `gorm:"not null;default:0" json:"loose_units"`  // 散件数（0 <= 散件 < 每箱件数）
	UpdatedAt   time.Time `json:"updated_at"`                             // 更新时间
}

// TableName 指定表名
func (Inventory) TableName() string {
	return "inventory"
}

// TotalUnits 按每箱件数折算总件数
func (i Inventory) TotalUnits(packSize int) int {
	if packSize <= 1 {
		return i.BoxCount + i.LooseUnits
	}
	return i.BoxCount*packSize + i.LooseUnits
}

// InventoryLog 库存流水表（只追加，不修改不删除）
type InventoryLog struct {
	ID          string    `gorm:"primarykey;size:64" json:"id"`             // 主键（UUID）
	ProductID   string    `gorm:"size:64;not null;index" json:"product_id"` // 商品ID
	WarehouseID string    `gorm:"size:64;not null" json:"warehouse_id"`     // 仓库ID
	ChangeDate  time.Time `json:"change_date"`                              // 变动时间
	ChangeQty   int       `gorm:"not null" json:"change_qty"`               // 变动件数（记录请求量，非截断后实际量）
	Type        string    `gorm:"size:50;not null" json:"type"`             // 记录方式
	RefType     string    `gorm:"size:50" json:"ref_type"`                  // 引用类型（sales/adjust/purchase）
	RefID       string    `gorm:"size:100" json:"ref_id"`                   // 引用ID
	Actor       string    `gorm:"size:64" json:"actor"`                     // 操作人
}

// TableName 指定表名
func (InventoryLog) TableName() string {
	return "inventory_log"
}

// BeforeCreate 生成主键与时间
func (l *InventoryLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.ChangeDate.IsZero() {
		l.ChangeDate = time.Now().UTC()
	}
	return nil
}

// Warehouse 仓库表
type Warehouse struct {
	ID   string `gorm:"primarykey;size:64" json:"id"`  // 主键
	Name string `gorm:"size:200;not null" json:"name"` // 仓库名称
}

// TableName 指定表名
func (Warehouse) TableName() string {
	return "warehouse"
}
