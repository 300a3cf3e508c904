package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseOrder 采购单表
type PurchaseOrder struct {
	ID           string     `gorm:"primarykey;size:64" json:"id"`                     // 主键（UUID）
	Status       string     `gorm:"size:50;not null;default:'pending'" json:"status"` // 状态（pending/partial/complete）
	Supplier     string     `gorm:"size:200" json:"supplier"`                         // 供应商
	ExpectedDate *time.Time `json:"expected_date"`                                    // 预计到货日期
	Remark       string     `gorm:"size:500" json:"remark"`                           // 备注
	CreatedBy    string     `gorm:"size:64;not null" json:"created_by"`               // 创建人
	CreatedAt    time.Time  `json:"created_at"`                                       // 创建时间

	Items []PurchaseItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"` // 明细行
}

// TableName 指定表名
func (PurchaseOrder) TableName() string {
	return "purchase_order"
}

// BeforeCreate 生成主键
func (o *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// PurchaseItem 采购明细表。received_qty 随到货事件累积更新。
type PurchaseItem struct {
	ID              string `gorm:"primarykey;size:64" json:"id"`                               // 主键（UUID）
	PurchaseOrderID string `gorm:"size:64;not null;index" json:"purchase_order_id"`            // 采购单ID
	ProductID       string `gorm:"size:64;not null;index" json:"product_id"`                   // 商品ID
	Quantity        int    `gorm:"not null" json:"quantity"`                                   // 预期数量（件）
	ExpectedCost    Money  `gorm:"type:decimal(20,2);not null;default:0" json:"expected_cost"` // 预期成本单价
	ReceivedQty     int    `gorm:"not null;default:0" json:"received_qty"`                     // 已到货数量
	ActualCost      *Money `gorm:"type:decimal(20,2)" json:"actual_cost"`                      // 实际成本单价（首次到货记录）
}

// TableName 指定表名
func (PurchaseItem) TableName() string {
	return "purchase_item"
}

// BeforeCreate 生成主键
func (i *PurchaseItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
