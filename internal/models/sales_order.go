package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesOrder 销售单表
type SalesOrder struct {
	ID                string    `gorm:"primarykey;size:64" json:"id"`                                     // 主键（UUID）
	OrderDate         time.Time `json:"order_date"`                                                       // 开单时间
	TotalActualAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_actual_amount"` // 实收总额
	CreatedBy         string    `gorm:"size:64;not null" json:"created_by"`                               // 开单人

	Items []SalesItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"` // 明细行
}

// TableName 指定表名
func (SalesOrder) TableName() string {
	return "sales_order"
}

// BeforeCreate 生成主键与时间
func (o *SalesOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now().UTC()
	}
	return nil
}

// SalesItem 销售明细表。成本与标准价在开单时刻快照，之后不再随商品变动。
type SalesItem struct {
	ID                    string    `gorm:"primarykey;size:64" json:"id"`                               // 主键（UUID）
	OrderID               string    `gorm:"size:64;not null;index" json:"order_id"`                     // 销售单ID
	ProductID             string    `gorm:"size:64;not null;index" json:"product_id"`                   // 商品ID
	Quantity              int       `gorm:"not null" json:"quantity"`                                   // 数量（件）
	SnapshotCost          Money     `gorm:"type:decimal(20,2);not null" json:"snapshot_cost"`           // 成本快照
	SnapshotStandardPrice Money     `gorm:"type:decimal(20,2);not null" json:"snapshot_standard_price"` // 标准价快照
	ActualSalePrice       Money     `gorm:"type:decimal(20,2);not null" json:"actual_sale_price"`       // 实售单价
	CreatedAt             time.Time `json:"created_at"`                                                 // 创建时间
}

// TableName 指定表名
func (SalesItem) TableName() string {
	return "sales_item"
}

// BeforeCreate 生成主键
func (i *SalesItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
