package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MiscCost 杂费支出表
type MiscCost struct {
	ID        string    `gorm:"primarykey;size:64" json:"id"`                        // 主键（UUID）
	Item      string    `gorm:"size:200;not null" json:"item"`                       // 支出项目
	Quantity  float64   `gorm:"not null;default:1" json:"quantity"`                  // 数量
	Amount    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"amount"` // 金额
	CreatedAt time.Time `json:"created_at"`                                          // 创建时间
	CreatedBy string    `gorm:"size:64" json:"created_by"`                           // 记录人
}

// TableName 指定表名
func (MiscCost) TableName() string {
	return "misc_cost"
}

// BeforeCreate 生成主键
func (m *MiscCost) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
