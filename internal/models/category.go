package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category 分类表
type Category struct {
	ID                  string    `gorm:"primarykey;size:64" json:"id"`            // 主键（UUID）
	Name                string    `gorm:"size:200;not null" json:"name"`           // 分类名称
	RetailMultiplier    *float64  `json:"retail_multiplier"`                       // 零售系数（可空表示无意见）
	RetailMultiplierMin *float64  `json:"retail_multiplier_min"`                   // 系数下限（参考值）
	RetailMultiplierMax *float64  `json:"retail_multiplier_max"`                   // 系数上限（参考值）
	IsCustom            bool      `gorm:"not null;default:false" json:"is_custom"` // 是否用户自定义标签分类
	UpdatedAt           time.Time `json:"updated_at"`                              // 更新时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "category"
}

// BeforeCreate 生成主键
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ProductCategory 商品-分类多对多关联表
type ProductCategory struct {
	ProductID  string `gorm:"primarykey;size:64" json:"product_id"`  // 商品ID
	CategoryID string `gorm:"primarykey;size:64" json:"category_id"` // 分类ID
}

// TableName 指定表名
func (ProductCategory) TableName() string {
	return "product_category"
}
