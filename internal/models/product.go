package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID               string    `gorm:"primarykey;size:64" json:"id"`                                 // 主键（UUID）
	Name             string    `gorm:"size:200;not null" json:"name"`                                // 商品名称
	CategoryID       *string   `gorm:"size:64;index" json:"category_id"`                             // 主分类ID（可空）
	Spec             *string   `gorm:"size:200" json:"spec"`                                         // 规格（归一化后为纯数字串）
	BaseCostPrice    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"base_cost_price"` // 进货成本单价
	FixedRetailPrice *Money    `gorm:"type:decimal(20,2)" json:"fixed_retail_price"`                 // 例外零售价（可空）
	RetailMultiplier *float64  `json:"retail_multiplier"`                                            // 商品级零售系数（可空）
	PackPriceRef     *Money    `gorm:"type:decimal(20,2)" json:"pack_price_ref"`                     // 整箱参考价（可空）
	ImgURL           string    `gorm:"size:500" json:"img_url"`                                      // 商品图片
	EffectURL        string    `gorm:"size:500" json:"effect_url"`                                   // 效果视频
	UpdatedAt        time.Time `json:"updated_at"`                                                   // 更新时间

	// 关联
	Category   *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`                                                           // 主分类
	Categories []Category     `gorm:"many2many:product_category;joinForeignKey:ProductID;joinReferences:CategoryID" json:"categories,omitempty"` // 多分类（标签）
	Aliases    []ProductAlias `gorm:"foreignKey:ProductID" json:"aliases,omitempty"`                                                             // 别名列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "product"
}

// BeforeCreate 生成主键
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProductAlias 商品别名表（导入匹配用）
type ProductAlias struct {
	ID        string `gorm:"primarykey;size:64" json:"id"`             // 主键（UUID）
	ProductID string `gorm:"size:64;not null;index" json:"product_id"` // 商品ID
	AliasName string `gorm:"size:200;not null" json:"alias_name"`      // 别名
}

// TableName 指定表名
func (ProductAlias) TableName() string {
	return "product_alias"
}

// BeforeCreate 生成主键
func (a *ProductAlias) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
