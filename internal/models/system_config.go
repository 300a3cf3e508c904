package models

import "time"

// SystemConfig 系统配置表（键值对存储）
type SystemConfig struct {
	Key   string `gorm:"primarykey;size:100" json:"key"` // 配置键
	Value string `gorm:"size:200;not null" json:"value"` // 配置值
}

// TableName 指定表名
func (SystemConfig) TableName() string {
	return "system_config"
}

// DailyReceipt 日收款手工覆盖表（按日期主键）
type DailyReceipt struct {
	Date      string    `gorm:"primarykey;size:10" json:"date"`                      // 日期（YYYY-MM-DD）
	Amount    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"amount"` // 当日收款额
	Manual    bool      `gorm:"not null;default:false" json:"manual"`                // 是否人工覆盖（覆盖后任务不再回写）
	CreatedAt time.Time `json:"created_at"`                                          // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                          // 更新时间
}

// TableName 指定表名
func (DailyReceipt) TableName() string {
	return "daily_receipt"
}
