package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 用户表（owner/clerk 两种角色）
type User struct {
	ID           string    `gorm:"primarykey;size:64" json:"id"`                  // 主键（UUID）
	Username     string    `gorm:"size:200;uniqueIndex;not null" json:"username"` // 登录名
	PasswordHash string    `gorm:"size:200;not null" json:"-"`                    // 密码哈希
	Role         string    `gorm:"size:10;not null;default:'clerk'" json:"role"`  // 角色
	CreatedAt    time.Time `json:"created_at"`                                    // 创建时间
}

// TableName 指定表名
func (User) TableName() string {
	return "user_account"
}

// BeforeCreate 生成主键
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
