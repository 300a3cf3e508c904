package models

import (
	"strings"

	"github.com/yanhua-ledger/internal/constants"
	"github.com/yanhua-ledger/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultOwner 初始化默认老板账号
func InitDefaultOwner(username, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "owner"
	}
	if password == "" {
		password = "owner123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Username:     strings.TrimSpace(username),
		PasswordHash: string(hash),
		Role:         constants.RoleOwner,
	}
	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == "owner123" {
		logger.Warnw("default_owner_created_with_default_password", "username", username)
		logger.Warnw("default_owner_password_change_required", "username", username)
	} else {
		logger.Warnw("default_owner_created", "username", username, "password_hidden", true)
	}
	return nil
}

// EnsureDefaultWarehouse 确保默认仓存在
func EnsureDefaultWarehouse() error {
	var count int64
	if err := DB.Model(&Warehouse{}).Where("id = ?", constants.DefaultWarehouseID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return DB.Create(&Warehouse{
		ID:   constants.DefaultWarehouseID,
		Name: constants.DefaultWarehouseName,
	}).Error
}
