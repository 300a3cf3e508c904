package repository

import (
	"errors"

	"github.com/yanhua-ledger/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfigRepository 系统配置与日收款数据访问接口
type ConfigRepository interface {
	GetValue(key string) (*models.SystemConfig, error)
	Upsert(key, value string) error
	GetDailyReceipt(date string) (*models.DailyReceipt, error)
	UpsertDailyReceipt(receipt *models.DailyReceipt) error
	ListDailyReceipts(from, to string) ([]models.DailyReceipt, error)
	WithTx(tx *gorm.DB) ConfigRepository
}

// GormConfigRepository GORM 实现
type GormConfigRepository struct {
	db *gorm.DB
}

// NewConfigRepository 创建配置仓库
func NewConfigRepository(db *gorm.DB) *GormConfigRepository {
	return &GormConfigRepository{db: db}
}

// WithTx 绑定事务
func (r *GormConfigRepository) WithTx(tx *gorm.DB) ConfigRepository {
	if tx == nil {
		return r
	}
	return &GormConfigRepository{db: tx}
}

// GetValue 读取配置项，不存在返回 nil
func (r *GormConfigRepository) GetValue(key string) (*models.SystemConfig, error) {
	var row models.SystemConfig
	if err := r.db.First(&row, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Upsert 写入配置项（存在则覆盖）
func (r *GormConfigRepository) Upsert(key, value string) error {
	row := models.SystemConfig{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
}

// GetDailyReceipt 读取某日收款记录，不存在返回 nil
func (r *GormConfigRepository) GetDailyReceipt(date string) (*models.DailyReceipt, error) {
	var row models.DailyReceipt
	if err := r.db.First(&row, "date = ?", date).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// UpsertDailyReceipt 写入日收款记录（存在则覆盖金额与标记）
func (r *GormConfigRepository) UpsertDailyReceipt(receipt *models.DailyReceipt) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "manual", "updated_at"}),
	}).Create(receipt).Error
}

// ListDailyReceipts 按日期区间列出日收款记录
func (r *GormConfigRepository) ListDailyReceipts(from, to string) ([]models.DailyReceipt, error) {
	query := r.db.Model(&models.DailyReceipt{})
	if from != "" {
		query = query.Where("date >= ?", from)
	}
	if to != "" {
		query = query.Where("date <= ?", to)
	}
	var rows []models.DailyReceipt
	if err := query.Order("date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
