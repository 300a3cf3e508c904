package repository

import (
	"github.com/yanhua-ledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MiscCostRepository 杂费数据访问接口
type MiscCostRepository interface {
	Create(cost *models.MiscCost) error
	List(page, pageSize int) ([]models.MiscCost, int64, error)
	SumAmount() (decimal.Decimal, error)
	Delete(id string) error
}

// GormMiscCostRepository GORM 实现
type GormMiscCostRepository struct {
	db *gorm.DB
}

// NewMiscCostRepository 创建杂费仓库
func NewMiscCostRepository(db *gorm.DB) *GormMiscCostRepository {
	return &GormMiscCostRepository{db: db}
}

// Create 记一笔杂费
func (r *GormMiscCostRepository) Create(cost *models.MiscCost) error {
	return r.db.Create(cost).Error
}

// List 杂费列表
func (r *GormMiscCostRepository) List(page, pageSize int) ([]models.MiscCost, int64, error) {
	var total int64
	if err := r.db.Model(&models.MiscCost{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset, limit := applyPagination(page, pageSize)
	var rows []models.MiscCost
	if err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SumAmount 杂费总额（经营总览用）
func (r *GormMiscCostRepository) SumAmount() (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.Model(&models.MiscCost{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// Delete 删除杂费记录
func (r *GormMiscCostRepository) Delete(id string) error {
	return r.db.Delete(&models.MiscCost{}, "id = ?", id).Error
}
