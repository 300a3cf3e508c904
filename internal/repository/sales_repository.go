package repository

import (
	"errors"

	"github.com/yanhua-ledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesRepository 销售数据访问接口
type SalesRepository interface {
	Create(order *models.SalesOrder) error
	GetByID(id string) (*models.SalesOrder, error)
	List(filter SalesOrderListFilter) ([]models.SalesOrder, int64, error)
	SumActualByDate(date string) (decimal.Decimal, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) SalesRepository
}

// GormSalesRepository GORM 实现
type GormSalesRepository struct {
	db *gorm.DB
}

// NewSalesRepository 创建销售仓库
func NewSalesRepository(db *gorm.DB) *GormSalesRepository {
	return &GormSalesRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSalesRepository) WithTx(tx *gorm.DB) SalesRepository {
	if tx == nil {
		return r
	}
	return &GormSalesRepository{db: tx}
}

// Transaction 执行事务
func (r *GormSalesRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 创建销售单（连带明细）
func (r *GormSalesRepository) Create(order *models.SalesOrder) error {
	return r.db.Create(order).Error
}

// GetByID 根据 ID 获取销售单（含明细）
func (r *GormSalesRepository) GetByID(id string) (*models.SalesOrder, error) {
	var order models.SalesOrder
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// List 销售单列表
func (r *GormSalesRepository) List(filter SalesOrderListFilter) ([]models.SalesOrder, int64, error) {
	query := r.db.Model(&models.SalesOrder{}).Preload("Items")
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("order_date >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("order_date < ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := applyPagination(filter.Page, filter.PageSize)
	var orders []models.SalesOrder
	if err := query.Order("order_date DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// SumActualByDate 按日期汇总实收总额（日收款回写任务用）
func (r *GormSalesRepository) SumActualByDate(date string) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.Model(&models.SalesOrder{}).
		Select("COALESCE(SUM(total_actual_amount), 0) AS total").
		Where("DATE(order_date) = ?", date).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}
