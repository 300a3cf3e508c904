package repository

import (
	"errors"

	"github.com/yanhua-ledger/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PurchaseRepository 采购数据访问接口
type PurchaseRepository interface {
	Create(order *models.PurchaseOrder) error
	GetByID(id string) (*models.PurchaseOrder, error)
	GetByIDForUpdate(id string) (*models.PurchaseOrder, error)
	List(filter PurchaseOrderListFilter) ([]models.PurchaseOrder, int64, error)
	UpdateStatus(id, status string) error
	SaveItem(item *models.PurchaseItem) error
	Delete(id string) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) PurchaseRepository
}

// GormPurchaseRepository GORM 实现
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository 创建采购仓库
func NewPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPurchaseRepository) WithTx(tx *gorm.DB) PurchaseRepository {
	if tx == nil {
		return r
	}
	return &GormPurchaseRepository{db: tx}
}

// Transaction 执行事务
func (r *GormPurchaseRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 创建采购单（连带明细）
func (r *GormPurchaseRepository) Create(order *models.PurchaseOrder) error {
	return r.db.Create(order).Error
}

// GetByID 根据 ID 获取采购单（含明细）
func (r *GormPurchaseRepository) GetByID(id string) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDForUpdate 加排他锁获取采购单及明细，防止并发到货事件交叉
func (r *GormPurchaseRepository) GetByIDForUpdate(id string) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.db.Where("purchase_order_id = ?", id).Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// List 采购单列表
func (r *GormPurchaseRepository) List(filter PurchaseOrderListFilter) ([]models.PurchaseOrder, int64, error) {
	query := r.db.Model(&models.PurchaseOrder{}).Preload("Items")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Supplier != "" {
		query = query.Where("supplier LIKE ?", "%"+filter.Supplier+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := applyPagination(filter.Page, filter.PageSize)
	var orders []models.PurchaseOrder
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus 更新采购单状态
func (r *GormPurchaseRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&models.PurchaseOrder{}).Where("id = ?", id).
		Update("status", status).Error
}

// SaveItem 回写采购明细
func (r *GormPurchaseRepository) SaveItem(item *models.PurchaseItem) error {
	return r.db.Save(item).Error
}

// Delete 删除采购单及明细
func (r *GormPurchaseRepository) Delete(id string) error {
	if err := r.db.Where("purchase_order_id = ?", id).Delete(&models.PurchaseItem{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.PurchaseOrder{}, "id = ?", id).Error
}
