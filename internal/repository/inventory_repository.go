package repository

import (
	"errors"

	"github.com/yanhua-ledger/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository 库存数据访问接口
type InventoryRepository interface {
	Get(productID, warehouseID string) (*models.Inventory, error)
	GetOrCreateForUpdate(productID, warehouseID string) (*models.Inventory, error)
	Save(inventory *models.Inventory) error
	ListByProduct(productID string) ([]models.Inventory, error)
	ListAll() ([]models.Inventory, error)
	AppendLog(log *models.InventoryLog) error
	ListLogs(filter InventoryLogFilter) ([]models.InventoryLog, int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) InventoryRepository
}

// GormInventoryRepository GORM 实现
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓库
func NewInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInventoryRepository) WithTx(tx *gorm.DB) InventoryRepository {
	if tx == nil {
		return r
	}
	return &GormInventoryRepository{db: tx}
}

// Transaction 执行事务
func (r *GormInventoryRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Get 获取库存行，不存在返回 nil
func (r *GormInventoryRepository) Get(productID, warehouseID string) (*models.Inventory, error) {
	var inventory models.Inventory
	err := r.db.First(&inventory, "product_id = ? AND warehouse_id = ?", productID, warehouseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inventory, nil
}

// GetOrCreateForUpdate 加排他锁获取库存行，不存在则先插入零库存行再锁。
// 插入用 ON CONFLICT DO NOTHING 吸收并发创建。
func (r *GormInventoryRepository) GetOrCreateForUpdate(productID, warehouseID string) (*models.Inventory, error) {
	var inventory models.Inventory
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inventory, "product_id = ? AND warehouse_id = ?", productID, warehouseID).Error
	if err == nil {
		return &inventory, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seed := models.Inventory{ProductID: productID, WarehouseID: warehouseID}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, err
	}
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inventory, "product_id = ? AND warehouse_id = ?", productID, warehouseID).Error; err != nil {
		return nil, err
	}
	return &inventory, nil
}

// Save 回写库存行
func (r *GormInventoryRepository) Save(inventory *models.Inventory) error {
	return r.db.Save(inventory).Error
}

// ListByProduct 获取商品在所有仓库的库存
func (r *GormInventoryRepository) ListByProduct(productID string) ([]models.Inventory, error) {
	var rows []models.Inventory
	if err := r.db.Where("product_id = ?", productID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll 获取全部库存行（库存总览用）
func (r *GormInventoryRepository) ListAll() ([]models.Inventory, error) {
	var rows []models.Inventory
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AppendLog 追加库存流水
func (r *GormInventoryRepository) AppendLog(log *models.InventoryLog) error {
	return r.db.Create(log).Error
}

// ListLogs 查询库存流水
func (r *GormInventoryRepository) ListLogs(filter InventoryLogFilter) ([]models.InventoryLog, int64, error) {
	query := r.db.Model(&models.InventoryLog{})
	if filter.ProductID != "" {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.WarehouseID != "" {
		query = query.Where("warehouse_id = ?", filter.WarehouseID)
	}
	if filter.RefType != "" {
		query = query.Where("ref_type = ?", filter.RefType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := applyPagination(filter.Page, filter.PageSize)
	var logs []models.InventoryLog
	if err := query.Order("change_date DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
