package service

import (
	"github.com/yanhua-ledger/internal/constants"
	"github.com/yanhua-ledger/internal/logger"
	"github.com/yanhua-ledger/internal/models"
	"github.com/yanhua-ledger/internal/repository"

	"gorm.io/gorm"
)

// InventoryService 库存台账服务。
// 所有库存变更在行锁内经 ApplyUnitDelta 落盘，并追加一条流水。
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
}

// NewInventoryService 创建库存服务
func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
	}
}

// LockProduct 在事务内锁定商品行。
// 读定价/规格字段前必须先锁，防止读到编辑到一半的商品。
func (s *InventoryService) LockProduct(tx *gorm.DB, productID string) (*models.Product, error) {
	product, err := s.productRepo.WithTx(tx).GetByIDForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetOrCreate 在事务内加锁获取库存行，缺失时创建零库存行
func (s *InventoryService) GetOrCreate(tx *gorm.DB, productID, warehouseID string) (*models.Inventory, error) {
	if warehouseID == "" {
		warehouseID = constants.DefaultWarehouseID
	}
	return s.inventoryRepo.WithTx(tx).GetOrCreateForUpdate(productID, warehouseID)
}

// Adjust 在事务内对库存施加带符号的件数变动。
// 流水记录请求量而非截断后的实际量：审计反映操作意图，余额负值截断另行告警。
func (s *InventoryService) Adjust(
	tx *gorm.DB,
	product *models.Product,
	warehouseID string,
	deltaUnits int,
	refType, refID, actor string,
) (*models.Inventory, error) {
	if product == nil {
		return nil, ErrProductNotFound
	}
	if warehouseID == "" {
		warehouseID = constants.DefaultWarehouseID
	}
	inventoryRepo := s.inventoryRepo.WithTx(tx)

	inventory, err := inventoryRepo.GetOrCreateForUpdate(product.ID, warehouseID)
	if err != nil {
		return nil, err
	}

	packSize := PackSizeOf(product)
	before := inventory.TotalUnits(packSize)
	ApplyUnitDelta(inventory, packSize, deltaUnits)
	after := inventory.TotalUnits(packSize)

	if before+deltaUnits < 0 {
		logger.Warnw("inventory_clamped_at_zero",
			"product_id", product.ID,
			"warehouse_id", warehouseID,
			"requested_delta", deltaUnits,
			"before_units", before,
		)
	}

	if err := inventoryRepo.Save(inventory); err != nil {
		return nil, err
	}
	if err := inventoryRepo.AppendLog(&models.InventoryLog{
		ProductID:   product.ID,
		WarehouseID: warehouseID,
		ChangeQty:   deltaUnits,
		Type:        constants.InventoryLogTypeAuto,
		RefType:     refType,
		RefID:       refID,
		Actor:       actor,
	}); err != nil {
		return nil, err
	}

	logger.Debugw("inventory_adjusted",
		"product_id", product.ID,
		"warehouse_id", warehouseID,
		"delta", deltaUnits,
		"units_after", after,
	)
	return inventory, nil
}

// AdjustByProductID 独立调整库存（盘点修正入口），自带事务
func (s *InventoryService) AdjustByProductID(productID, warehouseID string, deltaUnits int, actor string) (*models.Inventory, error) {
	var result *models.Inventory
	err := s.inventoryRepo.Transaction(func(tx *gorm.DB) error {
		product, err := s.LockProduct(tx, productID)
		if err != nil {
			return err
		}
		result, err = s.Adjust(tx, product, warehouseID, deltaUnits, constants.InventoryRefAdjust, "", actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get 查询单个商品的库存（无则返回零库存行）
func (s *InventoryService) Get(productID, warehouseID string) (*models.Inventory, error) {
	if warehouseID == "" {
		warehouseID = constants.DefaultWarehouseID
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	inventory, err := s.inventoryRepo.Get(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if inventory == nil {
		return &models.Inventory{ProductID: productID, WarehouseID: warehouseID}, nil
	}
	return inventory, nil
}

// ListAll 全部库存行
func (s *InventoryService) ListAll() ([]models.Inventory, error) {
	return s.inventoryRepo.ListAll()
}

// ListLogs 查询库存流水
func (s *InventoryService) ListLogs(filter repository.InventoryLogFilter) ([]models.InventoryLog, int64, error) {
	return s.inventoryRepo.ListLogs(filter)
}
