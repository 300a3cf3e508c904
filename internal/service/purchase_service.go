package service

import (
	"time"

	"github.com/yanhua-ledger/internal/constants"
	"github.com/yanhua-ledger/internal/logger"
	"github.com/yanhua-ledger/internal/models"
	"github.com/yanhua-ledger/internal/repository"

	"gorm.io/gorm"
)

// PurchaseLine 采购明细输入
type PurchaseLine struct {
	ProductID    string  `json:"product_id" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required"`
	ExpectedCost float64 `json:"expected_cost"`
}

// ReceiveLine 到货明细输入。ReceivedQty 为该行累计到货量，非本次增量。
type ReceiveLine struct {
	ProductID   string   `json:"product_id" binding:"required"`
	ReceivedQty int      `json:"received_qty"`
	ActualCost  *float64 `json:"actual_cost"`
	WarehouseID string   `json:"warehouse_id"`
}

// PurchaseService 采购与到货服务。
// 状态机：pending → partial → complete，每次到货事件后全量扫描明细判定。
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	inventorySvc *InventoryService
}

// NewPurchaseService 创建采购服务
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	inventorySvc *InventoryService,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		inventorySvc: inventorySvc,
	}
}

// EvaluatePurchaseStatus 扫描明细判定采购单状态。
// 空单为 pending；全部行 received >= quantity 为 complete；有任何到货为 partial。
func EvaluatePurchaseStatus(items []models.PurchaseItem) string {
	if len(items) == 0 {
		return constants.PurchaseStatusPending
	}
	allComplete := true
	anyReceived := false
	for i := range items {
		if items[i].ReceivedQty < items[i].Quantity {
			allComplete = false
		}
		if items[i].ReceivedQty > 0 {
			anyReceived = true
		}
	}
	if allComplete {
		return constants.PurchaseStatusComplete
	}
	if anyReceived {
		return constants.PurchaseStatusPartial
	}
	return constants.PurchaseStatusPending
}

// Create 创建采购单
func (s *PurchaseService) Create(supplier string, expectedDate *time.Time, remark string, lines []PurchaseLine, actor string) (*models.PurchaseOrder, error) {
	if len(lines) == 0 {
		return nil, ErrInvalidQuantity
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if line.ExpectedCost < 0 {
			return nil, ErrInvalidAmount
		}
	}

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(products))
	for i := range products {
		known[products[i].ID] = true
	}
	for _, line := range lines {
		if !known[line.ProductID] {
			return nil, ErrProductNotFound
		}
	}

	order := &models.PurchaseOrder{
		Status:       constants.PurchaseStatusPending,
		Supplier:     supplier,
		ExpectedDate: expectedDate,
		Remark:       remark,
		CreatedBy:    actor,
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.PurchaseItem{
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			ExpectedCost: models.NewMoneyFromFloat(line.ExpectedCost),
		})
	}
	if err := s.purchaseRepo.Create(order); err != nil {
		return nil, err
	}
	logger.Infow("purchase_order_created", "order_id", order.ID, "lines", len(order.Items), "actor", actor)
	return order, nil
}

// Receive 记录一次（部分）到货。
// 入库增量为 max(0, 新累计量 − 旧累计量)：重复或更小的提交对库存是空操作，
// 但 received_qty 本身无条件改写，允许操作员向下更正录入而不回退库存。
// 更新集中未知商品行静默跳过。
func (s *PurchaseService) Receive(orderID string, updates []ReceiveLine, actor string) (*models.PurchaseOrder, error) {
	var result *models.PurchaseOrder
	err := s.purchaseRepo.Transaction(func(tx *gorm.DB) error {
		purchaseRepo := s.purchaseRepo.WithTx(tx)

		order, err := purchaseRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrPurchaseOrderNotFound
		}

		byProduct := make(map[string]ReceiveLine, len(updates))
		for _, update := range updates {
			byProduct[update.ProductID] = update
		}

		for i := range order.Items {
			item := &order.Items[i]
			update, ok := byProduct[item.ProductID]
			if !ok {
				continue
			}
			if update.ReceivedQty < 0 {
				return ErrInvalidQuantity
			}

			delta := update.ReceivedQty - item.ReceivedQty
			if delta < 0 {
				logger.Warnw("purchase_received_qty_corrected_down",
					"order_id", order.ID,
					"product_id", item.ProductID,
					"from", item.ReceivedQty,
					"to", update.ReceivedQty,
				)
				delta = 0
			}
			item.ReceivedQty = update.ReceivedQty

			if update.ActualCost != nil {
				cost := models.NewMoneyFromFloat(*update.ActualCost)
				item.ActualCost = &cost
			} else if item.ActualCost == nil {
				cost := item.ExpectedCost
				item.ActualCost = &cost
			}
			if err := purchaseRepo.SaveItem(item); err != nil {
				return err
			}

			if delta > 0 {
				product, err := s.inventorySvc.LockProduct(tx, item.ProductID)
				if err != nil {
					return err
				}
				if _, err := s.inventorySvc.Adjust(tx, product, update.WarehouseID,
					delta, constants.InventoryRefPurchase, order.ID, actor); err != nil {
					return err
				}
			}
		}

		status := EvaluatePurchaseStatus(order.Items)
		if status != order.Status {
			logger.Infow("purchase_status_changed", "order_id", order.ID, "from", order.Status, "to", status)
			order.Status = status
			if err := purchaseRepo.UpdateStatus(order.ID, status); err != nil {
				return err
			}
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID 查询采购单
func (s *PurchaseService) GetByID(id string) (*models.PurchaseOrder, error) {
	order, err := s.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrPurchaseOrderNotFound
	}
	return order, nil
}

// List 采购单列表
func (s *PurchaseService) List(filter repository.PurchaseOrderListFilter) ([]models.PurchaseOrder, int64, error) {
	return s.purchaseRepo.List(filter)
}

// Delete 删除采购单
func (s *PurchaseService) Delete(id string) error {
	order, err := s.purchaseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrPurchaseOrderNotFound
	}
	return s.purchaseRepo.Delete(id)
}
