package service

import (
	"sort"
	"time"

	"github.com/yanhua-ledger/internal/constants"
	"github.com/yanhua-ledger/internal/logger"
	"github.com/yanhua-ledger/internal/models"
	"github.com/yanhua-ledger/internal/queue"
	"github.com/yanhua-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleLine 销售明细输入
type SaleLine struct {
	ProductID       string  `json:"product_id" binding:"required"`
	Quantity        int     `json:"quantity" binding:"required"`
	ActualUnitPrice float64 `json:"actual_unit_price"`
	WarehouseID     string  `json:"warehouse_id"`
}

// SalesService 销售开单服务。
// 一张销售单的全部明细在同一事务内提交：任何一行商品不存在则整单回滚。
type SalesService struct {
	salesRepo    repository.SalesRepository
	inventorySvc *InventoryService
	pricingSvc   *PricingService
	queueClient  *queue.Client
}

// NewSalesService 创建销售服务
func NewSalesService(
	salesRepo repository.SalesRepository,
	inventorySvc *InventoryService,
	pricingSvc *PricingService,
	queueClient *queue.Client,
) *SalesService {
	return &SalesService{
		salesRepo:    salesRepo,
		inventorySvc: inventorySvc,
		pricingSvc:   pricingSvc,
		queueClient:  queueClient,
	}
}

// CreateSale 记录一笔多明细销售。
// 商品按 ID 排序后加锁，避免两笔交叉销售以相反顺序锁同一对商品互相死锁。
// 每行快照开单时刻的成本与标准价，之后商品改价不影响历史单据。
func (s *SalesService) CreateSale(lines []SaleLine, actor string) (*models.SalesOrder, error) {
	if len(lines) == 0 {
		return nil, ErrEmptySaleLines
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if line.ActualUnitPrice < 0 {
			return nil, ErrInvalidAmount
		}
	}

	order := &models.SalesOrder{
		ID:        uuid.NewString(),
		OrderDate: time.Now().UTC(),
		CreatedBy: actor,
	}

	err := s.salesRepo.Transaction(func(tx *gorm.DB) error {
		products, err := s.lockProductsSorted(tx, lines)
		if err != nil {
			return err
		}

		total := decimal.Zero
		items := make([]models.SalesItem, 0, len(lines))
		for _, line := range lines {
			product := products[line.ProductID]

			resolution, err := s.pricingSvc.ResolveAndMemoize(tx, product)
			if err != nil {
				return err
			}

			actualPrice := models.NewMoneyFromFloat(line.ActualUnitPrice)
			total = total.Add(actualPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, models.SalesItem{
				OrderID:               order.ID,
				ProductID:             product.ID,
				Quantity:              line.Quantity,
				SnapshotCost:          product.BaseCostPrice,
				SnapshotStandardPrice: resolution.Price,
				ActualSalePrice:       actualPrice,
			})

			if _, err := s.inventorySvc.Adjust(tx, product, line.WarehouseID,
				-line.Quantity, constants.InventoryRefSales, order.ID, actor); err != nil {
				return err
			}
		}

		order.TotalActualAmount = models.NewMoneyFromDecimal(total)
		order.Items = items
		return s.salesRepo.WithTx(tx).Create(order)
	})
	if err != nil {
		return nil, err
	}

	s.enqueueReceiptRollup(order.OrderDate)
	logger.Infow("sale_created",
		"order_id", order.ID,
		"lines", len(order.Items),
		"total", order.TotalActualAmount.String(),
		"actor", actor,
	)
	return order, nil
}

// lockProductsSorted 按商品 ID 升序加锁，返回已锁定的商品映射。
// 任一商品不存在即返回 ErrProductNotFound，由事务整体回滚。
func (s *SalesService) lockProductsSorted(tx *gorm.DB, lines []SaleLine) (map[string]*models.Product, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}
	sort.Strings(ids)

	products := make(map[string]*models.Product, len(ids))
	for _, id := range ids {
		product, err := s.inventorySvc.LockProduct(tx, id)
		if err != nil {
			return nil, err
		}
		products[id] = product
	}
	return products, nil
}

// GetByID 查询销售单
func (s *SalesService) GetByID(id string) (*models.SalesOrder, error) {
	order, err := s.salesRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrSalesOrderNotFound
	}
	return order, nil
}

// List 销售单列表
func (s *SalesService) List(filter repository.SalesOrderListFilter) ([]models.SalesOrder, int64, error) {
	return s.salesRepo.List(filter)
}

func (s *SalesService) enqueueReceiptRollup(orderDate time.Time) {
	if !s.queueClient.Enabled() {
		return
	}
	payload := queue.ReceiptRollupPayload{Date: orderDate.Format("2006-01-02")}
	if err := s.queueClient.EnqueueReceiptRollup(payload); err != nil {
		logger.Warnw("receipt_rollup_enqueue_failed", "date", payload.Date, "error", err)
	}
}
