package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/yanhua-ledger/internal/constants"
	"github.com/yanhua-ledger/internal/models"
	"github.com/yanhua-ledger/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPurchaseServiceTest(t *testing.T) (*PurchaseService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:purchase_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{}, &models.Inventory{}, &models.InventoryLog{},
		&models.PurchaseOrder{}, &models.PurchaseItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	inventorySvc := NewInventoryService(inventoryRepo, productRepo)
	return NewPurchaseService(purchaseRepo, productRepo, inventorySvc), db
}

func createPurchaseTestProduct(t *testing.T, db *gorm.DB, name string) *models.Product {
	t.Helper()

	spec := "10"
	product := &models.Product{
		Name:          name,
		Spec:          &spec,
		BaseCostPrice: models.NewMoneyFromFloat(10),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestEvaluatePurchaseStatus(t *testing.T) {
	if got := EvaluatePurchaseStatus(nil); got != constants.PurchaseStatusPending {
		t.Fatalf("empty order should be pending, got %s", got)
	}

	items := []models.PurchaseItem{
		{Quantity: 10, ReceivedQty: 0},
		{Quantity: 5, ReceivedQty: 0},
	}
	if got := EvaluatePurchaseStatus(items); got != constants.PurchaseStatusPending {
		t.Fatalf("expected pending, got %s", got)
	}

	items[0].ReceivedQty = 4
	if got := EvaluatePurchaseStatus(items); got != constants.PurchaseStatusPartial {
		t.Fatalf("expected partial, got %s", got)
	}

	items[0].ReceivedQty = 10
	items[1].ReceivedQty = 5
	if got := EvaluatePurchaseStatus(items); got != constants.PurchaseStatusComplete {
		t.Fatalf("expected complete, got %s", got)
	}

	// 超额到货同样视为完成
	items[1].ReceivedQty = 7
	if got := EvaluatePurchaseStatus(items); got != constants.PurchaseStatusComplete {
		t.Fatalf("expected complete on over-receipt, got %s", got)
	}
}

func TestReceivePartialThenComplete(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t)

	first := createPurchaseTestProduct(t, db, "采购品A")
	second := createPurchaseTestProduct(t, db, "采购品B")

	order, err := svc.Create("供应商甲", nil, "", []PurchaseLine{
		{ProductID: first.ID, Quantity: 10, ExpectedCost: 8},
		{ProductID: second.ID, Quantity: 5, ExpectedCost: 12},
	}, "owner")
	if err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}
	if order.Status != constants.PurchaseStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}

	order, err = svc.Receive(order.ID, []ReceiveLine{
		{ProductID: first.ID, ReceivedQty: 4},
	}, "owner")
	if err != nil {
		t.Fatalf("first receive failed: %v", err)
	}
	if order.Status != constants.PurchaseStatusPartial {
		t.Fatalf("expected partial, got %s", order.Status)
	}

	var inventory models.Inventory
	if err := db.First(&inventory, "product_id = ?", first.ID).Error; err != nil {
		t.Fatalf("load inventory failed: %v", err)
	}
	if got := inventory.TotalUnits(10); got != 4 {
		t.Fatalf("expected 4 units in stock, got %d", got)
	}

	order, err = svc.Receive(order.ID, []ReceiveLine{
		{ProductID: first.ID, ReceivedQty: 10},
		{ProductID: second.ID, ReceivedQty: 5},
	}, "owner")
	if err != nil {
		t.Fatalf("second receive failed: %v", err)
	}
	if order.Status != constants.PurchaseStatusComplete {
		t.Fatalf("expected complete, got %s", order.Status)
	}
}

func TestReceiveIdempotentOnRepeatAndDownwardCorrection(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t)

	product := createPurchaseTestProduct(t, db, "采购品C")
	order, err := svc.Create("供应商乙", nil, "", []PurchaseLine{
		{ProductID: product.ID, Quantity: 10, ExpectedCost: 8},
	}, "owner")
	if err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}

	if _, err := svc.Receive(order.ID, []ReceiveLine{{ProductID: product.ID, ReceivedQty: 6}}, "owner"); err != nil {
		t.Fatalf("receive failed: %v", err)
	}
	// 相同累计量重复提交：库存零增量
	if _, err := svc.Receive(order.ID, []ReceiveLine{{ProductID: product.ID, ReceivedQty: 6}}, "owner"); err != nil {
		t.Fatalf("repeat receive failed: %v", err)
	}
	var inventory models.Inventory
	if err := db.First(&inventory, "product_id = ?", product.ID).Error; err != nil {
		t.Fatalf("load inventory failed: %v", err)
	}
	if got := inventory.TotalUnits(10); got != 6 {
		t.Fatalf("expected 6 units after repeat, got %d", got)
	}

	// 向下更正：received_qty 改写但不回退库存
	order, err = svc.Receive(order.ID, []ReceiveLine{{ProductID: product.ID, ReceivedQty: 3}}, "owner")
	if err != nil {
		t.Fatalf("downward receive failed: %v", err)
	}
	if order.Items[0].ReceivedQty != 3 {
		t.Fatalf("expected stored received_qty 3, got %d", order.Items[0].ReceivedQty)
	}
	if err := db.First(&inventory, "product_id = ?", product.ID).Error; err != nil {
		t.Fatalf("load inventory failed: %v", err)
	}
	if got := inventory.TotalUnits(10); got != 6 {
		t.Fatalf("expected stock unchanged at 6 units, got %d", got)
	}
	if order.Status != constants.PurchaseStatusPartial {
		t.Fatalf("expected partial after correction, got %s", order.Status)
	}
}

func TestReceiveRecordsActualCostFallback(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t)

	product := createPurchaseTestProduct(t, db, "采购品D")
	order, err := svc.Create("供应商丙", nil, "", []PurchaseLine{
		{ProductID: product.ID, Quantity: 4, ExpectedCost: 8.5},
	}, "owner")
	if err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}

	order, err = svc.Receive(order.ID, []ReceiveLine{{ProductID: product.ID, ReceivedQty: 2}}, "owner")
	if err != nil {
		t.Fatalf("receive failed: %v", err)
	}
	if order.Items[0].ActualCost == nil || order.Items[0].ActualCost.String() != "8.50" {
		t.Fatalf("expected actual cost fallback 8.50, got %v", order.Items[0].ActualCost)
	}

	actual := 9.2
	order, err = svc.Receive(order.ID, []ReceiveLine{{ProductID: product.ID, ReceivedQty: 4, ActualCost: &actual}}, "owner")
	if err != nil {
		t.Fatalf("second receive failed: %v", err)
	}
	if order.Items[0].ActualCost.String() != "9.20" {
		t.Fatalf("expected supplied actual cost 9.20, got %s", order.Items[0].ActualCost.String())
	}
}

func TestReceiveSkipsUnknownLinesAndChecksOrder(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t)

	product := createPurchaseTestProduct(t, db, "采购品E")
	order, err := svc.Create("供应商丁", nil, "", []PurchaseLine{
		{ProductID: product.ID, Quantity: 5, ExpectedCost: 8},
	}, "owner")
	if err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}

	// 未知商品行静默跳过
	order, err = svc.Receive(order.ID, []ReceiveLine{
		{ProductID: "unknown-product", ReceivedQty: 99},
	}, "owner")
	if err != nil {
		t.Fatalf("receive with unknown line failed: %v", err)
	}
	if order.Status != constants.PurchaseStatusPending {
		t.Fatalf("expected still pending, got %s", order.Status)
	}
	var logCount int64
	db.Model(&models.InventoryLog{}).Count(&logCount)
	if logCount != 0 {
		t.Fatalf("unknown line must not touch inventory, got %d logs", logCount)
	}

	if _, err := svc.Receive("missing-order", nil, "owner"); err != ErrPurchaseOrderNotFound {
		t.Fatalf("expected ErrPurchaseOrderNotFound, got %v", err)
	}
}

func TestCreatePurchaseValidatesProducts(t *testing.T) {
	svc, _ := setupPurchaseServiceTest(t)

	if _, err := svc.Create("供应商", nil, "", []PurchaseLine{
		{ProductID: "missing", Quantity: 1, ExpectedCost: 1},
	}, "owner"); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.Create("供应商", nil, "", nil, "owner"); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}
