package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/yanhua-ledger/internal/models"
	"github.com/yanhua-ledger/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSalesServiceTest(t *testing.T) (*SalesService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:sales_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.SystemConfig{}, &models.Category{}, &models.Product{}, &models.ProductCategory{},
		&models.Inventory{}, &models.InventoryLog{}, &models.SalesOrder{}, &models.SalesItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	salesRepo := repository.NewSalesRepository(db)
	configSvc := NewConfigService(repository.NewConfigRepository(db))
	pricingSvc := NewPricingService(productRepo, categoryRepo, configSvc)
	inventorySvc := NewInventoryService(inventoryRepo, productRepo)
	return NewSalesService(salesRepo, inventorySvc, pricingSvc, nil), db
}

func createSalesTestProduct(t *testing.T, db *gorm.DB, name string, cost float64, multiplier float64) *models.Product {
	t.Helper()

	spec := "10"
	product := &models.Product{
		Name:             name,
		Spec:             &spec,
		BaseCostPrice:    models.NewMoneyFromFloat(cost),
		RetailMultiplier: &multiplier,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func seedSalesStock(t *testing.T, db *gorm.DB, productID string, boxes, loose int) {
	t.Helper()

	row := models.Inventory{
		ProductID:   productID,
		WarehouseID: "default",
		BoxCount:    boxes,
		LooseUnits:  loose,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed stock failed: %v", err)
	}
}

func TestCreateSaleSnapshotsPricesAndDeductsStock(t *testing.T) {
	svc, db := setupSalesServiceTest(t)

	product := createSalesTestProduct(t, db, "吉祥如意组合", 50, 2.0)
	seedSalesStock(t, db, product.ID, 3, 0)

	order, err := svc.CreateSale([]SaleLine{
		{ProductID: product.ID, Quantity: 5, ActualUnitPrice: 95},
	}, "clerk-1")
	if err != nil {
		t.Fatalf("create sale failed: %v", err)
	}

	if order.TotalActualAmount.String() != "475.00" {
		t.Fatalf("expected total 475.00, got %s", order.TotalActualAmount.String())
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.SnapshotCost.String() != "50.00" {
		t.Fatalf("expected snapshot cost 50.00, got %s", item.SnapshotCost.String())
	}
	if item.SnapshotStandardPrice.String() != "100.00" {
		t.Fatalf("expected snapshot standard 100.00, got %s", item.SnapshotStandardPrice.String())
	}
	if item.ActualSalePrice.String() != "95.00" {
		t.Fatalf("expected actual 95.00, got %s", item.ActualSalePrice.String())
	}

	var inventory models.Inventory
	if err := db.First(&inventory, "product_id = ?", product.ID).Error; err != nil {
		t.Fatalf("load inventory failed: %v", err)
	}
	// 30 件 - 5 件 = 25 件 = 2 箱 + 5 散
	if inventory.BoxCount != 2 || inventory.LooseUnits != 5 {
		t.Fatalf("expected 2 boxes + 5 loose after sale, got %d + %d", inventory.BoxCount, inventory.LooseUnits)
	}
}

func TestCreateSaleSnapshotImmuneToLaterRepricing(t *testing.T) {
	svc, db := setupSalesServiceTest(t)

	product := createSalesTestProduct(t, db, "喜庆连环炮", 20, 1.5)
	seedSalesStock(t, db, product.ID, 10, 0)

	order, err := svc.CreateSale([]SaleLine{
		{ProductID: product.ID, Quantity: 2, ActualUnitPrice: 30},
	}, "clerk-1")
	if err != nil {
		t.Fatalf("create sale failed: %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{"base_cost_price": 99, "retail_multiplier": 9.0}).Error; err != nil {
		t.Fatalf("reprice product failed: %v", err)
	}

	reloaded, err := svc.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Items[0].SnapshotCost.String() != "20.00" {
		t.Fatalf("snapshot cost changed after repricing: %s", reloaded.Items[0].SnapshotCost.String())
	}
	if reloaded.Items[0].SnapshotStandardPrice.String() != "30.00" {
		t.Fatalf("snapshot standard changed after repricing: %s", reloaded.Items[0].SnapshotStandardPrice.String())
	}
}

func TestCreateSaleUnknownProductRollsBackAllLines(t *testing.T) {
	svc, db := setupSalesServiceTest(t)

	product := createSalesTestProduct(t, db, "星河梦幻棒", 10, 2.0)
	seedSalesStock(t, db, product.ID, 5, 0)

	_, err := svc.CreateSale([]SaleLine{
		{ProductID: product.ID, Quantity: 3, ActualUnitPrice: 25},
		{ProductID: "missing-product", Quantity: 1, ActualUnitPrice: 10},
	}, "clerk-1")
	if err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	// 整单回滚：第一行的扣减不得落库
	var inventory models.Inventory
	if err := db.First(&inventory, "product_id = ?", product.ID).Error; err != nil {
		t.Fatalf("load inventory failed: %v", err)
	}
	if inventory.BoxCount != 5 || inventory.LooseUnits != 0 {
		t.Fatalf("expected untouched stock 5+0, got %d + %d", inventory.BoxCount, inventory.LooseUnits)
	}

	var orderCount int64
	db.Model(&models.SalesOrder{}).Count(&orderCount)
	if orderCount != 0 {
		t.Fatalf("expected no order persisted, got %d", orderCount)
	}
	var logCount int64
	db.Model(&models.InventoryLog{}).Count(&logCount)
	if logCount != 0 {
		t.Fatalf("expected no audit rows persisted, got %d", logCount)
	}
}

func TestCreateSaleTwiceDeductsTwice(t *testing.T) {
	svc, db := setupSalesServiceTest(t)

	product := createSalesTestProduct(t, db, "玩具烟花棒", 5, 2.0)
	seedSalesStock(t, db, product.ID, 2, 0)

	lines := []SaleLine{{ProductID: product.ID, Quantity: 4, ActualUnitPrice: 10}}
	if _, err := svc.CreateSale(lines, "clerk-1"); err != nil {
		t.Fatalf("first sale failed: %v", err)
	}
	if _, err := svc.CreateSale(lines, "clerk-1"); err != nil {
		t.Fatalf("second sale failed: %v", err)
	}

	var inventory models.Inventory
	if err := db.First(&inventory, "product_id = ?", product.ID).Error; err != nil {
		t.Fatalf("load inventory failed: %v", err)
	}
	// 相同载荷提交两次是两笔独立销售：20 - 4 - 4 = 12 件
	if got := inventory.TotalUnits(10); got != 12 {
		t.Fatalf("expected 12 units after two sales, got %d", got)
	}
}

func TestCreateSaleValidatesInput(t *testing.T) {
	svc, _ := setupSalesServiceTest(t)

	if _, err := svc.CreateSale(nil, "clerk-1"); err != ErrEmptySaleLines {
		t.Fatalf("expected ErrEmptySaleLines, got %v", err)
	}
	if _, err := svc.CreateSale([]SaleLine{{ProductID: "x", Quantity: 0}}, "clerk-1"); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.CreateSale([]SaleLine{{ProductID: "x", Quantity: 1, ActualUnitPrice: -5}}, "clerk-1"); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
