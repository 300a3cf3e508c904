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

func setupInventoryServiceTest(t *testing.T) (*InventoryService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:inventory_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{}, &models.Inventory{}, &models.InventoryLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	inventoryRepo := repository.NewInventoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewInventoryService(inventoryRepo, productRepo), db
}

func createInventoryTestProduct(t *testing.T, db *gorm.DB, spec string) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:          "测试鞭炮",
		BaseCostPrice: models.NewMoneyFromFloat(10),
	}
	if spec != "" {
		product.Spec = &spec
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestGetOrCreateSeedsZeroRow(t *testing.T) {
	svc, db := setupInventoryServiceTest(t)
	product := createInventoryTestProduct(t, db, "10")

	err := db.Transaction(func(tx *gorm.DB) error {
		inventory, err := svc.GetOrCreate(tx, product.ID, "")
		if err != nil {
			return err
		}
		if inventory.WarehouseID != constants.DefaultWarehouseID {
			t.Fatalf("expected default warehouse, got %s", inventory.WarehouseID)
		}
		if inventory.BoxCount != 0 || inventory.LooseUnits != 0 {
			t.Fatalf("expected zeroed row, got %d + %d", inventory.BoxCount, inventory.LooseUnits)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	var count int64
	db.Model(&models.Inventory{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one inventory row, got %d", count)
	}
}

func TestAdjustAppliesDeltaAndAppendsLog(t *testing.T) {
	svc, db := setupInventoryServiceTest(t)
	product := createInventoryTestProduct(t, db, "10发/箱")

	var result *models.Inventory
	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := svc.LockProduct(tx, product.ID)
		if err != nil {
			return err
		}
		result, err = svc.Adjust(tx, locked, "", 25, constants.InventoryRefAdjust, "", "owner")
		return err
	})
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if result.BoxCount != 2 || result.LooseUnits != 5 {
		t.Fatalf("expected 2 boxes + 5 loose, got %d + %d", result.BoxCount, result.LooseUnits)
	}

	var logs []models.InventoryLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("load logs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected one log row, got %d", len(logs))
	}
	if logs[0].ChangeQty != 25 || logs[0].RefType != constants.InventoryRefAdjust || logs[0].Actor != "owner" {
		t.Fatalf("unexpected log row: %+v", logs[0])
	}
}

func TestAdjustClampsBalanceButLogsRequestedDelta(t *testing.T) {
	svc, db := setupInventoryServiceTest(t)
	product := createInventoryTestProduct(t, db, "10")

	if _, err := svc.AdjustByProductID(product.ID, "", 50, "owner"); err != nil {
		t.Fatalf("seed stock failed: %v", err)
	}
	result, err := svc.AdjustByProductID(product.ID, "", -1000, "owner")
	if err != nil {
		t.Fatalf("negative adjust failed: %v", err)
	}
	if result.TotalUnits(10) != 0 {
		t.Fatalf("expected balance clamped to zero, got %d units", result.TotalUnits(10))
	}

	var logs []models.InventoryLog
	if err := db.Order("change_date ASC").Find(&logs).Error; err != nil {
		t.Fatalf("load logs failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected two log rows, got %d", len(logs))
	}
	// 流水记录请求量 -1000，而非截断后的 -50
	if logs[1].ChangeQty != -1000 {
		t.Fatalf("expected requested delta -1000 in log, got %d", logs[1].ChangeQty)
	}
}

func TestAdjustUnknownProductFails(t *testing.T) {
	svc, _ := setupInventoryServiceTest(t)

	if _, err := svc.AdjustByProductID("missing-id", "", 10, "owner"); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
