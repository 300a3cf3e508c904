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

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:product_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.SystemConfig{}, &models.Category{}, &models.Product{},
		&models.ProductCategory{}, &models.ProductAlias{}, &models.Inventory{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	configSvc := NewConfigService(repository.NewConfigRepository(db))
	pricingSvc := NewPricingService(productRepo, categoryRepo, configSvc)
	return NewProductService(productRepo, categoryRepo, inventoryRepo, pricingSvc), db
}

func countAliases(t *testing.T, db *gorm.DB, productID string) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.ProductAlias{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		t.Fatalf("count aliases failed: %v", err)
	}
	return count
}

func TestProductCreatePersistsAliases(t *testing.T) {
	svc, db := setupProductServiceTest(t)

	product, err := svc.Create(ProductInput{
		Name:          "吉祥如意组合",
		Spec:          "16发/箱",
		BaseCostPrice: 120,
		Aliases:       []string{"吉祥如意", "16发组合", " 吉祥如意 ", ""},
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	// 去重去空白后落库
	if got := countAliases(t, db, product.ID); got != 2 {
		t.Fatalf("expected 2 alias rows, got %d", got)
	}
	if len(product.Aliases) != 2 {
		t.Fatalf("expected 2 aliases on returned product, got %d", len(product.Aliases))
	}
}

func TestProductUpdateReplacesAliases(t *testing.T) {
	svc, db := setupProductServiceTest(t)

	product, err := svc.Create(ProductInput{
		Name:          "喜庆连环炮",
		BaseCostPrice: 45,
		Aliases:       []string{"连环炮", "喜庆鞭炮"},
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	// 显式提交新列表时整体重建
	updated, err := svc.Update(product.ID, ProductInput{
		Name:          "喜庆连环炮",
		BaseCostPrice: 45,
		Aliases:       []string{"新别名"},
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if got := countAliases(t, db, updated.ID); got != 1 {
		t.Fatalf("expected 1 alias row after replace, got %d", got)
	}
	var alias models.ProductAlias
	if err := db.First(&alias, "product_id = ?", updated.ID).Error; err != nil {
		t.Fatalf("load alias failed: %v", err)
	}
	if alias.AliasName != "新别名" {
		t.Fatalf("expected alias 新别名, got %s", alias.AliasName)
	}

	// 缺省（nil）表示不动别名
	if _, err := svc.Update(product.ID, ProductInput{
		Name:          "喜庆连环炮",
		BaseCostPrice: 45,
	}); err != nil {
		t.Fatalf("update without aliases failed: %v", err)
	}
	if got := countAliases(t, db, updated.ID); got != 1 {
		t.Fatalf("nil aliases must keep existing rows, got %d", got)
	}
}

func TestProductCreateDropsNonPositiveFixedPrice(t *testing.T) {
	svc, db := setupProductServiceTest(t)

	cases := []struct {
		name  string
		price float64
	}{
		{"零例外价", 0},
		{"负例外价", -5},
	}
	for _, tc := range cases {
		price := tc.price
		product, err := svc.Create(ProductInput{
			Name:             tc.name,
			BaseCostPrice:    50,
			FixedRetailPrice: &price,
		})
		if err != nil {
			t.Fatalf("%s: create failed: %v", tc.name, err)
		}
		var reloaded models.Product
		if err := db.First(&reloaded, "id = ?", product.ID).Error; err != nil {
			t.Fatalf("%s: reload failed: %v", tc.name, err)
		}
		if reloaded.FixedRetailPrice != nil {
			t.Fatalf("%s: expected null fixed price, got %s", tc.name, reloaded.FixedRetailPrice.String())
		}
	}

	// 正例外价原样保留
	price := 8.0
	product, err := svc.Create(ProductInput{
		Name:             "星河梦幻棒",
		BaseCostPrice:    3.5,
		FixedRetailPrice: &price,
	})
	if err != nil {
		t.Fatalf("create with positive fixed price failed: %v", err)
	}
	var reloaded models.Product
	if err := db.First(&reloaded, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.FixedRetailPrice == nil || reloaded.FixedRetailPrice.String() != "8.00" {
		t.Fatalf("expected fixed price 8.00, got %v", reloaded.FixedRetailPrice)
	}
}

func TestProductUpdateClearsNonPositiveFixedPrice(t *testing.T) {
	svc, db := setupProductServiceTest(t)

	price := 100.0
	product, err := svc.Create(ProductInput{
		Name:             "大型组合",
		BaseCostPrice:    60,
		FixedRetailPrice: &price,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	zero := 0.0
	if _, err := svc.Update(product.ID, ProductInput{
		Name:             "大型组合",
		BaseCostPrice:    60,
		FixedRetailPrice: &zero,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.FixedRetailPrice != nil {
		t.Fatalf("expected fixed price cleared to null, got %s", reloaded.FixedRetailPrice.String())
	}
}
