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

func setupPricingServiceTest(t *testing.T) (*PricingService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:pricing_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.SystemConfig{}, &models.Category{}, &models.Product{}, &models.ProductCategory{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	configSvc := NewConfigService(repository.NewConfigRepository(db))
	return NewPricingService(productRepo, categoryRepo, configSvc), db
}

func createPricingTestProduct(t *testing.T, db *gorm.DB, mutate func(*models.Product)) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:          "测试烟花",
		BaseCostPrice: models.NewMoneyFromFloat(50),
	}
	if mutate != nil {
		mutate(product)
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createPricingTestCategory(t *testing.T, db *gorm.DB, multiplier *float64) *models.Category {
	t.Helper()

	category := &models.Category{Name: "测试分类", RetailMultiplier: multiplier}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestRound2EpsilonCorrection(t *testing.T) {
	if got := Round2(19.995); got != 20.00 {
		t.Fatalf("Round2(19.995) = %v, want 20.00", got)
	}
	if got := Round2(10.004); got != 10.00 {
		t.Fatalf("Round2(10.004) = %v, want 10.00", got)
	}
}

func TestResolvePriceExceptionPriceWins(t *testing.T) {
	svc, db := setupPricingServiceTest(t)

	category := createPricingTestCategory(t, db, floatPtr(3.0))
	fixed := models.NewMoneyFromFloat(100)
	product := createPricingTestProduct(t, db, func(p *models.Product) {
		p.CategoryID = &category.ID
		p.FixedRetailPrice = &fixed
		p.RetailMultiplier = floatPtr(2.0)
	})

	resolution, err := svc.ResolvePrice(product)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolution.Basis != constants.PriceBasisException {
		t.Fatalf("expected exception basis, got %s", resolution.Basis)
	}
	if resolution.Price.String() != "100.00" {
		t.Fatalf("expected 100.00, got %s", resolution.Price.String())
	}
}

func TestResolvePriceProductMultiplier(t *testing.T) {
	svc, db := setupPricingServiceTest(t)

	product := createPricingTestProduct(t, db, func(p *models.Product) {
		p.RetailMultiplier = floatPtr(1.8)
	})

	resolution, err := svc.ResolvePrice(product)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolution.Basis != constants.PriceBasisCategory {
		t.Fatalf("expected category basis, got %s", resolution.Basis)
	}
	if resolution.Price.String() != "90.00" {
		t.Fatalf("expected 90.00, got %s", resolution.Price.String())
	}
}

func TestResolvePricePicksMaxCategoryMultiplier(t *testing.T) {
	svc, db := setupPricingServiceTest(t)

	primary := createPricingTestCategory(t, db, floatPtr(1.5))
	product := createPricingTestProduct(t, db, func(p *models.Product) {
		p.CategoryID = &primary.ID
	})

	tag := &models.Category{Name: "高端标签", RetailMultiplier: floatPtr(2.0), IsCustom: true}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("create tag category failed: %v", err)
	}
	if err := db.Create(&models.ProductCategory{ProductID: product.ID, CategoryID: tag.ID}).Error; err != nil {
		t.Fatalf("link tag category failed: %v", err)
	}

	resolution, err := svc.ResolvePrice(product)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolution.Basis != constants.PriceBasisCategory {
		t.Fatalf("expected category basis, got %s", resolution.Basis)
	}
	if resolution.Price.String() != "100.00" {
		t.Fatalf("expected max multiplier price 100.00, got %s", resolution.Price.String())
	}

	// 纯查询不回写商品系数
	var reloaded models.Product
	if err := db.First(&reloaded, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.RetailMultiplier != nil {
		t.Fatalf("pure resolve must not memoize, got %v", *reloaded.RetailMultiplier)
	}
}

func TestResolvePriceGlobalFallback(t *testing.T) {
	svc, db := setupPricingServiceTest(t)

	product := createPricingTestProduct(t, db, func(p *models.Product) {
		p.BaseCostPrice = models.NewMoneyFromFloat(40)
	})

	resolution, err := svc.ResolvePrice(product)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolution.Basis != constants.PriceBasisGlobal {
		t.Fatalf("expected global basis, got %s", resolution.Basis)
	}
	if resolution.Price.String() != "60.00" {
		t.Fatalf("expected 60.00 with default 1.5, got %s", resolution.Price.String())
	}

	// 懒初始化应已把默认值落库
	var row models.SystemConfig
	if err := db.First(&row, "key = ?", constants.ConfigKeyGlobalMultiplier).Error; err != nil {
		t.Fatalf("expected lazy-initialized config row: %v", err)
	}
	if row.Value != "1.5" {
		t.Fatalf("expected stored 1.5, got %s", row.Value)
	}
}

func TestResolveAndMemoizeWritesBackMultiplier(t *testing.T) {
	svc, db := setupPricingServiceTest(t)

	primary := createPricingTestCategory(t, db, floatPtr(2.0))
	product := createPricingTestProduct(t, db, func(p *models.Product) {
		p.CategoryID = &primary.ID
	})

	err := db.Transaction(func(tx *gorm.DB) error {
		resolution, err := svc.ResolveAndMemoize(tx, product)
		if err != nil {
			return err
		}
		if resolution.Basis != constants.PriceBasisCategory {
			t.Fatalf("expected category basis, got %s", resolution.Basis)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("memoize transaction failed: %v", err)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.RetailMultiplier == nil || *reloaded.RetailMultiplier != 2.0 {
		t.Fatalf("expected memoized multiplier 2.0, got %v", reloaded.RetailMultiplier)
	}

	// 第二次解析直接走商品系数，不再查分类
	resolution, err := svc.ResolvePrice(&reloaded)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if resolution.Basis != constants.PriceBasisCategory {
		t.Fatalf("expected category basis after memoize, got %s", resolution.Basis)
	}
	if resolution.Price.String() != "100.00" {
		t.Fatalf("expected 100.00, got %s", resolution.Price.String())
	}
}
