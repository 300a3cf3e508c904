package main

import (
	"time"

	"github.com/yanhua-ledger/internal/config"
	"github.com/yanhua-ledger/internal/constants"
	"github.com/yanhua-ledger/internal/logger"
	"github.com/yanhua-ledger/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.EnsureDefaultWarehouse(); err != nil {
		stdLog.Fatalf("Failed to ensure default warehouse: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{
			Name:                "烟花组合",
			RetailMultiplier:    floatPtr(1.8),
			RetailMultiplierMin: floatPtr(1.5),
			RetailMultiplierMax: floatPtr(2.2),
		},
		{
			Name:                "鞭炮",
			RetailMultiplier:    floatPtr(1.6),
			RetailMultiplierMin: floatPtr(1.4),
			RetailMultiplierMax: floatPtr(1.8),
		},
		{
			Name:             "玩具烟花",
			RetailMultiplier: floatPtr(2.0),
			IsCustom:         true,
		},
	}

	categoryIDs := map[string]string{}
	for i := range categories {
		cat := categories[i]
		var existing models.Category
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
				continue
			}
			stdLog.Printf("Created category: %s", cat.Name)
			categoryIDs[cat.Name] = cat.ID
		} else {
			stdLog.Printf("Category already exists: %s", cat.Name)
			categoryIDs[existing.Name] = existing.ID
		}
	}

	combinationID := categoryIDs["烟花组合"]
	firecrackerID := categoryIDs["鞭炮"]
	toyID := categoryIDs["玩具烟花"]

	// 添加商品
	products := []models.Product{
		{
			Name:          "吉祥如意组合",
			CategoryID:    strPtr(combinationID),
			Spec:          strPtr("16"),
			BaseCostPrice: models.NewMoneyFromFloat(120),
			PackPriceRef:  ptrMoney(2100),
		},
		{
			Name:             "喜庆连环炮",
			CategoryID:       strPtr(firecrackerID),
			Spec:             strPtr("10"),
			BaseCostPrice:    models.NewMoneyFromFloat(45),
			RetailMultiplier: floatPtr(1.7),
		},
		{
			Name:             "星河梦幻棒",
			CategoryID:       strPtr(toyID),
			Spec:             strPtr("36"),
			BaseCostPrice:    models.NewMoneyFromFloat(3.5),
			FixedRetailPrice: ptrMoney(8),
		},
	}

	productIDs := map[string]string{}
	for i := range products {
		p := products[i]
		var existing models.Product
		if err := models.DB.Where("name = ?", p.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", p.Name, err)
				continue
			}
			stdLog.Printf("Created product: %s", p.Name)
			productIDs[p.Name] = p.ID
		} else {
			stdLog.Printf("Product already exists: %s", p.Name)
			productIDs[existing.Name] = existing.ID
		}
	}

	// 添加别名（到货单匹配用）
	aliases := map[string][]string{
		"吉祥如意组合": {"吉祥如意", "16发组合"},
		"喜庆连环炮":  {"连环炮"},
	}
	for name, list := range aliases {
		productID := productIDs[name]
		if productID == "" {
			continue
		}
		for _, alias := range list {
			var count int64
			models.DB.Model(&models.ProductAlias{}).
				Where("product_id = ? AND alias_name = ?", productID, alias).
				Count(&count)
			if count > 0 {
				continue
			}
			if err := models.DB.Create(&models.ProductAlias{
				ProductID: productID,
				AliasName: alias,
			}).Error; err != nil {
				stdLog.Printf("Failed to create alias %s: %v", alias, err)
			}
		}
	}

	// 初始化库存
	stocks := map[string]models.Inventory{
		"吉祥如意组合": {BoxCount: 5, LooseUnits: 8},
		"喜庆连环炮":  {BoxCount: 12, LooseUnits: 0},
		"星河梦幻棒":  {BoxCount: 2, LooseUnits: 20},
	}
	for name, stock := range stocks {
		productID := productIDs[name]
		if productID == "" {
			continue
		}
		var existing models.Inventory
		err := models.DB.Where("product_id = ? AND warehouse_id = ?", productID, constants.DefaultWarehouseID).
			First(&existing).Error
		if err == nil {
			stdLog.Printf("Inventory already exists: %s", name)
			continue
		}
		stock.ProductID = productID
		stock.WarehouseID = constants.DefaultWarehouseID
		if err := models.DB.Create(&stock).Error; err != nil {
			stdLog.Printf("Failed to create inventory for %s: %v", name, err)
		}
	}

	// 添加示例采购单
	var orderCount int64
	models.DB.Model(&models.PurchaseOrder{}).Count(&orderCount)
	if orderCount == 0 {
		expected := time.Now().AddDate(0, 0, 7)
		order := models.PurchaseOrder{
			Supplier:     "浏阳花炮厂",
			Status:       constants.PurchaseStatusPending,
			ExpectedDate: &expected,
			Remark:       "春节备货",
			CreatedBy:    "owner",
		}
		if id := productIDs["吉祥如意组合"]; id != "" {
			order.Items = append(order.Items, models.PurchaseItem{
				ProductID:    id,
				Quantity:     100,
				ExpectedCost: models.NewMoneyFromFloat(118),
			})
		}
		if id := productIDs["喜庆连环炮"]; id != "" {
			order.Items = append(order.Items, models.PurchaseItem{
				ProductID:    id,
				Quantity:     50,
				ExpectedCost: models.NewMoneyFromFloat(45),
			})
		}
		if len(order.Items) > 0 {
			if err := models.DB.Create(&order).Error; err != nil {
				stdLog.Printf("Failed to create purchase order: %v", err)
			} else {
				stdLog.Printf("Created purchase order: %s", order.ID)
			}
		}
	} else {
		stdLog.Printf("Purchase orders already exist, skipped")
	}

	stdLog.Printf("Seed finished")
}

func floatPtr(v float64) *float64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func ptrMoney(v float64) *models.Money {
	m := models.NewMoneyFromFloat(v)
	return &m
}
