package service

import (
	"github.com/yanhua-ledger/internal/models"
	"github.com/yanhua-ledger/internal/repository"

	"github.com/shopspring/decimal"
)

// DashboardOverview 经营总览
type DashboardOverview struct {
	SalesRevenue    models.Money `json:"sales_revenue"`    // 累计实收
	SalesCost       models.Money `json:"sales_cost"`       // 累计销售成本（快照口径）
	GrossProfit     models.Money `json:"gross_profit"`     // 毛利
	StandardRevenue models.Money `json:"standard_revenue"` // 按标准价应收
	SalesLineCount  int64        `json:"sales_line_count"` // 销售明细行数
	OrderCount      int64        `json:"order_count"`      // 销售单数
	AvgTicket       models.Money `json:"avg_ticket"`       // 单均实收
	MiscCostTotal   models.Money `json:"misc_cost_total"`  // 杂费总额
	NetProfit       models.Money `json:"net_profit"`       // 毛利减杂费
}

// InventoryValuation 库存估值
type InventoryValuation struct {
	ProductCount int          `json:"product_count"` // 有库存的商品数
	TotalUnits   int          `json:"total_units"`   // 总件数
	CostValue    models.Money `json:"cost_value"`    // 成本口径估值
	RetailValue  models.Money `json:"retail_value"`  // 标准价口径估值
}

// DashboardService 经营总览服务
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	miscCostRepo  repository.MiscCostRepository
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
	pricingSvc    *PricingService
}

// NewDashboardService 创建总览服务
func NewDashboardService(
	dashboardRepo repository.DashboardRepository,
	miscCostRepo repository.MiscCostRepository,
	inventoryRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	pricingSvc *PricingService,
) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		miscCostRepo:  miscCostRepo,
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		pricingSvc:    pricingSvc,
	}
}

// Overview 汇总销售、杂费与毛利
func (s *DashboardService) Overview() (*DashboardOverview, error) {
	sales, err := s.dashboardRepo.AggregateSales()
	if err != nil {
		return nil, err
	}
	miscTotal, err := s.miscCostRepo.SumAmount()
	if err != nil {
		return nil, err
	}

	gross := sales.ActualTotal.Sub(sales.CostTotal)
	avgTicket := decimal.Zero
	if sales.OrderCount > 0 {
		avgTicket = sales.ActualTotal.DivRound(decimal.NewFromInt(sales.OrderCount), 2)
	}
	return &DashboardOverview{
		SalesRevenue:    models.NewMoneyFromDecimal(sales.ActualTotal),
		SalesCost:       models.NewMoneyFromDecimal(sales.CostTotal),
		GrossProfit:     models.NewMoneyFromDecimal(gross),
		StandardRevenue: models.NewMoneyFromDecimal(sales.StandardTotal),
		SalesLineCount:  sales.LineCount,
		OrderCount:      sales.OrderCount,
		AvgTicket:       models.NewMoneyFromDecimal(avgTicket),
		MiscCostTotal:   models.NewMoneyFromDecimal(miscTotal),
		NetProfit:       models.NewMoneyFromDecimal(gross.Sub(miscTotal)),
	}, nil
}

// InventoryValuation 按当前成本与标准价折算在库价值
func (s *DashboardService) InventoryValuation() (*InventoryValuation, error) {
	inventories, err := s.inventoryRepo.ListAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(inventories))
	for _, inv := range inventories {
		ids = append(ids, inv.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	valuation := &InventoryValuation{}
	costValue := decimal.Zero
	retailValue := decimal.Zero
	counted := make(map[string]bool, len(products))

	for _, inv := range inventories {
		product, ok := byID[inv.ProductID]
		if !ok {
			continue
		}
		packSize := PackSizeOf(product)
		units := inv.TotalUnits(packSize)
		if units <= 0 {
			continue
		}
		if !counted[product.ID] {
			counted[product.ID] = true
			valuation.ProductCount++
		}
		valuation.TotalUnits += units

		quantity := decimal.NewFromInt(int64(units))
		costValue = costValue.Add(product.BaseCostPrice.Mul(quantity))

		resolution, err := s.pricingSvc.ResolvePrice(product)
		if err != nil {
			return nil, err
		}
		retailValue = retailValue.Add(resolution.Price.Mul(quantity))
	}

	valuation.CostValue = models.NewMoneyFromDecimal(costValue)
	valuation.RetailValue = models.NewMoneyFromDecimal(retailValue)
	return valuation, nil
}

// DailyPerformance 某日销售汇总
func (s *DashboardService) DailyPerformance(date string) (*repository.SalesAggregate, error) {
	return s.dashboardRepo.AggregateSalesByDate(date)
}
