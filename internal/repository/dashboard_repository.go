package repository

import (
	"github.com/yanhua-ledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesAggregate 销售明细的累计汇总
type SalesAggregate struct {
	ActualTotal   decimal.Decimal // 实收合计
	CostTotal     decimal.Decimal // 成本合计（快照成本×数量）
	StandardTotal decimal.Decimal // 标准价合计（标准价×数量）
	LineCount     int64           // 明细行数
	OrderCount    int64           // 订单数
}

// DashboardRepository 经营总览聚合查询接口
type DashboardRepository interface {
	AggregateSales() (*SalesAggregate, error)
	AggregateSalesByDate(date string) (*SalesAggregate, error)
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建总览仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// AggregateSales 汇总全部销售明细
func (r *GormDashboardRepository) AggregateSales() (*SalesAggregate, error) {
	return r.aggregate(r.db.Model(&models.SalesItem{}))
}

// AggregateSalesByDate 汇总某日销售明细
func (r *GormDashboardRepository) AggregateSalesByDate(date string) (*SalesAggregate, error) {
	query := r.db.Model(&models.SalesItem{}).
		Joins("JOIN sales_order ON sales_order.id = sales_item.order_id").
		Where("DATE(sales_order.order_date) = ?", date)
	return r.aggregate(query)
}

func (r *GormDashboardRepository) aggregate(query *gorm.DB) (*SalesAggregate, error) {
	var row struct {
		ActualTotal   decimal.Decimal
		CostTotal     decimal.Decimal
		StandardTotal decimal.Decimal
		LineCount     int64
		OrderCount    int64
	}
	err := query.Select(
		"COALESCE(SUM(actual_sale_price * quantity), 0) AS actual_total, " +
			"COALESCE(SUM(snapshot_cost * quantity), 0) AS cost_total, " +
			"COALESCE(SUM(snapshot_standard_price * quantity), 0) AS standard_total, " +
			"COUNT(*) AS line_count, " +
			"COUNT(DISTINCT sales_item.order_id) AS order_count").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &SalesAggregate{
		ActualTotal:   row.ActualTotal,
		CostTotal:     row.CostTotal,
		StandardTotal: row.StandardTotal,
		LineCount:     row.LineCount,
		OrderCount:    row.OrderCount,
	}, nil
}
