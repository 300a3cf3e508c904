package service

import (
	"math"

	"github.com/yanhua-ledger/internal/constants"
	"github.com/yanhua-ledger/internal/logger"
	"github.com/yanhua-ledger/internal/models"
	"github.com/yanhua-ledger/internal/repository"

	"gorm.io/gorm"
)

// PriceResolution 定价结果
type PriceResolution struct {
	Price models.Money `json:"price"` // 标准零售价
	Basis string       `json:"basis"` // 定价依据
}

// PricingService 定价服务。
// 瀑布顺序：例外价 → 商品系数 → 分类系数（取最大）→ 全局系数。
type PricingService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	configSvc    *ConfigService
}

// NewPricingService 创建定价服务
func NewPricingService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	configSvc *ConfigService,
) *PricingService {
	return &PricingService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		configSvc:    configSvc,
	}
}

// Round2 金额取整到 2 位小数。
// 先加 1e-9 抵消二进制浮点表示误差，保证 19.995 → 20.00。
func Round2(x float64) float64 {
	return math.Round((x+1e-9)*100) / 100
}

// ResolvePrice 纯查询定价：不回写商品系数
func (s *PricingService) ResolvePrice(product *models.Product) (*PriceResolution, error) {
	if product == nil {
		return nil, ErrProductNotFound
	}
	resolution, _, err := s.resolve(s.productRepo, product)
	return resolution, err
}

// ResolvePriceByID 按商品 ID 定价
func (s *PricingService) ResolvePriceByID(productID string) (*PriceResolution, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.ResolvePrice(product)
}

// ResolveAndMemoize 命令式定价：命中分类系数时把选中系数回写到商品上，
// 之后的定价直接走商品系数。调用方须已持有商品行锁，回写与触发它的读同锁。
func (s *PricingService) ResolveAndMemoize(tx *gorm.DB, product *models.Product) (*PriceResolution, error) {
	if product == nil {
		return nil, ErrProductNotFound
	}
	productRepo := s.productRepo.WithTx(tx)
	resolution, memoized, err := s.resolve(productRepo, product)
	if err != nil {
		return nil, err
	}
	if memoized != nil {
		if err := productRepo.UpdateRetailMultiplier(product.ID, *memoized); err != nil {
			return nil, err
		}
		product.RetailMultiplier = memoized
		logger.Debugw("retail_multiplier_memoized", "product_id", product.ID, "multiplier", *memoized)
	}
	return resolution, nil
}

// resolve 执行瀑布。返回值 memoized 非空表示命中分类系数且需要回写。
func (s *PricingService) resolve(productRepo repository.ProductRepository, product *models.Product) (*PriceResolution, *float64, error) {
	if product.FixedRetailPrice != nil && product.FixedRetailPrice.IsPositive() {
		return &PriceResolution{
			Price: *product.FixedRetailPrice,
			Basis: constants.PriceBasisException,
		}, nil, nil
	}

	baseCost := product.BaseCostPrice.Float64()

	if product.RetailMultiplier != nil {
		return &PriceResolution{
			Price: models.NewMoneyFromFloat(Round2(baseCost * *product.RetailMultiplier)),
			Basis: constants.PriceBasisCategory,
		}, nil, nil
	}

	chosen, err := s.maxCategoryMultiplier(productRepo, product)
	if err != nil {
		return nil, nil, err
	}
	if chosen != nil {
		return &PriceResolution{
			Price: models.NewMoneyFromFloat(Round2(baseCost * *chosen)),
			Basis: constants.PriceBasisCategory,
		}, chosen, nil
	}

	global := s.configSvc.GlobalMultiplier()
	return &PriceResolution{
		Price: models.NewMoneyFromFloat(Round2(baseCost * global)),
		Basis: constants.PriceBasisGlobal,
	}, nil, nil
}

// maxCategoryMultiplier 收集主分类与全部标签分类的系数，取最大值。
// 多个分类意见不一时从高不从低，避免压价。全部缺席返回 nil。
func (s *PricingService) maxCategoryMultiplier(productRepo repository.ProductRepository, product *models.Product) (*float64, error) {
	var chosen *float64
	consider := func(multiplier *float64) {
		if multiplier == nil {
			return
		}
		if chosen == nil || *multiplier > *chosen {
			value := *multiplier
			chosen = &value
		}
	}

	if product.CategoryID != nil && *product.CategoryID != "" {
		primary, err := s.categoryRepo.GetByID(*product.CategoryID)
		if err != nil {
			return nil, err
		}
		if primary != nil {
			consider(primary.RetailMultiplier)
		}
	}

	tags, err := productRepo.ListTagCategories(product.ID)
	if err != nil {
		return nil, err
	}
	for i := range tags {
		consider(tags[i].RetailMultiplier)
	}
	return chosen, nil
}
