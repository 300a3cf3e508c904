package service

import (
	"strings"

	"github.com/yanhua-ledger/internal/constants"
	"github.com/yanhua-ledger/internal/models"
	"github.com/yanhua-ledger/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductInput 商品写入参数
type ProductInput struct {
	Name             string   `json:"name" binding:"required"`
	CategoryID       *string  `json:"category_id"`
	Spec             string   `json:"spec"`
	BaseCostPrice    float64  `json:"base_cost_price"`
	FixedRetailPrice *float64 `json:"fixed_retail_price"`
	RetailMultiplier *float64 `json:"retail_multiplier"`
	PackPriceRef     *float64 `json:"pack_price_ref"`
	ImgURL           string   `json:"img_url"`
	EffectURL        string   `json:"effect_url"`
	TagCategoryIDs   []string `json:"tag_category_ids"`
	Aliases          []string `json:"aliases"`
}

// ProductView 商品视图：基础信息加库存折算与标准价
type ProductView struct {
	models.Product
	PackSize    int          `json:"pack_size"`
	BoxCount    int          `json:"box_count"`
	LooseUnits  int          `json:"loose_units"`
	TotalUnits  int          `json:"total_units"`
	Price       models.Money `json:"price"`
	Basis       string       `json:"basis"`
	CostValue   models.Money `json:"cost_value"`   // 在库成本估值
	RetailValue models.Money `json:"retail_value"` // 在库标准价估值
}

// ProductService 商品服务
type ProductService struct {
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	inventoryRepo repository.InventoryRepository
	pricingSvc    *PricingService
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	inventoryRepo repository.InventoryRepository,
	pricingSvc *PricingService,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
		pricingSvc:    pricingSvc,
	}
}

// List 商品列表，附带默认仓库存与当前标准价（纯查询，不回写系数）
func (s *ProductService) List(filter repository.ProductListFilter) ([]ProductView, int64, error) {
	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	inventories, err := s.inventoryRepo.ListAll()
	if err != nil {
		return nil, 0, err
	}
	stock := make(map[string]models.Inventory, len(inventories))
	for _, inv := range inventories {
		if inv.WarehouseID == constants.DefaultWarehouseID {
			stock[inv.ProductID] = inv
		}
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		view, err := s.buildView(&products[i], stock[products[i].ID])
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}
	return views, total, nil
}

// Get 查询单个商品视图
func (s *ProductService) Get(id string) (*ProductView, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	inventories, err := s.inventoryRepo.ListByProduct(id)
	if err != nil {
		return nil, err
	}
	var inv models.Inventory
	for _, row := range inventories {
		if row.WarehouseID == constants.DefaultWarehouseID {
			inv = row
			break
		}
	}
	return s.buildView(product, inv)
}

// Create 创建商品。规格文本落库前归一化为纯数字串。
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	product := &models.Product{}
	if err := s.applyInput(product, input); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	if err := s.saveRelations(product.ID, input); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(product.ID)
}

// Update 更新商品
func (s *ProductService) Update(id string, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.applyInput(product, input); err != nil {
		return nil, err
	}
	product.Category = nil
	product.Categories = nil
	product.Aliases = nil
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	if err := s.saveRelations(product.ID, input); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(product.ID)
}

// Delete 删除商品
func (s *ProductService) Delete(id string) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

func (s *ProductService) applyInput(product *models.Product, input ProductInput) error {
	if input.BaseCostPrice < 0 {
		return ErrInvalidAmount
	}
	if input.RetailMultiplier != nil && *input.RetailMultiplier <= 0 {
		return ErrInvalidMultiplier
	}
	if input.CategoryID != nil && *input.CategoryID != "" {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}

	product.Name = strings.TrimSpace(input.Name)
	product.CategoryID = input.CategoryID
	product.BaseCostPrice = models.NewMoneyFromFloat(input.BaseCostPrice)
	product.RetailMultiplier = input.RetailMultiplier
	product.ImgURL = strings.TrimSpace(input.ImgURL)
	product.EffectURL = strings.TrimSpace(input.EffectURL)

	if normalized := NormalizeSpec(input.Spec); normalized != "" {
		product.Spec = &normalized
	} else {
		product.Spec = nil
	}
	// 非正的例外价视同未设置，落库为 null，定价走系数瀑布
	if input.FixedRetailPrice != nil && *input.FixedRetailPrice > 0 {
		price := models.NewMoneyFromFloat(*input.FixedRetailPrice)
		product.FixedRetailPrice = &price
	} else {
		product.FixedRetailPrice = nil
	}
	if input.PackPriceRef != nil {
		price := models.NewMoneyFromFloat(*input.PackPriceRef)
		product.PackPriceRef = &price
	} else {
		product.PackPriceRef = nil
	}
	return nil
}

func (s *ProductService) saveRelations(productID string, input ProductInput) error {
	if input.TagCategoryIDs != nil {
		if err := s.productRepo.ReplaceTagCategories(productID, input.TagCategoryIDs); err != nil {
			return err
		}
	}
	if input.Aliases != nil {
		if err := s.productRepo.ReplaceAliases(productID, input.Aliases); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProductService) buildView(product *models.Product, inventory models.Inventory) (*ProductView, error) {
	resolution, err := s.pricingSvc.ResolvePrice(product)
	if err != nil {
		return nil, err
	}
	packSize := PackSizeOf(product)
	units := inventory.TotalUnits(packSize)
	quantity := decimal.NewFromInt(int64(units))
	return &ProductView{
		Product:     *product,
		PackSize:    packSize,
		BoxCount:    inventory.BoxCount,
		LooseUnits:  inventory.LooseUnits,
		TotalUnits:  units,
		Price:       resolution.Price,
		Basis:       resolution.Basis,
		CostValue:   models.NewMoneyFromDecimal(product.BaseCostPrice.Mul(quantity)),
		RetailValue: models.NewMoneyFromDecimal(resolution.Price.Mul(quantity)),
	}, nil
}
