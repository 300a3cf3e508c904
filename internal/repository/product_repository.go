package repository

import (
	"errors"
	"strings"

	"github.com/yanhua-ledger/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	GetByIDForUpdate(id string) (*models.Product, error)
	ListByIDs(ids []string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	UpdateRetailMultiplier(id string, multiplier float64) error
	ReplaceTagCategories(productID string, categoryIDs []string) error
	ListTagCategories(productID string) ([]models.Category, error)
	ReplaceAliases(productID string, aliases []string) error
	CountByPrimaryCategory(categoryID string) (int64, error)
	DetachPrimaryCategory(categoryID string) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表。分类过滤同时命中主分类与多分类关联。
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{}).Preload("Category")

	if len(filter.CategoryIDs) > 0 {
		sub := r.db.Model(&models.ProductCategory{}).
			Select("product_id").
			Where("category_id IN ?", filter.CategoryIDs)
		query = query.Where("category_id IN ? OR id IN (?)", filter.CategoryIDs, sub)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := applyPagination(filter.Page, filter.PageSize)
	var products []models.Product
	if err := query.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品（含分类关联）
func (r *GormProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").Preload("Categories").Preload("Aliases").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByIDForUpdate 加排他锁获取商品行，锁持有到事务结束
func (r *GormProductRepository) GetByIDForUpdate(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id string) error {
	if err := r.db.Where("product_id = ?", id).Delete(&models.ProductCategory{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("product_id = ?", id).Delete(&models.ProductAlias{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Product{}, "id = ?", id).Error
}

// UpdateRetailMultiplier 回写商品级零售系数（定价命中分类系数后的记忆化）
func (r *GormProductRepository) UpdateRetailMultiplier(id string, multiplier float64) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		Update("retail_multiplier", multiplier).Error
}

// ReplaceTagCategories 重建商品的多分类关联
func (r *GormProductRepository) ReplaceTagCategories(productID string, categoryIDs []string) error {
	if err := r.db.Where("product_id = ?", productID).Delete(&models.ProductCategory{}).Error; err != nil {
		return err
	}
	seen := make(map[string]bool, len(categoryIDs))
	rows := make([]models.ProductCategory, 0, len(categoryIDs))
	for _, cid := range categoryIDs {
		cid = strings.TrimSpace(cid)
		if cid == "" || seen[cid] {
			continue
		}
		seen[cid] = true
		rows = append(rows, models.ProductCategory{ProductID: productID, CategoryID: cid})
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

// ReplaceAliases 重建商品别名（到货单匹配用）
func (r *GormProductRepository) ReplaceAliases(productID string, aliases []string) error {
	if err := r.db.Where("product_id = ?", productID).Delete(&models.ProductAlias{}).Error; err != nil {
		return err
	}
	seen := make(map[string]bool, len(aliases))
	rows := make([]models.ProductAlias, 0, len(aliases))
	for _, alias := range aliases {
		alias = strings.TrimSpace(alias)
		if alias == "" || seen[alias] {
			continue
		}
		seen[alias] = true
		rows = append(rows, models.ProductAlias{ProductID: productID, AliasName: alias})
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

// ListTagCategories 获取商品的多分类列表
func (r *GormProductRepository) ListTagCategories(productID string) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Model(&models.Category{}).
		Joins("JOIN product_category ON product_category.category_id = category.id").
		Where("product_category.product_id = ?", productID).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// CountByPrimaryCategory 统计以该分类为主分类的商品数
func (r *GormProductRepository) CountByPrimaryCategory(categoryID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DetachPrimaryCategory 将主分类为该分类的商品解绑（强制删除分类用）
func (r *GormProductRepository) DetachPrimaryCategory(categoryID string) error {
	return r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).
		Update("category_id", nil).Error
}
