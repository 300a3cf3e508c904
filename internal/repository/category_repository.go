package repository

import (
	"errors"

	"github.com/yanhua-ledger/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	List() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	ListByIDs(ids []string) ([]models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id string) error
	DeleteProductLinks(categoryID string) error
	WithTx(tx *gorm.DB) CategoryRepository
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCategoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	if tx == nil {
		return r
	}
	return &GormCategoryRepository{db: tx}
}

// List 全部分类（内置在前，自定义在后）
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("is_custom ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID 根据 ID 获取分类
func (r *GormCategoryRepository) GetByID(id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetByName 根据名称获取分类
func (r *GormCategoryRepository) GetByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// ListByIDs 批量获取分类
func (r *GormCategoryRepository) ListByIDs(ids []string) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	var categories []models.Category
	if err := r.db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete 删除分类
func (r *GormCategoryRepository) Delete(id string) error {
	return r.db.Delete(&models.Category{}, "id = ?", id).Error
}

// DeleteProductLinks 清除该分类的商品关联（强制删除用）
func (r *GormCategoryRepository) DeleteProductLinks(categoryID string) error {
	return r.db.Where("category_id = ?", categoryID).Delete(&models.ProductCategory{}).Error
}
