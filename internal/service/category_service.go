package service

import (
	"strings"

	"github.com/yanhua-ledger/internal/logger"
	"github.com/yanhua-ledger/internal/models"
	"github.com/yanhua-ledger/internal/repository"
)

// CategoryInput 分类写入参数
type CategoryInput struct {
	Name                string   `json:"name" binding:"required"`
	RetailMultiplier    *float64 `json:"retail_multiplier"`
	RetailMultiplierMin *float64 `json:"retail_multiplier_min"`
	RetailMultiplierMax *float64 `json:"retail_multiplier_max"`
	IsCustom            bool     `json:"is_custom"`
}

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, productRepo: productRepo}
}

// List 全部分类
func (s *CategoryService) List() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// GetByID 查询分类
func (s *CategoryService) GetByID(id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	if err := validateMultipliers(input); err != nil {
		return nil, err
	}
	category := &models.Category{
		Name:                strings.TrimSpace(input.Name),
		RetailMultiplier:    input.RetailMultiplier,
		RetailMultiplierMin: input.RetailMultiplierMin,
		RetailMultiplierMax: input.RetailMultiplierMax,
		IsCustom:            input.IsCustom,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id string, input CategoryInput) (*models.Category, error) {
	if err := validateMultipliers(input); err != nil {
		return nil, err
	}
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	category.Name = strings.TrimSpace(input.Name)
	category.RetailMultiplier = input.RetailMultiplier
	category.RetailMultiplierMin = input.RetailMultiplierMin
	category.RetailMultiplierMax = input.RetailMultiplierMax
	category.IsCustom = input.IsCustom
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类。
// 仍有商品以其为主分类时需 force，force 删除会解绑商品并清掉标签关联。
func (s *CategoryService) Delete(id string, force bool) error {
	category, err := s.GetByID(id)
	if err != nil {
		return err
	}

	count, err := s.productRepo.CountByPrimaryCategory(id)
	if err != nil {
		return err
	}
	if count > 0 && !force {
		return ErrCategoryInUse
	}
	if count > 0 {
		if err := s.productRepo.DetachPrimaryCategory(id); err != nil {
			return err
		}
		logger.Infow("category_force_deleted_detached_products", "category_id", id, "products", count)
	}
	if err := s.categoryRepo.DeleteProductLinks(id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(category.ID)
}

func validateMultipliers(input CategoryInput) error {
	for _, m := range []*float64{input.RetailMultiplier, input.RetailMultiplierMin, input.RetailMultiplierMax} {
		if m != nil && *m <= 0 {
			return ErrInvalidMultiplier
		}
	}
	return nil
}
