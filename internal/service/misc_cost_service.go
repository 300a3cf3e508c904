package service

import (
	"strings"

	"github.com/yanhua-ledger/internal/models"
	"github.com/yanhua-ledger/internal/repository"
)

// MiscCostInput 杂费写入参数
type MiscCostInput struct {
	Item     string  `json:"item" binding:"required"`
	Quantity float64 `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// MiscCostService 杂费服务
type MiscCostService struct {
	miscCostRepo repository.MiscCostRepository
}

// NewMiscCostService 创建杂费服务
func NewMiscCostService(miscCostRepo repository.MiscCostRepository) *MiscCostService {
	return &MiscCostService{miscCostRepo: miscCostRepo}
}

// Create 记一笔杂费
func (s *MiscCostService) Create(input MiscCostInput, actor string) (*models.MiscCost, error) {
	if input.Amount < 0 {
		return nil, ErrInvalidAmount
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	cost := &models.MiscCost{
		Item:      strings.TrimSpace(input.Item),
		Quantity:  quantity,
		Amount:    models.NewMoneyFromFloat(input.Amount),
		CreatedBy: actor,
	}
	if err := s.miscCostRepo.Create(cost); err != nil {
		return nil, err
	}
	return cost, nil
}

// List 杂费列表
func (s *MiscCostService) List(page, pageSize int) ([]models.MiscCost, int64, error) {
	return s.miscCostRepo.List(page, pageSize)
}

// Delete 删除杂费记录
func (s *MiscCostService) Delete(id string) error {
	return s.miscCostRepo.Delete(id)
}
