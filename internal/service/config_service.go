package service

import (
	"context"
	"strconv"
	"time"

	"github.com/yanhua-ledger/internal/cache"
	"github.com/yanhua-ledger/internal/constants"
	"github.com/yanhua-ledger/internal/logger"
	"github.com/yanhua-ledger/internal/models"
	"github.com/yanhua-ledger/internal/repository"

	"github.com/shopspring/decimal"
)

// ConfigService 系统配置服务。
// 全局系数走 缓存 → 数据库 → 懒初始化 三级，读路径允许最终一致。
type ConfigService struct {
	configRepo repository.ConfigRepository
}

// NewConfigService 创建配置服务
func NewConfigService(configRepo repository.ConfigRepository) *ConfigService {
	return &ConfigService{configRepo: configRepo}
}

// GlobalMultiplier 读取全局系数。配置缺失时懒初始化为默认值并落库。
func (s *ConfigService) GlobalMultiplier() float64 {
	ctx := context.Background()
	if value, hit, err := cache.GetGlobalMultiplier(ctx); err == nil && hit {
		return value
	}

	row, err := s.configRepo.GetValue(constants.ConfigKeyGlobalMultiplier)
	if err != nil {
		logger.Warnw("global_multiplier_read_failed", "error", err)
		return constants.DefaultGlobalMultiplier
	}
	if row == nil {
		value := constants.DefaultGlobalMultiplier
		if err := s.configRepo.Upsert(constants.ConfigKeyGlobalMultiplier, formatMultiplier(value)); err != nil {
			logger.Warnw("global_multiplier_lazy_init_failed", "error", err)
		}
		_ = cache.SetGlobalMultiplier(ctx, value)
		return value
	}

	value, err := strconv.ParseFloat(row.Value, 64)
	if err != nil || value <= 0 {
		logger.Warnw("global_multiplier_invalid_stored_value", "value", row.Value)
		return constants.DefaultGlobalMultiplier
	}
	_ = cache.SetGlobalMultiplier(ctx, value)
	return value
}

// SetGlobalMultiplier 写入全局系数并失效缓存
func (s *ConfigService) SetGlobalMultiplier(value float64) error {
	if value <= 0 {
		return ErrInvalidMultiplier
	}
	if err := s.configRepo.Upsert(constants.ConfigKeyGlobalMultiplier, formatMultiplier(value)); err != nil {
		return err
	}
	ctx := context.Background()
	_ = cache.DelGlobalMultiplier(ctx)
	_ = cache.SetGlobalMultiplier(ctx, value)
	logger.Infow("global_multiplier_updated", "value", value)
	return nil
}

// GetDailyReceipt 读取某日收款记录，不存在返回金额为零的记录
func (s *ConfigService) GetDailyReceipt(date string) (*models.DailyReceipt, error) {
	row, err := s.configRepo.GetDailyReceipt(date)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return &models.DailyReceipt{Date: date}, nil
	}
	return row, nil
}

// OverrideDailyReceipt 人工覆盖某日收款额，覆盖后汇总任务不再回写
func (s *ConfigService) OverrideDailyReceipt(date string, amount float64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	receipt := &models.DailyReceipt{
		Date:      date,
		Amount:    models.NewMoneyFromFloat(amount),
		Manual:    true,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.configRepo.UpsertDailyReceipt(receipt); err != nil {
		return err
	}
	logger.Infow("daily_receipt_overridden", "date", date, "amount", amount)
	return nil
}

// RollupDailyReceipt 回写某日实收汇总。人工覆盖过的日期跳过。
func (s *ConfigService) RollupDailyReceipt(date string, total decimal.Decimal) error {
	row, err := s.configRepo.GetDailyReceipt(date)
	if err != nil {
		return err
	}
	if row != nil && row.Manual {
		logger.Debugw("daily_receipt_rollup_skip_manual", "date", date)
		return nil
	}
	receipt := &models.DailyReceipt{
		Date:      date,
		Amount:    models.NewMoneyFromDecimal(total),
		Manual:    false,
		UpdatedAt: time.Now().UTC(),
	}
	return s.configRepo.UpsertDailyReceipt(receipt)
}

// ListDailyReceipts 按区间列出日收款记录
func (s *ConfigService) ListDailyReceipts(from, to string) ([]models.DailyReceipt, error) {
	return s.configRepo.ListDailyReceipts(from, to)
}

func formatMultiplier(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
