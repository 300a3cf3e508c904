package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/yanhua-ledger/internal/constants"
	"github.com/yanhua-ledger/internal/models"
	"github.com/yanhua-ledger/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupConfigServiceTest(t *testing.T) (*ConfigService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:config_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.SystemConfig{}, &models.DailyReceipt{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewConfigService(repository.NewConfigRepository(db)), db
}

func TestGlobalMultiplierLazyInit(t *testing.T) {
	svc, db := setupConfigServiceTest(t)

	if got := svc.GlobalMultiplier(); got != constants.DefaultGlobalMultiplier {
		t.Fatalf("expected default %v, got %v", constants.DefaultGlobalMultiplier, got)
	}

	var row models.SystemConfig
	if err := db.First(&row, "key = ?", constants.ConfigKeyGlobalMultiplier).Error; err != nil {
		t.Fatalf("expected lazy-initialized row: %v", err)
	}
	if row.Value != "1.5" {
		t.Fatalf("expected stored 1.5, got %s", row.Value)
	}
}

func TestSetGlobalMultiplier(t *testing.T) {
	svc, _ := setupConfigServiceTest(t)

	if err := svc.SetGlobalMultiplier(2.2); err != nil {
		t.Fatalf("set multiplier failed: %v", err)
	}
	if got := svc.GlobalMultiplier(); got != 2.2 {
		t.Fatalf("expected 2.2, got %v", got)
	}
	if err := svc.SetGlobalMultiplier(0); err != ErrInvalidMultiplier {
		t.Fatalf("expected ErrInvalidMultiplier, got %v", err)
	}
	if err := svc.SetGlobalMultiplier(-1); err != ErrInvalidMultiplier {
		t.Fatalf("expected ErrInvalidMultiplier, got %v", err)
	}
}

func TestRollupSkipsManualOverride(t *testing.T) {
	svc, _ := setupConfigServiceTest(t)

	date := "2026-08-30"
	if err := svc.RollupDailyReceipt(date, decimal.NewFromInt(800)); err != nil {
		t.Fatalf("rollup failed: %v", err)
	}
	receipt, err := svc.GetDailyReceipt(date)
	if err != nil {
		t.Fatalf("get receipt failed: %v", err)
	}
	if receipt.Amount.String() != "800.00" || receipt.Manual {
		t.Fatalf("unexpected receipt after rollup: %+v", receipt)
	}

	if err := svc.OverrideDailyReceipt(date, 1000); err != nil {
		t.Fatalf("override failed: %v", err)
	}
	// 人工覆盖后汇总任务不再回写
	if err := svc.RollupDailyReceipt(date, decimal.NewFromInt(900)); err != nil {
		t.Fatalf("second rollup failed: %v", err)
	}
	receipt, err = svc.GetDailyReceipt(date)
	if err != nil {
		t.Fatalf("get receipt failed: %v", err)
	}
	if receipt.Amount.String() != "1000.00" || !receipt.Manual {
		t.Fatalf("manual override must win, got %+v", receipt)
	}
}

func TestGetDailyReceiptMissingReturnsZero(t *testing.T) {
	svc, _ := setupConfigServiceTest(t)

	receipt, err := svc.GetDailyReceipt("2026-01-01")
	if err != nil {
		t.Fatalf("get receipt failed: %v", err)
	}
	if receipt.Amount.String() != "0.00" || receipt.Manual {
		t.Fatalf("expected zero non-manual receipt, got %+v", receipt)
	}
}
