package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/yanhua-ledger/internal/logger"
	"github.com/yanhua-ledger/internal/provider"
	"github.com/yanhua-ledger/internal/queue"
	"github.com/yanhua-ledger/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskReceiptRollup, c.handleReceiptRollup)
	mux.HandleFunc(queue.TaskLowStockScan, c.handleLowStockScan)
}

// handleReceiptRollup 重算某日实收并回写日收款记录。
// 人工覆盖过的日期由 ConfigService 跳过。
func (c *Consumer) handleReceiptRollup(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.ReceiptRollupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_receipt_rollup_unmarshal_failed", "error", err)
		return err
	}
	date := strings.TrimSpace(payload.Date)
	if date == "" {
		logger.Debugw("worker_receipt_rollup_skip_empty_date")
		return nil
	}

	total, err := c.SalesRepo.SumActualByDate(date)
	if err != nil {
		logger.Warnw("worker_receipt_rollup_sum_failed", "date", date, "error", err)
		return err
	}
	if err := c.ConfigService.RollupDailyReceipt(date, total); err != nil {
		logger.Warnw("worker_receipt_rollup_write_failed", "date", date, "error", err)
		return err
	}
	logger.Infow("worker_receipt_rollup_done", "date", date, "total", total.StringFixed(2))
	return nil
}

// handleLowStockScan 扫描总件数低于阈值的商品并告警
func (c *Consumer) handleLowStockScan(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.LowStockScanPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_scan_unmarshal_failed", "error", err)
		return err
	}
	threshold := payload.Threshold
	if threshold <= 0 {
		threshold = c.Config.Pricing.LowStockThreshold
	}
	if threshold <= 0 {
		logger.Debugw("worker_low_stock_scan_skip_zero_threshold")
		return nil
	}

	inventories, err := c.InventoryService.ListAll()
	if err != nil {
		logger.Warnw("worker_low_stock_scan_list_failed", "error", err)
		return err
	}
	ids := make([]string, 0, len(inventories))
	for _, inv := range inventories {
		ids = append(ids, inv.ProductID)
	}
	products, err := c.ProductRepo.ListByIDs(ids)
	if err != nil {
		logger.Warnw("worker_low_stock_scan_products_failed", "error", err)
		return err
	}
	byID := make(map[string]int, len(products))
	names := make(map[string]string, len(products))
	for i := range products {
		byID[products[i].ID] = service.PackSizeOf(&products[i])
		names[products[i].ID] = products[i].Name
	}

	low := 0
	for _, inv := range inventories {
		packSize, ok := byID[inv.ProductID]
		if !ok {
			continue
		}
		units := inv.TotalUnits(packSize)
		if units < threshold {
			low++
			logger.Warnw("low_stock_detected",
				"product_id", inv.ProductID,
				"product_name", names[inv.ProductID],
				"warehouse_id", inv.WarehouseID,
				"units", units,
				"threshold", threshold,
			)
		}
	}
	logger.Infow("worker_low_stock_scan_done", "scanned", len(inventories), "low", low)
	return nil
}
