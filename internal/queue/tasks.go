package queue

import (
	"encoding/json"

	"github.com/yanhua-ledger/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskReceiptRollup 日收款汇总任务：开单后重算当日实收
	TaskReceiptRollup = constants.TaskReceiptRollup
	// TaskLowStockScan 低库存扫描任务
	TaskLowStockScan = constants.TaskLowStockScan
)

// ReceiptRollupPayload 日收款汇总任务载荷
type ReceiptRollupPayload struct {
	Date string `json:"date"` // YYYY-MM-DD
}

// LowStockScanPayload 低库存扫描任务载荷
type LowStockScanPayload struct {
	Threshold int `json:"threshold"` // 件数阈值，0 使用配置默认
}

// NewReceiptRollupTask 创建日收款汇总任务
func NewReceiptRollupTask(payload ReceiptRollupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReceiptRollup, body), nil
}

// NewLowStockScanTask 创建低库存扫描任务
func NewLowStockScanTask(payload LowStockScanPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, body), nil
}
