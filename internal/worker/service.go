package worker

import (
	"context"
	"errors"
	"time"

	"github.com/yanhua-ledger/internal/config"
	"github.com/yanhua-ledger/internal/logger"
	"github.com/yanhua-ledger/internal/queue"

	"github.com/hibiken/asynq"
)

const lowStockScanInterval = time.Hour

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
	client   *queue.Client
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer, client *queue.Client) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
		client:   client,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.client.Enabled() {
		go s.runLowStockScanLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

func (s *Service) runLowStockScanLoop(ctx context.Context) {
	enqueue := func() {
		if err := s.client.EnqueueLowStockScan(queue.LowStockScanPayload{}); err != nil {
			logger.Warnw("low_stock_scan_enqueue_failed", "error", err)
		}
	}
	enqueue()

	ticker := time.NewTicker(lowStockScanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			enqueue()
		}
	}
}
