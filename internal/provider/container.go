package provider

import (
	"github.com/yanhua-ledger/internal/cache"
	"github.com/yanhua-ledger/internal/config"
	"github.com/yanhua-ledger/internal/logger"
	"github.com/yanhua-ledger/internal/models"
	"github.com/yanhua-ledger/internal/queue"
	"github.com/yanhua-ledger/internal/repository"
	"github.com/yanhua-ledger/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo   repository.ProductRepository
	CategoryRepo  repository.CategoryRepository
	InventoryRepo repository.InventoryRepository
	SalesRepo     repository.SalesRepository
	PurchaseRepo  repository.PurchaseRepository
	ConfigRepo    repository.ConfigRepository
	UserRepo      repository.UserRepository
	MiscCostRepo  repository.MiscCostRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthService      *service.AuthService
	ConfigService    *service.ConfigService
	PricingService   *service.PricingService
	InventoryService *service.InventoryService
	SalesService     *service.SalesService
	PurchaseService  *service.PurchaseService
	ProductService   *service.ProductService
	CategoryService  *service.CategoryService
	DashboardService *service.DashboardService
	MiscCostService  *service.MiscCostService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.InventoryRepo = repository.NewInventoryRepository(db)
	c.SalesRepo = repository.NewSalesRepository(db)
	c.PurchaseRepo = repository.NewPurchaseRepository(db)
	c.ConfigRepo = repository.NewConfigRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.MiscCostRepo = repository.NewMiscCostRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.UserRepo, c.Config.JWT)
	c.ConfigService = service.NewConfigService(c.ConfigRepo)
	c.PricingService = service.NewPricingService(c.ProductRepo, c.CategoryRepo, c.ConfigService)
	c.InventoryService = service.NewInventoryService(c.InventoryRepo, c.ProductRepo)
	c.SalesService = service.NewSalesService(c.SalesRepo, c.InventoryService, c.PricingService, c.QueueClient)
	c.PurchaseService = service.NewPurchaseService(c.PurchaseRepo, c.ProductRepo, c.InventoryService)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.InventoryRepo, c.PricingService)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ProductRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.MiscCostRepo, c.InventoryRepo, c.ProductRepo, c.PricingService)
	c.MiscCostService = service.NewMiscCostService(c.MiscCostRepo)
}
