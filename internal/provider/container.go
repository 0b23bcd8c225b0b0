package provider

import (
	"github.com/tokenlock/tokenlock-api/internal/cache"
	"github.com/tokenlock/tokenlock-api/internal/config"
	"github.com/tokenlock/tokenlock-api/internal/logger"
	"github.com/tokenlock/tokenlock-api/internal/models"
	"github.com/tokenlock/tokenlock-api/internal/queue"
	"github.com/tokenlock/tokenlock-api/internal/repository"
	"github.com/tokenlock/tokenlock-api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo              repository.UserRepository
	PasswordResetCodeRepo repository.PasswordResetCodeRepository
	CampaignRepo          repository.CampaignRepository
	PurchaseLimitRepo     repository.PurchaseLimitRepository
	SettingRepo           repository.SettingRepository

	// Services
	AuthService          *service.AuthService
	EmailService         *service.EmailService
	PasswordResetService *service.PasswordResetService
	CampaignService      *service.CampaignService
	PurchaseLimitService *service.PurchaseLimitService
	SettingService       *service.SettingService
	CaptchaService       *service.CaptchaService
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

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.PasswordResetCodeRepo = repository.NewPasswordResetCodeRepository(db)
	c.CampaignRepo = repository.NewCampaignRepository(db)
	c.PurchaseLimitRepo = repository.NewPurchaseLimitRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	cfg := c.Config
	c.AuthService = service.NewAuthService(c.UserRepo, cfg)
	c.EmailService = service.NewEmailService(&cfg.Email)
	c.PasswordResetService = service.NewPasswordResetService(c.UserRepo, c.PasswordResetCodeRepo, c.EmailService, cfg)
	c.CampaignService = service.NewCampaignService(c.CampaignRepo, c.QueueClient)
	c.PurchaseLimitService = service.NewPurchaseLimitService(c.PurchaseLimitRepo)
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.CaptchaService = service.NewCaptchaService(cfg.Captcha)
}

// Close 释放容器持有的资源
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
}
