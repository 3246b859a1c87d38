package provider

import (
	"time"

	"github.com/royale-store/royale-api/internal/cache"
	"github.com/royale-store/royale-api/internal/config"
	"github.com/royale-store/royale-api/internal/ipecho"
	"github.com/royale-store/royale-api/internal/logger"
	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/queue"
	"github.com/royale-store/royale-api/internal/repository"
	"github.com/royale-store/royale-api/internal/service"
	"github.com/royale-store/royale-api/internal/telegram"

	"github.com/shopspring/decimal"
)

// Container wires the application graph once at startup.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	IPResolver  *ipecho.Resolver

	// Repositories
	AdminRepo       repository.AdminRepository
	OrderRepo       repository.OrderRepository
	ProductRepo     repository.ProductRepository
	CategoryRepo    repository.CategoryRepository
	BannerRepo      repository.BannerRepository
	CartRepo        repository.CartRepository
	CouponRepo      repository.CouponRepository
	BannedUserRepo  repository.BannedUserRepository
	RestrictionRepo repository.RestrictionRepository

	// Services
	AuthService             *service.AuthService
	CatalogService          *service.CatalogService
	CartService             *service.CartService
	PricingService          *service.PricingService
	CouponService           *service.CouponService
	EligibilityService      *service.EligibilityService
	NotificationService     *service.NotificationService
	CheckoutService         *service.CheckoutService
	RestrictionAdminService *service.RestrictionAdminService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

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
		IPResolver:  ipecho.NewResolver(cfg.Checkout.IPEchoURL),
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BannerRepo = repository.NewBannerRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.BannedUserRepo = repository.NewBannedUserRepository(db)
	c.RestrictionRepo = repository.NewRestrictionRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CatalogService = service.NewCatalogService(c.BannerRepo, c.CategoryRepo, c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)

	shippingFee := parseAmount(c.Config.Checkout.ShippingFee, "40")
	freeThreshold := parseAmount(c.Config.Checkout.FreeShippingThreshold, "300")
	c.PricingService = service.NewPricingService(c.ProductRepo, shippingFee, freeThreshold)

	c.CouponService = service.NewCouponService(c.CouponRepo)
	c.EligibilityService = service.NewEligibilityService(c.BannedUserRepo, c.RestrictionRepo)

	var tgOpts []telegram.Option
	if c.Config.Notify.TimeoutSeconds > 0 {
		tgOpts = append(tgOpts, telegram.WithTimeout(time.Duration(c.Config.Notify.TimeoutSeconds)*time.Second))
	}
	tg := telegram.NewClient(c.Config.Notify.TelegramBotToken, c.Config.Notify.TelegramChatID, tgOpts...)
	c.NotificationService = service.NewNotificationService(c.OrderRepo, tg)

	c.CheckoutService = service.NewCheckoutService(service.CheckoutServiceOptions{
		OrderRepo:       c.OrderRepo,
		CartRepo:        c.CartRepo,
		CouponRepo:      c.CouponRepo,
		RestrictionRepo: c.RestrictionRepo,
		Pricing:         c.PricingService,
		Coupons:         c.CouponService,
		Eligibility:     c.EligibilityService,
		QueueClient:     c.QueueClient,
		Notifier:        c.NotificationService,
		OrderNoPrefix:   c.Config.Checkout.OrderNoPrefix,
		OrderNoLength:   c.Config.Checkout.OrderNoLength,
	})

	c.RestrictionAdminService = service.NewRestrictionAdminService(c.BannedUserRepo, c.RestrictionRepo)
}

func parseAmount(raw, fallback string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		d, _ = decimal.NewFromString(fallback)
		logger.Warnw("provider_amount_parse_failed", "value", raw, "fallback", fallback)
	}
	return d
}
