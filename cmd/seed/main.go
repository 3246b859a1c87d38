package main

import (
	"time"

	"github.com/royale-store/royale-api/internal/config"
	"github.com/royale-store/royale-api/internal/constants"
	"github.com/royale-store/royale-api/internal/logger"
	"github.com/royale-store/royale-api/internal/models"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{Slug: "perfumes", Name: "Perfumes", GSTPercentage: mustMoney("18")},
		{Slug: "watches", Name: "Watches", GSTPercentage: mustMoney("18")},
		{Slug: "accessories", Name: "Accessories", GSTPercentage: mustMoney("12")},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"perfumes", "watches", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Fatalf("failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	products := []models.Product{
		{
			CategoryID:         categoryIDs["perfumes"],
			Slug:               "oud-royale-100ml",
			Name:               "Oud Royale 100ml",
			Description:        "Long-lasting oud eau de parfum.",
			Price:              mustMoney("899"),
			DiscountPercentage: mustMoney("10"),
			Images:             models.StringArray{"/uploads/oud-royale.jpg"},
			CashOnDelivery:     true,
			Stock:              120,
			IsActive:           true,
		},
		{
			CategoryID:         categoryIDs["perfumes"],
			Slug:               "musk-noir-50ml",
			Name:               "Musk Noir 50ml",
			Description:        "Soft musk with amber base notes.",
			Price:              mustMoney("449"),
			DiscountPercentage: mustMoney("0"),
			Images:             models.StringArray{"/uploads/musk-noir.jpg"},
			CashOnDelivery:     true,
			Stock:              80,
			IsActive:           true,
		},
		{
			CategoryID:     categoryIDs["watches"],
			Slug:           "chrono-steel-42mm",
			Name:           "Chrono Steel 42mm",
			Description:    "Stainless chronograph with mineral glass.",
			Price:          mustMoney("1499"),
			GSTPercentage:  mustMoney("18"),
			Images:         models.StringArray{"/uploads/chrono-steel.jpg"},
			CashOnDelivery: false,
			Stock:          35,
			IsActive:       true,
		},
		{
			CategoryID:     categoryIDs["accessories"],
			Slug:           "leather-wallet-brown",
			Name:           "Leather Wallet Brown",
			Description:    "Genuine leather bifold wallet.",
			Price:          mustMoney("299"),
			Images:         models.StringArray{"/uploads/leather-wallet.jpg"},
			CashOnDelivery: true,
			Stock:          200,
			IsActive:       true,
		},
	}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("product already exists: %s", product.Slug)
		}
	}

	expiry := time.Now().AddDate(0, 3, 0)
	coupons := []models.Coupon{
		{
			Code:          "WELCOME10",
			DiscountType:  constants.CouponTypePercentage,
			DiscountValue: mustMoney("10"),
			IsActive:      true,
			ExpiresAt:     &expiry,
		},
		{
			Code:           "FLAT50",
			DiscountType:   constants.CouponTypeFixed,
			DiscountValue:  mustMoney("50"),
			MinOrderAmount: mustMoney("500"),
			MaxUses:        100,
			IsActive:       true,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("created coupon: %s", coupon.Code)
			}
		} else {
			stdLog.Printf("coupon already exists: %s", coupon.Code)
		}
	}

	banners := []models.Banner{
		{
			Title:     "Festive Sale",
			Subtitle:  "Free shipping on orders above 300",
			Image:     "/uploads/banner-festive.jpg",
			IsActive:  true,
			SortOrder: 1,
		},
	}
	for _, banner := range banners {
		var existing models.Banner
		if err := models.DB.Where("title = ?", banner.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&banner).Error; err != nil {
				stdLog.Printf("failed to create banner %s: %v", banner.Title, err)
			} else {
				stdLog.Printf("created banner: %s", banner.Title)
			}
		} else {
			stdLog.Printf("banner already exists: %s", banner.Title)
		}
	}

	stdLog.Printf("seed completed")
}

func mustMoney(value string) models.Money {
	m, err := models.NewMoneyFromString(value)
	if err != nil {
		panic(err)
	}
	return m
}
