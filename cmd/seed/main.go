package main

import (
	"time"

	"github.com/tokenlock/tokenlock-api/internal/config"
	"github.com/tokenlock/tokenlock-api/internal/constants"
	"github.com/tokenlock/tokenlock-api/internal/logger"
	"github.com/tokenlock/tokenlock-api/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 演示商户账号
	var existingUser models.User
	if err := models.DB.Where("email = ?", "merchant@example.com").First(&existingUser).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("merchant123"), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash password: %v", err)
		}
		user := models.User{
			Username:     "merchant",
			Email:        "merchant@example.com",
			PasswordHash: string(hash),
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create demo user: %v", err)
		} else {
			stdLog.Printf("Created demo user: merchant@example.com / merchant123")
		}
	} else {
		stdLog.Printf("Demo user already exists: merchant@example.com")
	}

	now := time.Now()
	discountType := constants.DiscountTypePercentage
	discountValue := models.NewMoneyFromDecimal(decimal.NewFromInt(20))

	// 示例活动
	campaigns := []models.Campaign{
		{
			CampaignName:     "BAYC Holders Early Access",
			CampaignType:     constants.CampaignTypeExclusive,
			OfferHeading:     "Exclusive drop for BAYC holders",
			OfferDescription: "Connect your wallet to unlock this collection before anyone else.",
			StartDate:        now,
			EndDate:          now.AddDate(0, 1, 0),
			AutoActivate:     false,
			EligibilityConditions: models.ConditionList{
				{
					Type:            constants.ConditionTypeOwnToken,
					Platform:        constants.PlatformEthereum,
					Quantity:        "1",
					ContractAddress: "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D",
					TokenIDs:        models.StringArray{"1", "2", "3"},
				},
			},
			ProductSelectionType: constants.ProductSelectionAll,
			EvaluateCondition:    constants.EvaluateConditionAll,
			CampaignStatus:       constants.CampaignStatusActive,
			CreatedAt:            now,
		},
		{
			CampaignName:     "VIP Wallet Discount",
			CampaignType:     constants.CampaignTypeDiscount,
			DiscountType:     &discountType,
			DiscountValue:    &discountValue,
			OfferHeading:     "20% off for VIP wallets",
			OfferDescription: "Allow-listed wallets get 20% off selected products.",
			StartDate:        now.AddDate(0, 0, 7),
			EndDate:          now.AddDate(0, 2, 0),
			AutoActivate:     true,
			EligibilityConditions: models.ConditionList{
				{
					Type:            constants.ConditionTypeAddressList,
					Operator:        constants.AddressOperatorIncludes,
					WalletAddresses: models.StringArray{"0x1111111111111111111111111111111111111111"},
				},
			},
			SelectedProducts:     models.StringArray{"prod_1001", "prod_1002"},
			ProductSelectionType: constants.ProductSelectionSelected,
			EvaluateCondition:    constants.EvaluateConditionAny,
			CampaignStatus:       constants.CampaignStatusInactive,
			CreatedAt:            now,
		},
	}
	for _, campaign := range campaigns {
		var existing models.Campaign
		if err := models.DB.Where("campaignName = ?", campaign.CampaignName).First(&existing).Error; err != nil {
			if err := models.DB.Create(&campaign).Error; err != nil {
				stdLog.Printf("Failed to create campaign %q: %v", campaign.CampaignName, err)
			} else {
				stdLog.Printf("Created campaign: %s", campaign.CampaignName)
			}
		} else {
			stdLog.Printf("Campaign already exists: %s", campaign.CampaignName)
		}
	}

	// 示例限购
	fixedLimit := 2
	limits := []models.PurchaseLimit{
		{
			ProductID:     "prod_1001",
			ProductName:   "Genesis Hoodie",
			PurchaseLimit: &fixedLimit,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ProductID:   "prod_1002",
			ProductName: "Holder Cap",
			TokensOwned: &models.TokenOwnedRef{
				Blockchain:      constants.PlatformEthereum,
				ContractAddress: "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D",
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for _, limit := range limits {
		var existing models.PurchaseLimit
		if err := models.DB.Where("product_id = ?", limit.ProductID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&limit).Error; err != nil {
				stdLog.Printf("Failed to create purchase limit %s: %v", limit.ProductID, err)
			} else {
				stdLog.Printf("Created purchase limit: %s", limit.ProductID)
			}
		} else {
			stdLog.Printf("Purchase limit already exists: %s", limit.ProductID)
		}
	}

	// 默认外观配置
	var existingSetting models.WidgetSetting
	if err := models.DB.First(&existingSetting).Error; err != nil {
		setting := models.WidgetSetting{
			ButtonColor:         "#000000",
			ButtonText:          "Connect Wallet",
			ButtonTextColor:     "#FFFFFF",
			ButtonFontSize:      "16",
			DescriptionColor:    "#666666",
			DescriptionFontSize: "14",
			UpdatedAt:           now,
		}
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("Failed to create widget settings: %v", err)
		} else {
			stdLog.Printf("Created default widget settings")
		}
	} else {
		stdLog.Printf("Widget settings already exist")
	}

	stdLog.Printf("Seed completed")
}
