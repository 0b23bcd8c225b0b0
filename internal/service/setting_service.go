package service

import (
	"context"
	"time"

	"github.com/tokenlock/tokenlock-api/internal/cache"
	"github.com/tokenlock/tokenlock-api/internal/logger"
	"github.com/tokenlock/tokenlock-api/internal/models"
	"github.com/tokenlock/tokenlock-api/internal/repository"
)

const settingCacheKey = "settings:widget"
const settingCacheTTL = 10 * time.Minute

// SettingService 挂件外观配置服务（单行表，读多写少走缓存）
type SettingService struct {
	settings repository.SettingRepository
}

// NewSettingService 创建配置服务
func NewSettingService(settings repository.SettingRepository) *SettingService {
	return &SettingService{settings: settings}
}

// Get 获取当前配置，未初始化时返回 ErrNotFound
func (s *SettingService) Get(ctx context.Context) (*models.WidgetSetting, error) {
	var cached models.WidgetSetting
	hit, err := cache.GetJSON(ctx, settingCacheKey, &cached)
	if err != nil {
		logger.Warnw("setting_cache_read_failed", "error", err)
	}
	if hit {
		return &cached, nil
	}

	setting, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, ErrNotFound
	}

	if err := cache.SetJSON(ctx, settingCacheKey, setting, settingCacheTTL); err != nil {
		logger.Warnw("setting_cache_write_failed", "error", err)
	}
	return setting, nil
}

// Save 保存配置（六个外观字段全部必填），存在则覆盖
func (s *SettingService) Save(ctx context.Context, input *models.WidgetSetting) (*models.WidgetSetting, error) {
	if input.ButtonColor == "" ||
		input.ButtonText == "" ||
		input.ButtonTextColor == "" ||
		input.ButtonFontSize == "" ||
		input.DescriptionColor == "" ||
		input.DescriptionFontSize == "" {
		return nil, ErrInvalidSetting
	}

	existing, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	if existing != nil {
		input.ID = existing.ID
	} else {
		input.ID = 0
	}
	input.UpdatedAt = time.Now()

	if err := s.settings.Save(input); err != nil {
		return nil, err
	}

	if err := cache.Del(ctx, settingCacheKey); err != nil {
		logger.Warnw("setting_cache_invalidate_failed", "error", err)
	}
	logger.Infow("widget_setting_saved", "id", input.ID)
	return input, nil
}
