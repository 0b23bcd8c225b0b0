package repository

import (
	"errors"

	"github.com/tokenlock/tokenlock-api/internal/models"

	"gorm.io/gorm"
)

// SettingRepository 挂件外观配置数据访问接口（单行表）
type SettingRepository interface {
	Get() (*models.WidgetSetting, error)
	Save(setting *models.WidgetSetting) error
}

// GormSettingRepository GORM 实现
type GormSettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository 创建配置仓库
func NewSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// Get 返回首行配置，不存在时返回 nil
func (r *GormSettingRepository) Get() (*models.WidgetSetting, error) {
	var setting models.WidgetSetting
	if err := r.db.First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// Save 写入配置，存在则整行覆盖，不存在则创建
func (r *GormSettingRepository) Save(setting *models.WidgetSetting) error {
	if setting.ID == 0 {
		return r.db.Create(setting).Error
	}
	return r.db.Save(setting).Error
}
