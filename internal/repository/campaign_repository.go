package repository

import (
	"errors"

	"github.com/tokenlock/tokenlock-api/internal/models"

	"gorm.io/gorm"
)

// CampaignRepository 活动数据访问接口
type CampaignRepository interface {
	List() ([]models.Campaign, error)
	GetByID(id uint) (*models.Campaign, error)
	Create(campaign *models.Campaign) error
	Update(campaign *models.Campaign) error
	UpdateStatus(id uint, status int) error
	Delete(id uint) error
}

// GormCampaignRepository GORM 实现
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository 创建活动仓库
func NewCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// List 按创建时间倒序返回全部活动
func (r *GormCampaignRepository) List() ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := r.db.Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

// GetByID 根据 ID 获取活动
func (r *GormCampaignRepository) GetByID(id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// Create 创建活动
func (r *GormCampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// Update 全量更新活动（created_at 不参与更新）
func (r *GormCampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Model(campaign).
		Omit("created_at").
		Select("*").
		Updates(campaign).Error
}

// UpdateStatus 仅更新活动状态
func (r *GormCampaignRepository) UpdateStatus(id uint, status int) error {
	return r.db.Model(&models.Campaign{}).
		Where("id = ?", id).
		Update("campaignStatus", status).Error
}

// Delete 删除活动
func (r *GormCampaignRepository) Delete(id uint) error {
	return r.db.Delete(&models.Campaign{}, id).Error
}
