package repository

import (
	"errors"

	"github.com/tokenlock/tokenlock-api/internal/models"

	"gorm.io/gorm"
)

// PurchaseLimitRepository 商品限购数据访问接口
type PurchaseLimitRepository interface {
	List() ([]models.PurchaseLimit, error)
	GetByID(id uint) (*models.PurchaseLimit, error)
	GetByProductID(productID string) (*models.PurchaseLimit, error)
	Create(limit *models.PurchaseLimit) error
	Update(limit *models.PurchaseLimit) error
	Delete(id uint) error
}

// GormPurchaseLimitRepository GORM 实现
type GormPurchaseLimitRepository struct {
	db *gorm.DB
}

// NewPurchaseLimitRepository 创建限购仓库
func NewPurchaseLimitRepository(db *gorm.DB) *GormPurchaseLimitRepository {
	return &GormPurchaseLimitRepository{db: db}
}

// List 返回全部限购记录
func (r *GormPurchaseLimitRepository) List() ([]models.PurchaseLimit, error) {
	var limits []models.PurchaseLimit
	if err := r.db.Find(&limits).Error; err != nil {
		return nil, err
	}
	return limits, nil
}

// GetByID 根据 ID 获取限购记录
func (r *GormPurchaseLimitRepository) GetByID(id uint) (*models.PurchaseLimit, error) {
	var limit models.PurchaseLimit
	if err := r.db.First(&limit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &limit, nil
}

// GetByProductID 根据商品标识获取限购记录
func (r *GormPurchaseLimitRepository) GetByProductID(productID string) (*models.PurchaseLimit, error) {
	var limit models.PurchaseLimit
	if err := r.db.Where("product_id = ?", productID).First(&limit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &limit, nil
}

// Create 创建限购记录
func (r *GormPurchaseLimitRepository) Create(limit *models.PurchaseLimit) error {
	return r.db.Create(limit).Error
}

// Update 更新限购记录（可空列需要整行写回）
func (r *GormPurchaseLimitRepository) Update(limit *models.PurchaseLimit) error {
	return r.db.Model(limit).
		Select("*").
		Omit("created_at").
		Updates(limit).Error
}

// Delete 删除限购记录
func (r *GormPurchaseLimitRepository) Delete(id uint) error {
	return r.db.Delete(&models.PurchaseLimit{}, id).Error
}
