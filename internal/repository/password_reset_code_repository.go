package repository

import (
	"errors"
	"time"

	"github.com/tokenlock/tokenlock-api/internal/models"

	"gorm.io/gorm"
)

// PasswordResetCodeRepository 重置密码验证码数据访问接口
type PasswordResetCodeRepository interface {
	GetLatest(email string) (*models.PasswordResetCode, error)
	Create(code *models.PasswordResetCode) error
	IncrementAttempt(id uint) error
	MarkVerified(id uint, at time.Time) error
	MarkConsumed(id uint, at time.Time) error
}

// GormPasswordResetCodeRepository GORM 实现
type GormPasswordResetCodeRepository struct {
	db *gorm.DB
}

// NewPasswordResetCodeRepository 创建验证码仓库
func NewPasswordResetCodeRepository(db *gorm.DB) *GormPasswordResetCodeRepository {
	return &GormPasswordResetCodeRepository{db: db}
}

// GetLatest 获取该邮箱最近一条验证码记录
func (r *GormPasswordResetCodeRepository) GetLatest(email string) (*models.PasswordResetCode, error) {
	var record models.PasswordResetCode
	if err := r.db.Where("email = ?", email).Order("id DESC").First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Create 写入验证码记录
func (r *GormPasswordResetCodeRepository) Create(code *models.PasswordResetCode) error {
	return r.db.Create(code).Error
}

// IncrementAttempt 累加校验失败次数
func (r *GormPasswordResetCodeRepository) IncrementAttempt(id uint) error {
	return r.db.Model(&models.PasswordResetCode{}).
		Where("id = ?", id).
		UpdateColumn("attempt_count", gorm.Expr("attempt_count + 1")).Error
}

// MarkVerified 标记验证通过
func (r *GormPasswordResetCodeRepository) MarkVerified(id uint, at time.Time) error {
	return r.db.Model(&models.PasswordResetCode{}).
		Where("id = ?", id).
		Update("verified_at", at).Error
}

// MarkConsumed 标记已用于重置，防止重复使用
func (r *GormPasswordResetCodeRepository) MarkConsumed(id uint, at time.Time) error {
	return r.db.Model(&models.PasswordResetCode{}).
		Where("id = ?", id).
		Update("consumed_at", at).Error
}
