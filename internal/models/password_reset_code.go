package models

import (
	"time"
)

// PasswordResetCode 重置密码验证码记录
type PasswordResetCode struct {
	ID           uint       `gorm:"primarykey" json:"id"`           // 主键
	Email        string     `gorm:"index;not null" json:"email"`    // 邮箱
	Code         string     `gorm:"not null" json:"-"`              // 验证码（不返回给前端）
	ExpiresAt    time.Time  `gorm:"index" json:"expires_at"`        // 过期时间
	VerifiedAt   *time.Time `gorm:"index" json:"verified_at"`       // 验证时间
	ConsumedAt   *time.Time `gorm:"index" json:"consumed_at"`       // 消费时间（重置完成后置位）
	AttemptCount int        `gorm:"default:0" json:"attempt_count"` // 尝试次数
	SentAt       time.Time  `gorm:"index" json:"sent_at"`           // 发送时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`        // 创建时间
}

// TableName 指定表名
func (PasswordResetCode) TableName() string {
	return "password_reset_codes"
}
