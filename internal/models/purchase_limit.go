package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// TokenOwnedRef 按持仓限购的标记（存在即表示 token-owned 模式）
type TokenOwnedRef struct {
	Blockchain      string `json:"blockchain"`      // 链平台
	ContractAddress string `json:"contractAddress"` // 合约地址
}

// Value 实现 driver.Valuer 接口
func (t TokenOwnedRef) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan 实现 sql.Scanner 接口
func (t *TokenOwnedRef) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := normalizeScanBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, t)
}

// PurchaseLimit 商品限购表
// purchase_limit 为空且 tokens_owned 非空时表示按持仓数量限购。
type PurchaseLimit struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                     // 主键
	ProductID     string         `gorm:"column:product_id;uniqueIndex;not null" json:"product_id"` // 商品标识（唯一）
	ProductName   string         `gorm:"column:product_name;not null" json:"product_name"`         // 商品名称
	PurchaseLimit *int           `gorm:"column:purchase_limit" json:"purchase_limit"`              // 固定限购数量
	TokensOwned   *TokenOwnedRef `gorm:"column:tokens_owned;type:text" json:"tokens_owned"`        // token-owned 标记
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                               // 更新时间
}

// TableName 指定表名
func (PurchaseLimit) TableName() string {
	return "purchase_limits"
}
