package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringArray 字符串数组类型，JSON 文本落库
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	bytes, ok := normalizeScanBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// EligibilityCondition 资格条件（按 Type 区分的变体）
// ownToken 变体使用 Platform/Quantity/ContractAddress/TokenIDs，
// addressList 变体使用 Operator/WalletAddresses。
type EligibilityCondition struct {
	Type            string      `json:"type"`                      // ownToken / addressList
	Platform        string      `json:"platform,omitempty"`        // Ethereum / Solana
	Quantity        string      `json:"quantity,omitempty"`        // 字符串编码的整数
	ContractAddress string      `json:"contractAddress,omitempty"` // 合约地址
	TokenIDs        StringArray `json:"tokenIds,omitempty"`        // Token ID 列表
	Operator        string      `json:"operator,omitempty"`        // Includes / Excludes
	WalletAddresses StringArray `json:"walletAddresses,omitempty"` // 钱包地址列表
}

// ConditionList 资格条件列表，JSON 文本落库
type ConditionList []EligibilityCondition

// Value 实现 driver.Valuer 接口
func (l ConditionList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan 实现 sql.Scanner 接口
func (l *ConditionList) Scan(value interface{}) error {
	if value == nil {
		*l = ConditionList{}
		return nil
	}
	bytes, ok := normalizeScanBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Campaign 活动表
// 列名沿用管理端前端的 camelCase 字段，created_at 建表后不再更新。
type Campaign struct {
	ID                    uint          `gorm:"primarykey" json:"id"`                                                // 主键
	CampaignName          string        `gorm:"column:campaignName;not null" json:"campaignName"`                    // 活动名称
	CampaignType          string        `gorm:"column:campaignType;not null" json:"campaignType"`                    // 活动类型（exclusive/token_redemption/discount）
	DiscountType          *string       `gorm:"column:discountType" json:"discountType"`                             // 折扣类型（percentage/fixed），仅 discount 活动有效
	DiscountValue         *Money        `gorm:"column:discountValue;type:decimal(20,2)" json:"discountValue"`        // 折扣数值
	OfferHeading          string        `gorm:"column:offerHeading;not null" json:"offerHeading"`                    // 优惠标题
	OfferDescription      string        `gorm:"column:offerDescription;not null" json:"offerDescription"`            // 优惠描述
	StartDate             time.Time     `gorm:"column:startDate;not null" json:"startDate"`                          // 开始时间
	EndDate               time.Time     `gorm:"column:endDate;not null" json:"endDate"`                              // 结束时间
	AutoActivate          bool          `gorm:"column:autoActivate;not null;default:false" json:"autoActivate"`      // 到点自动激活
	EligibilityConditions ConditionList `gorm:"column:eligibilityConditions;type:text" json:"eligibilityConditions"` // 资格条件列表
	SelectedProducts      StringArray   `gorm:"column:selectedProducts;type:text" json:"selectedProducts"`           // 指定商品列表（全选时为空）
	ProductSelectionType  string        `gorm:"column:productSelectionType;not null" json:"productSelectionType"`    // 商品选择方式（all/selected）
	EvaluateCondition     string        `gorm:"column:evaluateCondition;not null" json:"evaluateCondition"`          // 条件组合方式（all/any）
	CampaignStatus        int           `gorm:"column:campaignStatus;not null" json:"campaignStatus"`                // 活动状态（0/1）
	CreatedAt             time.Time     `gorm:"column:created_at;index" json:"created_at"`                           // 创建时间（不可变）
}

// TableName 指定表名
func (Campaign) TableName() string {
	return "campaigns"
}

func normalizeScanBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
