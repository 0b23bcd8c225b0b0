package models

import (
	"time"
)

// WidgetSetting 店面按钮外观设置（单行表）
type WidgetSetting struct {
	ID                  uint      `gorm:"primarykey" json:"id"`                                               // 主键
	ButtonColor         string    `gorm:"column:button_color;not null" json:"button_color"`                   // 按钮背景色
	ButtonText          string    `gorm:"column:button_text;not null" json:"button_text"`                     // 按钮文案
	ButtonTextColor     string    `gorm:"column:button_text_color;not null" json:"button_text_color"`         // 按钮文字颜色
	ButtonFontSize      string    `gorm:"column:button_font_size;not null" json:"button_font_size"`           // 按钮字号
	DescriptionColor    string    `gorm:"column:description_color;not null" json:"description_color"`         // 描述文字颜色
	DescriptionFontSize string    `gorm:"column:description_font_size;not null" json:"description_font_size"` // 描述字号
	UpdatedAt           time.Time `json:"updated_at"`                                                         // 更新时间
}

// TableName 指定表名
func (WidgetSetting) TableName() string {
	return "settings"
}
