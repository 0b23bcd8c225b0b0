package constants

// 活动类型常量
const (
	CampaignTypeExclusive       = "exclusive"
	CampaignTypeTokenRedemption = "token_redemption"
	CampaignTypeDiscount        = "discount"
)

// 折扣类型常量
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// 活动状态常量（0 未激活，1 激活）
const (
	CampaignStatusInactive = 0
	CampaignStatusActive   = 1
)

// 商品选择方式常量
const (
	ProductSelectionAll      = "all"
	ProductSelectionSelected = "selected"
)

// 资格条件类型常量
const (
	ConditionTypeOwnToken    = "ownToken"
	ConditionTypeAddressList = "addressList"
)

// 资格条件组合方式常量
const (
	EvaluateConditionAll = "all"
	EvaluateConditionAny = "any"
)

// 链平台常量
const (
	PlatformEthereum = "Ethereum"
	PlatformSolana   = "Solana"
)

// 地址名单操作符常量
const (
	AddressOperatorIncludes = "Includes"
	AddressOperatorExcludes = "Excludes"
)

// 会话 Cookie 常量
const (
	AuthCookieName = "auth_token"
	AuthCookiePath = "/"
)

// 验证码场景常量
const (
	CaptchaSceneLogin = "login"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 异步任务常量
const (
	TaskCampaignAutoActivate   = "campaign:auto_activate"
	TaskCampaignAutoDeactivate = "campaign:auto_deactivate"
	QueueDefault               = "default"
)
