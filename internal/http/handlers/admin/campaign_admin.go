package admin

import (
	"time"

	"github.com/tokenlock/tokenlock-api/internal/constants"
	"github.com/tokenlock/tokenlock-api/internal/http/handlers/shared"
	"github.com/tokenlock/tokenlock-api/internal/http/response"
	"github.com/tokenlock/tokenlock-api/internal/models"

	"github.com/gin-gonic/gin"
)

// CampaignRequest 活动创建/更新请求。
// campaignStatus 用指针区分缺省与显式 0：缺省时默认激活。
type CampaignRequest struct {
	CampaignName          string               `json:"campaignName"`
	CampaignType          string               `json:"campaignType"`
	DiscountType          *string              `json:"discountType"`
	DiscountValue         *models.Money        `json:"discountValue"`
	OfferHeading          string               `json:"offerHeading"`
	OfferDescription      string               `json:"offerDescription"`
	StartDate             time.Time            `json:"startDate"`
	EndDate               time.Time            `json:"endDate"`
	AutoActivate          bool                 `json:"autoActivate"`
	EligibilityConditions models.ConditionList `json:"eligibilityConditions"`
	SelectedProducts      models.StringArray   `json:"selectedProducts"`
	ProductSelectionType  string               `json:"productSelectionType"`
	EvaluateCondition     string               `json:"evaluateCondition"`
	CampaignStatus        *int                 `json:"campaignStatus"`
}

func (r *CampaignRequest) toModel() *models.Campaign {
	status := constants.CampaignStatusActive
	if r.CampaignStatus != nil {
		status = *r.CampaignStatus
	}
	return &models.Campaign{
		CampaignName:          r.CampaignName,
		CampaignType:          r.CampaignType,
		DiscountType:          r.DiscountType,
		DiscountValue:         r.DiscountValue,
		OfferHeading:          r.OfferHeading,
		OfferDescription:      r.OfferDescription,
		StartDate:             r.StartDate,
		EndDate:               r.EndDate,
		AutoActivate:          r.AutoActivate,
		EligibilityConditions: r.EligibilityConditions,
		SelectedProducts:      r.SelectedProducts,
		ProductSelectionType:  r.ProductSelectionType,
		EvaluateCondition:     r.EvaluateCondition,
		CampaignStatus:        status,
	}
}

// CampaignStatusRequest 活动状态更新请求
type CampaignStatusRequest struct {
	CampaignStatus *int `json:"campaignStatus" binding:"required"`
}

// ListCampaigns 活动列表
func (h *Handler) ListCampaigns(c *gin.Context) {
	campaigns, err := h.CampaignService.List()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, campaigns)
}

// GetCampaign 活动详情
func (h *Handler) GetCampaign(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	campaign, err := h.CampaignService.Get(id)
	if err != nil {
		respondCampaignError(c, err)
		return
	}
	response.Success(c, campaign)
}

// CreateCampaign 创建活动
func (h *Handler) CreateCampaign(c *gin.Context) {
	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	created, err := h.CampaignService.Create(req.toModel())
	if err != nil {
		respondCampaignError(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateCampaign 整体更新活动
func (h *Handler) UpdateCampaign(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	updated, err := h.CampaignService.Update(id, req.toModel())
	if err != nil {
		respondCampaignError(c, err)
		return
	}
	response.Success(c, updated)
}

// UpdateCampaignStatus 更新活动状态（0/1）
func (h *Handler) UpdateCampaignStatus(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req CampaignStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CampaignStatus == nil {
		response.BadRequest(c, "Invalid status value")
		return
	}

	campaign, err := h.CampaignService.UpdateStatus(id, *req.CampaignStatus)
	if err != nil {
		respondCampaignError(c, err)
		return
	}
	response.Success(c, campaign)
}

// DeleteCampaign 删除活动
func (h *Handler) DeleteCampaign(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	operator, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}

	if err := h.CampaignService.Delete(id); err != nil {
		respondCampaignError(c, err)
		return
	}
	shared.RequestLog(c).Infow("campaign_delete_audit", "campaign_id", id, "operator_id", operator)
	response.SuccessWithMsg(c, "Campaign deleted successfully", nil)
}
