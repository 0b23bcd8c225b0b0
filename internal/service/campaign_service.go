package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tokenlock/tokenlock-api/internal/constants"
	"github.com/tokenlock/tokenlock-api/internal/logger"
	"github.com/tokenlock/tokenlock-api/internal/models"
	"github.com/tokenlock/tokenlock-api/internal/queue"
	"github.com/tokenlock/tokenlock-api/internal/repository"
)

// CampaignService 活动管理服务
type CampaignService struct {
	campaigns repository.CampaignRepository
	queue     *queue.Client
}

// NewCampaignService 创建活动服务
func NewCampaignService(campaigns repository.CampaignRepository, queueClient *queue.Client) *CampaignService {
	return &CampaignService{campaigns: campaigns, queue: queueClient}
}

// List 返回全部活动，按创建时间倒序
func (s *CampaignService) List() ([]models.Campaign, error) {
	return s.campaigns.List()
}

// Get 根据 ID 获取活动
func (s *CampaignService) Get(id uint) (*models.Campaign, error) {
	campaign, err := s.campaigns.GetByID(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrNotFound
	}
	return campaign, nil
}

// Create 创建活动。全选商品时清空指定商品列表，
// 勾选自动激活时注册开始/结束时间的定时任务。
func (s *CampaignService) Create(campaign *models.Campaign) (*models.Campaign, error) {
	if err := s.normalizeAndValidate(campaign); err != nil {
		return nil, err
	}
	campaign.ID = 0
	campaign.CreatedAt = time.Now()

	if err := s.campaigns.Create(campaign); err != nil {
		return nil, err
	}

	s.scheduleAutoTasks(campaign)
	logger.Infow("campaign_created",
		"campaign_id", campaign.ID,
		"campaign_type", campaign.CampaignType,
		"auto_activate", campaign.AutoActivate,
	)
	return campaign, nil
}

// Update 整体更新活动，创建时间保持不变
func (s *CampaignService) Update(id uint, campaign *models.Campaign) (*models.Campaign, error) {
	existing, err := s.campaigns.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if err := s.normalizeAndValidate(campaign); err != nil {
		return nil, err
	}
	campaign.ID = existing.ID
	campaign.CreatedAt = existing.CreatedAt

	if err := s.campaigns.Update(campaign); err != nil {
		return nil, err
	}

	s.scheduleAutoTasks(campaign)
	logger.Infow("campaign_updated", "campaign_id", campaign.ID)
	return campaign, nil
}

// UpdateStatus 更新活动状态，只接受 0/1，重复写入同一状态为幂等操作
func (s *CampaignService) UpdateStatus(id uint, status int) (*models.Campaign, error) {
	if status != constants.CampaignStatusInactive && status != constants.CampaignStatusActive {
		return nil, ErrInvalidStatus
	}

	existing, err := s.campaigns.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if existing.CampaignStatus != status {
		if err := s.campaigns.UpdateStatus(id, status); err != nil {
			return nil, err
		}
		existing.CampaignStatus = status
		logger.Infow("campaign_status_changed", "campaign_id", id, "status", status)
	}
	return existing, nil
}

// Delete 删除活动
func (s *CampaignService) Delete(id uint) error {
	existing, err := s.campaigns.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.campaigns.Delete(id); err != nil {
		return err
	}
	logger.Infow("campaign_deleted", "campaign_id", id)
	return nil
}

// AutoActivate 定时任务回调：到达开始时间后激活活动。
// 任务入队后活动可能已被修改或删除，执行前重新校验。
func (s *CampaignService) AutoActivate(id uint) error {
	campaign, err := s.campaigns.GetByID(id)
	if err != nil {
		return err
	}
	if campaign == nil || !campaign.AutoActivate {
		return nil
	}
	if campaign.CampaignStatus == constants.CampaignStatusActive {
		return nil
	}
	if time.Now().Before(campaign.StartDate) {
		return nil
	}
	if err := s.campaigns.UpdateStatus(id, constants.CampaignStatusActive); err != nil {
		return err
	}
	logger.Infow("campaign_auto_activated", "campaign_id", id)
	return nil
}

// AutoDeactivate 定时任务回调：到达结束时间后下线活动
func (s *CampaignService) AutoDeactivate(id uint) error {
	campaign, err := s.campaigns.GetByID(id)
	if err != nil {
		return err
	}
	if campaign == nil || !campaign.AutoActivate {
		return nil
	}
	if campaign.CampaignStatus == constants.CampaignStatusInactive {
		return nil
	}
	if time.Now().Before(campaign.EndDate) {
		return nil
	}
	if err := s.campaigns.UpdateStatus(id, constants.CampaignStatusInactive); err != nil {
		return err
	}
	logger.Infow("campaign_auto_deactivated", "campaign_id", id)
	return nil
}

// ReconcileSchedules 兜底扫描：补偿错过的定时激活/下线。
// 扫描范围只覆盖勾选自动激活的活动。
func (s *CampaignService) ReconcileSchedules(now time.Time) error {
	campaigns, err := s.campaigns.List()
	if err != nil {
		return err
	}
	for i := range campaigns {
		campaign := &campaigns[i]
		if !campaign.AutoActivate {
			continue
		}
		switch {
		case campaign.CampaignStatus == constants.CampaignStatusActive && !now.Before(campaign.EndDate):
			if err := s.campaigns.UpdateStatus(campaign.ID, constants.CampaignStatusInactive); err != nil {
				logger.Warnw("campaign_sweep_deactivate_failed", "campaign_id", campaign.ID, "error", err)
				continue
			}
			logger.Infow("campaign_auto_deactivated", "campaign_id", campaign.ID)
		case campaign.CampaignStatus == constants.CampaignStatusInactive &&
			!now.Before(campaign.StartDate) && now.Before(campaign.EndDate):
			if err := s.campaigns.UpdateStatus(campaign.ID, constants.CampaignStatusActive); err != nil {
				logger.Warnw("campaign_sweep_activate_failed", "campaign_id", campaign.ID, "error", err)
				continue
			}
			logger.Infow("campaign_auto_activated", "campaign_id", campaign.ID)
		}
	}
	return nil
}

func (s *CampaignService) scheduleAutoTasks(campaign *models.Campaign) {
	if !campaign.AutoActivate || s.queue == nil {
		return
	}
	now := time.Now()
	if campaign.StartDate.After(now) {
		payload := queue.CampaignAutoActivatePayload{CampaignID: campaign.ID}
		if err := s.queue.EnqueueCampaignAutoActivate(payload, campaign.StartDate); err != nil {
			logger.Errorw("campaign_auto_activate_enqueue_failed", "campaign_id", campaign.ID, "error", err)
		}
	}
	if campaign.EndDate.After(now) {
		payload := queue.CampaignAutoDeactivatePayload{CampaignID: campaign.ID}
		if err := s.queue.EnqueueCampaignAutoDeactivate(payload, campaign.EndDate); err != nil {
			logger.Errorw("campaign_auto_deactivate_enqueue_failed", "campaign_id", campaign.ID, "error", err)
		}
	}
}

func (s *CampaignService) normalizeAndValidate(campaign *models.Campaign) error {
	if campaign.CampaignName == "" ||
		campaign.CampaignType == "" ||
		campaign.OfferHeading == "" ||
		campaign.OfferDescription == "" ||
		campaign.StartDate.IsZero() ||
		campaign.EndDate.IsZero() ||
		campaign.ProductSelectionType == "" ||
		campaign.EvaluateCondition == "" {
		return ErrInvalidCampaign
	}

	switch campaign.CampaignType {
	case constants.CampaignTypeExclusive, constants.CampaignTypeTokenRedemption:
		campaign.DiscountType = nil
		campaign.DiscountValue = nil
	case constants.CampaignTypeDiscount:
		if campaign.DiscountType == nil || campaign.DiscountValue == nil {
			return fmt.Errorf("%w: discount type and value are required", ErrInvalidCampaign)
		}
		if *campaign.DiscountType != constants.DiscountTypePercentage &&
			*campaign.DiscountType != constants.DiscountTypeFixed {
			return fmt.Errorf("%w: invalid discount type", ErrInvalidCampaign)
		}
		if !campaign.DiscountValue.IsPositive() {
			return fmt.Errorf("%w: discount value must be greater than zero", ErrInvalidCampaign)
		}
	default:
		return fmt.Errorf("%w: invalid campaign type", ErrInvalidCampaign)
	}

	if campaign.EndDate.Before(campaign.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", ErrInvalidCampaign)
	}
	campaign.StartDate = campaign.StartDate.UTC()
	campaign.EndDate = campaign.EndDate.UTC()

	switch campaign.EvaluateCondition {
	case constants.EvaluateConditionAll, constants.EvaluateConditionAny:
	default:
		return fmt.Errorf("%w: invalid evaluate condition", ErrInvalidCampaign)
	}

	switch campaign.ProductSelectionType {
	case constants.ProductSelectionAll:
		// 全选时不保留指定商品，读取方以空列表判定全选
		campaign.SelectedProducts = models.StringArray{}
	case constants.ProductSelectionSelected:
		if len(campaign.SelectedProducts) == 0 {
			return fmt.Errorf("%w: selected products must not be empty", ErrInvalidCampaign)
		}
	default:
		return fmt.Errorf("%w: invalid product selection type", ErrInvalidCampaign)
	}

	if campaign.EligibilityConditions == nil {
		campaign.EligibilityConditions = models.ConditionList{}
	}
	for i := range campaign.EligibilityConditions {
		if err := validateCondition(&campaign.EligibilityConditions[i]); err != nil {
			return err
		}
	}

	if campaign.CampaignStatus != constants.CampaignStatusInactive &&
		campaign.CampaignStatus != constants.CampaignStatusActive {
		return ErrInvalidStatus
	}
	return nil
}

func validateCondition(cond *models.EligibilityCondition) error {
	switch cond.Type {
	case constants.ConditionTypeOwnToken:
		if cond.Platform != constants.PlatformEthereum && cond.Platform != constants.PlatformSolana {
			return fmt.Errorf("%w: invalid condition platform", ErrInvalidCampaign)
		}
		if cond.ContractAddress == "" {
			return fmt.Errorf("%w: contract address is required", ErrInvalidCampaign)
		}
		if len(cond.TokenIDs) == 0 {
			return fmt.Errorf("%w: token ids must not be empty", ErrInvalidCampaign)
		}
		if cond.Quantity != "" {
			n, err := strconv.Atoi(cond.Quantity)
			if err != nil || n < 1 {
				return fmt.Errorf("%w: invalid condition quantity", ErrInvalidCampaign)
			}
		}
		cond.Operator = ""
		cond.WalletAddresses = nil
	case constants.ConditionTypeAddressList:
		if cond.Operator != constants.AddressOperatorIncludes && cond.Operator != constants.AddressOperatorExcludes {
			return fmt.Errorf("%w: invalid address list operator", ErrInvalidCampaign)
		}
		if len(cond.WalletAddresses) == 0 {
			return fmt.Errorf("%w: wallet addresses must not be empty", ErrInvalidCampaign)
		}
		cond.Platform = ""
		cond.Quantity = ""
		cond.ContractAddress = ""
		cond.TokenIDs = nil
	default:
		return fmt.Errorf("%w: invalid condition type", ErrInvalidCampaign)
	}
	return nil
}
