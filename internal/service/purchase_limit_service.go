package service

import (
	"fmt"
	"time"

	"github.com/tokenlock/tokenlock-api/internal/constants"
	"github.com/tokenlock/tokenlock-api/internal/logger"
	"github.com/tokenlock/tokenlock-api/internal/models"
	"github.com/tokenlock/tokenlock-api/internal/repository"
)

// PurchaseLimitService 商品限购服务
type PurchaseLimitService struct {
	limits repository.PurchaseLimitRepository
}

// NewPurchaseLimitService 创建限购服务
func NewPurchaseLimitService(limits repository.PurchaseLimitRepository) *PurchaseLimitService {
	return &PurchaseLimitService{limits: limits}
}

// PurchaseLimitUpdate 部分更新输入。
// 可空字段区分三种状态：未提供（保持原值）、显式 null（清空）、新值。
// Set 标记由 handler 依据请求体中字段是否出现填写。
type PurchaseLimitUpdate struct {
	ProductName      *string
	PurchaseLimit    *int
	PurchaseLimitSet bool
	TokensOwned      *models.TokenOwnedRef
	TokensOwnedSet   bool
}

// List 返回全部限购记录
func (s *PurchaseLimitService) List() ([]models.PurchaseLimit, error) {
	return s.limits.List()
}

// Get 根据 ID 获取限购记录
func (s *PurchaseLimitService) Get(id uint) (*models.PurchaseLimit, error) {
	limit, err := s.limits.GetByID(id)
	if err != nil {
		return nil, err
	}
	if limit == nil {
		return nil, ErrNotFound
	}
	return limit, nil
}

// Create 创建限购记录，同一商品只允许一条
func (s *PurchaseLimitService) Create(limit *models.PurchaseLimit) (*models.PurchaseLimit, error) {
	if limit.ProductID == "" || limit.ProductName == "" {
		return nil, fmt.Errorf("%w: product id and name are required", ErrInvalidInput)
	}
	if limit.PurchaseLimit != nil && *limit.PurchaseLimit < 1 {
		return nil, fmt.Errorf("%w: purchase limit must be at least 1", ErrInvalidInput)
	}
	if err := validateTokensOwned(limit.TokensOwned); err != nil {
		return nil, err
	}

	existing, err := s.limits.GetByProductID(limit.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProductExists
	}

	limit.ID = 0
	now := time.Now()
	limit.CreatedAt = now
	limit.UpdatedAt = now
	if err := s.limits.Create(limit); err != nil {
		return nil, err
	}

	logger.Infow("purchase_limit_created", "id", limit.ID, "product_id", limit.ProductID)
	return limit, nil
}

// Update 部分更新限购记录，商品标识不可变更
func (s *PurchaseLimitService) Update(id uint, input PurchaseLimitUpdate) (*models.PurchaseLimit, error) {
	limit, err := s.limits.GetByID(id)
	if err != nil {
		return nil, err
	}
	if limit == nil {
		return nil, ErrNotFound
	}

	if input.ProductName != nil {
		if *input.ProductName == "" {
			return nil, fmt.Errorf("%w: product name must not be empty", ErrInvalidInput)
		}
		limit.ProductName = *input.ProductName
	}
	if input.PurchaseLimitSet {
		if input.PurchaseLimit != nil && *input.PurchaseLimit < 1 {
			return nil, fmt.Errorf("%w: purchase limit must be at least 1", ErrInvalidInput)
		}
		limit.PurchaseLimit = input.PurchaseLimit
	}
	if input.TokensOwnedSet {
		if err := validateTokensOwned(input.TokensOwned); err != nil {
			return nil, err
		}
		limit.TokensOwned = input.TokensOwned
	}

	limit.UpdatedAt = time.Now()
	if err := s.limits.Update(limit); err != nil {
		return nil, err
	}

	logger.Infow("purchase_limit_updated", "id", limit.ID, "product_id", limit.ProductID)
	return limit, nil
}

// Delete 删除限购记录
func (s *PurchaseLimitService) Delete(id uint) error {
	existing, err := s.limits.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.limits.Delete(id); err != nil {
		return err
	}
	logger.Infow("purchase_limit_deleted", "id", id)
	return nil
}

// validateTokensOwned 补齐链平台缺省值。合约地址可以为空：
// 旧版客户端只发送模式标记，不携带合约信息。
func validateTokensOwned(ref *models.TokenOwnedRef) error {
	if ref == nil {
		return nil
	}
	if ref.Blockchain == "" {
		ref.Blockchain = constants.PlatformEthereum
	}
	return nil
}
