package admin

import (
	"bytes"
	"encoding/json"

	"github.com/tokenlock/tokenlock-api/internal/constants"
	"github.com/tokenlock/tokenlock-api/internal/http/handlers/shared"
	"github.com/tokenlock/tokenlock-api/internal/http/response"
	"github.com/tokenlock/tokenlock-api/internal/models"
	"github.com/tokenlock/tokenlock-api/internal/service"

	"github.com/gin-gonic/gin"
)

// PurchaseLimitUpdateRequest 限购部分更新请求。
// purchase_limit 与 tokens_owned 用 RawMessage 接收，
// 以区分字段缺失（保持原值）与显式 null（清空）。
type PurchaseLimitUpdateRequest struct {
	ProductName   *string         `json:"product_name"`
	PurchaseLimit json.RawMessage `json:"purchase_limit"`
	TokensOwned   json.RawMessage `json:"tokens_owned"`
}

// ListPurchaseLimits 限购列表
func (h *Handler) ListPurchaseLimits(c *gin.Context) {
	limits, err := h.PurchaseLimitService.List()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, limits)
}

// GetPurchaseLimit 限购详情
func (h *Handler) GetPurchaseLimit(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	limit, err := h.PurchaseLimitService.Get(id)
	if err != nil {
		respondPurchaseLimitError(c, err)
		return
	}
	response.Success(c, limit)
}

// CreatePurchaseLimit 创建限购
func (h *Handler) CreatePurchaseLimit(c *gin.Context) {
	var limit models.PurchaseLimit
	if err := c.ShouldBindJSON(&limit); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	created, err := h.PurchaseLimitService.Create(&limit)
	if err != nil {
		respondPurchaseLimitError(c, err)
		return
	}
	response.Created(c, created)
}

// UpdatePurchaseLimit 部分更新限购
func (h *Handler) UpdatePurchaseLimit(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req PurchaseLimitUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := service.PurchaseLimitUpdate{ProductName: req.ProductName}
	if req.PurchaseLimit != nil {
		input.PurchaseLimitSet = true
		if !isJSONNull(req.PurchaseLimit) {
			var v int
			if err := json.Unmarshal(req.PurchaseLimit, &v); err != nil {
				response.BadRequest(c, "Invalid purchase limit value")
				return
			}
			input.PurchaseLimit = &v
		}
	}
	if req.TokensOwned != nil {
		ref, ok := decodeTokensOwned(req.TokensOwned)
		if !ok {
			response.BadRequest(c, "Invalid tokens owned value")
			return
		}
		input.TokensOwnedSet = true
		input.TokensOwned = ref
	}

	updated, err := h.PurchaseLimitService.Update(id, input)
	if err != nil {
		respondPurchaseLimitError(c, err)
		return
	}
	response.Success(c, updated)
}

// DeletePurchaseLimit 删除限购
func (h *Handler) DeletePurchaseLimit(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.PurchaseLimitService.Delete(id); err != nil {
		respondPurchaseLimitError(c, err)
		return
	}
	response.SuccessWithMsg(c, "Purchase limit deleted successfully", nil)
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeTokensOwned 解析 tokens_owned 的多种线上形态：
// 对象 {blockchain, contractAddress} 设置标记，字符串 "token-owned"
// 为旧版客户端的纯标记形式，false/null 清除标记。
func decodeTokensOwned(raw json.RawMessage) (*models.TokenOwnedRef, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false
	}
	if isJSONNull(trimmed) {
		return nil, true
	}
	switch trimmed[0] {
	case '{':
		var ref models.TokenOwnedRef
		if err := json.Unmarshal(trimmed, &ref); err != nil {
			return nil, false
		}
		return &ref, true
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil || s != "token-owned" {
			return nil, false
		}
		return &models.TokenOwnedRef{Blockchain: constants.PlatformEthereum}, true
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return nil, false
		}
		if !b {
			return nil, true
		}
		return &models.TokenOwnedRef{Blockchain: constants.PlatformEthereum}, true
	default:
		return nil, false
	}
}
