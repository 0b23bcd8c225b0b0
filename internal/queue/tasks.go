package queue

import (
	"encoding/json"

	"github.com/tokenlock/tokenlock-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCampaignAutoActivate 活动到点自动激活任务
	TaskCampaignAutoActivate = constants.TaskCampaignAutoActivate
	// TaskCampaignAutoDeactivate 活动到期自动下线任务
	TaskCampaignAutoDeactivate = constants.TaskCampaignAutoDeactivate
)

// CampaignAutoActivatePayload 自动激活任务载荷
type CampaignAutoActivatePayload struct {
	CampaignID uint `json:"campaign_id"`
}

// CampaignAutoDeactivatePayload 自动下线任务载荷
type CampaignAutoDeactivatePayload struct {
	CampaignID uint `json:"campaign_id"`
}

// NewCampaignAutoActivateTask 创建自动激活任务
func NewCampaignAutoActivateTask(payload CampaignAutoActivatePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCampaignAutoActivate, body), nil
}

// NewCampaignAutoDeactivateTask 创建自动下线任务
func NewCampaignAutoDeactivateTask(payload CampaignAutoDeactivatePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCampaignAutoDeactivate, body), nil
}
