package worker

import (
	"context"
	"encoding/json"

	"github.com/tokenlock/tokenlock-api/internal/logger"
	"github.com/tokenlock/tokenlock-api/internal/provider"
	"github.com/tokenlock/tokenlock-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCampaignAutoActivate, c.handleCampaignAutoActivate)
	mux.HandleFunc(queue.TaskCampaignAutoDeactivate, c.handleCampaignAutoDeactivate)
}

// 任务入队后活动可能被改过或删掉，状态判断放在 service 层完成。

func (c *Consumer) handleCampaignAutoActivate(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.CampaignAutoActivatePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_campaign_auto_activate_unmarshal_failed", "error", err)
		return err
	}
	if payload.CampaignID == 0 {
		logger.Debugw("worker_campaign_auto_activate_skip_invalid_payload", "campaign_id", payload.CampaignID)
		return nil
	}
	if err := c.CampaignService.AutoActivate(payload.CampaignID); err != nil {
		logger.Warnw("worker_campaign_auto_activate_failed", "campaign_id", payload.CampaignID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleCampaignAutoDeactivate(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.CampaignAutoDeactivatePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_campaign_auto_deactivate_unmarshal_failed", "error", err)
		return err
	}
	if payload.CampaignID == 0 {
		logger.Debugw("worker_campaign_auto_deactivate_skip_invalid_payload", "campaign_id", payload.CampaignID)
		return nil
	}
	if err := c.CampaignService.AutoDeactivate(payload.CampaignID); err != nil {
		logger.Warnw("worker_campaign_auto_deactivate_failed", "campaign_id", payload.CampaignID, "error", err)
		return err
	}
	return nil
}
