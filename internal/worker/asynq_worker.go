package worker

import (
	"context"
	"encoding/json"

	"github.com/royale-store/royale-api/internal/logger"
	"github.com/royale-store/royale-api/internal/provider"
	"github.com/royale-store/royale-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles the queued notification tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderNotify, c.handleOrderNotify)
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
}

func (c *Consumer) handleOrderNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if err := c.NotificationService.NotifyNewOrder(ctx, payload.OrderID); err != nil {
		logger.Warnw("worker_order_notify_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderStatusNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 || payload.Status == "" {
		logger.Debugw("worker_order_status_notify_skip_invalid_payload", "order_id", payload.OrderID, "status", payload.Status)
		return nil
	}
	if err := c.NotificationService.NotifyOrderStatus(ctx, payload.OrderID, payload.Status); err != nil {
		logger.Warnw("worker_order_status_notify_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}
