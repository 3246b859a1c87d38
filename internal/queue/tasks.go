package queue

import (
	"encoding/json"

	"github.com/royale-store/royale-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderNotify delivers the new-order notification.
	TaskOrderNotify = constants.TaskOrderNotify
	// TaskOrderStatusNotify delivers an order status change notification.
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
)

// OrderNotifyPayload is the new-order notification payload.
type OrderNotifyPayload struct {
	OrderID uint `json:"order_id"`
}

// OrderStatusNotifyPayload is the status-change notification payload.
type OrderStatusNotifyPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewOrderNotifyTask builds a new-order notification task.
func NewOrderNotifyTask(payload OrderNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderNotify, body), nil
}

// NewOrderStatusNotifyTask builds a status-change notification task.
func NewOrderStatusNotifyTask(payload OrderStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotify, body), nil
}
