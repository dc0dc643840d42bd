package entities

import "time"

// NotificationType names events pushed to the notification sink.
type NotificationType string

const (
	NotificationAwaitingApproval NotificationType = "order.awaiting_approval"
	NotificationReadyForPickup   NotificationType = "order.ready_for_pickup"
	NotificationEstimateSent     NotificationType = "estimate.sent"
	NotificationPartLowStock     NotificationType = "part.low_stock"
)

// NotificationEvent is the fire-and-forget message handed to the notification sink.
type NotificationEvent struct {
	Type     NotificationType  `json:"type"`
	OrderID  string            `json:"order_id,omitempty"`
	Payload  map[string]string `json:"payload,omitempty"`
	RaisedAt time.Time         `json:"raised_at"`
}
