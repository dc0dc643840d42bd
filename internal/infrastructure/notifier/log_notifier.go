package notifier

import (
	"context"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// LogNotifier writes notification events to the log. Used in development.
type LogNotifier struct {
	log *zap.Logger
}

var _ interfaces.INotifier = (*LogNotifier)(nil)

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log.Named("notifications")}
}

func (n *LogNotifier) Notify(_ context.Context, event entities.NotificationEvent) error {
	n.log.Info("notification",
		zap.String("type", string(event.Type)),
		zap.String("order", event.OrderID),
		zap.Any("payload", event.Payload),
		zap.Time("raised_at", event.RaisedAt),
	)
	return nil
}
