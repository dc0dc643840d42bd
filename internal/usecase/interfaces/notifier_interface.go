package interfaces

import (
	"context"
	"repair_workflow/internal/domain/entities"
)

// INotifier is the fire-and-forget notification sink. Errors are reported to the
// caller only so they can be logged; they never fail the triggering operation.
type INotifier interface {
	Notify(ctx context.Context, event entities.NotificationEvent) error
}
