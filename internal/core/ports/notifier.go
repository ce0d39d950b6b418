package ports

import (
	"context"

	"deliveryno/internal/core/domain/model/kernel"
)

// Notifier delivers a relayed domain event to the admins.
type Notifier interface {
	Notify(ctx context.Context, event kernel.DomainEvent) error
}
