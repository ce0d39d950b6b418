package ports

import (
	"context"

	"deliveryno/internal/core/domain/model/kernel"
)

// OutboxRepository stores domain events until they have been relayed.
type OutboxRepository interface {
	Add(ctx context.Context, events ...kernel.DomainEvent) error

	// GetUnprocessed returns up to limit pending events, oldest first.
	GetUnprocessed(ctx context.Context, limit int) ([]kernel.DomainEvent, error)

	MarkProcessed(ctx context.Context, id kernel.UUID) error
}
