package commands

import (
	"context"
	"log/slog"
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/ports"
)

// DefaultNotifyTimeout bounds a single notification. The batch rows stay
// locked while it runs.
const DefaultNotifyTimeout = 5 * time.Second

// RelayOutboxCommandHandler delivers stored domain events at least once. An
// event that fails to send stays in the outbox and is retried on the next run;
// the rest of the batch is still attempted.
type RelayOutboxCommandHandler struct {
	uowFactory    OutboxUoWFactory
	notifier      ports.Notifier
	notifyTimeout time.Duration
	logger        *slog.Logger
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory, notifier ports.Notifier, logger *slog.Logger,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory:    uowFactory,
		notifier:      notifier,
		notifyTimeout: DefaultNotifyTimeout,
		logger:        logger.With("component", "RelayOutboxCommandHandler"),
	}
}

// WithNotifyTimeout returns a copy that gives each notification at most d.
// Non-positive values keep the current timeout.
func (h RelayOutboxCommandHandler) WithNotifyTimeout(d time.Duration) RelayOutboxCommandHandler {
	if d > 0 {
		h.notifyTimeout = d
	}
	return h
}

// Handle returns the number of events delivered.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	events, err := uow.OutboxRepository().GetUnprocessed(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, event := range events {
		if ctx.Err() != nil {
			break
		}
		if err = h.notify(ctx, event); err != nil {
			h.logger.WarnContext(ctx, "failed to relay event",
				"event_id", event.ID.String(),
				"type", event.Type,
				"error", err)
			continue
		}
		if err = uow.OutboxRepository().MarkProcessed(ctx, event.ID); err != nil {
			return 0, err
		}
		sent++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return sent, nil
}

func (h RelayOutboxCommandHandler) notify(ctx context.Context, event kernel.DomainEvent) error {
	ctx, cancel := context.WithTimeout(ctx, h.notifyTimeout)
	defer cancel()
	return h.notifier.Notify(ctx, event)
}
