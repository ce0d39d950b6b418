package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"deliveryno/internal/core/application/usecases/commands"
	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRelayOutboxCommand_InvalidBatch(t *testing.T) {
	_, err := commands.NewRelayOutboxCommand(0)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestRelayOutboxCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	delivered := kernel.NewDomainEvent(kernel.NewUUID(), "OrderStatusChanged", map[string]string{"to": "delivered"})
	failing := kernel.NewDomainEvent(kernel.NewUUID(), "DeliverySettled", nil)
	created := kernel.NewDomainEvent(kernel.NewUUID(), "OrderCreated", nil)

	outbox := new(MockOutboxRepository)
	notifier := new(MockNotifier)
	uow := &MockUoW{outbox: outbox}

	uow.On("Begin", mock.Anything).Return(nil).Once()
	outbox.On("GetUnprocessed", mock.Anything, 10).
		Return([]kernel.DomainEvent{delivered, failing, created}, nil).Once()
	notifier.On("Notify", mock.Anything, delivered).Return(nil).Once()
	notifier.On("Notify", mock.Anything, failing).Return(errors.New("telegram is down")).Once()
	notifier.On("Notify", mock.Anything, created).Return(nil).Once()
	outbox.On("MarkProcessed", mock.Anything, delivered.ID).Return(nil).Once()
	outbox.On("MarkProcessed", mock.Anything, created.ID).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	sent, err := commands.NewRelayOutboxCommandHandler(factory, notifier, slog.New(slog.DiscardHandler)).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	outbox.AssertNotCalled(t, "MarkProcessed", mock.Anything, failing.ID)
	outbox.AssertExpectations(t)
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
}

// stallingNotifier blocks until the context passed to Notify is done.
type stallingNotifier struct{ calls int }

func (n *stallingNotifier) Notify(ctx context.Context, _ kernel.DomainEvent) error {
	n.calls++
	<-ctx.Done()
	return ctx.Err()
}

func TestRelayOutboxCommandHandler_Handle_BoundsEachNotification(t *testing.T) {
	ctx := t.Context()
	first := kernel.NewDomainEvent(kernel.NewUUID(), "OrderCreated", nil)
	second := kernel.NewDomainEvent(kernel.NewUUID(), "DriverAssigned", nil)

	outbox := new(MockOutboxRepository)
	uow := &MockUoW{outbox: outbox}
	uow.On("Begin", mock.Anything).Return(nil).Once()
	outbox.On("GetUnprocessed", mock.Anything, 5).Return([]kernel.DomainEvent{first, second}, nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRelayOutboxCommand(5)
	require.NoError(t, err)
	notifier := &stallingNotifier{}
	h := commands.NewRelayOutboxCommandHandler(factory, notifier, slog.New(slog.DiscardHandler)).
		WithNotifyTimeout(20 * time.Millisecond)

	start := time.Now()
	sent, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Equal(t, 2, notifier.calls)
	assert.Less(t, time.Since(start), 2*time.Second)
	outbox.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_Handle_NotifyHasDeadline(t *testing.T) {
	ctx := t.Context()
	event := kernel.NewDomainEvent(kernel.NewUUID(), "OrderCreated", nil)

	outbox := new(MockOutboxRepository)
	notifier := new(MockNotifier)
	uow := &MockUoW{outbox: outbox}
	uow.On("Begin", mock.Anything).Return(nil).Once()
	outbox.On("GetUnprocessed", mock.Anything, 1).Return([]kernel.DomainEvent{event}, nil).Once()
	notifier.On("Notify", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= commands.DefaultNotifyTimeout
	}), event).Return(nil).Once()
	outbox.On("MarkProcessed", mock.Anything, event.ID).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRelayOutboxCommand(1)
	require.NoError(t, err)

	sent, err := commands.NewRelayOutboxCommandHandler(factory, notifier, slog.New(slog.DiscardHandler)).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	notifier.AssertExpectations(t)
}
