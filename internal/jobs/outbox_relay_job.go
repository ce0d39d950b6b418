package jobs

import (
	"context"
	"log/slog"

	"deliveryno/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const everySecond = "* * * * * *"

// OutboxRelayer is satisfied by commands.RelayOutboxCommandHandler.
type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob forwards stored domain events to the notifier every second.
// A tick is skipped while the previous batch is still being sent.
type OutboxRelayJob struct {
	relayer   OutboxRelayer
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxRelayJob(relayer OutboxRelayer, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	if batchSize <= 0 {
		batchSize = commands.DefaultRelayBatchSize
	}
	return &OutboxRelayJob{
		relayer:   relayer,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	_, err = j.cron.AddFunc(everySecond, func() {
		ctx := context.Background()

		sent, err := j.relayer.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
			return
		}
		if sent > 0 {
			j.logger.DebugContext(ctx, "Outbox relayed", "sent", sent)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop waits for a running batch to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
