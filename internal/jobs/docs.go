// Package jobs provides scheduled background tasks for the delivery backend.
//
// Jobs are built on github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// OutboxRelayJob runs every second and hands stored domain events (order
// created, driver assigned, status changed, delivery settled or skipped) to
// the configured notifier.
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(relayHandler, commands.DefaultRelayBatchSize, logger)
//	jobManager := jobs.NewJobManager(logger, relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed batch is logged and retried on the next tick; events stay in the
// outbox until they are delivered.
package jobs
