// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order processing.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second to deliver outbox events to the message broker
// 2. StaleOrderJob - Runs every minute to cancel orders that stayed Pending past their TTL
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(outboxStore, dispatcher, orderRepo, cancelHandler, ttl, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The relay job records delivery failures in the outbox and retries on the next run
// - The stale order job processes each order independently so one conflict does not block the batch
// - Failed job starts will stop any already running jobs
package jobs
