package services

import (
	"log/slog"
	"time"
)

// StartScheduler starts the background jobs.
func StartScheduler() {
	slog.Info("Starting scheduler")

	go runNightlySnapshots()
}

// runNightlySnapshots recomputes every user's current-month ledger summary
// once a day at midnight.
func runNightlySnapshots() {
	for {
		now := time.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
		untilMidnight := midnight.Sub(now)

		slog.Info("Next summary snapshot scheduled", "in", untilMidnight)
		time.Sleep(untilMidnight)

		slog.Info("Running nightly summary snapshots")
		if err := SnapshotMonthlySummaries(time.Now()); err != nil {
			slog.Error("Nightly summary snapshot failed", "error", err)
		}

		// guard against re-running within the same tick
		time.Sleep(time.Second)
	}
}
