package services

import (
	"sort"
	"time"

	"keeply/backend/models"
)

const (
	// streakMaxAge is how recent the latest completion must be for a streak
	// to still be alive.
	streakMaxAge = 24 * time.Hour

	// streakStepMin/streakStepMax bound the gap between two completions that
	// counts as one day of the chain. Completion times drift, so a day step
	// is 24h with an hour of slack either side. Gaps under the minimum are
	// same-day repeats and are skipped, not counted.
	streakStepMin = 23 * time.Hour
	streakStepMax = 25 * time.Hour
)

// CalculateStreak returns the number of consecutive days, ending at now, on
// which at least one task was completed. A task's completion instant is its
// updatedAt, which the toggle handler refreshes together with the completed
// flag. Returns 0 when nothing was completed in the last 24 hours.
//
// This is the rolling-window variant of the calculation: a chain link is a
// gap of roughly one day between completion instants, not calendar-day
// bucketing, so a 11pm completion followed by a 10pm one the next day still
// counts.
func CalculateStreak(tasks []models.Task, now time.Time) int {
	var completions []time.Time
	for _, t := range tasks {
		if t.Completed && !t.UpdatedAt.IsZero() {
			completions = append(completions, t.UpdatedAt)
		}
	}
	if len(completions) == 0 {
		return 0
	}

	sort.Slice(completions, func(i, j int) bool {
		return completions[i].After(completions[j])
	})

	if now.Sub(completions[0]) > streakMaxAge {
		return 0
	}

	streak := 1
	cursor := completions[0]
	for _, c := range completions[1:] {
		gap := cursor.Sub(c)
		switch {
		case gap < streakStepMin:
			// another completion on the same day
			continue
		case gap <= streakStepMax:
			streak++
			cursor = c
		default:
			return streak
		}
	}
	return streak
}
