package engine

import (
	"fmt"

	"github.com/umardraz9/mlmpk-sub007/models"
)

// Engagement verification defaults and floors.
const (
	// DefaultMinDurationSeconds applies when a task does not set its own
	// minimum duration.
	DefaultMinDurationSeconds = 45
	// DefaultMinScrollPercentage applies to scroll-gated tasks without an
	// explicit threshold.
	DefaultMinScrollPercentage = 50
	// DefaultMinMouseMovements applies to movement-gated tasks without an
	// explicit threshold.
	DefaultMinMouseMovements = 10

	// The hard anti-fraud floor is checked unconditionally, independent of
	// the per-task thresholds.
	FraudFloorSeconds   = 30
	FraudFloorMovements = 5
)

// SuspiciousActivityMessage is returned when telemetry fails the hard
// anti-fraud floor.
const SuspiciousActivityMessage = "suspicious activity detected, engagement too low to qualify"

// EngagementSample is client-reported interaction telemetry for one completion
// attempt. It is untrusted evidence; only its values are checked against the
// task thresholds.
type EngagementSample struct {
	TimeSpentSeconds int `json:"timeSpentSeconds"`
	ScrollPercentage int `json:"scrollPercentage"`
	MouseMovements   int `json:"mouseMovements"`
	AdClicks         int `json:"adClicks"`
}

// VerifyEngagement evaluates every requirement of the task against the sample
// and returns one message per failed check. All checks run; nothing
// short-circuits, so the caller always receives the full deficiency list. An
// empty slice means the sample passes.
func VerifyEngagement(task *models.Task, sample EngagementSample) []string {
	var failures []string

	minDuration := task.MinDurationSeconds
	if minDuration <= 0 {
		minDuration = DefaultMinDurationSeconds
	}
	if sample.TimeSpentSeconds < minDuration {
		failures = append(failures, fmt.Sprintf(
			"minimum time on page is %d seconds, recorded %d seconds",
			minDuration, sample.TimeSpentSeconds))
	}

	if task.RequireScroll {
		minScroll := task.MinScrollPercentage
		if minScroll <= 0 {
			minScroll = DefaultMinScrollPercentage
		}
		if sample.ScrollPercentage < minScroll {
			failures = append(failures, fmt.Sprintf(
				"scroll depth must reach %d%%, recorded %d%%",
				minScroll, sample.ScrollPercentage))
		}
	}

	if task.RequireMouseMovement {
		minMoves := task.MinMouseMovements
		if minMoves <= 0 {
			minMoves = DefaultMinMouseMovements
		}
		if sample.MouseMovements < minMoves {
			failures = append(failures, fmt.Sprintf(
				"at least %d mouse movements required, recorded %d",
				minMoves, sample.MouseMovements))
		}
	}

	if task.MinAdClicks > 0 && sample.AdClicks < task.MinAdClicks {
		failures = append(failures, fmt.Sprintf(
			"at least %d ad clicks required, recorded %d",
			task.MinAdClicks, sample.AdClicks))
	}

	// Stricter second gate: even a sample that meets every per-task
	// threshold is rejected when overall engagement is implausibly low.
	if sample.TimeSpentSeconds < FraudFloorSeconds || sample.MouseMovements < FraudFloorMovements {
		failures = append(failures, SuspiciousActivityMessage)
	}

	return failures
}
