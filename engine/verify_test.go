package engine

import (
	"testing"

	"github.com/umardraz9/mlmpk-sub007/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentTask() *models.Task {
	return &models.Task{
		ID:                   1,
		Name:                 "Read article",
		MinDurationSeconds:   45,
		RequireScroll:        true,
		MinScrollPercentage:  60,
		RequireMouseMovement: true,
		Target:               100,
		Status:               "Active",
	}
}

func TestVerifyEngagementPasses(t *testing.T) {
	sample := EngagementSample{
		TimeSpentSeconds: 90,
		ScrollPercentage: 80,
		MouseMovements:   25,
	}
	failures := VerifyEngagement(contentTask(), sample)
	assert.Empty(t, failures)
}

func TestVerifyEngagementReportsAllFailures(t *testing.T) {
	sample := EngagementSample{
		TimeSpentSeconds: 10,
		ScrollPercentage: 5,
		MouseMovements:   1,
	}
	failures := VerifyEngagement(contentTask(), sample)
	// duration, scroll, mouse movement and the anti-fraud floor all failed
	// and every one must be reported.
	require.Len(t, failures, 4)
	assert.Contains(t, failures[0], "45 seconds")
	assert.Contains(t, failures[0], "10 seconds")
	assert.Contains(t, failures[1], "60%")
	assert.Contains(t, failures[2], "10 mouse movements")
	assert.Equal(t, SuspiciousActivityMessage, failures[3])
}

func TestVerifyEngagementDurationDefault(t *testing.T) {
	task := contentTask()
	task.MinDurationSeconds = 0
	sample := EngagementSample{TimeSpentSeconds: 44, ScrollPercentage: 90, MouseMovements: 20}
	failures := VerifyEngagement(task, sample)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "45 seconds")
}

func TestVerifyEngagementScrollDefault(t *testing.T) {
	task := contentTask()
	task.MinScrollPercentage = 0
	sample := EngagementSample{TimeSpentSeconds: 90, ScrollPercentage: 49, MouseMovements: 20}
	failures := VerifyEngagement(task, sample)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "50%")
}

func TestVerifyEngagementScrollNotRequired(t *testing.T) {
	task := contentTask()
	task.RequireScroll = false
	sample := EngagementSample{TimeSpentSeconds: 90, ScrollPercentage: 0, MouseMovements: 20}
	assert.Empty(t, VerifyEngagement(task, sample))
}

func TestVerifyEngagementMouseThresholdPerTask(t *testing.T) {
	task := contentTask()
	task.MinMouseMovements = 20
	sample := EngagementSample{TimeSpentSeconds: 90, ScrollPercentage: 80, MouseMovements: 15}
	failures := VerifyEngagement(task, sample)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "20 mouse movements")

	sample.MouseMovements = 20
	assert.Empty(t, VerifyEngagement(task, sample))
}

func TestVerifyEngagementAdClicks(t *testing.T) {
	task := contentTask()
	task.MinAdClicks = 2
	sample := EngagementSample{TimeSpentSeconds: 90, ScrollPercentage: 80, MouseMovements: 20, AdClicks: 1}
	failures := VerifyEngagement(task, sample)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "2 ad clicks")
}

// The task-specific duration minimum and the anti-fraud floor are independent
// gates: a sample can clear the floor yet fail the task threshold.
func TestVerifyEngagementTaskThresholdIndependentOfFraudFloor(t *testing.T) {
	sample := EngagementSample{
		TimeSpentSeconds: 40,
		ScrollPercentage: 90,
		MouseMovements:   20,
	}
	failures := VerifyEngagement(contentTask(), sample)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "45 seconds")
	assert.NotContains(t, failures, SuspiciousActivityMessage)
}

// And the reverse: meeting every per-task threshold does not excuse a sample
// from the floor.
func TestVerifyEngagementFraudFloorIndependentOfTaskThresholds(t *testing.T) {
	task := &models.Task{ID: 2, Name: "Quick task", MinDurationSeconds: 5, Target: 100, Status: "Active"}
	sample := EngagementSample{TimeSpentSeconds: 10, MouseMovements: 2}
	failures := VerifyEngagement(task, sample)
	require.Len(t, failures, 1)
	assert.Equal(t, SuspiciousActivityMessage, failures[0])
}

func TestVerifyEngagementFraudFloorBoundary(t *testing.T) {
	task := &models.Task{ID: 3, Name: "Simple", MinDurationSeconds: 30, Target: 100, Status: "Active"}
	assert.Empty(t, VerifyEngagement(task, EngagementSample{TimeSpentSeconds: 30, MouseMovements: 5}))
	assert.NotEmpty(t, VerifyEngagement(task, EngagementSample{TimeSpentSeconds: 30, MouseMovements: 4}))
	assert.NotEmpty(t, VerifyEngagement(task, EngagementSample{TimeSpentSeconds: 29, MouseMovements: 5}))
}
