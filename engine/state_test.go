package engine

import (
	"testing"

	"github.com/umardraz9/mlmpk-sub007/models"

	"github.com/stretchr/testify/assert"
)

func TestGuardTransition(t *testing.T) {
	tests := []struct {
		name    string
		rec     *models.UserTask
		wantErr error
	}{
		{"never started", nil, ErrTaskNotStarted},
		{"in progress", &models.UserTask{Status: models.UserTaskInProgress}, nil},
		{"already completed", &models.UserTask{Status: models.UserTaskCompleted}, ErrTaskAlreadyCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GuardTransition(tt.rec)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// A record that cannot accept an attempt answers with its state; the sample
// is never weighed against the thresholds first.
func TestEvaluateAttemptStateAnswersBeforeVerification(t *testing.T) {
	task := contentTask()
	deficient := &EngagementSample{TimeSpentSeconds: 1}

	err := EvaluateAttempt(task, &models.UserTask{Status: models.UserTaskCompleted}, deficient)
	assert.ErrorIs(t, err, ErrTaskAlreadyCompleted)

	err = EvaluateAttempt(task, nil, deficient)
	assert.ErrorIs(t, err, ErrTaskNotStarted)
}

func TestEvaluateAttemptVerifiesAdmittedRecord(t *testing.T) {
	task := contentTask()
	rec := &models.UserTask{Status: models.UserTaskInProgress}

	var vErr *ValidationError
	err := EvaluateAttempt(task, rec, &EngagementSample{TimeSpentSeconds: 1})
	assert.ErrorAs(t, err, &vErr)

	assert.NoError(t, EvaluateAttempt(task, rec, &EngagementSample{
		TimeSpentSeconds: 90, ScrollPercentage: 80, MouseMovements: 25,
	}))
	assert.NoError(t, EvaluateAttempt(task, rec, nil))
}

func TestClampProgress(t *testing.T) {
	tests := []struct {
		name          string
		submitted     int
		target        int
		wantProgress  int
		wantCompleted bool
	}{
		{"exact target", 100, 100, 100, true},
		{"over target clamps", 250, 100, 100, true},
		{"under target", 40, 100, 40, false},
		{"negative clamps to zero", -5, 100, 0, false},
		{"zero target completes immediately", 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress, completed := ClampProgress(tt.submitted, tt.target)
			assert.Equal(t, tt.wantProgress, progress)
			assert.Equal(t, tt.wantCompleted, completed)
		})
	}
}

func TestAuditNotesEmbedsTelemetry(t *testing.T) {
	sample := &EngagementSample{TimeSpentSeconds: 60, ScrollPercentage: 80, MouseMovements: 12, AdClicks: 1}
	notes := auditNotes("finished reading", sample)
	assert.NotNil(t, notes)
	assert.Contains(t, *notes, "finished reading")
	assert.Contains(t, *notes, `"timeSpentSeconds":60`)
}

func TestAuditNotesEmptyStaysNil(t *testing.T) {
	assert.Nil(t, auditNotes("", nil))
}
