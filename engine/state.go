package engine

import "github.com/umardraz9/mlmpk-sub007/models"

// GuardTransition validates that a completion record may accept a completion
// attempt. A nil record means the task was never started; starting a task is
// a separate operation and is never done implicitly here. A Completed record
// is the idempotency boundary: it never re-enters progress or accepts further
// mutation.
func GuardTransition(rec *models.UserTask) error {
	if rec == nil {
		return ErrTaskNotStarted
	}
	if rec.Status == models.UserTaskCompleted {
		return ErrTaskAlreadyCompleted
	}
	return nil
}

// EvaluateAttempt orders the checks on a completion attempt: the record's
// state answers first, telemetry verification second. A finished or
// never-started task reports its state even when the sample is deficient.
func EvaluateAttempt(task *models.Task, rec *models.UserTask, sample *EngagementSample) error {
	if err := GuardTransition(rec); err != nil {
		return err
	}
	if sample != nil {
		if failures := VerifyEngagement(task, *sample); len(failures) > 0 {
			return &ValidationError{Failures: failures}
		}
	}
	return nil
}

// ClampProgress bounds submitted progress to the task target and reports
// whether the clamped value reaches it. The same inputs always produce the
// same transition.
func ClampProgress(submitted, target int) (progress int, reachesTarget bool) {
	if submitted < 0 {
		submitted = 0
	}
	if submitted > target {
		submitted = target
	}
	return submitted, submitted >= target
}
