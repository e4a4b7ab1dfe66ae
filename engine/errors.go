package engine

import (
	"errors"
	"strings"
)

// Deterministic rejection reasons. None of these ever touch the ledger.
var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskNotStarted       = errors.New("task not started")
	ErrTaskAlreadyStarted   = errors.New("task already started")
	ErrTaskAlreadyCompleted = errors.New("task already completed")
	ErrTaskLocked           = errors.New("task locked")
)

// ValidationError carries the complete list of unmet engagement requirements
// so a client gets all deficiencies in one round trip.
type ValidationError struct {
	Failures []string
}

func (e *ValidationError) Error() string {
	return "engagement verification failed: " + strings.Join(e.Failures, "; ")
}
