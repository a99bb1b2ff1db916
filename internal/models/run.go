package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents valid run states
type RunStatus string

// Run statuses
const (
	RunStatusRunning            RunStatus = "running"
	RunStatusPassed             RunStatus = "passed"
	RunStatusVerificationFailed RunStatus = "verification_failed"
	RunStatusFailed             RunStatus = "failed"
)

// Check is the outcome of one verification check
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Run records one execution of the shopping workflow
type Run struct {
	ID             string
	Target         string
	Username       string
	Status         RunStatus
	FailedStep     int
	FailureKind    string
	FailureMessage string
	ItemName       string
	Checks         []Check
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Domain errors
var (
	ErrInvalidTarget           = errors.New("run target cannot be empty")
	ErrInvalidUsername         = errors.New("run username cannot be empty")
	ErrInvalidStatusTransition = errors.New("invalid run status transition")
	ErrInvalidStep             = errors.New("failed step must be positive")
)

// NewRun creates a running record for target and username
func NewRun(target, username string) (*Run, error) {
	if target == "" {
		return nil, ErrInvalidTarget
	}
	if username == "" {
		return nil, ErrInvalidUsername
	}

	return &Run{
		ID:        uuid.New().String(),
		Target:    target,
		Username:  username,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}, nil
}

// Complete finishes a run whose workflow steps all succeeded. The status is
// passed only when every check passed.
func (r *Run) Complete(itemName string, checks []Check) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot complete run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	r.ItemName = itemName
	r.Checks = append([]Check(nil), checks...)
	r.Status = RunStatusPassed
	for _, check := range checks {
		if !check.Passed {
			r.Status = RunStatusVerificationFailed
			break
		}
	}
	r.FinishedAt = time.Now()
	return nil
}

// Fail finishes a run that stopped at step with an error of the given kind
func (r *Run) Fail(step int, kind, message string) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot fail run with status %s", ErrInvalidStatusTransition, r.Status)
	}
	if step <= 0 {
		return ErrInvalidStep
	}

	r.Status = RunStatusFailed
	r.FailedStep = step
	r.FailureKind = kind
	r.FailureMessage = message
	r.FinishedAt = time.Now()
	return nil
}

// IsFinished returns true once the run left the running state
func (r *Run) IsFinished() bool {
	return r.Status != RunStatusRunning
}

// Succeeded returns true if the workflow and every check passed
func (r *Run) Succeeded() bool {
	return r.Status == RunStatusPassed
}

// PassedChecks returns how many checks passed
func (r *Run) PassedChecks() int {
	passed := 0
	for _, check := range r.Checks {
		if check.Passed {
			passed++
		}
	}
	return passed
}

// Duration returns how long the run took, or zero while it is running
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
