package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/themizzi/saucerun/internal/browser"
	"github.com/themizzi/saucerun/internal/config"
	"github.com/themizzi/saucerun/internal/models"
	"github.com/themizzi/saucerun/internal/workflow"
)

// Run outcomes reported to the caller. Both have already been printed by the console.
var (
	ErrWorkflowFailed     = errors.New("automation failed")
	ErrVerificationFailed = errors.New("verification checks failed")
)

// storeTimeout bounds saving a run after the workflow finished
const storeTimeout = 5 * time.Second

// RunStore records finished runs
type RunStore interface {
	CreateRun(ctx context.Context, run *models.Run) error
}

// RunDependencies holds everything one workflow run needs
type RunDependencies struct {
	Config   config.WorkflowConfig
	Launcher browser.Launcher
	// Store is optional; nil disables run history
	Store  RunStore
	Out    io.Writer
	ErrOut io.Writer
}

// RunWorkflow drives the shopping workflow once, prints its progress and
// records the outcome. The returned run is set even when err is not nil.
func RunWorkflow(ctx context.Context, deps RunDependencies) (*models.Run, error) {
	cfg := deps.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	run, err := models.NewRun(cfg.TargetURL, cfg.Credentials.Username)
	if err != nil {
		return nil, err
	}

	runner := workflow.NewRunner(cfg, deps.Launcher, workflow.NewConsole(deps.Out, deps.ErrOut))
	result := runner.Run(ctx)

	if err := recordResult(run, result); err != nil {
		return run, err
	}
	if deps.Store != nil {
		saveRun(ctx, deps.Store, run)
	}

	switch {
	case result.Err != nil:
		return run, fmt.Errorf("%w: %w", ErrWorkflowFailed, result.Err)
	case !result.Succeeded():
		return run, fmt.Errorf("%w: %d of %d passed", ErrVerificationFailed,
			result.Report.PassedCount(), len(result.Report.Checks))
	}
	return run, nil
}

// recordResult moves run into the terminal status matching result
func recordResult(run *models.Run, result workflow.Result) error {
	if result.Err == nil {
		return run.Complete(result.ItemName, result.Report.Checks)
	}

	step, kind := int(workflow.StepLaunch), "other"
	var stepErr *workflow.StepError
	if errors.As(result.Err, &stepErr) {
		step, kind = int(stepErr.Step), stepErr.KindName()
	}
	return run.Fail(step, kind, result.Err.Error())
}

// saveRun stores run even when ctx was cancelled by a signal. Failures are logged only.
func saveRun(ctx context.Context, store RunStore, run *models.Run) {
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()

	if err := store.CreateRun(saveCtx, run); err != nil {
		log.Printf("Failed to record run %s: %v", run.ID, err)
		return
	}
	log.Printf("Recorded run %s with status %s", run.ID, run.Status)
}
