//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	saucebrowser "github.com/themizzi/saucerun/internal/browser"
	"github.com/themizzi/saucerun/internal/config"
	"github.com/themizzi/saucerun/internal/workflow"
)

// newPage opens a page in an isolated browser context
func newPage(t *testing.T) playwright.Page {
	t.Helper()

	bctx, err := browser.NewContext()
	require.NoError(t, err, "failed to create browser context")
	t.Cleanup(func() { bctx.Close() })

	page, err := bctx.NewPage()
	require.NoError(t, err, "failed to open page")
	page.SetDefaultTimeout(5000)
	return page
}

// shopConfig returns a workflow configuration for a local demo shop
func shopConfig(baseURL string) config.WorkflowConfig {
	cfg := config.DefaultWorkflowConfig()
	cfg.TargetURL = baseURL
	cfg.ExpectedURLFragment = "localhost"
	cfg.Headless = headless()
	cfg.Timeout = 5 * time.Second
	cfg.ScrollSettle = 100 * time.Millisecond
	return cfg
}

// workflowRun is the outcome of running the workflow with a real browser
type workflowRun struct {
	Result workflow.Result
	Out    string
	ErrOut string
}

// runWorkflow drives a fresh Chromium through the workflow
func runWorkflow(t *testing.T, cfg config.WorkflowConfig) workflowRun {
	t.Helper()

	var out, errOut bytes.Buffer
	runner := workflow.NewRunner(cfg, saucebrowser.NewPlaywrightLauncher(), workflow.NewConsole(&out, &errOut))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result := runner.Run(ctx)
	return workflowRun{Result: result, Out: out.String(), ErrOut: errOut.String()}
}
