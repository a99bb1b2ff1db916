package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/themizzi/saucerun/internal/models"
)

// RunLister lists stored runs, newest first
type RunLister interface {
	ListRecentRuns(ctx context.Context, limit int) ([]*models.Run, error)
}

var historyHeaders = []string{"STARTED", "STATUS", "USER", "ITEM", "CHECKS", "DURATION", "FAILURE", "TARGET"}

// PrintHistory writes the most recent runs as a table
func PrintHistory(ctx context.Context, lister RunLister, limit int, out io.Writer) error {
	runs, err := lister.ListRecentRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to load run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(historyHeaders, "\t"))
	for _, run := range runs {
		fmt.Fprintln(w, strings.Join(historyRow(run), "\t"))
	}
	return w.Flush()
}

func historyRow(run *models.Run) []string {
	item := run.ItemName
	if item == "" {
		item = "-"
	}

	checks := "-"
	if len(run.Checks) > 0 {
		checks = strconv.Itoa(run.PassedChecks()) + "/" + strconv.Itoa(len(run.Checks))
	}

	failure := "-"
	if run.Status == models.RunStatusFailed {
		failure = fmt.Sprintf("step %d: %s", run.FailedStep, run.FailureKind)
	}

	return []string{
		run.StartedAt.Local().Format(time.DateTime),
		string(run.Status),
		run.Username,
		item,
		checks,
		run.Duration().Round(time.Millisecond).String(),
		failure,
		run.Target,
	}
}
