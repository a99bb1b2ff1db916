package workflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/themizzi/saucerun/internal/browser"
	"github.com/themizzi/saucerun/internal/config"
)

// ScrollScript scrolls the checkout form into view
const ScrollScript = "window.scrollTo(0, document.body.scrollHeight/2);"

// Reporter receives progress of a run as it happens
type Reporter interface {
	Start(cfg config.WorkflowConfig)
	StepStarted(step Step)
	StepPassed(step Step, detail string)
	Verified(report Report)
	Failed(err error)
	Completed(result Result)
	TeardownStarted()
	TeardownFinished(err error)
}

// Result is the outcome of one run
type Result struct {
	Username string
	ItemName string
	// Verified is true when all steps succeeded and the checks ran
	Verified bool
	Report   Report
	// Err is a *StepError when a step failed
	Err error
}

// Succeeded reports whether every step and every check passed
func (r Result) Succeeded() bool {
	return r.Err == nil && r.Verified && r.Report.Passed()
}

// Runner executes the shopping workflow against one target
type Runner struct {
	config   config.WorkflowConfig
	launcher browser.Launcher
	reporter Reporter
}

// NewRunner creates a Runner
func NewRunner(cfg config.WorkflowConfig, launcher browser.Launcher, reporter Reporter) *Runner {
	return &Runner{
		config:   cfg,
		launcher: launcher,
		reporter: reporter,
	}
}

type stepFunc func(ctx context.Context) (string, error)

// Run performs steps 1-8, verifies the result and closes the browser.
// The browser is closed exactly once on every path where it was opened.
func (r *Runner) Run(ctx context.Context) Result {
	result := Result{Username: r.config.Credentials.Username}
	r.reporter.Start(r.config)

	var session browser.Session
	defer func() {
		if session == nil {
			return
		}
		r.reporter.TeardownStarted()
		err := session.Close()
		if err != nil {
			log.Printf("Failed to close browser: %v", err)
		}
		r.reporter.TeardownFinished(err)
	}()

	loc := r.config.Locators
	inventoryItem := browser.Class(loc.InventoryClass)

	steps := []struct {
		step Step
		run  stepFunc
	}{
		{StepLaunch, func(ctx context.Context) (string, error) {
			s, err := r.launcher.Launch(browser.LaunchOptions{
				Headless:     r.config.Headless,
				Args:         r.config.LaunchArgs,
				WindowWidth:  r.config.WindowWidth,
				WindowHeight: r.config.WindowHeight,
				Timeout:      r.config.Timeout,
			})
			if err != nil {
				return "", err
			}
			session = s

			if err := session.Navigate(r.config.TargetURL); err != nil {
				return "", err
			}
			if err := session.WaitPresent(ctx, browser.ID(loc.Username)); err != nil {
				return "", err
			}
			return "Page loaded successfully", nil
		}},
		{StepLogin, func(ctx context.Context) (string, error) {
			creds := r.config.Credentials
			if err := session.Fill(browser.ID(loc.Username), creds.Username); err != nil {
				return "", err
			}
			if err := session.Fill(browser.ID(loc.Password), creds.Password); err != nil {
				return "", err
			}
			if err := session.Click(browser.ID(loc.LoginButton)); err != nil {
				return "", err
			}
			if err := session.WaitPresent(ctx, inventoryItem); err != nil {
				return "", err
			}
			return "Login successful - Products page loaded", nil
		}},
		{StepAddToCart, func(ctx context.Context) (string, error) {
			name, err := session.Text(browser.Class(loc.ItemNameClass).Within(inventoryItem))
			if err != nil {
				return "", err
			}
			if err := session.Click(browser.Tag(loc.ItemButtonTag).Within(inventoryItem)); err != nil {
				return "", err
			}
			result.ItemName = name
			return "Added item to cart: " + name, nil
		}},
		{StepOpenCart, func(ctx context.Context) (string, error) {
			if err := session.Click(browser.Class(loc.CartLinkClass)); err != nil {
				return "", err
			}
			if err := session.WaitPresent(ctx, browser.Class(loc.CartItemClass)); err != nil {
				return "", err
			}
			return "Cart page loaded", nil
		}},
		{StepCheckout, func(ctx context.Context) (string, error) {
			if err := session.Click(browser.ID(loc.Checkout)); err != nil {
				return "", err
			}
			if err := session.WaitPresent(ctx, browser.ID(loc.FirstName)); err != nil {
				return "", err
			}
			return "", nil
		}},
		{StepShipping, func(ctx context.Context) (string, error) {
			return "", r.fillShipping(ctx, session)
		}},
		{StepFinish, func(ctx context.Context) (string, error) {
			finish := browser.ID(loc.Finish)
			if err := session.WaitPresent(ctx, finish); err != nil {
				return "", err
			}
			if err := session.Click(finish); err != nil {
				return "", err
			}
			if err := session.WaitPresent(ctx, browser.Class(loc.CompleteClass)); err != nil {
				return "", err
			}
			return "Checkout completed successfully!", nil
		}},
		{StepLogout, func(ctx context.Context) (string, error) {
			logout := browser.ID(loc.LogoutLink)
			if err := session.Click(browser.ID(loc.MenuButton)); err != nil {
				return "", err
			}
			if err := session.WaitClickable(ctx, logout); err != nil {
				return "", err
			}
			if err := session.Click(logout); err != nil {
				return "", err
			}
			if err := session.WaitPresent(ctx, browser.ID(loc.Username)); err != nil {
				return "", err
			}
			return "Logout successful - back to login page", nil
		}},
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			result.Err = &StepError{Step: s.step, Err: err}
			r.reporter.Failed(result.Err)
			return result
		}

		r.reporter.StepStarted(s.step)
		detail, err := s.run(ctx)
		if err != nil {
			result.Err = &StepError{Step: s.step, Err: err}
			r.reporter.Failed(result.Err)
			return result
		}
		r.reporter.StepPassed(s.step, detail)
	}

	result.Report = Verify(ctx, session, r.config)
	result.Verified = true
	r.reporter.Verified(result.Report)
	r.reporter.Completed(result)
	return result
}

// fillShipping scrolls the form into view, then waits for each field to be
// clickable on its own before clearing and typing into it
func (r *Runner) fillShipping(ctx context.Context, session browser.Session) error {
	loc := r.config.Locators
	shipping := r.config.Shipping

	if err := session.Evaluate(ScrollScript); err != nil {
		return err
	}
	if err := pause(ctx, r.config.ScrollSettle); err != nil {
		return err
	}

	fields := []struct {
		locator browser.Locator
		value   string
	}{
		{browser.ID(loc.FirstName), shipping.FirstName},
		{browser.ID(loc.LastName), shipping.LastName},
		{browser.ID(loc.PostalCode), shipping.PostalCode},
	}
	for _, field := range fields {
		if err := session.WaitClickable(ctx, field.locator); err != nil {
			return err
		}
	}
	for _, field := range fields {
		if err := session.Fill(field.locator, field.value); err != nil {
			return fmt.Errorf("filling %s: %w", field.locator, err)
		}
	}

	return session.Click(browser.ID(loc.Continue))
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
