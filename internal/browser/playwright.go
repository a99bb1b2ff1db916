package browser

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightLauncher launches Chromium sessions through playwright-go.
// Browsers must already be installed, e.g. with
// go run github.com/playwright-community/playwright-go/cmd/playwright install chromium
type PlaywrightLauncher struct {
	RunOptions *playwright.RunOptions
}

// NewPlaywrightLauncher creates a launcher using the default playwright driver location
func NewPlaywrightLauncher() *PlaywrightLauncher {
	return &PlaywrightLauncher{}
}

// Launch starts playwright, a Chromium browser and a single page
func (l *PlaywrightLauncher) Launch(opts LaunchOptions) (Session, error) {
	var runOptions []*playwright.RunOptions
	if l.RunOptions != nil {
		runOptions = append(runOptions, l.RunOptions)
	}

	pw, err := playwright.Run(runOptions...)
	if err != nil {
		return nil, fmt.Errorf("%w: could not start playwright: %w", ErrLaunch, err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     opts.Args,
	})
	if err != nil {
		stopPlaywright(pw)
		return nil, fmt.Errorf("%w: could not launch chromium: %w", ErrLaunch, err)
	}

	pageOptions := playwright.BrowserNewPageOptions{}
	if opts.WindowWidth > 0 && opts.WindowHeight > 0 {
		pageOptions.Viewport = &playwright.Size{
			Width:  opts.WindowWidth,
			Height: opts.WindowHeight,
		}
	}

	page, err := browser.NewPage(pageOptions)
	if err != nil {
		if closeErr := browser.Close(); closeErr != nil {
			log.Printf("Failed to close browser after page error: %v", closeErr)
		}
		stopPlaywright(pw)
		return nil, fmt.Errorf("%w: could not open page: %w", ErrLaunch, err)
	}

	wait := NewWaitPolicy(opts.Timeout)
	page.SetDefaultTimeout(milliseconds(wait))

	return &playwrightSession{
		pw:      pw,
		browser: browser,
		page:    page,
		wait:    wait,
	}, nil
}

func stopPlaywright(pw *playwright.Playwright) {
	if err := pw.Stop(); err != nil {
		log.Printf("Failed to stop playwright: %v", err)
	}
}

func milliseconds(w WaitPolicy) float64 {
	return float64(w.Timeout.Milliseconds())
}

// playwrightSession implements Session on a single playwright page
type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	wait    WaitPolicy
	closed  bool
}

func (s *playwrightSession) Navigate(url string) error {
	resp, err := s.page.Goto(url)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNavigation, url, err)
	}
	if resp != nil && !resp.Ok() {
		return fmt.Errorf("%w: %s returned status %d", ErrNavigation, url, resp.Status())
	}
	return nil
}

func (s *playwrightSession) WaitPresent(ctx context.Context, loc Locator) error {
	el := s.resolve(loc)

	err := s.wait.Until(ctx, func() (bool, error) {
		count, err := el.Count()
		return count > 0, err
	})
	if err != nil {
		return fmt.Errorf("waiting for %s: %w", loc, err)
	}
	return nil
}

func (s *playwrightSession) WaitClickable(ctx context.Context, loc Locator) error {
	el := s.resolve(loc).First()

	err := s.wait.Until(ctx, func() (bool, error) {
		count, err := el.Count()
		if err != nil || count == 0 {
			return false, err
		}
		visible, err := el.IsVisible()
		if err != nil || !visible {
			return false, err
		}
		return el.IsEnabled()
	})
	if err != nil {
		return fmt.Errorf("waiting for %s to be clickable: %w", loc, err)
	}
	return nil
}

func (s *playwrightSession) Click(loc Locator) error {
	el, err := s.find(loc)
	if err != nil {
		return err
	}
	if err := el.Click(); err != nil {
		return classify(loc, err)
	}
	return nil
}

func (s *playwrightSession) Fill(loc Locator, value string) error {
	el, err := s.find(loc)
	if err != nil {
		return err
	}
	if err := el.Clear(); err != nil {
		return classify(loc, err)
	}
	if err := el.Fill(value); err != nil {
		return classify(loc, err)
	}
	return nil
}

func (s *playwrightSession) Text(loc Locator) (string, error) {
	el, err := s.find(loc)
	if err != nil {
		return "", err
	}
	text, err := el.InnerText()
	if err != nil {
		return "", classify(loc, err)
	}
	return text, nil
}

func (s *playwrightSession) Visible(loc Locator) (bool, error) {
	el, err := s.find(loc)
	if err != nil {
		return false, err
	}
	visible, err := el.IsVisible()
	if err != nil {
		return false, classify(loc, err)
	}
	return visible, nil
}

func (s *playwrightSession) Evaluate(script string) error {
	if _, err := s.page.Evaluate(script); err != nil {
		return fmt.Errorf("evaluating script: %w", err)
	}
	return nil
}

func (s *playwrightSession) Title() (string, error) {
	return s.page.Title()
}

func (s *playwrightSession) URL() string {
	return s.page.URL()
}

func (s *playwrightSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing browser: %w", err))
	}
	if err := s.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stopping playwright: %w", err))
	}
	return errors.Join(errs...)
}

// resolve maps a Locator chain onto a playwright locator
func (s *playwrightSession) resolve(loc Locator) playwright.Locator {
	if parent, ok := loc.Parent(); ok {
		return s.resolve(parent).First().Locator(loc.CSS())
	}
	return s.page.Locator(loc.CSS())
}

// find performs an immediate lookup: a locator that matches nothing right now
// is ErrElementNotFound rather than something to wait for
func (s *playwrightSession) find(loc Locator) (playwright.Locator, error) {
	el := s.resolve(loc)
	count, err := el.Count()
	if err != nil {
		return nil, classify(loc, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, loc)
	}
	return el.First(), nil
}

func classify(loc Locator, err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %s: %w", ErrTimeout, loc, err)
	}
	return fmt.Errorf("%s: %w", loc, err)
}
