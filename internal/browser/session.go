package browser

import (
	"context"
	"time"
)

// Session is one controlled browser instance showing a single page.
// A Session is not safe for concurrent use.
type Session interface {
	// Navigate loads url in the page
	Navigate(url string) error

	// WaitPresent blocks until an element matching loc is attached to the DOM
	WaitPresent(ctx context.Context, loc Locator) error

	// WaitClickable blocks until the first element matching loc is visible and enabled
	WaitClickable(ctx context.Context, loc Locator) error

	// Click clicks the first element matching loc
	Click(loc Locator) error

	// Fill clears the first element matching loc and types value into it
	Fill(loc Locator, value string) error

	// Text returns the rendered text of the first element matching loc
	Text(loc Locator) (string, error)

	// Visible reports whether the first element matching loc is displayed
	Visible(loc Locator) (bool, error)

	// Evaluate runs a script in the page
	Evaluate(script string) error

	// Title returns the page title
	Title() (string, error)

	// URL returns the current page URL
	URL() string

	// Close releases the browser. Calling Close more than once is safe.
	Close() error
}

// LaunchOptions configures a new browser session
type LaunchOptions struct {
	Headless     bool
	Args         []string
	WindowWidth  int
	WindowHeight int
	Timeout      time.Duration
}

// Launcher starts browser sessions
type Launcher interface {
	Launch(opts LaunchOptions) (Session, error)
}
