package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/themizzi/saucerun/internal/browser"
	"github.com/themizzi/saucerun/internal/config"
	"github.com/themizzi/saucerun/internal/models"
)

// Names of the post-logout verification checks, in execution order
const (
	CheckLoginPage = "login page"
	CheckLoginForm = "login form"
	CheckTitle     = "page title"
	CheckURL       = "page url"
)

// Report is the ordered outcome of the verification checks
type Report struct {
	Checks []models.Check
}

// Passed reports whether every check passed. An empty report has not passed.
func (r Report) Passed() bool {
	if len(r.Checks) == 0 {
		return false
	}
	return r.PassedCount() == len(r.Checks)
}

// PassedCount returns how many checks passed
func (r Report) PassedCount() int {
	passed := 0
	for _, check := range r.Checks {
		if check.Passed {
			passed++
		}
	}
	return passed
}

// Check returns the named check
func (r Report) Check(name string) (models.Check, bool) {
	for _, check := range r.Checks {
		if check.Name == name {
			return check, true
		}
	}
	return models.Check{}, false
}

// Verify inspects the page after logout. Every check runs regardless of the
// outcome of the others; a check that errors is recorded as failed.
func Verify(ctx context.Context, session browser.Session, cfg config.WorkflowConfig) Report {
	loc := cfg.Locators
	username := browser.ID(loc.Username)
	password := browser.ID(loc.Password)
	loginButton := browser.ID(loc.LoginButton)

	return Report{Checks: []models.Check{
		checkLoginPage(ctx, session, username),
		checkLoginForm(session, username, password, loginButton),
		checkTitle(session, cfg.ExpectedTitle),
		checkURL(session, cfg.ExpectedURLFragment),
	}}
}

func checkLoginPage(ctx context.Context, session browser.Session, username browser.Locator) models.Check {
	if err := session.WaitPresent(ctx, username); err != nil {
		return models.Check{Name: CheckLoginPage, Detail: err.Error()}
	}
	return models.Check{Name: CheckLoginPage, Passed: true}
}

func checkLoginForm(session browser.Session, fields ...browser.Locator) models.Check {
	var hidden []string
	for _, field := range fields {
		visible, err := session.Visible(field)
		if err != nil {
			return models.Check{Name: CheckLoginForm, Detail: err.Error()}
		}
		if !visible {
			hidden = append(hidden, field.String())
		}
	}

	if len(hidden) > 0 {
		return models.Check{Name: CheckLoginForm, Detail: "not visible: " + strings.Join(hidden, ", ")}
	}
	return models.Check{Name: CheckLoginForm, Passed: true}
}

func checkTitle(session browser.Session, expected string) models.Check {
	title, err := session.Title()
	if err != nil {
		return models.Check{Name: CheckTitle, Detail: fmt.Sprintf("reading title: %v", err)}
	}
	return models.Check{Name: CheckTitle, Passed: strings.Contains(title, expected), Detail: title}
}

func checkURL(session browser.Session, expected string) models.Check {
	url := session.URL()
	return models.Check{Name: CheckURL, Passed: strings.Contains(url, expected), Detail: url}
}
