package cli

import (
	"context"

	"github.com/themizzi/saucerun/internal/browser"
	"github.com/themizzi/saucerun/internal/models"
)

// mockSession succeeds at everything unless a func field overrides it
type mockSession struct {
	WaitPresentFunc func(loc browser.Locator) error
	ClickFunc       func(loc browser.Locator) error
	TitleFunc       func() (string, error)
	closed          int
}

func (m *mockSession) Navigate(url string) error { return nil }

func (m *mockSession) WaitPresent(ctx context.Context, loc browser.Locator) error {
	if m.WaitPresentFunc != nil {
		return m.WaitPresentFunc(loc)
	}
	return nil
}

func (m *mockSession) WaitClickable(ctx context.Context, loc browser.Locator) error { return nil }

func (m *mockSession) Click(loc browser.Locator) error {
	if m.ClickFunc != nil {
		return m.ClickFunc(loc)
	}
	return nil
}

func (m *mockSession) Fill(loc browser.Locator, value string) error { return nil }

func (m *mockSession) Text(loc browser.Locator) (string, error) {
	return "Sauce Labs Backpack", nil
}

func (m *mockSession) Visible(loc browser.Locator) (bool, error) { return true, nil }

func (m *mockSession) Evaluate(script string) error { return nil }

func (m *mockSession) Title() (string, error) {
	if m.TitleFunc != nil {
		return m.TitleFunc()
	}
	return "Swag Labs", nil
}

func (m *mockSession) URL() string { return "https://www.saucedemo.com/" }

func (m *mockSession) Close() error {
	m.closed++
	return nil
}

// mockLauncher returns Session or Err
type mockLauncher struct {
	Session browser.Session
	Err     error
}

func (m *mockLauncher) Launch(opts browser.LaunchOptions) (browser.Session, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Session, nil
}

// mockRunStore is a mock implementation of RunStore and RunLister
type mockRunStore struct {
	CreateRunFunc      func(ctx context.Context, run *models.Run) error
	ListRecentRunsFunc func(ctx context.Context, limit int) ([]*models.Run, error)
	created            []*models.Run
}

func (m *mockRunStore) CreateRun(ctx context.Context, run *models.Run) error {
	m.created = append(m.created, run)
	if m.CreateRunFunc != nil {
		return m.CreateRunFunc(ctx, run)
	}
	return nil
}

func (m *mockRunStore) ListRecentRuns(ctx context.Context, limit int) ([]*models.Run, error) {
	if m.ListRecentRunsFunc != nil {
		return m.ListRecentRunsFunc(ctx, limit)
	}
	return nil, nil
}
