package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/themizzi/saucerun/internal/browser"
)

// fakePage is one page of the simulated shop
type fakePage struct {
	title    string
	url      string
	elements []string
	hidden   []string
	clicks   map[string]func(f *fakeSession)
}

// fakeSession simulates the target site page by page. Locators are matched by
// their String() form, waits never block.
type fakeSession struct {
	pages      map[string]*fakePage
	current    string
	texts      map[string]string
	fields     map[string]string
	revealed   map[string]bool
	removed    map[string]bool
	validUsers map[string]string

	calls      []string
	closeCount int
	closeErr   error
	titleErr   error
	titleOver  string
	urlOver    string

	// waitStarted, when set, is closed on the first WaitPresent, which then
	// blocks until ctx is done
	waitStarted chan struct{}
}

func newFakeShop() *fakeSession {
	f := &fakeSession{
		texts: map[string]string{
			"class=inventory_item >> class=inventory_item_name": "Sauce Labs Backpack",
		},
		fields:     map[string]string{},
		revealed:   map[string]bool{},
		removed:    map[string]bool{},
		validUsers: map[string]string{"standard_user": "secret_sauce"},
	}

	menu := []string{"id=react-burger-menu-btn", "id=logout_sidebar_link", "class=shopping_cart_link"}
	withMenu := func(elements ...string) []string {
		return append(elements, menu...)
	}
	openMenu := func(f *fakeSession) { f.revealed["id=logout_sidebar_link"] = true }
	logout := func(f *fakeSession) {
		f.revealed = map[string]bool{}
		f.current = "login"
	}
	menuClicks := func(clicks map[string]func(*fakeSession)) map[string]func(*fakeSession) {
		clicks["id=react-burger-menu-btn"] = openMenu
		clicks["id=logout_sidebar_link"] = logout
		clicks["class=shopping_cart_link"] = func(f *fakeSession) { f.current = "cart" }
		return clicks
	}

	f.pages = map[string]*fakePage{
		"login": {
			title:    "Swag Labs",
			url:      "https://www.saucedemo.com/",
			elements: []string{"id=user-name", "id=password", "id=login-button"},
			clicks: map[string]func(*fakeSession){
				"id=login-button": func(f *fakeSession) {
					user := f.fields["id=user-name"]
					if pass, ok := f.validUsers[user]; ok && pass == f.fields["id=password"] {
						f.current = "inventory"
					}
				},
			},
		},
		"inventory": {
			title: "Swag Labs",
			url:   "https://www.saucedemo.com/inventory.html",
			elements: withMenu(
				"class=inventory_item",
				"class=inventory_item >> class=inventory_item_name",
				"class=inventory_item >> tag=button",
			),
			hidden: []string{"id=logout_sidebar_link"},
			clicks: menuClicks(map[string]func(*fakeSession){
				"class=inventory_item >> tag=button": func(*fakeSession) {},
			}),
		},
		"cart": {
			title:    "Swag Labs",
			url:      "https://www.saucedemo.com/cart.html",
			elements: withMenu("class=cart_item", "id=checkout"),
			hidden:   []string{"id=logout_sidebar_link"},
			clicks: menuClicks(map[string]func(*fakeSession){
				"id=checkout": func(f *fakeSession) { f.current = "step-one" },
			}),
		},
		"step-one": {
			title:    "Swag Labs",
			url:      "https://www.saucedemo.com/checkout-step-one.html",
			elements: withMenu("id=first-name", "id=last-name", "id=postal-code", "id=continue"),
			hidden:   []string{"id=logout_sidebar_link"},
			clicks: menuClicks(map[string]func(*fakeSession){
				"id=continue": func(f *fakeSession) { f.current = "step-two" },
			}),
		},
		"step-two": {
			title:    "Swag Labs",
			url:      "https://www.saucedemo.com/checkout-step-two.html",
			elements: withMenu("id=finish"),
			hidden:   []string{"id=logout_sidebar_link"},
			clicks: menuClicks(map[string]func(*fakeSession){
				"id=finish": func(f *fakeSession) { f.current = "complete" },
			}),
		},
		"complete": {
			title:    "Swag Labs",
			url:      "https://www.saucedemo.com/checkout-complete.html",
			elements: withMenu("class=complete-header"),
			hidden:   []string{"id=logout_sidebar_link"},
			clicks:   menuClicks(map[string]func(*fakeSession){}),
		},
	}
	return f
}

func (f *fakeSession) page() *fakePage {
	if p, ok := f.pages[f.current]; ok {
		return p
	}
	return &fakePage{}
}

func (f *fakeSession) present(key string) bool {
	if f.removed[key] {
		return false
	}
	for _, el := range f.page().elements {
		if el == key {
			return true
		}
	}
	return false
}

func (f *fakeSession) visible(key string) bool {
	if !f.present(key) {
		return false
	}
	for _, el := range f.page().hidden {
		if el == key && !f.revealed[key] {
			return false
		}
	}
	return true
}

func (f *fakeSession) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeSession) Navigate(url string) error {
	f.record("navigate %s", url)
	f.current = "login"
	return nil
}

func (f *fakeSession) WaitPresent(ctx context.Context, loc browser.Locator) error {
	f.record("wait-present %s", loc)
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.waitStarted != nil {
		close(f.waitStarted)
		f.waitStarted = nil
		<-ctx.Done()
		return fmt.Errorf("waiting for %s: %w", loc, ctx.Err())
	}
	if !f.present(loc.String()) {
		return fmt.Errorf("%w: %s", browser.ErrTimeout, loc)
	}
	return nil
}

func (f *fakeSession) WaitClickable(ctx context.Context, loc browser.Locator) error {
	f.record("wait-clickable %s", loc)
	if err := ctx.Err(); err != nil {
		return err
	}
	if !f.visible(loc.String()) {
		return fmt.Errorf("waiting for %s to be clickable: %w", loc, browser.ErrTimeout)
	}
	return nil
}

func (f *fakeSession) Click(loc browser.Locator) error {
	f.record("click %s", loc)
	key := loc.String()
	if !f.present(key) {
		return fmt.Errorf("%w: %s", browser.ErrElementNotFound, loc)
	}
	if handler, ok := f.page().clicks[key]; ok {
		handler(f)
	}
	return nil
}

func (f *fakeSession) Fill(loc browser.Locator, value string) error {
	f.record("fill %s=%s", loc, value)
	if !f.present(loc.String()) {
		return fmt.Errorf("%w: %s", browser.ErrElementNotFound, loc)
	}
	f.fields[loc.String()] = value
	return nil
}

func (f *fakeSession) Text(loc browser.Locator) (string, error) {
	f.record("text %s", loc)
	if !f.present(loc.String()) {
		return "", fmt.Errorf("%w: %s", browser.ErrElementNotFound, loc)
	}
	return f.texts[loc.String()], nil
}

func (f *fakeSession) Visible(loc browser.Locator) (bool, error) {
	f.record("visible %s", loc)
	if !f.present(loc.String()) {
		return false, fmt.Errorf("%w: %s", browser.ErrElementNotFound, loc)
	}
	return f.visible(loc.String()), nil
}

func (f *fakeSession) Evaluate(script string) error {
	f.record("evaluate %s", script)
	return nil
}

func (f *fakeSession) Title() (string, error) {
	if f.titleErr != nil {
		return "", f.titleErr
	}
	if f.titleOver != "" {
		return f.titleOver, nil
	}
	return f.page().title, nil
}

func (f *fakeSession) URL() string {
	if f.urlOver != "" {
		return f.urlOver
	}
	return f.page().url
}

func (f *fakeSession) Close() error {
	f.closeCount++
	return f.closeErr
}

// fakeLauncher hands out a prepared session or fails
type fakeLauncher struct {
	session  *fakeSession
	err      error
	launches int
	opts     browser.LaunchOptions
}

func (l *fakeLauncher) Launch(opts browser.LaunchOptions) (browser.Session, error) {
	l.launches++
	l.opts = opts
	if l.err != nil {
		return nil, l.err
	}
	return l.session, nil
}

var errChromiumMissing = errors.New("chromium executable not found")
