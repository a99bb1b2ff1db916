package config

import (
	"fmt"
	"strconv"
	"time"
)

// Defaults reproduce the fixed SauceDemo run.
const (
	DefaultTargetURL           = "https://www.saucedemo.com"
	DefaultUsername            = "standard_user"
	DefaultPassword            = "secret_sauce"
	DefaultFirstName           = "John"
	DefaultLastName            = "Doe"
	DefaultPostalCode          = "12345"
	DefaultExpectedTitle       = "Swag Labs"
	DefaultExpectedURLFragment = "saucedemo.com"
	DefaultTimeout             = 15 * time.Second
	DefaultScrollSettle        = 1 * time.Second
)

// DefaultLaunchArgs are the Chromium switches the workflow always starts with
var DefaultLaunchArgs = []string{
	"--no-sandbox",
	"--disable-dev-shm-usage",
	"--disable-gpu",
	"--window-size=1920,1080",
}

// Credentials is the account used to sign in
type Credentials struct {
	Username string
	Password string
}

// Shipping holds the values typed into the checkout information form
type Shipping struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// Locators names the element ids and class names of the target site.
// Fields ending in Class are class names, everything else is an element id.
type Locators struct {
	Username       string
	Password       string
	LoginButton    string
	InventoryClass string
	ItemNameClass  string
	ItemButtonTag  string
	CartLinkClass  string
	CartItemClass  string
	Checkout       string
	FirstName      string
	LastName       string
	PostalCode     string
	Continue       string
	Finish         string
	CompleteClass  string
	MenuButton     string
	LogoutLink     string
}

// WorkflowConfig holds everything the shopping workflow needs to run against a target
type WorkflowConfig struct {
	TargetURL           string
	Credentials         Credentials
	Shipping            Shipping
	Locators            Locators
	Timeout             time.Duration
	ScrollSettle        time.Duration
	Headless            bool
	LaunchArgs          []string
	WindowWidth         int
	WindowHeight        int
	ExpectedTitle       string
	ExpectedURLFragment string
}

// DefaultLocators returns the saucedemo.com markup contract
func DefaultLocators() Locators {
	return Locators{
		Username:       "user-name",
		Password:       "password",
		LoginButton:    "login-button",
		InventoryClass: "inventory_item",
		ItemNameClass:  "inventory_item_name",
		ItemButtonTag:  "button",
		CartLinkClass:  "shopping_cart_link",
		CartItemClass:  "cart_item",
		Checkout:       "checkout",
		FirstName:      "first-name",
		LastName:       "last-name",
		PostalCode:     "postal-code",
		Continue:       "continue",
		Finish:         "finish",
		CompleteClass:  "complete-header",
		MenuButton:     "react-burger-menu-btn",
		LogoutLink:     "logout_sidebar_link",
	}
}

// DefaultWorkflowConfig returns the fixed saucedemo.com run: headed Chromium, default account
func DefaultWorkflowConfig() WorkflowConfig {
	args := make([]string, len(DefaultLaunchArgs))
	copy(args, DefaultLaunchArgs)

	return WorkflowConfig{
		TargetURL: DefaultTargetURL,
		Credentials: Credentials{
			Username: DefaultUsername,
			Password: DefaultPassword,
		},
		Shipping: Shipping{
			FirstName:  DefaultFirstName,
			LastName:   DefaultLastName,
			PostalCode: DefaultPostalCode,
		},
		Locators:            DefaultLocators(),
		Timeout:             DefaultTimeout,
		ScrollSettle:        DefaultScrollSettle,
		Headless:            false,
		LaunchArgs:          args,
		WindowWidth:         1920,
		WindowHeight:        1080,
		ExpectedTitle:       DefaultExpectedTitle,
		ExpectedURLFragment: DefaultExpectedURLFragment,
	}
}

// LoadWorkflowConfig loads workflow configuration from environment variables,
// falling back to the defaults for anything unset
func LoadWorkflowConfig(getenv func(string) string) (WorkflowConfig, error) {
	config := DefaultWorkflowConfig()

	setString(&config.TargetURL, getenv("SAUCE_URL"))
	setString(&config.Credentials.Username, getenv("SAUCE_USERNAME"))
	setString(&config.Credentials.Password, getenv("SAUCE_PASSWORD"))
	setString(&config.Shipping.FirstName, getenv("SAUCE_FIRST_NAME"))
	setString(&config.Shipping.LastName, getenv("SAUCE_LAST_NAME"))
	setString(&config.Shipping.PostalCode, getenv("SAUCE_POSTAL_CODE"))
	setString(&config.ExpectedTitle, getenv("SAUCE_EXPECTED_TITLE"))
	setString(&config.ExpectedURLFragment, getenv("SAUCE_EXPECTED_URL"))

	if v := getenv("SAUCE_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return config, fmt.Errorf("SAUCE_TIMEOUT is not a valid duration: %w", err)
		}
		config.Timeout = timeout
	}

	if v := getenv("SAUCE_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return config, fmt.Errorf("SAUCE_HEADLESS is not a valid boolean: %w", err)
		}
		config.Headless = headless
	}

	if err := config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

// Validate checks that the configuration can drive a run
func (c WorkflowConfig) Validate() error {
	if c.TargetURL == "" {
		return fmt.Errorf("target URL is required")
	}
	if c.Credentials.Username == "" {
		return fmt.Errorf("username is required")
	}
	if c.ExpectedTitle == "" {
		return fmt.Errorf("expected title is required")
	}
	if c.ExpectedURLFragment == "" {
		return fmt.Errorf("expected URL fragment is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.ScrollSettle < 0 {
		return fmt.Errorf("scroll settle must not be negative, got %s", c.ScrollSettle)
	}
	return nil
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
