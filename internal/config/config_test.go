package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// envFrom returns a getenv func backed by a map
func envFrom(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadWorkflowConfig_Defaults(t *testing.T) {
	// GIVEN
	getenv := envFrom(nil)

	// WHEN
	cfg, err := LoadWorkflowConfig(getenv)

	// THEN
	if err != nil {
		t.Fatalf("LoadWorkflowConfig() unexpected error = %v", err)
	}
	if cfg.TargetURL != "https://www.saucedemo.com" {
		t.Errorf("Expected default target URL, got '%s'", cfg.TargetURL)
	}
	if cfg.Credentials.Username != "standard_user" || cfg.Credentials.Password != "secret_sauce" {
		t.Errorf("Expected default credentials, got %+v", cfg.Credentials)
	}
	if cfg.Shipping != (Shipping{FirstName: "John", LastName: "Doe", PostalCode: "12345"}) {
		t.Errorf("Expected default shipping values, got %+v", cfg.Shipping)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Expected 15s timeout, got %s", cfg.Timeout)
	}
	if cfg.Headless {
		t.Error("Expected a headed browser by default")
	}
	if cfg.ExpectedTitle != "Swag Labs" || cfg.ExpectedURLFragment != "saucedemo.com" {
		t.Errorf("Unexpected verification defaults: %q %q", cfg.ExpectedTitle, cfg.ExpectedURLFragment)
	}

	wantArgs := []string{"--no-sandbox", "--disable-dev-shm-usage", "--disable-gpu", "--window-size=1920,1080"}
	if strings.Join(cfg.LaunchArgs, " ") != strings.Join(wantArgs, " ") {
		t.Errorf("Expected launch args %v, got %v", wantArgs, cfg.LaunchArgs)
	}
}

func TestLoadWorkflowConfig_Overrides(t *testing.T) {
	// GIVEN
	getenv := envFrom(map[string]string{
		"SAUCE_URL":            "http://127.0.0.1:9000",
		"SAUCE_USERNAME":       "locked_out_user",
		"SAUCE_PASSWORD":       "hunter2",
		"SAUCE_FIRST_NAME":     "Jane",
		"SAUCE_LAST_NAME":      "Roe",
		"SAUCE_POSTAL_CODE":    "99999",
		"SAUCE_TIMEOUT":        "3s",
		"SAUCE_HEADLESS":       "true",
		"SAUCE_EXPECTED_TITLE": "Local Labs",
		"SAUCE_EXPECTED_URL":   "127.0.0.1",
	})

	// WHEN
	cfg, err := LoadWorkflowConfig(getenv)

	// THEN
	if err != nil {
		t.Fatalf("LoadWorkflowConfig() unexpected error = %v", err)
	}
	if cfg.TargetURL != "http://127.0.0.1:9000" {
		t.Errorf("Expected overridden URL, got '%s'", cfg.TargetURL)
	}
	if cfg.Credentials.Username != "locked_out_user" || cfg.Credentials.Password != "hunter2" {
		t.Errorf("Expected overridden credentials, got %+v", cfg.Credentials)
	}
	if cfg.Shipping.FirstName != "Jane" || cfg.Shipping.LastName != "Roe" || cfg.Shipping.PostalCode != "99999" {
		t.Errorf("Expected overridden shipping, got %+v", cfg.Shipping)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Expected 3s timeout, got %s", cfg.Timeout)
	}
	if !cfg.Headless {
		t.Error("Expected headless to be enabled")
	}
	if cfg.ExpectedTitle != "Local Labs" || cfg.ExpectedURLFragment != "127.0.0.1" {
		t.Errorf("Unexpected verification overrides: %q %q", cfg.ExpectedTitle, cfg.ExpectedURLFragment)
	}
}

func TestLoadWorkflowConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unparseable timeout",
			env:     map[string]string{"SAUCE_TIMEOUT": "soon"},
			wantErr: "SAUCE_TIMEOUT",
		},
		{
			name:    "zero timeout",
			env:     map[string]string{"SAUCE_TIMEOUT": "0s"},
			wantErr: "timeout must be positive",
		},
		{
			name:    "unparseable headless flag",
			env:     map[string]string{"SAUCE_HEADLESS": "maybe"},
			wantErr: "SAUCE_HEADLESS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWorkflowConfig(envFrom(tt.env))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultWorkflowConfig_LaunchArgsAreCopied(t *testing.T) {
	cfg := DefaultWorkflowConfig()
	cfg.LaunchArgs[0] = "--headless"

	if DefaultLaunchArgs[0] != "--no-sandbox" {
		t.Errorf("Mutating a config leaked into DefaultLaunchArgs: %v", DefaultLaunchArgs)
	}
}

func TestWorkflowConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WorkflowConfig)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*WorkflowConfig) {}},
		{name: "missing URL", mutate: func(c *WorkflowConfig) { c.TargetURL = "" }, wantErr: true},
		{name: "missing username", mutate: func(c *WorkflowConfig) { c.Credentials.Username = "" }, wantErr: true},
		{name: "empty expected title", mutate: func(c *WorkflowConfig) { c.ExpectedTitle = "" }, wantErr: true},
		{name: "empty expected URL fragment", mutate: func(c *WorkflowConfig) { c.ExpectedURLFragment = "" }, wantErr: true},
		{name: "negative settle", mutate: func(c *WorkflowConfig) { c.ScrollSettle = -time.Second }, wantErr: true},
		{name: "zero settle", mutate: func(c *WorkflowConfig) { c.ScrollSettle = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultWorkflowConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadPostgresConfig(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantErr    bool
		disabled   bool
		wantConnIn string
	}{
		{
			name:     "no host disables the store",
			env:      map[string]string{"POSTGRES_USER": "postgres"},
			wantErr:  true,
			disabled: true,
		},
		{
			name:    "host without user",
			env:     map[string]string{"POSTGRES_HOSTNAME": "db", "POSTGRES_DB": "runs"},
			wantErr: true,
		},
		{
			name:    "host without database",
			env:     map[string]string{"POSTGRES_HOSTNAME": "db", "POSTGRES_USER": "postgres"},
			wantErr: true,
		},
		{
			name: "complete configuration",
			env: map[string]string{
				"POSTGRES_HOSTNAME": "db",
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "secret",
				"POSTGRES_DB":       "runs",
			},
			wantConnIn: "host=db user=postgres password=secret dbname=runs sslmode=disable",
		},
		{
			name: "explicit ssl mode",
			env: map[string]string{
				"POSTGRES_HOSTNAME": "db",
				"POSTGRES_USER":     "postgres",
				"POSTGRES_DB":       "runs",
				"POSTGRES_SSLMODE":  "require",
			},
			wantConnIn: "sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadPostgresConfig(envFrom(tt.env))

			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadPostgresConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.disabled && !errors.Is(err, ErrRunStoreDisabled) {
				t.Errorf("Expected ErrRunStoreDisabled, got %v", err)
			}
			if tt.wantConnIn != "" && !strings.Contains(cfg.ConnectionString(), tt.wantConnIn) {
				t.Errorf("Expected connection string to contain %q, got %q", tt.wantConnIn, cfg.ConnectionString())
			}
		})
	}
}

func TestLoadDemoServerConfig(t *testing.T) {
	if got := LoadDemoServerConfig(envFrom(nil)).Port; got != "8080" {
		t.Errorf("Expected default port 8080, got %s", got)
	}
	if got := LoadDemoServerConfig(envFrom(map[string]string{"DEMO_PORT": "9090"})).Port; got != "9090" {
		t.Errorf("Expected port 9090, got %s", got)
	}
}
