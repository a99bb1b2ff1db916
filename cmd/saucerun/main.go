package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/themizzi/saucerun/internal/browser"
	internalcli "github.com/themizzi/saucerun/internal/cli"
	"github.com/themizzi/saucerun/internal/config"
	"github.com/themizzi/saucerun/internal/demosite"
	"github.com/themizzi/saucerun/internal/repository"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// runFlags returns new flag instances for each command using them
func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "url", Usage: "shop to drive (default " + config.DefaultTargetURL + ")"},
		&cli.StringFlag{Name: "username", Usage: "account to sign in with"},
		&cli.StringFlag{Name: "password", Usage: "password for the account"},
		&cli.BoolFlag{Name: "headless", Usage: "run Chromium without a window"},
		&cli.DurationFlag{Name: "timeout", Usage: "how long to wait for each element (default 15s)"},
		&cli.StringFlag{Name: "expected-title", Usage: "text the final page title must contain"},
		&cli.StringFlag{Name: "expected-url", Usage: "text the final page URL must contain"},
	}
}

// buildWorkflowConfig layers command line flags over environment configuration
func buildWorkflowConfig(c *cli.Context) (config.WorkflowConfig, error) {
	cfg, err := config.LoadWorkflowConfig(os.Getenv)
	if err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	if c.IsSet("url") {
		cfg.TargetURL = c.String("url")
	}
	if c.IsSet("username") {
		cfg.Credentials.Username = c.String("username")
	}
	if c.IsSet("password") {
		cfg.Credentials.Password = c.String("password")
	}
	if c.IsSet("headless") {
		cfg.Headless = c.Bool("headless")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("expected-title") {
		cfg.ExpectedTitle = c.String("expected-title")
	}
	if c.IsSet("expected-url") {
		cfg.ExpectedURLFragment = c.String("expected-url")
	}

	return cfg, cfg.Validate()
}

func runAction(c *cli.Context) error {
	cfg, err := buildWorkflowConfig(c)
	if err != nil {
		return err
	}

	deps := internalcli.RunDependencies{
		Config:   cfg,
		Launcher: browser.NewPlaywrightLauncher(),
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
	}

	store, closeStore, err := internalcli.OpenRunStore()
	if err != nil {
		log.Printf("Warning: run history disabled: %v", err)
	}
	defer closeStore()
	if store != nil {
		deps.Store = store
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := internalcli.RunWorkflow(ctx, deps); err != nil {
		// Already reported on the console
		if errors.Is(err, internalcli.ErrWorkflowFailed) || errors.Is(err, internalcli.ErrVerificationFailed) {
			return cli.Exit("", 1)
		}
		return err
	}
	return nil
}

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Log in, buy the first item, check out, log out and verify the result",
		Flags:  runFlags(),
		Action: runAction,
	}
}

// HistoryCommand returns the history command
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent runs from the run history database",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: repository.DefaultHistoryLimit, Usage: "number of runs to show"},
		},
		Action: func(c *cli.Context) error {
			store, closeStore, err := internalcli.OpenRunStore()
			if err != nil {
				return err
			}
			defer closeStore()
			if store == nil {
				return fmt.Errorf("run history is disabled: set POSTGRES_HOSTNAME to enable it")
			}

			return internalcli.PrintHistory(c.Context, store, c.Int("limit"), os.Stdout)
		},
	}
}

// DemoCommand returns the demo command
func DemoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Serve a local stand-in of the shop to run against",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "port to listen on (default 8080)"},
			&cli.BoolFlag{Name: "without-checkout", Usage: "omit the checkout button from the cart"},
		},
		Action: func(c *cli.Context) error {
			serverConfig := config.LoadDemoServerConfig(os.Getenv)
			if c.IsSet("port") {
				serverConfig.Port = c.String("port")
			}

			var opts []demosite.Option
			if c.Bool("without-checkout") {
				opts = append(opts, demosite.WithoutCheckoutButton())
			}
			site, err := demosite.New(opts...)
			if err != nil {
				return fmt.Errorf("failed to create demo site: %w", err)
			}

			return internalcli.RunServe(internalcli.ServerDependencies{
				ServerConfig: serverConfig,
				Site:         site,
			})
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "saucerun",
		Usage:   "Browser automation of the SauceDemo shopping flow",
		Version: version,
		Flags:   runFlags(),
		Action:  runAction,
		Commands: []*cli.Command{
			RunCommand(),
			HistoryCommand(),
			DemoCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Fatal(err)
	}
}
