package workflow

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/themizzi/saucerun/internal/config"
)

var stepBanners = map[Step]string{
	StepLogin:     "Logging in with username and password",
	StepAddToCart: "Selecting an item and adding to cart",
	StepOpenCart:  "Going to cart",
	StepCheckout:  "Proceeding to checkout",
	StepShipping:  "Filling in checkout details",
	StepFinish:    "Reviewing order and completing checkout",
	StepLogout:    "Logging out after checkout",
}

// teardownNumber follows the last workflow step in the progress numbering
const teardownNumber = int(StepLogout) + 1

// checkMessages maps a check to its success and failure lines
var checkMessages = map[string][2]string{
	CheckLoginPage: {"Successfully returned to login page", "Login page verification failed"},
	CheckLoginForm: {"Login form is present and functional", "Login form verification failed"},
	CheckTitle:     {"Page title is correct", "Page title verification failed"},
	CheckURL:       {"URL is correct", "URL verification failed"},
}

// Console prints human-readable progress. Failures go to errOut.
type Console struct {
	out    io.Writer
	errOut io.Writer
	target string
}

// NewConsole creates a Console reporter
func NewConsole(out, errOut io.Writer) *Console {
	return &Console{out: out, errOut: errOut}
}

func (c *Console) Start(cfg config.WorkflowConfig) {
	c.target = displayHost(cfg.TargetURL)
	fmt.Fprintln(c.out, "Starting SauceDemo Automation...")
}

func (c *Console) StepStarted(step Step) {
	banner := stepBanners[step]
	if step == StepLaunch {
		banner = "Opening browser and navigating to " + c.target
	}
	fmt.Fprintf(c.out, "%d. %s\n", int(step), banner)
}

func (c *Console) StepPassed(step Step, detail string) {
	if detail != "" {
		fmt.Fprintln(c.out, detail)
	}
}

func (c *Console) Verified(report Report) {
	fmt.Fprintln(c.out, "\n🔍 VERIFICATION CHECKS:")
	for i, check := range report.Checks {
		messages, ok := checkMessages[check.Name]
		if !ok {
			messages = [2]string{check.Name + " passed", check.Name + " failed"}
		}

		mark, message := "✅", messages[0]
		if !check.Passed {
			mark, message = "❌", messages[1]
		}
		if check.Detail != "" && (check.Name == CheckTitle || check.Name == CheckURL || !check.Passed) {
			message += ": " + check.Detail
		}
		fmt.Fprintf(c.out, "%s Check %d: %s\n", mark, i+1, message)
	}
}

func (c *Console) Failed(err error) {
	fmt.Fprintf(c.errOut, "❌ Error during automation: %v\n", err)
	for _, line := range errorTrace(err) {
		fmt.Fprintf(c.errOut, "\tcaused by: %s\n", line)
	}
}

func (c *Console) Completed(result Result) {
	item := result.ItemName
	if item == "" {
		item = "unknown item"
	}

	fmt.Fprintln(c.out, "\n📊 AUTOMATION SUMMARY:")
	fmt.Fprintln(c.out, "• Browser opened successfully")
	fmt.Fprintf(c.out, "• Login completed with %s\n", result.Username)
	fmt.Fprintf(c.out, "• Item added to cart (%s)\n", item)
	fmt.Fprintln(c.out, "• Checkout process completed")
	fmt.Fprintln(c.out, "• Logout successful after checkout")
	if result.Report.Passed() {
		fmt.Fprintln(c.out, "• All verification checks passed")
		fmt.Fprintln(c.out, "✅ Automation completed successfully!")
		return
	}

	fmt.Fprintf(c.out, "• %d of %d verification checks passed\n",
		result.Report.PassedCount(), len(result.Report.Checks))
	fmt.Fprintln(c.out, "❌ Automation completed with failed verification checks")
}

func (c *Console) TeardownStarted() {
	fmt.Fprintf(c.out, "%d. Closing browser\n", teardownNumber)
}

func (c *Console) TeardownFinished(err error) {
	if err != nil {
		fmt.Fprintf(c.errOut, "❌ Error closing browser: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "Browser closed")
}

// displayHost renders a target URL the way the progress line names it
func displayHost(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return target
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// errorTrace lists the messages of the errors wrapped below err, outermost first
func errorTrace(err error) []string {
	var lines []string
	for {
		next := errors.Unwrap(err)
		if next == nil {
			if multi, ok := err.(interface{ Unwrap() []error }); ok {
				for _, e := range multi.Unwrap() {
					lines = append(lines, e.Error())
				}
			}
			return lines
		}
		lines = append(lines, next.Error())
		err = next
	}
}
