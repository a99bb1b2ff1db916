package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/themizzi/saucerun/internal/browser"
)

// Step identifies one stage of the shopping workflow
type Step int

// Workflow steps in execution order
const (
	StepLaunch Step = iota + 1
	StepLogin
	StepAddToCart
	StepOpenCart
	StepCheckout
	StepShipping
	StepFinish
	StepLogout
)

var stepNames = map[Step]string{
	StepLaunch:    "launch and navigate",
	StepLogin:     "authenticate",
	StepAddToCart: "add item to cart",
	StepOpenCart:  "open cart",
	StepCheckout:  "begin checkout",
	StepShipping:  "fill shipping form",
	StepFinish:    "complete order",
	StepLogout:    "log out",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step %d", int(s))
}

// StepError reports the step at which the workflow stopped
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", int(e.Step), e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Kind returns the browser failure category, or nil for other failures
// such as a cancelled context
func (e *StepError) Kind() error {
	return browser.Kind(e.Err)
}

// KindName returns a short label for the failure category
func (e *StepError) KindName() string {
	switch e.Kind() {
	case browser.ErrLaunch:
		return "launch"
	case browser.ErrNavigation:
		return "navigation"
	case browser.ErrElementNotFound:
		return "element not found"
	case browser.ErrTimeout:
		return "timeout"
	}
	if errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded) {
		return "cancelled"
	}
	return "other"
}
