package browser

import "errors"

// Failure categories for browser operations. Errors returned by a Session wrap
// exactly one of these so callers can branch with errors.Is.
var (
	ErrLaunch          = errors.New("browser launch failed")
	ErrNavigation      = errors.New("navigation failed")
	ErrElementNotFound = errors.New("element not found")
	ErrTimeout         = errors.New("timed out waiting for condition")
)

// Kind returns the failure category wrapped by err, or nil when err carries none
func Kind(err error) error {
	for _, kind := range []error{ErrLaunch, ErrNavigation, ErrElementNotFound, ErrTimeout} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
