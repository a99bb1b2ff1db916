package browser

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "unrelated", err: errors.New("boom"), want: nil},
		{name: "timeout", err: fmt.Errorf("%w: class=inventory_item", ErrTimeout), want: ErrTimeout},
		{name: "not found", err: fmt.Errorf("%w: id=checkout", ErrElementNotFound), want: ErrElementNotFound},
		{name: "navigation", err: fmt.Errorf("step: %w", fmt.Errorf("%w: url", ErrNavigation)), want: ErrNavigation},
		{name: "launch", err: fmt.Errorf("%w: no chromium", ErrLaunch), want: ErrLaunch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}
