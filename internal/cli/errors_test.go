package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/internal/exitcode"
)

func TestMapExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: exitcode.Success},
		{name: "coded", err: &ExitError{Code: exitcode.InvalidConfig, Err: errors.New("bad")}, want: exitcode.InvalidConfig},
		{name: "silent", err: silentExit(exitcode.NoMatch), want: exitcode.NoMatch},
		{name: "wrapped coded", err: fmt.Errorf("run: %w", withExitCode(exitcode.CasesFailed, errors.New("x"))), want: exitcode.CasesFailed},
		{name: "canceled", err: fmt.Errorf("evaluate: %w", context.Canceled), want: exitcode.Interrupted},
		{name: "unknown command", err: errors.New("unknown command \"x\" for \"songmatch\""), want: exitcode.InvalidUsage},
		{name: "generic", err: errors.New("boom"), want: exitcode.RuntimeFailure},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapExitCode(tc.err); got != tc.want {
				t.Fatalf("mapExitCode() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestWithExitCodeNil(t *testing.T) {
	if err := withExitCode(exitcode.InvalidUsage, nil); err != nil {
		t.Fatalf("withExitCode(nil) = %v, want nil", err)
	}
	if msg := silentExit(exitcode.NoMatch).Error(); msg != "" {
		t.Fatalf("silentExit().Error() = %q, want empty", msg)
	}
}
