package testutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/tomeview/internal/cli"
)

// AssertLogged checks that the run's log output contains msg.
func AssertLogged(t *testing.T, result *HarnessResult, msg string) {
	t.Helper()
	require.True(t,
		strings.Contains(result.LogOutput, msg),
		"expected log output to contain %q", msg,
	)
}

// AssertExitCode checks that the run failed with an *cli.ExitError carrying
// code.
func AssertExitCode(t *testing.T, result *HarnessResult, code int) {
	t.Helper()
	var exitErr *cli.ExitError
	require.True(t, errors.As(result.Err, &exitErr), "expected *cli.ExitError, got %T: %v", result.Err, result.Err)
	require.Equal(t, code, exitErr.Code)
}
