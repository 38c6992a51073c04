package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertResolved checks that the report contains the line printed for a
// successfully resolved name. It abstracts the report line format, making
// tests more resilient to changes in it.
func AssertResolved(t *testing.T, result *HarnessResult, name, goType string) {
	t.Helper()

	expected := fmt.Sprintf("%s => %s (", name, goType)
	require.True(t,
		strings.Contains(result.Output, expected),
		"expected '%s' to resolve to '%s', output:\n%s", name, goType, result.Output,
	)
}

// AssertUnresolved checks that the report contains a failure line for name.
func AssertUnresolved(t *testing.T, result *HarnessResult, name string) {
	t.Helper()

	expected := fmt.Sprintf("%s => error: ", name)
	require.True(t,
		strings.Contains(result.Output, expected),
		"expected '%s' to fail resolution, output:\n%s", name, result.Output,
	)
}

// AssertField checks that a record field line was reported with goType.
func AssertField(t *testing.T, result *HarnessResult, field, goType string) {
	t.Helper()

	expected := fmt.Sprintf("  %s: %s\n", field, goType)
	require.True(t,
		strings.Contains(result.Output, expected),
		"expected field '%s' of type '%s', output:\n%s", field, goType, result.Output,
	)
}
