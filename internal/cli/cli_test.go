package cli

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/avrotype/internal/app"
	"github.com/vk/avrotype/resolver"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		args     []string
		want     *app.Config
		wantExit bool
		wantCode int
	}{
		{
			name: "paths with defaults",
			args: []string{"a.avsc", "schemas"},
			want: &app.Config{SchemaPaths: []string{"a.avsc", "schemas"}, LogFormat: "text", LogLevel: "info"},
		},
		{
			name: "all options",
			args: []string{"-config", "conf", "-name", "com.acme.User", "-container", "MAP", "-serve-port", "8080", "-log-format", "JSON", "-log-level", "debug"},
			want: &app.Config{
				ConfigPath:  "conf",
				Name:        "com.acme.User",
				Container:   resolver.MapOf,
				LogFormat:   "json",
				LogLevel:    "debug",
				ServePort:   8080,
			},
		},
		{name: "help", args: []string{"-h"}, wantExit: true},
		{name: "nothing to do", args: nil, wantExit: true},
		{name: "unknown flag", args: []string{"-nope"}, wantCode: 2},
		{name: "bad log format", args: []string{"-log-format", "xml", "x.avsc"}, wantCode: 2},
		{name: "bad log level", args: []string{"-log-level", "loud", "x.avsc"}, wantCode: 2},
		{name: "bad container", args: []string{"-name", "int", "-container", "set"}, wantCode: 2},
		{name: "container without name", args: []string{"-container", "array", "x.avsc"}, wantCode: 2},
		{name: "bad port", args: []string{"-serve-port", "-1", "x.avsc"}, wantCode: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := &bytes.Buffer{}

			got, exit, err := Parse(tc.args, out)

			if tc.wantCode != 0 {
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tc.wantCode, exitErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExit, exit)
			if tc.wantExit {
				assert.Contains(t, out.String(), "Usage:")
				return
			}
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
