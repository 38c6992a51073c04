package app_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/avrotype/internal/app"
	"github.com/vk/avrotype/internal/testutil"
	"github.com/vk/avrotype/registry"
	"github.com/vk/avrotype/resolver"
)

type (
	user   struct{ ID int64 }
	status int32
)

func acmeSource() registry.Source {
	m := registry.NewModule("acme")
	registry.Register[user](m, "com.acme.User")
	registry.Register[status](m, "com.acme.Status")
	return m
}

const userSchema = `{
  "type": "record",
  "name": "User",
  "namespace": "com.acme",
  "doc": "A registered user.",
  "fields": [
    {"name": "id", "type": "long"},
    {"name": "email", "type": ["null", "string"]},
    {"name": "tags", "type": {"type": "array", "items": "string"}},
    {"name": "status", "type": {"type": "enum", "name": "Status", "symbols": ["ACTIVE", "GONE"]}},
    {"name": "friends", "type": {"type": "map", "values": "User"}},
    {"name": "extra", "type": ["null", "int", "string"]}
  ]
}`

func TestApp_ReportsNamedSchemas(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"schemas/user.avsc": userSchema,
		"schemas/notes.txt": "ignored",
	}

	// --- Act ---
	result := testutil.RunApp(t, files, app.Config{}, acmeSource())

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertResolved(t, result, "com.acme.User", "com.acme.User")
	testutil.AssertResolved(t, result, "com.acme.Status", "com.acme.Status")
	testutil.AssertField(t, result, "id", "int64")
	testutil.AssertField(t, result, "email", "*string")
	testutil.AssertField(t, result, "tags", "[]string")
	testutil.AssertField(t, result, "status", "com.acme.Status")
	testutil.AssertField(t, result, "friends", "map[string]com.acme.User")
	testutil.AssertField(t, result, "extra", "any")
	require.Contains(t, result.Output, "com.acme.User (object)\n  doc: A registered user.\n")
	require.Contains(t, result.Output, "Resolution finished.")
}

func TestApp_ReportsFailures(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"schemas/a.avsc": `{"type": "fixed", "name": "MD5", "namespace": "org.hash", "size": 16}`,
		"schemas/b.yaml": "type: record\nname: Broken\nfields: 7\n",
	}

	result := testutil.RunApp(t, files, app.Config{})

	require.ErrorIs(t, result.Err, app.ErrUnresolved)
	testutil.AssertUnresolved(t, result, "org.hash.MD5")
	require.Contains(t, result.Output, "b.yaml: error:")
}

func TestApp_ConfigAliasesAndPreferredModule(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"config/main.hcl": `
resolver {
  preferred_module = "wellknown"
  modules          = ["wellknown"]
}

alias "com.acme.Id" {
  target = "uuid.UUID"
}
`,
		"schemas/id.avsc": `{"type": "fixed", "name": "Id", "namespace": "com.acme", "size": 16}`,
	}

	result := testutil.RunApp(t, files, app.Config{})

	require.NoError(t, result.Err)
	testutil.AssertResolved(t, result, "com.acme.Id", "uuid.UUID")
}

func TestApp_StartupErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		config  string
		wantErr string
	}{
		{
			name:    "unknown module",
			config:  "resolver {\n  modules = [\"nope\"]\n}\n",
			wantErr: "unknown module 'nope'",
		},
		{
			name:    "preferred module not loaded",
			config:  "resolver {\n  preferred_module = \"acme\"\n}\n",
			wantErr: "preferred module 'acme' is not loaded",
		},
		{
			name:    "broken config",
			config:  "resolver {",
			wantErr: "failed to load configuration",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			files := map[string]string{"config/main.hcl": tc.config}

			result := testutil.RunApp(t, files, app.Config{Name: "int32"})

			require.Error(t, result.Err)
			require.Contains(t, result.Err.Error(), "application startup panicked")
			require.Contains(t, result.Err.Error(), tc.wantErr)
			require.Nil(t, result.App)
		})
	}
}

func TestApp_ResolveSingleName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		container resolver.Container
		wantType  string
		wantNew   string
	}{
		{name: "int64", container: resolver.ArrayOf, wantType: "[]int64", wantNew: "  new: []int64\n"},
		{name: "Nullable<int32>", container: resolver.None, wantType: "*int32", wantNew: "  new: *int32\n"},
		{name: "uuid.UUID", container: resolver.MapOf, wantType: "map[string]uuid.UUID", wantNew: "  new: map[string]uuid.UUID\n"},
		{name: "error", container: resolver.None, wantType: "error", wantNew: "  new: error: "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := testutil.RunApp(t, nil, app.Config{Name: tc.name, Container: tc.container})

			require.NoError(t, result.Err)
			testutil.AssertResolved(t, result, tc.name, tc.wantType)
			require.Contains(t, result.Output, tc.wantNew)
		})
	}

	result := testutil.RunApp(t, nil, app.Config{Name: "ns.Missing"})
	require.ErrorIs(t, result.Err, app.ErrUnresolved)
	testutil.AssertUnresolved(t, result, "ns.Missing")
}

func TestApp_ExtraSourcesAreVisible(t *testing.T) {
	t.Parallel()

	result := testutil.RunApp(t, nil, app.Config{Name: "User"}, acmeSource())

	require.NoError(t, result.Err)
	src, ok := result.App.Registry().Source("acme")
	require.True(t, ok)
	require.Equal(t, "acme", src.Name())
	require.Equal(t, int64(1), result.App.Resolver().Stats().Scans)
}
