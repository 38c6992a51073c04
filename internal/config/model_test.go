package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestModel_Merge(t *testing.T) {
	t.Run("combines models", func(t *testing.T) {
		m := NewModel()
		require.NoError(t, m.Merge(&Model{Modules: []string{"wellknown"}, Aliases: map[string]string{"Id": "uuid.UUID"}}))
		require.NoError(t, m.Merge(&Model{PreferredModule: "wellknown", Modules: []string{"wellknown", "extra"}}))
		require.NoError(t, m.Merge(nil))

		want := &Model{
			PreferredModule: "wellknown",
			Modules:         []string{"wellknown", "extra"},
			Aliases:         map[string]string{"Id": "uuid.UUID"},
		}
		if diff := cmp.Diff(want, m); diff != "" {
			t.Errorf("merged model mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("conflicting alias", func(t *testing.T) {
		m := &Model{Aliases: map[string]string{"Id": "uuid.UUID"}}
		err := m.Merge(&Model{Aliases: map[string]string{"Id": "string"}})
		require.ErrorContains(t, err, "alias 'Id' defined twice")
	})

	t.Run("same alias twice is fine", func(t *testing.T) {
		m := &Model{}
		require.NoError(t, m.Merge(&Model{Aliases: map[string]string{"Id": "uuid.UUID"}}))
		require.NoError(t, m.Merge(&Model{Aliases: map[string]string{"Id": "uuid.UUID"}}))
	})
}
