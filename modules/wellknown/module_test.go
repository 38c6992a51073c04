package wellknown

import (
	"encoding/json"
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/avrotype/registry"
	"github.com/vk/avrotype/resolver"
)

func TestModule_Register(t *testing.T) {
	reg := registry.New(nil)
	(&Module{}).Register(reg)

	src, ok := reg.Source(Name)
	require.True(t, ok)
	types, err := src.Types()
	require.NoError(t, err)
	assert.NotEmpty(t, types)
	for _, typ := range types {
		assert.Equal(t, Name, typ.Module)
	}
}

func TestWellKnown_ResolvesThroughResolver(t *testing.T) {
	reg := registry.New(nil)
	reg.Load(New())
	r := resolver.New(reg)

	testCases := []struct {
		name string
		want reflect.Type
	}{
		{name: "time.Time", want: reflect.TypeFor[time.Time]()},
		{name: "Duration", want: reflect.TypeFor[time.Duration]()},
		{name: "uuid.UUID", want: reflect.TypeFor[uuid.UUID]()},
		{name: "Rat", want: reflect.TypeFor[big.Rat]()},
		{name: "json.RawMessage", want: reflect.TypeFor[json.RawMessage]()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := r.Resolve(tc.name)
			require.NoError(t, err)
			assert.Equal(t, resolver.KindNamed, h.Kind())
			assert.Equal(t, tc.want, h.Type())
		})
	}

	h, err := r.Resolve("List<time.Time?>")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[[]time.Time](), h.Type(), "named types are never made optional")
}

func TestWellKnown_Constructors(t *testing.T) {
	reg := registry.New(nil)
	reg.Load(New())
	r := resolver.New(reg)

	v, err := r.New("uuid.UUID", resolver.None)
	require.NoError(t, err)
	id, ok := v.(*uuid.UUID)
	require.True(t, ok)
	assert.Equal(t, uuid.Nil, *id)

	again, err := r.New("uuid.UUID", resolver.None)
	require.NoError(t, err)
	assert.NotSame(t, id, again, "each call builds a fresh instance")

	v, err = r.New("time.Location", resolver.None)
	require.NoError(t, err)
	assert.NotSame(t, time.UTC, v)
	assert.Equal(t, new(time.Location), v)

	v, err = r.New("big.Rat", resolver.None)
	require.NoError(t, err)
	assert.Equal(t, "0/1", v.(*big.Rat).String())

	v, err = r.New("time.Duration", resolver.None)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), v)

	v, err = r.New("json.RawMessage", resolver.ArrayOf)
	require.NoError(t, err)
	assert.Equal(t, []json.RawMessage{}, v)
}
