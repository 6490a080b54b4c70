package config

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Register(Entry{
		Key:      "defaults.buildSystem",
		Type:     KindString,
		Default:  String("cmake"),
		Category: "defaults",
	}))
	require.NoError(t, r.Register(Entry{
		Key:      "behavior.parallelJobs",
		Type:     KindInt,
		Default:  Int(0),
		Category: "behavior",
	}))
	return r
}

func TestResolverFirstMatchWins(t *testing.T) {
	session := NewStore()
	user := NewStore()
	global := NewStore()

	require.NoError(t, global.Set("defaults.buildSystem", String("make")))
	require.NoError(t, user.Set("defaults.buildSystem", String("meson")))
	require.NoError(t, session.Set("defaults.buildSystem", String("bazel")))

	r := NewResolver(testRegistry(t), nil, nil, session, nil, user, global)

	v, src, err := r.Resolve("defaults.buildSystem")
	require.NoError(t, err)
	assert.Equal(t, SourceSession, src)
	assert.True(t, v.Equal(String("bazel")))

	// Dropping the winner exposes the next source down.
	session.Remove("defaults.buildSystem")
	v, src, err = r.Resolve("defaults.buildSystem")
	require.NoError(t, err)
	assert.Equal(t, SourceUser, src)
	assert.True(t, v.Equal(String("meson")))
}

func TestResolverRegistryDefaultFallback(t *testing.T) {
	r := NewResolver(testRegistry(t), nil, nil, NewStore(), NewStore(), NewStore(), NewStore())

	v, src, err := r.Resolve("defaults.buildSystem")
	require.NoError(t, err)
	assert.Equal(t, SourceDefault, src)
	assert.True(t, v.Equal(String("cmake")))
}

func TestResolverUnknownKey(t *testing.T) {
	r := NewResolver(testRegistry(t), nil, nil, NewStore(), NewStore(), NewStore(), NewStore())

	v, src, err := r.Resolve("nobody.registered.this")
	require.NoError(t, err)
	assert.Equal(t, SourceNone, src)
	assert.True(t, v.IsZero())

	_, _, err = r.Resolve("not a key")
	assert.ErrorIs(t, err, errors.ErrInvalidKey)
}

func TestResolverObjectsShadowNotMerge(t *testing.T) {
	user := NewStore()
	global := NewStore()

	require.NoError(t, global.Set("network.proxy", String("http://global")))
	require.NoError(t, global.Set("network.timeout", Int(30)))
	require.NoError(t, user.Set("network.proxy", String("http://user")))

	r := NewResolver(nil, nil, nil, nil, nil, user, global)

	// The user scope's "network" object wins whole; the global-only member
	// does not bleed through when the subtree itself is requested.
	v, src, err := r.Resolve("network")
	require.NoError(t, err)
	assert.Equal(t, SourceUser, src)
	obj, err := v.AsObject()
	require.NoError(t, err)
	assert.Len(t, obj, 1)
	_, hasTimeout := obj["timeout"]
	assert.False(t, hasTimeout)

	// Per-leaf resolution still sees the global-only member.
	v, src, err = r.Resolve("network.timeout")
	require.NoError(t, err)
	assert.Equal(t, SourceGlobal, src)
	assert.True(t, v.Equal(Int(30)))
}

// TestResolverPrecedenceProperty checks the precedence invariant over random
// populations: whatever subset of sources holds the key, the winner is always
// the highest-precedence one.
func TestResolverPrecedenceProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)

	order := []Source{
		SourceCommandLine,
		SourceEnvironment,
		SourceSession,
		SourceProject,
		SourceUser,
		SourceGlobal,
	}

	properties.Property("highest populated source always wins", prop.ForAll(
		func(populated []bool) bool {
			stores := make([]*Store, len(order))
			var want Source
			var wantValue Value
			for i, src := range order {
				stores[i] = NewStore()
				if !populated[i] {
					continue
				}
				v := String(src.String())
				if err := stores[i].Set("defaults.buildSystem", v); err != nil {
					return false
				}
				if want == SourceNone {
					want = src
					wantValue = v
				}
			}

			r := NewResolver(nil, stores[0], stores[1], stores[2], stores[3], stores[4], stores[5])
			v, src, err := r.Resolve("defaults.buildSystem")
			if err != nil {
				return false
			}
			if want == SourceNone {
				return src == SourceNone && v.IsZero()
			}
			return src == want && v.Equal(wantValue)
		},
		gen.SliceOfN(len(order), gen.Bool()),
	))

	properties.TestingRun(t)
}
