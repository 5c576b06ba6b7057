package keyset_test

import (
	"testing"

	"github.com/ada-tools/ccbor/internal/keyset"
	"github.com/ada-tools/ccbor/value"
	"github.com/stretchr/testify/require"
)

func TestEqualDistinguishesMajorTypes(t *testing.T) {
	require.False(t, keyset.Equal(value.Unsigned{V: 1}, value.Text{V: "1"}))
	require.False(t, keyset.Equal(value.True, value.Unsigned{V: 1}))
	require.False(t, keyset.Equal(value.Bytes{V: []byte("a")}, value.Text{V: "a"}))
	require.True(t, keyset.Equal(value.Unsigned{V: 1}, value.Unsigned{V: 1}))
}

func TestSetDetectsDuplicatesAcrossTypes(t *testing.T) {
	s := keyset.NewSet()
	require.True(t, s.Add(value.Unsigned{V: 1}))
	require.True(t, s.Add(value.Text{V: "1"})) // different major type, not a dup
	require.False(t, s.Add(value.Unsigned{V: 1}))
	require.Equal(t, 2, s.Len())
}

func TestSetHandlesFingerprintCollisionSafely(t *testing.T) {
	s := keyset.NewSet()
	// Distinct arrays that may or may not collide in fingerprint space;
	// regardless, both must be tracked as distinct members.
	require.True(t, s.Add(value.Array{Items: []value.Value{value.Unsigned{V: 1}, value.Unsigned{V: 2}}}))
	require.True(t, s.Add(value.Array{Items: []value.Value{value.Unsigned{V: 2}, value.Unsigned{V: 1}}}))
	require.Equal(t, 2, s.Len())
}
