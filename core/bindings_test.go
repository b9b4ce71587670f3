package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBindingStorageAddNewKey(t *testing.T) {
	b := NewBindingStorage()
	require.NoError(t, b.Add("x", NewIntegerValue(1)))
	v, ok := b.Lookup("x")
	require.True(t, ok)
	require.True(t, v.Equal(NewIntegerValue(1)))
}

func TestBindingStorageAddSameValueSucceeds(t *testing.T) {
	b := NewBindingStorage()
	require.NoError(t, b.Add("x", NewIntegerValue(1)))
	require.NoError(t, b.Add("x", NewIntegerValue(1)))
}

func TestBindingStorageAddConflictingValueFails(t *testing.T) {
	b := NewBindingStorage()
	require.NoError(t, b.Add("x", NewIntegerValue(1)))
	err := b.Add("x", NewIntegerValue(2))
	require.Error(t, err)
	var ce BindingConflictError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "x", ce.Name)
}

func TestBindingStorageLookupMissing(t *testing.T) {
	b := NewBindingStorage()
	_, ok := b.Lookup("missing")
	require.False(t, ok)
}

func TestBindingStorageRemove(t *testing.T) {
	b := NewBindingStorage()
	require.NoError(t, b.Add("x", NewIntegerValue(7)))

	v, ok := b.Remove("x")
	require.True(t, ok)
	require.True(t, v.Equal(NewIntegerValue(7)))

	_, ok = b.Lookup("x")
	require.False(t, ok)

	_, ok = b.Remove("x")
	require.False(t, ok)
}

func TestBindingStorageNames(t *testing.T) {
	b := NewBindingStorage()
	require.NoError(t, b.Add("x", NewIntegerValue(1)))
	require.NoError(t, b.Add("y", NewIntegerValue(2)))
	names := b.Names()
	require.ElementsMatch(t, []string{"x", "y"}, names)
}
