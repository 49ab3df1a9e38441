package ecc

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyInterns(t *testing.T) {
	id := uniqueName("intern")

	k1 := NewKey[*health](id)
	k2 := NewKey[*health](id)

	assert.Same(t, k1, k2)
	assert.Equal(t, id, k1.ID())
	assert.Equal(t, id, k1.String())
	assert.Equal(t, reflect.TypeOf((*health)(nil)), k1.ComponentType())

	found, ok := LookupKey(id)
	require.True(t, ok)
	assert.Same(t, k1, found)
}

func TestNewKeyTypeConflictPanics(t *testing.T) {
	id := uniqueName("conflict")
	NewKey[*health](id)

	require.Panics(t, func() {
		NewKey[*mana](id)
	})
}

func TestLookupKeyMissing(t *testing.T) {
	_, ok := LookupKey(uniqueName("never-created"))
	assert.False(t, ok)
}

func TestKeyGetNilContainer(t *testing.T) {
	k := NewKey[*health](uniqueName("nilget"))
	assert.Nil(t, k.Get(nil))
}
