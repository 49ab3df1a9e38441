package ecc

import (
	"testing"

	"github.com/df-mc/dragonfly/server/world"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAttachDetach(t *testing.T) {
	kind := NewType(uniqueName("villager"), nil)
	hp := NewKey[*health](uniqueName("hp"))

	r := NewRegistry()
	r.RegisterFor(kind, hp, healthFactory(20))
	s := NewStore(r)
	assert.Same(t, r, s.Registry())

	h := &world.EntityHandle{}
	c := s.Attach(h, kind)
	require.NotNil(t, c)
	assert.Same(t, c, s.Container(h))

	assert.Same(t, c, s.Detach(h))
	assert.Nil(t, s.Container(h))
	assert.Nil(t, s.Detach(h))
}

func TestStorePlayerContainer(t *testing.T) {
	hp := NewKey[*health](uniqueName("hp"))

	r := NewRegistry()
	r.RegisterForPlayers(hp, healthFactory(20))
	s := NewStore(r)

	h := &world.EntityHandle{}
	id := uuid.New()
	c := s.attachPlayer(h, id)

	assert.Same(t, c, s.Container(h))
	assert.Same(t, c, s.PlayerContainer(id))

	s.Detach(h)
	assert.Nil(t, s.PlayerContainer(id), "detach must drop the uuid index too")
}

func TestStoreAll(t *testing.T) {
	kind := NewType(uniqueName("cow"), nil)
	hp := NewKey[*health](uniqueName("hp"))

	r := NewRegistry()
	r.RegisterFor(kind, hp, healthFactory(10))
	s := NewStore(r)

	h1, h2 := &world.EntityHandle{}, &world.EntityHandle{}
	s.Attach(h1, kind)
	s.Attach(h2, kind)

	seen := map[*world.EntityHandle]bool{}
	s.All(func(h *world.EntityHandle, c *Container) {
		seen[h] = c != nil
	})
	assert.Equal(t, map[*world.EntityHandle]bool{h1: true, h2: true}, seen)
}

func TestStoreRespawnFlow(t *testing.T) {
	hp := NewKey[*health](uniqueName("hp"))
	xp := NewKey[*health](uniqueName("xp"))

	r := NewRegistry()
	r.RegisterForPlayers(hp, healthFactory(20), NeverCopy)
	r.RegisterForPlayers(xp, healthFactory(0), AlwaysCopy)
	s := NewStore(r)

	id := uuid.New()
	old := s.attachPlayer(&world.EntityHandle{}, id)
	oldXP, _ := GetComponent[*health](old, xp)
	oldXP.Current = 150

	s.SnapshotDeath(id, false)

	h2 := &world.EntityHandle{}
	fresh := s.ApplyRespawn(h2, id)
	require.NotSame(t, old, fresh)
	assert.Same(t, fresh, s.PlayerContainer(id))
	assert.Same(t, fresh, s.Container(h2))

	freshXP, _ := GetComponent[*health](fresh, xp)
	assert.Equal(t, 150.0, freshXP.Current)
}

func TestStoreRespawnKeepInventory(t *testing.T) {
	inv := NewKey[*health](uniqueName("inv"))

	r := NewRegistry()
	r.RegisterForPlayers(inv, healthFactory(0), InventoryCopy)
	s := NewStore(r)

	id := uuid.New()
	old := s.attachPlayer(&world.EntityHandle{}, id)
	oldInv, _ := GetComponent[*health](old, inv)
	oldInv.Current = 64

	s.SnapshotDeath(id, true)
	fresh := s.ApplyRespawn(&world.EntityHandle{}, id)

	freshInv, _ := GetComponent[*health](fresh, inv)
	assert.Equal(t, 64.0, freshInv.Current)
}

func TestStoreRespawnSnapshotConsumedOnce(t *testing.T) {
	xp := NewKey[*health](uniqueName("xp"))

	r := NewRegistry()
	r.RegisterForPlayers(xp, healthFactory(0), AlwaysCopy)
	s := NewStore(r)

	id := uuid.New()
	old := s.attachPlayer(&world.EntityHandle{}, id)
	oldXP, _ := GetComponent[*health](old, xp)
	oldXP.Current = 30

	s.SnapshotDeath(id, false)
	first := s.ApplyRespawn(&world.EntityHandle{}, id)
	firstXP, _ := GetComponent[*health](first, xp)
	require.Equal(t, 30.0, firstXP.Current)

	// No snapshot is left; the second respawn starts from defaults.
	second := s.ApplyRespawn(&world.EntityHandle{}, id)
	secondXP, _ := GetComponent[*health](second, xp)
	assert.Equal(t, 0.0, secondXP.Current)
}

func TestStoreSnapshotUnknownPlayer(t *testing.T) {
	s := NewStore(NewRegistry())
	require.NotPanics(t, func() {
		s.SnapshotDeath(uuid.New(), true)
		s.ApplyRespawn(&world.EntityHandle{}, uuid.New())
	})
}
