package ecc

import (
	"log/slog"
	"sync"

	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/google/uuid"
)

// Store tracks the container attached to each live entity. One Store
// typically serves a whole server, backed by one Registry.
type Store struct {
	registry *Registry

	mu         sync.RWMutex
	containers map[*world.EntityHandle]*Container
	byUUID     map[uuid.UUID]*Container

	snapMu    sync.Mutex
	snapshots map[uuid.UUID]*respawnSnapshot
}

// respawnSnapshot holds a dead player's container until the respawn
// completes.
type respawnSnapshot struct {
	container     *Container
	keepInventory bool
}

// NewStore returns an empty store resolving containers through r.
func NewStore(r *Registry) *Store {
	return &Store{
		registry:   r,
		containers: make(map[*world.EntityHandle]*Container),
		byUUID:     make(map[uuid.UUID]*Container),
		snapshots:  make(map[uuid.UUID]*respawnSnapshot),
	}
}

// Registry returns the registry backing the store.
func (s *Store) Registry() *Registry {
	return s.registry
}

// Attach creates a container for an entity of type t and associates it
// with h. Attaching a handle that already has a container replaces it.
func (s *Store) Attach(h *world.EntityHandle, t *Type) *Container {
	c := s.registry.FactoryFor(t).Create(h)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.containers[h] = c
	return c
}

// AttachPlayer creates a container for p and associates it with both the
// player's handle and UUID.
func (s *Store) AttachPlayer(p *player.Player) *Container {
	return s.attachPlayer(p.H(), p.UUID())
}

func (s *Store) attachPlayer(h *world.EntityHandle, id uuid.UUID) *Container {
	c := s.registry.FactoryFor(Player).Create(h)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.containers[h] = c
	s.byUUID[id] = c
	return c
}

// Container returns the container attached to h, or nil if none is
// attached.
func (s *Store) Container(h *world.EntityHandle) *Container {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containers[h]
}

// PlayerContainer returns the container attached to the player with the
// given UUID, or nil if none is attached.
func (s *Store) PlayerContainer(id uuid.UUID) *Container {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byUUID[id]
}

// Detach removes the container attached to h and returns it, or nil if
// none was attached.
func (s *Store) Detach(h *world.EntityHandle) *Container {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.containers[h]
	if !ok {
		return nil
	}
	delete(s.containers, h)
	for id, pc := range s.byUUID {
		if pc == c {
			delete(s.byUUID, id)
			break
		}
	}
	return c
}

// SnapshotDeath records the dying player's container so ApplyRespawn can
// carry component data over to the fresh one.
func (s *Store) SnapshotDeath(id uuid.UUID, keepInventory bool) {
	c := s.PlayerContainer(id)
	if c == nil {
		return
	}
	s.snapMu.Lock()
	defer s.snapMu.Unlock()
	s.snapshots[id] = &respawnSnapshot{container: c, keepInventory: keepInventory}
}

// ApplyRespawn attaches a fresh container to the respawned player and
// copies data over from the death snapshot according to each key's
// respawn strategy.
func (s *Store) ApplyRespawn(h *world.EntityHandle, id uuid.UUID) *Container {
	fresh := s.attachPlayer(h, id)

	s.snapMu.Lock()
	snap, ok := s.snapshots[id]
	delete(s.snapshots, id)
	s.snapMu.Unlock()

	if !ok {
		slog.Debug("ecc: respawn without death snapshot", "uuid", id)
		return fresh
	}
	s.registry.CopyForRespawn(snap.container, fresh, false, snap.keepInventory, true)
	return fresh
}

// All calls f for every attached container. The iteration order is
// unspecified; f must not call back into the store.
func (s *Store) All(f func(h *world.EntityHandle, c *Container)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for h, c := range s.containers {
		f(h, c)
	}
}
