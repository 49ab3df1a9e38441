package ecc

import (
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
)

// RespawnStrategy decides how a player component carries over from a dead
// player's container to the freshly created one. The from component is the
// one attached to the old container, to the one attached to the new.
//
// lossless reports a non-destructive transition such as leaving the End,
// keepInventory whether the keepInventory game rule applies to a death,
// and sameCharacter whether the respawned player is the same character
// (false only for hardcore-style fresh starts).
type RespawnStrategy func(from, to Component, lossless, keepInventory, sameCharacter bool)

var (
	// AlwaysCopy copies the component's data on every respawn.
	AlwaysCopy RespawnStrategy = func(from, to Component, lossless, keepInventory, sameCharacter bool) {
		copyComponent(from, to)
	}
	// LosslessOnly copies only on lossless transitions, never on death.
	LosslessOnly RespawnStrategy = func(from, to Component, lossless, keepInventory, sameCharacter bool) {
		if lossless {
			copyComponent(from, to)
		}
	}
	// InventoryCopy copies on lossless transitions and on deaths where
	// the keepInventory game rule is active.
	InventoryCopy RespawnStrategy = func(from, to Component, lossless, keepInventory, sameCharacter bool) {
		if lossless || keepInventory {
			copyComponent(from, to)
		}
	}
	// CharacterCopy copies whenever the respawned player is the same
	// character. This is the default strategy for player components.
	CharacterCopy RespawnStrategy = func(from, to Component, lossless, keepInventory, sameCharacter bool) {
		if lossless || sameCharacter {
			copyComponent(from, to)
		}
	}
	// NeverCopy never copies; the fresh component keeps its default
	// state.
	NeverCopy RespawnStrategy = func(from, to Component, lossless, keepInventory, sameCharacter bool) {}
)

// registerRespawnStrategy records the strategy to use for key on respawn.
// Registering again for the same key overwrites the previous strategy.
func (r *Registry) registerRespawnStrategy(key *Key, strategy RespawnStrategy) {
	r.respawnMu.Lock()
	defer r.respawnMu.Unlock()
	if r.respawnStrategies == nil {
		r.respawnStrategies = make(map[*Key]RespawnStrategy)
	}
	r.respawnStrategies[key] = strategy
}

// respawnStrategy returns the strategy registered for key, defaulting to
// CharacterCopy.
func (r *Registry) respawnStrategy(key *Key) RespawnStrategy {
	r.respawnMu.Lock()
	defer r.respawnMu.Unlock()
	if s, ok := r.respawnStrategies[key]; ok {
		return s
	}
	return CharacterCopy
}

// CopyForRespawn carries component data over from the old container to the
// fresh one, applying each shared key's respawn strategy.
func (r *Registry) CopyForRespawn(old, fresh *Container, lossless, keepInventory, sameCharacter bool) {
	if old == nil || fresh == nil {
		return
	}
	shared := old.bp.mask.And(fresh.bp.mask)
	if shared.IsZero() {
		return
	}
	for i, k := range fresh.bp.keys {
		if !shared.Has(k.kid) {
			continue
		}
		from, _ := old.Get(k)
		r.respawnStrategy(k)(from, fresh.components[i], lossless, keepInventory, sameCharacter)
	}
}

// RespawnHandler carries player component data across death and respawn.
// Attach it to a player with player.Player.Handle, or compose it into a
// larger handler by forwarding HandleDeath and HandleRespawn.
type RespawnHandler struct {
	player.NopHandler
	store *Store
}

// NewRespawnHandler returns a handler that snapshots a player's container
// on death and applies the registered respawn strategies when the player
// respawns.
func NewRespawnHandler(store *Store) *RespawnHandler {
	return &RespawnHandler{store: store}
}

// HandleDeath snapshots the dying player's container so that component
// data can carry over to the respawned player.
func (h *RespawnHandler) HandleDeath(p *player.Player, src world.DamageSource, keepInv *bool) {
	h.store.SnapshotDeath(p.UUID(), keepInv != nil && *keepInv)
}

// HandleRespawn attaches a fresh container to the respawned player and
// copies data over from the death snapshot.
func (h *RespawnHandler) HandleRespawn(p *player.Player, pos *mgl64.Vec3, w **world.World) {
	h.store.ApplyRespawn(p.H(), p.UUID())
}
