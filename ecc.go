// Package ecc provides static entity component containers for Dragonfly
// servers.
//
// ECC lets independent plugins attach typed, optional components to entity
// kinds without touching the entity implementation:
//   - Interned component keys with O(1) typed access
//   - Per-kind factory registration with hierarchy inheritance and shadowing
//   - One-time container synthesis per concrete entity kind, cached for the
//     process lifetime
//   - NBT persistence namespaced per component key
//   - Respawn copy strategies for player components
//
// # Quick Start
//
// Declare a key and register factories from your plugin initializer:
//
//	var manaKey = ecc.NewKey[*Mana]("myplugin:mana")
//
//	registry := ecc.NewRegistry(func(r *ecc.Registry) {
//	    r.RegisterForPlayers(manaKey, func(*world.EntityHandle) ecc.Component {
//	        return &Mana{Current: 100, Max: 100}
//	    })
//	})
//
//	store := ecc.NewStore(registry)
//	for p := range srv.Accept() {
//	    store.AttachPlayer(p)
//	    p.Handle(ecc.NewRespawnHandler(store))
//	}
//
// The first call that resolves a container factory seals the registry: any
// registration attempted afterwards is a plugin bug and panics.
//
// # Components
//
// Components are plain Go structs implementing EncodeNBT/DecodeNBT:
//
//	type Mana struct {
//	    Current, Max float64
//	}
//
//	mana, ok := ecc.GetComponent[*Mana](container, manaKey)
//
// Components may additionally implement ServerTicking, ClientTicking or
// Copyable to hook into container ticks and state transfer.
//
// # Entity kinds
//
// The entity hierarchy is described by interned *Type descriptors rooted at
// ecc.Root. Factories registered on an ancestor kind apply to every subtype
// unless a kind closer to the concrete one redeclares the same key.
package ecc

// Version is the ECC version.
const Version = "1.0.0"
