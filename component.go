package ecc

// Component is a typed, optional extension attached to a single entity.
//
// Every component persists through NBT so that containers can be saved,
// copied and transferred across respawns without knowing the component's
// concrete type.
type Component interface {
	// EncodeNBT writes the component's serializable state to a new NBT
	// compound. Components with no persistent state may return nil.
	EncodeNBT() map[string]any

	// DecodeNBT restores the component's state from a compound produced by
	// EncodeNBT. Implementations must not assume the data follows any
	// particular scheme: saved data may come from an older version or have
	// been tampered with, and missing or mistyped entries must leave the
	// affected fields at their defaults.
	DecodeNBT(data map[string]any)
}

// ServerTicking is implemented by components that need a tick on the server
// side. Container.TickServerComponents invokes TickServer in resolution
// order.
type ServerTicking interface {
	Component
	TickServer()
}

// ClientTicking is implemented by components that need a tick on the client
// side.
type ClientTicking interface {
	Component
	TickClient()
}

// Copyable is implemented by components that can transfer state directly.
// Container.CopyFrom and respawn strategies prefer CopyFrom over an NBT
// round-trip when the destination component implements it.
type Copyable interface {
	Component
	CopyFrom(other Component)
}

// copyComponent transfers state from src into dst, using the Copyable fast
// path when available and an NBT round-trip otherwise.
func copyComponent(src, dst Component) {
	if c, ok := dst.(Copyable); ok {
		c.CopyFrom(src)
		return
	}
	data := src.EncodeNBT()
	if data == nil {
		data = map[string]any{}
	}
	dst.DecodeNBT(data)
}
