package ecc

import (
	"strings"
)

// Container holds the components attached to one entity.
//
// Containers are shape-immutable: the set of component slots is fixed when
// the container's blueprint is synthesized and never changes afterwards.
// The component instances themselves may be mutated by their owners.
type Container struct {
	bp         *blueprint
	components []Component

	// serverTicking and clientTicking index the slots whose components
	// implement the respective ticking interface, in resolution order.
	serverTicking []int16
	clientTicking []int16
}

// Keys returns the fixed set of component keys in resolution order. The
// returned slice is a copy; mutating it does not affect the container.
func (c *Container) Keys() []*Key {
	keys := make([]*Key, len(c.bp.keys))
	copy(keys, c.bp.keys)
	return keys
}

// HasComponents reports whether the container holds any component.
func (c *Container) HasComponents() bool {
	return len(c.components) > 0
}

// Has reports whether the container holds a component for key.
func (c *Container) Has(k *Key) bool {
	return c.bp.slots[k.kid] >= 0
}

// Get returns the component stored under k.
func (c *Container) Get(k *Key) (Component, bool) {
	slot := c.bp.slots[k.kid]
	if slot < 0 {
		return nil, false
	}
	return c.components[slot], true
}

// GetComponent returns the component stored under k in c as type C.
// Returns false if the container does not hold the key or the component is
// not a C.
func GetComponent[C Component](c *Container, k *Key) (C, bool) {
	var zero C
	if c == nil {
		return zero, false
	}
	comp, ok := c.Get(k)
	if !ok {
		return zero, false
	}
	typed, ok := comp.(C)
	if !ok {
		return zero, false
	}
	return typed, true
}

// CopyFrom copies serializable state from other into c for every key
// present in both containers. Keys held by only one side are left
// untouched; CopyFrom never adds or removes slots.
func (c *Container) CopyFrom(other *Container) {
	if other == nil {
		return
	}
	shared := c.bp.mask.And(other.bp.mask)
	if shared.IsZero() {
		return
	}
	for i, k := range c.bp.keys {
		if !shared.Has(k.kid) {
			continue
		}
		src, _ := other.Get(k)
		copyComponent(src, c.components[i])
	}
}

// TickServerComponents ticks every ServerTicking component in resolution
// order.
func (c *Container) TickServerComponents() {
	for _, i := range c.serverTicking {
		c.components[i].(ServerTicking).TickServer()
	}
}

// TickClientComponents ticks every ClientTicking component in resolution
// order.
func (c *Container) TickClientComponents() {
	for _, i := range c.clientTicking {
		c.components[i].(ClientTicking).TickClient()
	}
}

// componentsTagKey namespaces container data inside a shared NBT compound,
// keeping unrelated entries in the same tag untouched.
const componentsTagKey = "ecc_components"

// ToNBT writes every component's serializable state to tag, each under its
// key id inside a single namespaced sub-compound, and returns tag. Entries
// already present in tag are preserved; components encoding no state are
// skipped.
func (c *Container) ToNBT(tag map[string]any) map[string]any {
	if tag == nil {
		tag = make(map[string]any)
	}
	if len(c.components) == 0 {
		return tag
	}

	sub, _ := tag[componentsTagKey].(map[string]any)
	if sub == nil {
		sub = make(map[string]any, len(c.components))
	}
	for i, k := range c.bp.keys {
		data := c.components[i].EncodeNBT()
		if len(data) == 0 {
			continue
		}
		sub[k.id] = data
	}
	if len(sub) > 0 {
		tag[componentsTagKey] = sub
	}
	return tag
}

// FromNBT restores component state from tag. Components whose data is
// missing or malformed keep their default-constructed state; foreign keys
// in the tag are ignored. FromNBT never fails the whole read.
func (c *Container) FromNBT(tag map[string]any) {
	sub, ok := tag[componentsTagKey].(map[string]any)
	if !ok {
		return
	}
	for i, k := range c.bp.keys {
		data, ok := sub[k.id].(map[string]any)
		if !ok {
			continue
		}
		c.components[i].DecodeNBT(data)
	}
}

// String returns a string representation of the container for debugging.
func (c *Container) String() string {
	ids := make([]string, len(c.bp.keys))
	for i, k := range c.bp.keys {
		ids[i] = k.id
	}
	return "Container{Type: " + c.bp.etype.String() + ", Components: [" + strings.Join(ids, ", ") + "]}"
}
