package ecc

import (
	"fmt"
	"reflect"

	"github.com/df-mc/dragonfly/server/world"
)

// blueprint is the synthesized container layout for one concrete entity
// type: a fixed slot per resolved key plus a dense KeyID→slot table, so
// component access is a pair of array indexes rather than a map lookup.
// Blueprints are built at most once per type and shared by every container
// of that type.
type blueprint struct {
	etype *Type
	keys  []*Key
	mask  Bitmask

	// slots maps KeyID to the component slot index, -1 when absent.
	slots [MaxKeys]int16

	// factories holds the nil-checked factories in resolution order;
	// impls holds the declared storage type per slot.
	factories []Factory
	impls     []reflect.Type
}

func newBlueprint(t *Type) *blueprint {
	bp := &blueprint{etype: t}
	for i := range bp.slots {
		bp.slots[i] = -1
	}
	return bp
}

// ContainerFactory instantiates containers for one concrete entity type.
// Obtained from Registry.FactoryFor; safe for concurrent use.
type ContainerFactory struct {
	bp *blueprint
}

// emptyFactory is shared by every type whose resolution short-circuits with
// no applicable registrations.
var emptyFactory = &ContainerFactory{bp: newBlueprint(nil)}

// Type returns the concrete entity type the factory was synthesized for,
// or nil for the shared empty factory.
func (f *ContainerFactory) Type() *Type {
	return f.bp.etype
}

// Keys returns the resolved component keys in resolution order.
func (f *ContainerFactory) Keys() []*Key {
	keys := make([]*Key, len(f.bp.keys))
	copy(keys, f.bp.keys)
	return keys
}

// Create builds a fully populated container for the entity owning h. Every
// slot's factory runs in resolution order; the container only becomes
// visible to the caller once all slots are filled.
func (f *ContainerFactory) Create(h *world.EntityHandle) *Container {
	bp := f.bp
	if len(bp.keys) == 0 {
		return &Container{bp: bp}
	}

	components := make([]Component, len(bp.keys))
	for i, factory := range bp.factories {
		components[i] = factory(h)
	}

	c := &Container{bp: bp, components: components}
	for i, comp := range components {
		if _, ok := comp.(ServerTicking); ok {
			c.serverTicking = append(c.serverTicking, int16(i))
		}
		if _, ok := comp.(ClientTicking); ok {
			c.clientTicking = append(c.clientTicking, int16(i))
		}
	}
	return c
}

// FactoryFor returns the specialized container factory for the concrete
// entity type t, synthesizing it on the first request and returning the
// cached factory unchanged afterwards.
//
// The first FactoryFor call on a registry runs the bulk-registration pass
// and seals the registry. Concurrent first requests for the same type
// converge on a single synthesized factory.
func (r *Registry) FactoryFor(t *Type) *ContainerFactory {
	r.ensureInitialized()

	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.blueprints[t]; ok {
		return f
	}
	f := r.synthesize(t)
	r.blueprints[t] = f
	return f
}

// synthesize builds the container factory for t from its resolved mapping.
// Caller holds r.mu.
func (r *Registry) synthesize(t *Type) *ContainerFactory {
	m := r.resolve(t)
	if m == nil {
		return emptyFactory
	}

	bp := newBlueprint(t)
	for i, k := range m.keys {
		impl := m.impls[k]
		if impl != nil && !implementsCapability(impl, k.typ) {
			panic(fmt.Sprintf("ecc: failed to synthesize container for %s: implementation %v does not satisfy %v required by %s", t, impl, k.typ, k.id))
		}
		bp.keys = append(bp.keys, k)
		bp.slots[k.kid] = int16(i)
		bp.mask.Set(k.kid)
		bp.factories = append(bp.factories, m.factories[k])
		bp.impls = append(bp.impls, impl)
	}
	return &ContainerFactory{bp: bp}
}

// implementsCapability reports whether the stored implementation type can
// serve the key's declared capability type.
func implementsCapability(impl, capability reflect.Type) bool {
	if impl == capability {
		return true
	}
	return impl.AssignableTo(capability)
}
