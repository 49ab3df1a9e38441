package ecc

import (
	"reflect"
)

// Registration builds a single component registration step by step. It is
// the expanded form of Registry.RegisterFor for cases that need a
// predicate, a narrowed implementation type or a respawn strategy.
//
// A Registration is single-use: configure it and commit with End. Nothing
// is registered until End is called, except for RespawnStrategy which
// takes effect immediately.
type Registration struct {
	registry *Registry
	target   *Type
	key      *Key
	filters  []func(*Type) bool
	impl     reflect.Type
}

// Begin starts a registration of key against target and every type
// descending from it.
func (r *Registry) Begin(target *Type, key *Key) *Registration {
	if target == nil {
		target = Root
	}
	return &Registration{registry: r, target: target, key: key, impl: key.typ}
}

// Filter restricts the registration to types matching test. Multiple
// filters are combined with AND.
func (reg *Registration) Filter(test func(t *Type) bool) *Registration {
	reg.filters = append(reg.filters, test)
	return reg
}

// Impl declares the concrete component type the factory produces, letting
// capability checks run against the narrowed type rather than the key's
// declared type.
func (reg *Registration) Impl(impl reflect.Type) *Registration {
	reg.impl = impl
	return reg
}

// RespawnStrategy sets the respawn strategy for the registration's key.
// The strategy applies to the key as a whole, not only to this
// registration's targets.
func (reg *Registration) RespawnStrategy(s RespawnStrategy) *Registration {
	reg.registry.registerRespawnStrategy(reg.key, s)
	return reg
}

// End commits the registration with the given factory. With no filters
// this is an exact registration on the target; with filters it becomes a
// predicated registration applied to every matching type at resolution
// time.
func (reg *Registration) End(factory Factory) {
	r := reg.registry
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkRegistration("Begin")

	if len(reg.filters) == 0 {
		r.register0(reg.target, reg.key, factory, reg.impl)
		return
	}

	target, filters := reg.target, reg.filters
	test := func(t *Type) bool {
		if !t.Is(target) {
			return false
		}
		for _, f := range filters {
			if !f(t) {
				return false
			}
		}
		return true
	}
	r.dynamic = append(r.dynamic, &predicatedFactory{
		test:    test,
		key:     reg.key,
		factory: factory,
		impl:    reg.impl,
	})
}
