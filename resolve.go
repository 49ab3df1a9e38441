package ecc

import (
	"reflect"
)

// resolvedMapping is the effective key→factory set for one concrete entity
// type, in resolution order: the type's own declarations first, then
// ancestor declarations for keys not already present.
type resolvedMapping struct {
	keys      []*Key
	factories map[*Key]Factory
	impls     map[*Key]reflect.Type
}

// materializeDynamic evaluates every predicated registration against a
// newly observed concrete type. Each match becomes an exact registration
// for that type, subject to the usual duplicate detection; the predicated
// entry itself is retained for future types. Caller holds r.mu.
func (r *Registry) materializeDynamic(t *Type) {
	if _, ok := r.seen[t]; ok {
		return
	}
	r.seen[t] = struct{}{}

	for _, dyn := range r.dynamic {
		if dyn.test(t) {
			r.register0(t, dyn.key, dyn.factory, dyn.impl)
		}
	}
}

// resolve computes the effective mapping for the concrete type t: the
// type's own entries are seeded first, then the ancestor chain is walked up
// to (but not including) Root with insert-if-absent merging, so a subtype's
// declaration always shadows an ancestor's for the same key.
//
// Returns nil if no registration applies anywhere in the chain and t is not
// Root: such types need no container. Caller holds r.mu.
func (r *Registry) resolve(t *Type) *resolvedMapping {
	r.materializeDynamic(t)

	m := &resolvedMapping{
		factories: make(map[*Key]Factory),
		impls:     make(map[*Key]reflect.Type),
	}

	merge := func(tt *Type) {
		of := r.factories[tt]
		if of == nil {
			return
		}
		impls := r.impls[tt]
		for _, k := range of.keys {
			if _, ok := m.factories[k]; ok {
				continue
			}
			m.keys = append(m.keys, k)
			m.factories[k] = of.factories[k]
			m.impls[k] = impls[k]
		}
	}

	merge(t)
	for cur := t.parent; cur != nil && cur != Root; cur = cur.parent {
		merge(cur)
	}

	if len(m.keys) == 0 && t != Root {
		return nil
	}
	return m
}
