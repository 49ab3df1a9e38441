package ecc

import (
	"fmt"
	"sync"
)

// Type describes one entity kind in the host hierarchy. Types are interned
// per namespaced name and immutable; every parent chain terminates at Root.
//
// The hierarchy is explicit rather than derived from Go types: Dragonfly
// expresses entities through interfaces and composition, so kinds are
// modelled as descriptors that plugins and the server agree on.
type Type struct {
	name   string
	parent *Type
}

// Root is the distinguished root of the entity hierarchy. Hierarchy walks
// stop at Root; factories registered on Root apply to Root containers only.
var Root = &Type{name: "ecc:entity"}

// Player is the player entity kind targeted by Registry.RegisterForPlayers.
var Player *Type

var typeRegistry = struct {
	sync.RWMutex
	types map[string]*Type
}{types: map[string]*Type{Root.name: Root}}

func init() {
	Player = NewType("minecraft:player", Root)
}

// NewType interns the entity type with the given namespaced name under
// parent. A nil parent means Root. NewType is idempotent per name;
// re-registering a name under a different parent is a configuration
// conflict between plugins and panics.
func NewType(name string, parent *Type) *Type {
	if parent == nil {
		parent = Root
	}

	typeRegistry.Lock()
	defer typeRegistry.Unlock()

	if existing, ok := typeRegistry.types[name]; ok {
		if existing.parent != parent {
			panic(fmt.Sprintf("ecc: entity type %s already registered under %s, requested %s", name, existing.parent, parent))
		}
		return existing
	}

	t := &Type{name: name, parent: parent}
	typeRegistry.types[name] = t
	return t
}

// LookupType returns the entity type interned under name, if any.
func LookupType(name string) (*Type, bool) {
	typeRegistry.RLock()
	defer typeRegistry.RUnlock()
	t, ok := typeRegistry.types[name]
	return t, ok
}

// Name returns the namespaced name of the type, e.g. "minecraft:zombie".
func (t *Type) Name() string {
	return t.name
}

// Parent returns the immediate ancestor of the type, or nil for Root.
func (t *Type) Parent() *Type {
	return t.parent
}

// Is reports whether t equals ancestor or descends from it.
func (t *Type) Is(ancestor *Type) bool {
	for cur := t; cur != nil; cur = cur.parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

func (t *Type) String() string {
	if t == nil {
		return "<none>"
	}
	return t.name
}
