package ecc

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// KeyID is the dense index assigned to a component key.
// Valid IDs range from 0 to 255.
type KeyID uint8

// MaxKeys is the maximum number of component keys supported.
const MaxKeys = 255

// Key identifies one component slot: a capability that entities may carry.
// Exactly one *Key exists per namespaced id for the process lifetime;
// NewKey returns the interned instance on repeated calls.
type Key struct {
	id  string
	typ reflect.Type
	kid KeyID
}

// ID returns the namespaced identifier of the key, e.g. "myplugin:mana".
func (k *Key) ID() string {
	return k.id
}

// ComponentType returns the capability type the key denotes. Factories
// registered under the key must produce components assignable to it.
func (k *Key) ComponentType() reflect.Type {
	return k.typ
}

// Get returns the component stored under k in c, or nil if c does not hold
// the key.
func (k *Key) Get(c *Container) Component {
	if c == nil {
		return nil
	}
	comp, _ := c.Get(k)
	return comp
}

func (k *Key) String() string {
	return k.id
}

// keyRegistry interns component keys with lock-free reads.
// Keys are created once at plugin load but looked up constantly.
type keyRegistry struct {
	// keys maps namespaced id to *Key using sync.Map for lock-free reads.
	keys sync.Map // map[string]*Key

	// byID stores keys indexed by KeyID, written once during creation and
	// read-only afterward.
	byID [MaxKeys]*Key

	// nextID is the next available key ID.
	nextID atomic.Uint32

	// arrMu protects writes to byID.
	arrMu sync.RWMutex
}

// globalKeys is the process-wide key intern table.
var globalKeys = &keyRegistry{}

// NewKey returns the component key for the given namespaced id, creating
// and interning it if needed. The capability type C is fixed on first
// creation; calling NewKey for the same id with a different C indicates two
// plugins fighting over the id and panics.
func NewKey[C Component](id string) *Key {
	typ := reflect.TypeOf((*C)(nil)).Elem()

	// Fast path: the key already exists.
	if v, ok := globalKeys.keys.Load(id); ok {
		return checkedKey(v.(*Key), typ)
	}

	raw := globalKeys.nextID.Add(1) - 1
	if raw >= MaxKeys {
		panic(fmt.Sprintf("ecc: component key limit exceeded (max %d keys)", MaxKeys))
	}
	newID := KeyID(raw)

	k := &Key{id: id, typ: typ, kid: newID}
	actual, loaded := globalKeys.keys.LoadOrStore(id, k)
	if loaded {
		// Another goroutine interned this id first; the allocated ID is
		// wasted, which is fine for a load-time event.
		return checkedKey(actual.(*Key), typ)
	}

	globalKeys.arrMu.Lock()
	globalKeys.byID[newID] = k
	globalKeys.arrMu.Unlock()

	return k
}

// checkedKey verifies that an interned key was created with the same
// capability type that is now requested.
func checkedKey(k *Key, typ reflect.Type) *Key {
	if k.typ != typ {
		panic(fmt.Sprintf("ecc: component key %s already created with type %v, requested %v", k.id, k.typ, typ))
	}
	return k
}

// LookupKey returns the key interned under id, if any.
func LookupKey(id string) (*Key, bool) {
	if v, ok := globalKeys.keys.Load(id); ok {
		return v.(*Key), true
	}
	return nil, false
}

// KeyCount returns the number of component keys created so far.
func KeyCount() int {
	return int(globalKeys.nextID.Load())
}
