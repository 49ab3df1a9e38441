package ecc

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"

	"github.com/df-mc/dragonfly/server/world"
)

// Factory produces one component for the entity owning the container under
// construction. The handle may be nil when containers are built outside a
// live world (offline storage, tests).
//
// A factory must never return nil; the registry wraps every factory in an
// adapter that treats a nil result as a fatal plugin bug.
type Factory func(h *world.EntityHandle) Component

// Initializer is a plugin entrypoint. It is invoked exactly once, during
// the bulk-registration pass triggered by the first container resolution,
// and must perform only registration calls.
type Initializer func(r *Registry)

// Registry maps (entity type, component key) pairs to component factories
// and resolves specialized container factories per concrete entity type.
//
// A Registry is constructed once at startup and passed by reference to
// whatever needs registration or resolution; there is no ambient singleton.
// Registration is permitted until the first FactoryFor call seals the
// registry.
type Registry struct {
	// state is the lifecycle gate state, read atomically on hot paths.
	state uint32

	// initMu serializes the one-shot bulk-registration pass.
	initMu       sync.Mutex
	initializers []Initializer

	// mu protects all registration and resolution data below.
	mu sync.Mutex

	// factories and impls hold exact-type registrations in declaration
	// order, one ordered mapping per entity type.
	factories map[*Type]*orderedFactories
	impls     map[*Type]map[*Key]reflect.Type

	// dynamic holds predicated registrations. Each entry is evaluated once
	// against every newly observed concrete type and retained afterwards.
	dynamic []*predicatedFactory
	seen    map[*Type]struct{}

	// blueprints memoizes one synthesized container factory per concrete
	// type for the process lifetime. Never invalidated: the set of entity
	// types is fixed at load time.
	blueprints map[*Type]*ContainerFactory

	// respawnStrategies is keyed by component key. Unlike factory
	// registration, the last registered strategy for a key wins silently.
	respawnMu         sync.Mutex
	respawnStrategies map[*Key]RespawnStrategy
}

// orderedFactories preserves declaration order for the registrations on one
// exact entity type.
type orderedFactories struct {
	keys      []*Key
	factories map[*Key]Factory
	// names records the unwrapped factory identities for conflict
	// diagnostics; factories itself stores the nil-checking wrappers.
	names map[*Key]string
}

// predicatedFactory is a registration applicable to any concrete type
// matching its test instead of one exact type.
type predicatedFactory struct {
	test    func(*Type) bool
	key     *Key
	factory Factory
	impl    reflect.Type
}

// NewRegistry creates a registry with the given plugin initializers. More
// initializers may be added with AddInitializer until the first resolution.
func NewRegistry(initializers ...Initializer) *Registry {
	return &Registry{
		initializers:      initializers,
		factories:         make(map[*Type]*orderedFactories),
		impls:             make(map[*Type]map[*Key]reflect.Type),
		seen:              make(map[*Type]struct{}),
		blueprints:        make(map[*Type]*ContainerFactory),
		respawnStrategies: make(map[*Key]RespawnStrategy),
	}
}

// AddInitializer appends a plugin entrypoint to the bulk-registration pass.
// Panics if the pass has already started.
func (r *Registry) AddInitializer(f Initializer) {
	r.initMu.Lock()
	defer r.initMu.Unlock()
	if loadGateState(&r.state) != stateUnloaded {
		panic("ecc: too late to call Registry.AddInitializer: component containers have already been resolved")
	}
	r.initializers = append(r.initializers, f)
}

// RegisterFor registers factory under key for the exact entity type target.
// Registering the same (target, key) pair twice is a conflict between two
// plugins and panics naming both factories.
func (r *Registry) RegisterFor(target *Type, key *Key, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkRegistration("RegisterFor")
	r.register0(target, key, factory, key.typ)
}

// RegisterForMatching registers factory under key for every concrete entity
// type satisfying test. The test runs once per newly observed concrete
// type; a match materializes as an exact registration for that type, with
// the same duplicate detection as RegisterFor, while the predicated entry
// is retained for future types.
func (r *Registry) RegisterForMatching(test func(*Type) bool, key *Key, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkRegistration("RegisterForMatching")
	r.dynamic = append(r.dynamic, &predicatedFactory{
		test:    test,
		key:     key,
		factory: factory,
		impl:    key.typ,
	})
}

// RegisterForPlayers registers factory under key for the player entity type
// and records the respawn copy strategy for the key, defaulting to
// CharacterCopy. The last strategy registered for a key wins.
func (r *Registry) RegisterForPlayers(key *Key, factory Factory, strategy ...RespawnStrategy) {
	s := CharacterCopy
	if len(strategy) > 0 {
		s = strategy[0]
	}
	r.RegisterFor(Player, key, factory)
	r.registerRespawnStrategy(key, s)
}

// register0 stores one exact registration. Callers hold r.mu.
func (r *Registry) register0(target *Type, key *Key, factory Factory, impl reflect.Type) {
	of := r.factories[target]
	if of == nil {
		of = &orderedFactories{
			factories: make(map[*Key]Factory),
			names:     make(map[*Key]string),
		}
		r.factories[target] = of
	}

	name := factoryName(factory)
	if prev, ok := of.names[key]; ok {
		panic(fmt.Sprintf("ecc: duplicate factory declarations for %s on %s: %s and %s", key.id, target, name, prev))
	}

	// Wrap the factory so a nil result fails loudly with enough context to
	// find the offending plugin.
	checked := func(h *world.EntityHandle) Component {
		c := factory(h)
		if c == nil {
			panic(fmt.Sprintf("ecc: component factory %s for %s returned nil on %s", name, key.id, target))
		}
		return c
	}

	of.keys = append(of.keys, key)
	of.factories[key] = checked
	of.names[key] = name

	if r.impls[target] == nil {
		r.impls[target] = make(map[*Key]reflect.Type)
	}
	r.impls[target][key] = impl
}

// factoryName resolves a factory function's symbol name for diagnostics.
func factoryName(f Factory) string {
	if f == nil {
		return "<nil factory>"
	}
	if fn := runtime.FuncForPC(reflect.ValueOf(f).Pointer()); fn != nil {
		return fn.Name()
	}
	return "<unknown factory>"
}
