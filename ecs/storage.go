package ecs

import (
	"reflect"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage holds all entities, grouped into archetypes, plus the singleton
// resources that belong to no entity. Archetypes are iterated in creation
// order.
type Storage struct {
	archetypes *intmap.Map[uint32, *Archetype]
	order      []*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage backed by registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: intmap.New[uint32, *Archetype](16),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Spawn creates an entity from the given components. At least one component
// is required.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.spawn(components))
}

// Delete removes the entity and all its components. Unknown IDs are ignored.
func (s *Storage) Delete(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return archetype.remove(id.Index())
}

// Insert sets component on the entity. When the entity already carries that
// type the value is overwritten in place and the ID is unchanged; otherwise
// the entity moves to a new archetype and its new ID is returned.
func (s *Storage) Insert(id EntityId, component any) EntityId {
	old, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return 0
	}

	compType := componentType(component)
	if idx := old.columnOf(compType); idx >= 0 {
		old.columns[idx].set(int(id.Index()), component)
		return id
	}

	types := make([]reflect.Type, 0, len(old.types)+1)
	types = append(types, old.types...)
	types = append(types, compType)
	sort.Sort(byTypeName(types))

	components := make([]any, 0, len(types))
	for _, typ := range old.types {
		current := old.component(id.Index(), typ)
		if current == nil {
			return 0
		}
		components = append(components, current)
	}
	components = append(components, component)

	moved := s.archetypeFor(types)
	index := moved.spawn(components)
	old.remove(id.Index())
	return NewEntityId(moved.id, index)
}

// GetComponent returns a pointer to the entity's component of type compType,
// or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.component(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype carries compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// GetArchetype returns the archetype for exactly the given component values,
// or nil if none has been created.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	archetype, _ := s.archetypes.Get(hashTypes(extractComponentTypes(components)))
	return archetype
}

// Len returns the number of live entities across all archetypes.
func (s *Storage) Len() int {
	total := 0
	for _, a := range s.order {
		total += a.count
	}
	return total
}

// AddSingleton stores value as the singleton for its type, replacing any
// previous value in place so existing Singleton accessors stay valid.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	if typ == nil {
		panic("AddSingleton requires a non-nil value")
	}
	if typ.Kind() == reflect.Ptr {
		if reflect.ValueOf(value).IsNil() {
			panic("AddSingleton requires a non-nil value, got nil " + typ.String())
		}
		typ = typ.Elem()
		value = reflect.ValueOf(value).Elem().Interface()
	}

	if entry, ok := s.singletons[typ]; ok {
		entry.value.Set(reflect.ValueOf(value))
		return
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[typ] = &singletonEntry{
		value:   ptr.Elem(),
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton points *dst at the singleton of its element type and reports
// whether one exists. dst must be a pointer to a pointer, e.g. **Config.
func (s *Storage) ReadSingleton(dst any) bool {
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Ptr || target.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton requires a pointer to a pointer")
	}

	entry := s.singletons[target.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	target.Elem().Set(entry.value.Addr())
	return true
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	archetype, ok := s.archetypes.Get(id)
	if !ok {
		archetype = newArchetype(id, types, s.registry)
		s.archetypes.Put(id, archetype)
		s.order = append(s.order, archetype)
	}
	return archetype
}

func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes returns the sorted component types of components.
// Components are value types: pointers (after one dereference), maps,
// channels and functions are rejected, and each type may appear once.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		for _, seen := range types {
			if seen == t {
				panic("duplicate component type " + t.String())
			}
		}
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

// iface mirrors the runtime layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func dataPointer(v any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&v)).data
}

// hashTypes computes FNV-1a over the runtime type pointers of a sorted
// type list.
func hashTypes(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		h ^= uint32(ptr) ^ uint32(uint64(ptr)>>32)
		h *= prime
	}
	return h
}

// ComponentReader is satisfied by Storage.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	c, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return c
}
