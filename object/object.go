package object

import (
	"fmt"
	"sort"
	"sync"
)

// Property describes a single named property.
type Property struct {
	Value        any
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// Object is a dynamic object with descriptor-carrying properties and an
// optional prototype.
//
// Contract:
// - Concurrency: property and slot access is safe for concurrent use; a
// method call holds no lock while the method runs.
// - Nil: reads through a nil *Object report the property as absent.
type Object struct {
	proto *Object

	mu         sync.RWMutex
	props      map[string]*Property
	order      []string
	extensible bool
	slots      map[*Symbol]any
}

// New creates an empty, extensible object with no prototype.
func New() *Object {
	return Create(nil)
}

// Create creates an empty object whose prototype is proto.
func Create(proto *Object) *Object {
	return &Object{
		proto:      proto,
		props:      make(map[string]*Property),
		extensible: true,
	}
}

// FromMap creates an object with one writable, enumerable, configurable
// property per map entry, added in sorted key order.
func FromMap(values map[string]any) *Object {
	o := New()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		o.add(k, &Property{Value: values[k], Writable: true, Enumerable: true, Configurable: true})
	}
	return o
}

// Proto returns the prototype, or nil.
func (o *Object) Proto() *Object {
	if o == nil {
		return nil
	}
	return o.proto
}

// Lookup resolves key on o and then along its prototype chain.
func (o *Object) Lookup(key string) (any, bool) {
	p, ok := o.property(key)
	if !ok {
		return nil, false
	}
	return p.Value, true
}

// Get is Lookup without the presence flag.
func (o *Object) Get(key string) any {
	v, _ := o.Lookup(key)
	return v
}

// Set assigns v to key. An existing own property is updated in place when
// writable; otherwise a new own property shadows anything inherited, unless
// the inherited property is read-only or o is not extensible.
func (o *Object) Set(key string, v any) error {
	if o == nil {
		return ErrNilObject
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if p, ok := o.props[key]; ok {
		if !p.Writable {
			return fmt.Errorf("%w: %q", ErrReadOnly, key)
		}
		p.Value = v
		return nil
	}
	if p, ok := o.proto.property(key); ok && !p.Writable {
		return fmt.Errorf("%w: %q is inherited read-only", ErrReadOnly, key)
	}
	if !o.extensible {
		return fmt.Errorf("%w: cannot add %q", ErrNotExtensible, key)
	}
	o.add(key, &Property{Value: v, Writable: true, Enumerable: true, Configurable: true})
	return nil
}

// Define creates or redefines an own property with an explicit descriptor.
// A non-configurable property may only have its value changed while it is
// writable, or be made non-writable.
func (o *Object) Define(key string, desc Property) error {
	if o == nil {
		return ErrNilObject
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if p, ok := o.props[key]; ok {
		if !p.Configurable && !compatible(*p, desc) {
			return fmt.Errorf("%w: %q", ErrNotConfigurable, key)
		}
		*p = desc
		return nil
	}
	if !o.extensible {
		return fmt.Errorf("%w: cannot define %q", ErrNotExtensible, key)
	}
	o.add(key, &desc)
	return nil
}

// OwnProperty returns the descriptor of an own property.
func (o *Object) OwnProperty(key string) (Property, bool) {
	if o == nil {
		return Property{}, false
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.props[key]
	if !ok {
		return Property{}, false
	}
	return *p, true
}

// OwnKeys returns the enumerable own keys in insertion order.
func (o *Object) OwnKeys() []string {
	if o == nil {
		return nil
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	keys := make([]string, 0, len(o.order))
	for _, k := range o.order {
		if o.props[k].Enumerable {
			keys = append(keys, k)
		}
	}
	return keys
}

// Keys returns every enumerable key visible on o: own keys first, then
// inherited ones, each key once. A non-enumerable own property hides an
// enumerable inherited one with the same key.
func (o *Object) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for cur := o; cur != nil; cur = cur.proto {
		cur.mu.RLock()
		for _, k := range cur.order {
			if seen[k] {
				continue
			}
			seen[k] = true
			if cur.props[k].Enumerable {
				keys = append(keys, k)
			}
		}
		cur.mu.RUnlock()
	}
	return keys
}

// Method returns the function stored under key, own or inherited.
func (o *Object) Method(key string) (*Function, bool) {
	fn, ok := o.Get(key).(*Function)
	return fn, ok
}

// Call invokes the method stored under key with o as the receiver.
func (o *Object) Call(key string, args ...any) (any, error) {
	fn, ok := o.Method(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotCallable, key)
	}
	return fn.Call(o, args...)
}

// PreventExtensions stops new properties from being added.
func (o *Object) PreventExtensions() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.extensible = false
}

// IsExtensible reports whether new properties can be added.
func (o *Object) IsExtensible() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.extensible
}

// Freeze makes o non-extensible and every own property read-only and
// non-configurable. Inherited properties are not affected.
func (o *Object) Freeze() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.extensible = false
	for _, p := range o.props {
		p.Writable = false
		p.Configurable = false
	}
}

// IsFrozen reports whether o is non-extensible and all of its own
// properties are read-only and non-configurable.
func (o *Object) IsFrozen() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.extensible {
		return false
	}
	for _, p := range o.props {
		if p.Writable || p.Configurable {
			return false
		}
	}
	return true
}

// SetSlot stores v in the internal slot keyed by sym.
func (o *Object) SetSlot(sym *Symbol, v any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.slots == nil {
		o.slots = make(map[*Symbol]any)
	}
	o.slots[sym] = v
}

// Slot returns the value of o's own internal slot keyed by sym. Slots are
// not inherited.
func (o *Object) Slot(sym *Symbol) (any, bool) {
	if o == nil {
		return nil, false
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.slots[sym]
	return v, ok
}

// property finds key on o or its prototype chain.
func (o *Object) property(key string) (Property, bool) {
	for cur := o; cur != nil; cur = cur.proto {
		cur.mu.RLock()
		p, ok := cur.props[key]
		var desc Property
		if ok {
			desc = *p
		}
		cur.mu.RUnlock()
		if ok {
			return desc, true
		}
	}
	return Property{}, false
}

// add appends a new own property. The caller holds the write lock.
func (o *Object) add(key string, p *Property) {
	o.props[key] = p
	o.order = append(o.order, key)
}

func compatible(cur, next Property) bool {
	if next.Configurable || next.Enumerable != cur.Enumerable {
		return false
	}
	if cur.Writable {
		return true
	}
	return !next.Writable && sameValue(cur.Value, next.Value)
}

func sameValue(a, b any) (same bool) {
	// Comparing uncomparable dynamic types panics.
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
