package object

import "sync"

// Func is the implementation behind a Function. this is the receiver the
// function was called with and may be nil when called without one.
type Func func(this *Object, args ...any) (any, error)

// Function is a callable property value with a display name and an arity.
type Function struct {
	name  string
	arity int
	impl  Func

	mu    sync.RWMutex
	slots map[*Symbol]any
}

// NewFunction creates a function. arity is the number of declared
// parameters reported by Arity; it does not limit the arguments accepted.
func NewFunction(name string, arity int, impl Func) *Function {
	return &Function{name: name, arity: arity, impl: impl}
}

// Name returns the display name.
func (f *Function) Name() string {
	return f.name
}

// Arity returns the declared parameter count.
func (f *Function) Arity() int {
	return f.arity
}

// Call invokes the function with the given receiver and arguments.
func (f *Function) Call(this *Object, args ...any) (any, error) {
	return f.impl(this, args...)
}

// Bind returns a function that always calls f with this as the receiver,
// ignoring the receiver it is called with. Binding a bound function keeps
// the first receiver.
func (f *Function) Bind(this *Object) *Function {
	return NewFunction("bound "+f.name, f.arity, func(_ *Object, args ...any) (any, error) {
		return f.Call(this, args...)
	})
}

// SetSlot stores v in the internal slot keyed by sym.
func (f *Function) SetSlot(sym *Symbol, v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slots == nil {
		f.slots = make(map[*Symbol]any)
	}
	f.slots[sym] = v
}

// Slot returns the value of the internal slot keyed by sym.
func (f *Function) Slot(sym *Symbol) (any, bool) {
	if f == nil {
		return nil, false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.slots[sym]
	return v, ok
}

// String returns a short description for debugging.
func (f *Function) String() string {
	return "function " + f.name
}
