package scribe

import (
	"fmt"
	"slices"

	"github.com/jonwraymond/scribe/object"
)

// Slot keys under which instrumentation state is attached to wrapped
// entities and wrapper functions. Slots never collide with property keys.
var (
	// HistoryKey holds the raw store: *history.Store[*history.MethodCall] on
	// an entity, *history.Store[*history.FunctionCall] on a wrapper.
	HistoryKey = object.NewSymbol("scribe.history")

	// InspectKey holds the query handle: history.Handle[*history.MethodCall]
	// on an entity, history.Handle[*history.FunctionCall] on a wrapper.
	InspectKey = object.NewSymbol("scribe.inspect")

	recorderKey = object.NewSymbol("scribe.recorder")
)

// Wrap instruments every own, enumerable, writable, function-valued property
// of obj and returns the wrapped entity.
//
// In ModeDelegation the entity is a new object whose prototype is obj; in
// ModeMutative it is obj itself. A frozen obj is returned unchanged with no
// error. Properties that are not functions or not writable are left as they
// are. Returns ErrConfiguration if obj is nil or the options are invalid.
func Wrap(obj *object.Object, opts ...Option) (*object.Object, error) {
	if obj == nil {
		return nil, fmt.Errorf("%w: object is nil", ErrConfiguration)
	}
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	rec := newRecorder(cfg)
	if obj.IsFrozen() {
		rec.logf("scribe: %q is frozen, returned unwrapped", cfg.ObjectName)
		return obj, nil
	}

	target := obj
	if cfg.Mode == ModeDelegation {
		target = object.Create(obj)
	}

	target.SetSlot(HistoryKey, rec.History())
	target.SetSlot(InspectKey, rec.Inspect())
	target.SetSlot(recorderKey, rec)

	for _, key := range obj.OwnKeys() {
		prop, ok := obj.OwnProperty(key)
		if !ok {
			continue
		}
		fn, isFunc := prop.Value.(*object.Function)
		if !isFunc || !prop.Writable {
			rec.logf("scribe: skipping %q", key)
			continue
		}
		if err := target.Set(key, Instrument(rec.Method(key), fn)); err != nil {
			return nil, fmt.Errorf("install wrapper for %q: %w", key, err)
		}
	}

	return target, nil
}

// Mutative is Wrap with ModeMutative: the wrappers are installed on obj and
// obj is returned.
func Mutative(obj *object.Object, opts ...Option) (*object.Object, error) {
	return Wrap(obj, append(slices.Clone(opts), WithMode(ModeMutative))...)
}

// Instrument returns a function that records each call of fn through m.
// The wrapper reports fn's name and arity and calls fn with the receiver it
// was itself called with.
func Instrument(m *MethodRecorder, fn *object.Function) *object.Function {
	wrapper := object.NewFunction(fn.Name(), fn.Arity(), func(this *object.Object, args ...any) (any, error) {
		return m.Record(args, func() (any, error) {
			return fn.Call(this, args...)
		})
	})
	wrapper.SetSlot(HistoryKey, m.History())
	wrapper.SetSlot(InspectKey, m.Inspect())
	return wrapper
}

// RecorderOf returns the recorder of an entity returned by Wrap.
func RecorderOf(obj *object.Object) (*Recorder, bool) {
	v, ok := obj.Slot(recorderKey)
	if !ok {
		return nil, false
	}
	rec, ok := v.(*Recorder)
	return rec, ok
}
