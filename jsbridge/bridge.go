package jsbridge

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dop251/goja"

	"github.com/jonwraymond/scribe/history"
	"github.com/jonwraymond/scribe/registry"
	"github.com/jonwraymond/scribe/scribe"
)

// Property names attached to wrapped entities and wrappers.
const (
	HistoryProperty = "__scribe"
	InspectProperty = "__scribeInspect"
)

// Option configures a Bridge.
type Option func(*Bridge)

// WithRegistry sets the registry wrapped entities are added to.
// Defaults to a new, empty registry.
func WithRegistry(r *registry.Registry) Option {
	return func(b *Bridge) {
		b.reg = r
	}
}

// WithLog sets a log callback applied to every wrapped entity, in addition
// to any log function a script passes to wrap.
func WithLog(fn scribe.LogFunc) Option {
	return func(b *Bridge) {
		b.log = fn
	}
}

// WithClock sets the clock used for call durations.
func WithClock(c scribe.Clock) Option {
	return func(b *Bridge) {
		b.clock = c
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l scribe.Logger) Option {
	return func(b *Bridge) {
		b.logger = l
	}
}

// WithMode sets the mode used when a script does not choose one.
func WithMode(m scribe.Mode) Option {
	return func(b *Bridge) {
		b.mode = m
	}
}

// entity is the state kept for a wrapped object or wrapper function.
type entity struct {
	recorder  *scribe.Recorder
	method    *scribe.MethodRecorder
	inspector *goja.Object
}

// Bridge instruments objects of one goja runtime.
//
// Contract:
// - Concurrency: like the runtime itself, a Bridge must only be used from
// the goroutine running the runtime.
// - Ownership: records hold goja values; export them before using them
// outside the runtime.
type Bridge struct {
	vm     *goja.Runtime
	reg    *registry.Registry
	log    scribe.LogFunc
	clock  scribe.Clock
	logger scribe.Logger
	mode   scribe.Mode

	isFrozen      goja.Callable
	ownDescriptor goja.Callable

	mu       sync.Mutex
	entities map[*goja.Object]*entity
	views    map[any]*goja.Object
}

// New creates a bridge for vm.
func New(vm *goja.Runtime, opts ...Option) *Bridge {
	b := &Bridge{
		vm:       vm,
		entities: make(map[*goja.Object]*entity),
		views:    make(map[any]*goja.Object),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.reg == nil {
		b.reg = registry.New()
	}

	objectCtor := vm.Get("Object").(*goja.Object)
	b.isFrozen, _ = goja.AssertFunction(objectCtor.Get("isFrozen"))
	b.ownDescriptor, _ = goja.AssertFunction(objectCtor.Get("getOwnPropertyDescriptor"))
	return b
}

// Registry returns the registry wrapped entities are added to.
func (b *Bridge) Registry() *registry.Registry {
	return b.reg
}

// Runtime returns the runtime the bridge instruments.
func (b *Bridge) Runtime() *goja.Runtime {
	return b.vm
}

// Wrap instruments obj and returns the wrapped entity. The entity is
// registered under its object name, made unique if needed.
//
// A frozen obj is returned unchanged. Returns scribe.ErrConfiguration for
// invalid options and the JavaScript error when a property cannot be
// installed, for example on a sealed object in mutative mode.
func (b *Bridge) Wrap(obj *goja.Object, opts ...scribe.Option) (*goja.Object, error) {
	if obj == nil {
		return nil, fmt.Errorf("%w: object is nil", scribe.ErrConfiguration)
	}
	rec, err := scribe.NewRecorder(b.options(opts)...)
	if err != nil {
		return nil, err
	}

	frozen, err := b.isFrozen(goja.Undefined(), obj)
	if err != nil {
		return nil, err
	}
	if frozen.ToBoolean() {
		b.logf("jsbridge: %q is frozen, returned unwrapped", rec.ObjectName())
		return obj, nil
	}

	target := obj
	if rec.Mode() == scribe.ModeDelegation {
		target = b.vm.CreateObject(obj)
	}

	inspector := newInspector(b, rec.Inspect(), b.methodCallView)
	if err := b.attach(target, inspector, func() []goja.Value {
		return views(rec.Inspect().Calls(), b.methodCallView)
	}); err != nil {
		return nil, err
	}

	for _, key := range obj.Keys() {
		fn, ok := obj.Get(key).(*goja.Object)
		if !ok {
			continue
		}
		call, ok := goja.AssertFunction(fn)
		if !ok {
			continue
		}
		writable, err := b.writable(obj, key)
		if err != nil {
			return nil, err
		}
		if !writable {
			b.logf("jsbridge: skipping read-only %q", key)
			continue
		}

		wrapper, err := b.instrument(rec.Method(key), fn, call)
		if err != nil {
			return nil, err
		}
		if err := target.Set(key, wrapper); err != nil {
			return nil, err
		}
	}

	b.mu.Lock()
	b.entities[target] = &entity{recorder: rec, inspector: inspector}
	b.mu.Unlock()

	if _, err := b.reg.RegisterUnique(rec); err != nil {
		return nil, err
	}
	return target, nil
}

// Mutative is Wrap with scribe.ModeMutative.
func (b *Bridge) Mutative(obj *goja.Object, opts ...scribe.Option) (*goja.Object, error) {
	all := append(make([]scribe.Option, 0, len(opts)+1), opts...)
	return b.Wrap(obj, append(all, scribe.WithMode(scribe.ModeMutative))...)
}

// Inspect returns the object-level history of a wrapped entity, or of the
// nearest wrapped entity on v's prototype chain.
func (b *Bridge) Inspect(v goja.Value) (history.Handle[*history.MethodCall], error) {
	e := b.lookup(v)
	if e == nil || e.recorder == nil {
		return history.Handle[*history.MethodCall]{}, &scribe.InspectError{Target: "object", Reason: "is not a wrapped entity"}
	}
	return e.recorder.Inspect(), nil
}

// InspectMethod returns the history of a wrapper function.
func (b *Bridge) InspectMethod(v goja.Value) (history.Handle[*history.FunctionCall], error) {
	e := b.lookup(v)
	if e == nil || e.method == nil {
		return history.Handle[*history.FunctionCall]{}, &scribe.InspectError{Target: "method", Reason: "is not a wrapper"}
	}
	return e.method.Inspect(), nil
}

// RecorderOf returns the recorder of a wrapped entity, or of the entity v
// inherits from.
func (b *Bridge) RecorderOf(v goja.Value) (*scribe.Recorder, bool) {
	e := b.lookup(v)
	if e == nil || e.recorder == nil {
		return nil, false
	}
	return e.recorder, true
}

// lookup finds the entity of v, or of the nearest object on its prototype
// chain.
func (b *Bridge) lookup(v goja.Value) *entity {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for cur := obj; cur != nil; cur = cur.Prototype() {
		if e, ok := b.entities[cur]; ok {
			return e
		}
	}
	return nil
}

// options prepends the bridge defaults to opts and combines the bridge log
// with the caller's.
func (b *Bridge) options(opts []scribe.Option) []scribe.Option {
	all := []scribe.Option{scribe.WithClock(b.clock), scribe.WithLogger(b.logger)}
	if b.mode != "" {
		all = append(all, scribe.WithMode(b.mode))
	}
	all = append(all, opts...)
	cfg, err := scribe.NewConfig(all...)
	if err != nil {
		// NewRecorder reports the same error.
		return all
	}
	return append(all, scribe.WithLog(scribe.Tee(b.log, cfg.Log)))
}

func (b *Bridge) writable(obj *goja.Object, key string) (bool, error) {
	desc, err := b.ownDescriptor(goja.Undefined(), obj, b.vm.ToValue(key))
	if err != nil {
		return false, err
	}
	d, ok := desc.(*goja.Object)
	if !ok {
		return false, nil
	}
	w := d.Get("writable")
	return w != nil && w.ToBoolean(), nil
}

// instrument builds the recording wrapper for fn.
func (b *Bridge) instrument(m *scribe.MethodRecorder, fn *goja.Object, call goja.Callable) (*goja.Object, error) {
	wrapper := b.vm.ToValue(func(fc goja.FunctionCall) goja.Value {
		args := make([]any, len(fc.Arguments))
		for i, a := range fc.Arguments {
			args[i] = a
		}
		result, err := m.Record(args, func() (any, error) {
			return call(fc.This, fc.Arguments...)
		})
		if err != nil {
			b.throw(err)
		}
		return jsValue(result)
	}).(*goja.Object)

	for _, name := range []string{"length", "name"} {
		if err := wrapper.DefineDataProperty(name, fn.Get(name), goja.FLAG_FALSE, goja.FLAG_TRUE, goja.FLAG_FALSE); err != nil {
			return nil, err
		}
	}

	inspector := newInspector(b, m.Inspect(), b.functionCallView)
	if err := b.attach(wrapper, inspector, func() []goja.Value {
		return views(m.Inspect().Calls(), b.functionCallView)
	}); err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.entities[wrapper] = &entity{method: m, inspector: inspector}
	b.mu.Unlock()
	return wrapper, nil
}

// attach defines the non-enumerable history and inspection properties.
func (b *Bridge) attach(target, inspector *goja.Object, calls func() []goja.Value) error {
	getter := b.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return b.array(calls())
	})
	if err := target.DefineAccessorProperty(HistoryProperty, getter, nil, goja.FLAG_TRUE, goja.FLAG_FALSE); err != nil {
		return err
	}
	return target.DefineDataProperty(InspectProperty, inspector, goja.FLAG_FALSE, goja.FLAG_TRUE, goja.FLAG_FALSE)
}

// throw rethrows err into the runtime. JavaScript exceptions keep their
// original value; an interrupt is re-armed so that it cannot be caught.
func (b *Bridge) throw(err error) {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		panic(ex)
	}
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		b.vm.Interrupt(interrupted.Value())
	}
	panic(b.vm.NewGoError(err))
}

// throwRange throws a JavaScript RangeError.
func (b *Bridge) throwRange(msg string) {
	ctor := b.vm.Get("RangeError")
	obj, err := b.vm.New(ctor, b.vm.ToValue(msg))
	if err != nil {
		panic(b.vm.NewGoError(err))
	}
	panic(obj)
}

func (b *Bridge) array(values []goja.Value) *goja.Object {
	items := make([]any, len(values))
	for i, v := range values {
		items[i] = v
	}
	return b.vm.NewArray(items...)
}

func (b *Bridge) logf(format string, args ...any) {
	if b.logger != nil {
		b.logger.Logf(format, args...)
	}
}

// jsValue converts a recorded value back to a goja value.
func jsValue(v any) goja.Value {
	if gv, ok := v.(goja.Value); ok && gv != nil {
		return gv
	}
	return goja.Undefined()
}
