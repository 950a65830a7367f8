package jsbridge

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/scribe/history"
	"github.com/jonwraymond/scribe/scribe"
)

var modes = []string{"wrap", "mutative"}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Tick(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newBridge(t *testing.T, opts ...Option) (*goja.Runtime, *Bridge) {
	t.Helper()
	vm := goja.New()
	b := New(vm, opts...)
	require.NoError(t, b.Install(GlobalName))
	return vm, b
}

func run(t *testing.T, vm *goja.Runtime, src string, args ...any) goja.Value {
	t.Helper()
	v, err := vm.RunString(fmt.Sprintf(src, args...))
	require.NoError(t, err)
	return v
}

func stringify(t *testing.T, vm *goja.Runtime, src string, args ...any) string {
	t.Helper()
	return run(t, vm, "JSON.stringify((() => { "+src+" })())", args...).String()
}

func TestBridge_Binding(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode, func(t *testing.T) {
			vm, _ := newBridge(t)
			got := run(t, vm, `
				const tom = scribe.%s({name: "Tom", sayName() { return "Hello " + this.name }})
				const unbound = tom.sayName
				;[tom.sayName(), unbound(), tom.sayName.bind({name: "Alan"})()]
			`, mode).Export()

			assert.Equal(t, []any{"Hello Tom", "Hello undefined", "Hello Alan"}, got)
		})
	}
}

func TestBridge_PropertyAccess(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode, func(t *testing.T) {
			vm, _ := newBridge(t)
			got := run(t, vm, `
				const simple = scribe.%s({foo: "bar"})
				simple.baz = "qux"
				;[simple.foo, simple.baz]
			`, mode).Export()

			assert.Equal(t, []any{"bar", "qux"}, got)
		})
	}
}

func TestBridge_FunctionShape(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode, func(t *testing.T) {
			vm, _ := newBridge(t)
			got := run(t, vm, `
				function curry(fn) {
					return function next(...args) {
						return args.length >= fn.length ? fn(...args) : (...more) => next(...args, ...more)
					}
				}
				const proxy = scribe.%s({myFunctionName(a, b) { return a + b }})
				;[proxy.myFunctionName.name, proxy.myFunctionName.length, curry(proxy.myFunctionName)(1)(2)]
			`, mode).Export()

			assert.Equal(t, []any{"myFunctionName", int64(2), int64(3)}, got)
		})
	}
}

func TestBridge_FrozenAndPrimitives(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode, func(t *testing.T) {
			vm, b := newBridge(t)
			got := run(t, vm, `
				const frozen = Object.freeze({a() {}})
				;[scribe.%[1]s(frozen) === frozen, scribe.%[1]s(5) === 5]
			`, mode).Export()

			assert.Equal(t, []any{true, true}, got)
			assert.Zero(t, b.Registry().Len())
		})
	}
}

func TestBridge_SkipsReadOnlyAndAccessors(t *testing.T) {
	vm, b := newBridge(t)
	got := run(t, vm, `
		const source = {plain() { return 2 }}
		Object.defineProperty(source, "fixed", {value() { return 1 }, enumerable: true, writable: false})
		Object.defineProperty(source, "computed", {get() { return () => 3 }, enumerable: true})
		var w = scribe.wrap(source)
		;[w.fixed === source.fixed, w.plain === source.plain, w.fixed(), w.computed(), w.plain()]
	`).Export()

	assert.Equal(t, []any{true, false, int64(1), int64(3), int64(2)}, got)

	rec, ok := b.RecorderOf(vm.Get("w"))
	if assert.True(t, ok) {
		assert.Equal(t, []string{"plain"}, rec.Methods())
	}
}

func TestBridge_Identity(t *testing.T) {
	vm, _ := newBridge(t)
	got := run(t, vm, `
		const source = {}
		;[scribe.wrap(source) !== source, Object.getPrototypeOf(scribe.wrap(source)) === source, scribe.mutative(source) === source]
	`).Export()

	assert.Equal(t, []any{true, true, true}, got)
}

func TestBridge_Log(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode, func(t *testing.T) {
			clock := &fakeClock{}
			vm, _ := newBridge(t, WithClock(clock))
			require.NoError(t, vm.Set("tick", func(ms int64) { clock.Tick(time.Duration(ms) * time.Millisecond) }))

			run(t, vm, `
				const logged = []
				const o = scribe.%s({
					jamie() { tick(50); return 5 },
					another() { tick(50) },
				}, {log: (...args) => logged.push(JSON.stringify(args))})
				o.jamie(1, 2, 3)
				o.another()
				o.jamie(4, 5, 6)
			`, mode)

			logged := run(t, vm, "logged").Export().([]any)
			require.Len(t, logged, 3)

			jamie1 := `{"args":[1,2,3],"returnValue":5,"time":50}`
			another := `{"args":[],"time":50}`
			jamie2 := `{"args":[4,5,6],"returnValue":5,"time":50}`
			named := func(name, call string) string { return `{"name":"` + name + `","call":` + call + `}` }

			assert.JSONEq(t, `[null,`+named("jamie", jamie1)+`,[`+jamie1+`],[`+named("jamie", jamie1)+`]]`, logged[0].(string))
			assert.JSONEq(t, `[null,`+named("another", another)+`,[`+another+`],[`+named("jamie", jamie1)+`,`+named("another", another)+`]]`, logged[1].(string))
			assert.JSONEq(t, `[null,`+named("jamie", jamie2)+`,[`+jamie1+`,`+jamie2+`],[`+
				named("jamie", jamie1)+`,`+named("another", another)+`,`+named("jamie", jamie2)+`]]`, logged[2].(string))
		})
	}
}

func TestBridge_LogObjectName(t *testing.T) {
	vm, b := newBridge(t)
	got := run(t, vm, `
		let name
		const o = scribe.wrap({jamie() { return 5 }}, {objectName: "myObject", log: (n) => { name = n }})
		o.jamie(1, 2, 3)
		name
	`).Export()

	assert.Equal(t, "myObject", got)
	assert.Equal(t, []string{"myObject"}, b.Registry().Names())
}

func TestBridge_BridgeLogAndScriptLog(t *testing.T) {
	var goCalls []string
	vm, _ := newBridge(t, WithLog(func(objectName string, call *history.MethodCall, _ []*history.FunctionCall, _ []*history.MethodCall) {
		goCalls = append(goCalls, objectName+"."+call.Name)
	}))

	got := run(t, vm, `
		let count = 0
		const o = scribe.wrap({ping() { return "pong" }}, {objectName: "svc", log: () => { count++ }})
		o.ping()
		o.ping()
		count
	`).Export()

	assert.Equal(t, int64(2), got)
	assert.Equal(t, []string{"svc.ping", "svc.ping"}, goCalls)
}

func TestBridge_SelfReferenceOrder(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode, func(t *testing.T) {
			vm, _ := newBridge(t)
			got := stringify(t, vm, `
				const o = scribe.%s({
					methodA() { return this.methodB() * 2 },
					methodB() { return 5 },
				})
				const result = o.methodA()
				return [result, o.__scribe.map(c => [c.name, c.call.returnValue])]
			`, mode)

			assert.JSONEq(t, `[10,[["methodA",10],["methodB",5]]]`, got)
		})
	}
}

func TestBridge_Exceptions(t *testing.T) {
	vm, b := newBridge(t)
	got := run(t, vm, `
		const logged = []
		var o = scribe.wrap({boom(x) { throw new Error("bad " + x) }}, {log: () => logged.push(1)})
		let caught
		try { o.boom(1) } catch (e) { caught = e }
		const last = scribe.inspect(o).lastCall()
		;[caught.message, last.call.error === caught, "returnValue" in last.call, logged.length]
	`).Export()

	assert.Equal(t, []any{"bad 1", true, false, int64(0)}, got)

	h, err := b.Inspect(vm.Get("o"))
	require.NoError(t, err)
	last, ok := h.LastCall()
	require.True(t, ok)
	assert.True(t, last.Call.Failed())
	assert.Nil(t, last.Call.ReturnValue)
}

func TestBridge_LogExceptionPropagates(t *testing.T) {
	vm, _ := newBridge(t)
	got := run(t, vm, `
		const o = scribe.wrap({ok() { return 1 }}, {log: () => { throw new Error("log failed") }})
		let message
		try { o.ok() } catch (e) { message = e.message }
		;[message, scribe.inspect(o).lastCall().call.returnValue]
	`).Export()

	assert.Equal(t, []any{"log failed", int64(1)}, got)
}

func TestBridge_SealedObjectInMutativeMode(t *testing.T) {
	vm, _ := newBridge(t)
	got := run(t, vm, `
		try { scribe.mutative(Object.seal({a() {}})); false } catch (e) { e instanceof TypeError }
	`).Export()

	assert.Equal(t, true, got)
}

func TestBridge_InvalidMode(t *testing.T) {
	vm, _ := newBridge(t)
	_, err := vm.RunString(`scribe.wrap({}, {mode: "sideways"})`)
	assert.ErrorContains(t, err, "unknown mode")
}

func TestBridge_GoAPI(t *testing.T) {
	vm, b := newBridge(t)
	obj := run(t, vm, `({add(a, b) { return a + b }})`).(*goja.Object)

	wrapped, err := b.Wrap(obj, scribe.WithObjectName("math"))
	require.NoError(t, err)
	require.NoError(t, vm.Set("math", wrapped))
	run(t, vm, `math.add(2, 3)`)

	h, err := b.Inspect(wrapped)
	require.NoError(t, err)
	last, ok := h.LastCall()
	require.True(t, ok)
	assert.Equal(t, "add", last.Name)
	assert.Equal(t, int64(5), last.Call.ReturnValue.(goja.Value).Export())
	assert.Equal(t, int64(2), last.Call.Args[0].(goja.Value).Export())

	mh, err := b.InspectMethod(wrapped.Get("add"))
	require.NoError(t, err)
	assert.Equal(t, 1, mh.Len())

	_, err = b.Inspect(obj)
	assert.ErrorIs(t, err, scribe.ErrNotInstrumented)
	_, err = b.InspectMethod(wrapped)
	assert.ErrorIs(t, err, scribe.ErrNotInstrumented)
	_, err = b.Inspect(goja.Undefined())
	assert.ErrorIs(t, err, scribe.ErrNotInstrumented)

	_, err = b.Wrap(nil)
	assert.ErrorIs(t, err, scribe.ErrConfiguration)

	same, err := b.Mutative(obj)
	require.NoError(t, err)
	assert.Same(t, obj, same)
}

func TestBridge_DefaultMode(t *testing.T) {
	vm, _ := newBridge(t, WithMode(scribe.ModeMutative))
	got := run(t, vm, `
		const source = {a() {}}
		const inner = {b() {}}
		;[scribe.wrap(source) === source, scribe.wrap(inner, {mode: "delegation"}) !== inner]
	`).Export()

	assert.Equal(t, []any{true, true}, got)
}
