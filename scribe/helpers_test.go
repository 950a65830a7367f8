package scribe_test

import (
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/scribe/history"
	"github.com/jonwraymond/scribe/object"
	"github.com/jonwraymond/scribe/scribe"
)

type wrapFunc func(*object.Object, ...scribe.Option) (*object.Object, error)

var modes = []struct {
	name string
	wrap wrapFunc
}{
	{name: "delegation", wrap: scribe.Wrap},
	{name: "mutative", wrap: scribe.Mutative},
}

// fakeClock only moves when ticked.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(0, 0)}
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

// logCall is one captured invocation of a scribe.LogFunc.
type logCall struct {
	objectName    string
	call          *history.MethodCall
	methodHistory []*history.FunctionCall
	objectHistory []*history.MethodCall
}

type logSpy struct {
	mu    sync.Mutex
	calls []logCall
}

func (s *logSpy) Log(objectName string, call *history.MethodCall, methodHistory []*history.FunctionCall, objectHistory []*history.MethodCall) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, logCall{objectName, call, methodHistory, objectHistory})
}

func (s *logSpy) Calls() []logCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

type testLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *testLogger) Logf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, fmt.Sprintf(format, args...))
}

func (l *testLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.msgs)
}

func fn(name string, arity int, impl object.Func) *object.Function {
	return object.NewFunction(name, arity, impl)
}

func constant(name string, v any) *object.Function {
	return fn(name, 0, func(*object.Object, ...any) (any, error) { return v, nil })
}

func add(name string) *object.Function {
	return fn(name, 2, func(_ *object.Object, args ...any) (any, error) {
		return args[0].(int) + args[1].(int), nil
	})
}

func mustWrap(t *testing.T, wrap wrapFunc, o *object.Object, opts ...scribe.Option) *object.Object {
	t.Helper()
	w, err := wrap(o, opts...)
	require.NoError(t, err)
	return w
}

func mustCall(t *testing.T, o *object.Object, key string, args ...any) any {
	t.Helper()
	v, err := o.Call(key, args...)
	require.NoError(t, err)
	return v
}

func method(t *testing.T, o *object.Object, key string) *object.Function {
	t.Helper()
	m, ok := o.Method(key)
	require.True(t, ok, "method %q", key)
	return m
}

// curry calls fn once it has collected Arity arguments.
func curry(fn *object.Function, collected ...any) any {
	if len(collected) >= fn.Arity() {
		v, _ := fn.Call(nil, collected...)
		return v
	}
	return func(args ...any) any {
		return curry(fn, append(slices.Clone(collected), args...)...)
	}
}
