package scribe

import (
	"sync"

	"github.com/jonwraymond/scribe/history"
)

// Recorder owns the histories of one wrapped entity: the object-level
// history and one MethodRecorder per intercepted method.
//
// Contract:
// - Concurrency: safe for concurrent use. Records are filled in place after
// they are appended, so a reader racing with an in-flight call may observe a
// pending record.
// - Ownership: slices returned by histories are caller-owned copies; the
// records themselves are shared with the recorder.
type Recorder struct {
	cfg   Config
	calls *history.Store[*history.MethodCall]

	mu      sync.Mutex
	methods map[string]*MethodRecorder
	order   []string
}

// NewRecorder creates a recorder for front-ends that intercept calls
// themselves. Returns ErrConfiguration for an invalid configuration.
func NewRecorder(opts ...Option) (*Recorder, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return newRecorder(cfg), nil
}

func newRecorder(cfg Config) *Recorder {
	return &Recorder{
		cfg:     cfg,
		calls:   history.NewStore[*history.MethodCall](),
		methods: make(map[string]*MethodRecorder),
	}
}

// Method returns the recorder for the named method, creating it on first use.
func (r *Recorder) Method(name string) *MethodRecorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.methods[name]; ok {
		return m
	}
	m := &MethodRecorder{
		name:  name,
		owner: r,
		calls: history.NewStore[*history.FunctionCall](),
	}
	r.methods[name] = m
	r.order = append(r.order, name)
	return m
}

// Methods returns the intercepted method names in the order they were added.
func (r *Recorder) Methods() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// History returns the object-level store.
func (r *Recorder) History() *history.Store[*history.MethodCall] {
	return r.calls
}

// Inspect returns the object-level query handle.
func (r *Recorder) Inspect() history.Handle[*history.MethodCall] {
	return history.NewHandle(r.calls)
}

// ObjectName returns the configured object name.
func (r *Recorder) ObjectName() string {
	return r.cfg.ObjectName
}

// Mode returns the configured mode.
func (r *Recorder) Mode() Mode {
	return r.cfg.Mode
}

func (r *Recorder) logf(format string, args ...any) {
	if r.cfg.Logger != nil {
		r.cfg.Logger.Logf(format, args...)
	}
}

// MethodRecorder records the calls of a single intercepted method.
type MethodRecorder struct {
	name  string
	owner *Recorder
	calls *history.Store[*history.FunctionCall]
}

// Name returns the property key the method was intercepted under.
func (m *MethodRecorder) Name() string {
	return m.name
}

// History returns the method-level store.
func (m *MethodRecorder) History() *history.Store[*history.FunctionCall] {
	return m.calls
}

// Inspect returns the method-level query handle.
func (m *MethodRecorder) Inspect() history.Handle[*history.FunctionCall] {
	return history.NewHandle(m.calls)
}

// Record runs invoke as one recorded call with the given arguments.
//
// The call's record is appended to the method-level and the object-level
// histories before invoke runs, so calls made from inside invoke are recorded
// after it. When invoke returns, the record gets its duration and either its
// return value or its error. Only completed calls reach the log callback.
//
// Record returns exactly what invoke returned. A panic in invoke propagates
// and leaves the record pending.
func (m *MethodRecorder) Record(args []any, invoke func() (any, error)) (any, error) {
	if args == nil {
		args = []any{}
	}
	call := &history.FunctionCall{Args: args}
	methodCall := &history.MethodCall{Name: m.name, Call: call}

	m.calls.Append(call)
	m.owner.calls.Append(methodCall)

	clock := m.owner.cfg.Clock
	start := clock.Now()
	result, err := invoke()
	call.Time = clock.Now().Sub(start)

	if err != nil {
		call.Err = err
		m.owner.logf("scribe: %s.%s failed after %v: %v", m.owner.cfg.ObjectName, m.name, call.Time, err)
		return result, err
	}

	call.ReturnValue = result
	call.Completed = true

	if log := m.owner.cfg.Log; log != nil {
		log(m.owner.cfg.ObjectName, methodCall, m.calls.Snapshot(), m.owner.calls.Snapshot())
	}
	return result, nil
}
