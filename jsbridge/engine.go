package jsbridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"

	"github.com/jonwraymond/scribe/registry"
)

// DefaultTimeout is used when an Engine is created with a zero timeout.
const DefaultTimeout = 5 * time.Second

// GlobalName is the name of the global object scripts use.
const GlobalName = "scribe"

var (
	// ErrScript indicates that a script threw or failed to compile.
	ErrScript = errors.New("script error")

	// ErrTimeout indicates that a script was interrupted by its deadline or
	// by context cancellation.
	ErrTimeout = errors.New("script timeout exceeded")
)

// Result holds what a script run produced.
type Result struct {
	// Value is the exported completion value of the script.
	Value any

	// Logs holds the lines written with console.log, in order.
	Logs []string

	// Registry holds every entity the script wrapped.
	Registry *registry.Registry

	// Duration is the wall time the script ran for.
	Duration time.Duration
}

// Engine runs scripts in fresh runtimes with the bridge installed as the
// scribe global.
type Engine struct {
	timeout time.Duration
	opts    []Option
}

// NewEngine creates an engine. A zero timeout selects DefaultTimeout. opts
// are applied to the bridge of every run.
func NewEngine(timeout time.Duration, opts ...Option) *Engine {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Engine{timeout: timeout, opts: opts}
}

// Run executes src. The result is returned even when the script fails, so
// that the histories recorded up to the failure can be inspected.
func (e *Engine) Run(ctx context.Context, name, src string) (Result, error) {
	vm := goja.New()
	reg := registry.New()
	bridge := New(vm, append(append([]Option(nil), e.opts...), WithRegistry(reg))...)

	result := Result{Registry: reg}
	if err := bridge.Install(GlobalName); err != nil {
		return result, fmt.Errorf("install %s: %w", GlobalName, err)
	}

	var logsMu sync.Mutex
	console := vm.NewObject()
	_ = console.Set("log", func(fc goja.FunctionCall) goja.Value {
		parts := make([]string, len(fc.Arguments))
		for i, a := range fc.Arguments {
			parts[i] = a.String()
		}
		logsMu.Lock()
		result.Logs = append(result.Logs, strings.Join(parts, " "))
		logsMu.Unlock()
		return goja.Undefined()
	})
	_ = vm.Set("console", console)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ErrTimeout)
		case <-done:
		}
	}()

	start := time.Now()
	v, err := vm.RunScript(name, src)
	close(done)
	result.Duration = time.Since(start)

	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return result, fmt.Errorf("%w after %v: %w", ErrTimeout, e.timeout, context.Cause(ctx))
		}
		return result, fmt.Errorf("%w: %w", ErrScript, err)
	}

	if v != nil {
		result.Value = v.Export()
	}
	return result, nil
}
