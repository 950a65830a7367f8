package jsbridge

import (
	"slices"

	"github.com/dop251/goja"

	"github.com/jonwraymond/scribe/history"
)

// functionCallView exposes a FunctionCall to JavaScript. It reads the record
// on every access, so it reflects fields filled after the call returned.
type functionCallView struct {
	b    *Bridge
	call *history.FunctionCall
	args *goja.Object
}

func (v *functionCallView) Get(key string) goja.Value {
	switch key {
	case "args":
		return v.args
	case "returnValue":
		return jsValue(v.call.ReturnValue)
	case "time":
		if v.call.Pending() {
			return goja.Undefined()
		}
		return v.b.vm.ToValue(float64(v.call.Time) / 1e6)
	case "error":
		if v.call.Err == nil {
			return goja.Undefined()
		}
		if ex, ok := v.call.Err.(*goja.Exception); ok {
			return ex.Value()
		}
		return v.b.vm.ToValue(v.call.Err.Error())
	}
	return nil
}

func (v *functionCallView) Set(string, goja.Value) bool { return false }

func (v *functionCallView) Has(key string) bool {
	return slices.Contains(v.Keys(), key)
}

func (v *functionCallView) Delete(string) bool { return false }

// Keys lists the fields set so far: args up front, then returnValue and
// time once the call completed, or time and error once it failed.
func (v *functionCallView) Keys() []string {
	switch {
	case v.call.Completed:
		return []string{"args", "returnValue", "time"}
	case v.call.Failed():
		return []string{"args", "time", "error"}
	default:
		return []string{"args"}
	}
}

// methodCallView exposes a MethodCall to JavaScript.
type methodCallView struct {
	b    *Bridge
	name string
	call *goja.Object
}

func (v *methodCallView) Get(key string) goja.Value {
	switch key {
	case "name":
		return v.b.vm.ToValue(v.name)
	case "call":
		return v.call
	}
	return nil
}

func (v *methodCallView) Set(string, goja.Value) bool { return false }

func (v *methodCallView) Has(key string) bool { return key == "name" || key == "call" }

func (v *methodCallView) Delete(string) bool { return false }

func (v *methodCallView) Keys() []string { return []string{"name", "call"} }

// functionCallView returns the memoized JavaScript object for c.
func (b *Bridge) functionCallView(c *history.FunctionCall) goja.Value {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.functionCallViewLocked(c)
}

func (b *Bridge) functionCallViewLocked(c *history.FunctionCall) *goja.Object {
	if obj, ok := b.views[c]; ok {
		return obj
	}
	obj := b.vm.NewDynamicObject(&functionCallView{b: b, call: c, args: b.vm.NewArray(c.Args...)})
	b.views[c] = obj
	return obj
}

// methodCallView returns the memoized JavaScript object for c.
func (b *Bridge) methodCallView(c *history.MethodCall) goja.Value {
	b.mu.Lock()
	defer b.mu.Unlock()
	if obj, ok := b.views[c]; ok {
		return obj
	}
	obj := b.vm.NewDynamicObject(&methodCallView{b: b, name: c.Name, call: b.functionCallViewLocked(c.Call)})
	b.views[c] = obj
	return obj
}

func views[T any](records []T, view func(T) goja.Value) []goja.Value {
	out := make([]goja.Value, len(records))
	for i, r := range records {
		out[i] = view(r)
	}
	return out
}
