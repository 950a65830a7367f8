package report

import (
	"fmt"
	"reflect"
	"time"

	"github.com/jonwraymond/scribe/history"
	"github.com/jonwraymond/scribe/object"
	"github.com/jonwraymond/scribe/registry"
	"github.com/jonwraymond/scribe/scribe"
)

// Call status values.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusPending   = "pending"
)

// Call is the serializable form of one recorded call.
type Call struct {
	Name        string        `json:"name,omitempty"`
	Args        []any         `json:"args"`
	ReturnValue any           `json:"returnValue,omitempty"`
	Time        time.Duration `json:"time"`
	Error       string        `json:"error,omitempty"`
	Status      string        `json:"status"`
}

// Entity is the serializable form of one wrapped entity.
type Entity struct {
	Name    string            `json:"name"`
	Mode    scribe.Mode       `json:"mode"`
	Calls   []Call            `json:"calls"`
	Methods map[string][]Call `json:"methods"`
}

// FunctionCall converts a method-level record.
func FunctionCall(c *history.FunctionCall) Call {
	out := Call{
		Args:        make([]any, len(c.Args)),
		ReturnValue: Normalize(c.ReturnValue),
		Time:        c.Time,
		Status:      StatusCompleted,
	}
	for i, a := range c.Args {
		out.Args[i] = Normalize(a)
	}
	switch {
	case c.Failed():
		out.Status = StatusFailed
		out.Error = c.Err.Error()
	case c.Pending():
		out.Status = StatusPending
	}
	return out
}

// MethodCall converts an object-level record.
func MethodCall(c *history.MethodCall) Call {
	out := FunctionCall(c.Call)
	out.Name = c.Name
	return out
}

// FunctionCalls converts a method-level history.
func FunctionCalls(calls []*history.FunctionCall) []Call {
	out := make([]Call, 0, len(calls))
	for _, c := range calls {
		out = append(out, FunctionCall(c))
	}
	return out
}

// MethodCalls converts an object-level history.
func MethodCalls(calls []*history.MethodCall) []Call {
	out := make([]Call, 0, len(calls))
	for _, c := range calls {
		out = append(out, MethodCall(c))
	}
	return out
}

// FromRecorder converts the histories held by rec.
func FromRecorder(name string, rec *scribe.Recorder) Entity {
	e := Entity{
		Name:    name,
		Mode:    rec.Mode(),
		Calls:   MethodCalls(rec.Inspect().Calls()),
		Methods: make(map[string][]Call),
	}
	for _, m := range rec.Methods() {
		e.Methods[m] = FunctionCalls(rec.Method(m).Inspect().Calls())
	}
	return e
}

// FromRegistry converts every registered entity, sorted by name.
func FromRegistry(reg *registry.Registry) []Entity {
	entries := reg.List()
	out := make([]Entity, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromRecorder(e.Name, e.Recorder))
	}
	return out
}

// exporter is implemented by host values that can convert themselves to
// plain Go values, such as goja.Value.
type exporter interface {
	Export() any
}

// Circular replaces a value that contains itself.
const Circular = "[circular]"

// Normalize converts v into data that serializes cleanly: exported host
// values, objects as maps of their enumerable properties, functions and
// channels as placeholders, errors as their message. An object, map or
// slice reached again while converting its own contents becomes Circular.
func Normalize(v any) any {
	return normalize(v, make(map[any]bool))
}

// normalize converts v; path holds the containers being converted above v.
func normalize(v any, path map[any]bool) any {
	switch val := v.(type) {
	case nil:
		return nil
	case exporter:
		return normalize(val.Export(), path)
	case error:
		return val.Error()
	case *object.Function:
		return "[function " + val.Name() + "]"
	case *object.Object:
		if path[val] {
			return Circular
		}
		path[val] = true
		defer delete(path, val)

		out := make(map[string]any)
		for _, k := range val.Keys() {
			out[k] = normalize(val.Get(k), path)
		}
		return out
	case []any:
		key, ok := containerKey(val)
		if ok {
			if path[key] {
				return Circular
			}
			path[key] = true
			defer delete(path, key)
		}

		out := make([]any, len(val))
		for i, e := range val {
			out[i] = normalize(e, path)
		}
		return out
	case map[string]any:
		key, ok := containerKey(val)
		if ok {
			if path[key] {
				return Circular
			}
			path[key] = true
			defer delete(path, key)
		}

		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = normalize(e, path)
		}
		return out
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Func:
		return "[function]"
	case reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("[%T]", v)
	default:
		return v
	}
}

// container identifies a map or the backing array of a slice.
type container struct {
	kind reflect.Kind
	ptr  uintptr
	len  int
}

func containerKey(v any) (container, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Len() == 0 {
		return container{}, false
	}
	return container{kind: rv.Kind(), ptr: rv.Pointer(), len: rv.Len()}, true
}
