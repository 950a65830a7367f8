package jsbridge

import (
	"math"

	"github.com/dop251/goja"

	"github.com/jonwraymond/scribe/history"
)

// newInspector builds the JavaScript inspection object {calls, lastCall(),
// tail(n)} over h. calls is a getter returning a fresh array. tail treats an
// argument that is not a number as a request for every call.
func newInspector[T any](b *Bridge, h history.Handle[T], view func(T) goja.Value) *goja.Object {
	vm := b.vm
	obj := vm.NewObject()

	calls := vm.ToValue(func(goja.FunctionCall) goja.Value {
		return b.array(views(h.Calls(), view))
	})
	_ = obj.DefineAccessorProperty("calls", calls, nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	_ = obj.Set("lastCall", func(goja.FunctionCall) goja.Value {
		last, ok := h.LastCall()
		if !ok {
			return goja.Undefined()
		}
		return view(last)
	})

	_ = obj.Set("tail", func(fc goja.FunctionCall) goja.Value {
		n := fc.Argument(0).ToNumber().ToFloat()
		if math.IsNaN(n) {
			// tail() and tail(undefined) return the whole history.
			return b.array(views(h.Calls(), view))
		}
		return b.array(views(h.Tail(int(fc.Argument(0).ToInteger())), view))
	})

	return obj
}
