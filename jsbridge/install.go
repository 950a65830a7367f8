package jsbridge

import (
	"github.com/dop251/goja"

	"github.com/jonwraymond/scribe/history"
	"github.com/jonwraymond/scribe/scribe"
)

// Install defines a global object called name with the functions
// wrap(object, options), mutative(object, options) and inspect(value).
//
// options may set objectName (string), mode ("delegation" or "mutative")
// and log, a function called after each completed call with
// (objectName, methodCall, methodHistory, objectHistory).
//
// Values that are not objects are returned unchanged by wrap, like frozen
// objects. inspect throws a RangeError for a value that is neither a
// wrapped entity nor a wrapper.
func (b *Bridge) Install(name string) error {
	api := b.vm.NewObject()

	wrap := func(mode scribe.Mode) func(goja.FunctionCall) goja.Value {
		return func(fc goja.FunctionCall) goja.Value {
			target, ok := fc.Argument(0).(*goja.Object)
			if !ok {
				return fc.Argument(0)
			}
			opts, err := b.scriptOptions(fc.Argument(1))
			if err != nil {
				b.throw(err)
			}
			if mode != "" {
				opts = append(opts, scribe.WithMode(mode))
			}
			wrapped, err := b.Wrap(target, opts...)
			if err != nil {
				b.throw(err)
			}
			return wrapped
		}
	}

	if err := api.Set("wrap", wrap("")); err != nil {
		return err
	}
	if err := api.Set("mutative", wrap(scribe.ModeMutative)); err != nil {
		return err
	}
	if err := api.Set("inspect", func(fc goja.FunctionCall) goja.Value {
		e := b.lookup(fc.Argument(0))
		if e == nil {
			b.throwRange("Not a scribed entity")
		}
		return e.inspector
	}); err != nil {
		return err
	}

	return b.vm.Set(name, api)
}

// scriptOptions converts a script's options object.
func (b *Bridge) scriptOptions(v goja.Value) ([]scribe.Option, error) {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil, nil
	}

	var opts []scribe.Option
	if name := obj.Get("objectName"); name != nil && !goja.IsUndefined(name) && !goja.IsNull(name) {
		opts = append(opts, scribe.WithObjectName(name.String()))
	}
	if mode := obj.Get("mode"); mode != nil && !goja.IsUndefined(mode) {
		m, err := scribe.ParseMode(mode.String())
		if err != nil {
			return nil, err
		}
		opts = append(opts, scribe.WithMode(m))
	}
	if fn, ok := goja.AssertFunction(obj.Get("log")); ok {
		opts = append(opts, scribe.WithLog(b.scriptLog(fn)))
	}
	return opts, nil
}

// scriptLog adapts a script function to scribe.LogFunc. An exception thrown
// by the function propagates out of the recorded call.
func (b *Bridge) scriptLog(fn goja.Callable) scribe.LogFunc {
	return func(objectName string, call *history.MethodCall, methodHistory []*history.FunctionCall, objectHistory []*history.MethodCall) {
		name := goja.Undefined()
		if objectName != "" {
			name = b.vm.ToValue(objectName)
		}
		_, err := fn(goja.Undefined(),
			name,
			b.methodCallView(call),
			b.array(views(methodHistory, b.functionCallView)),
			b.array(views(objectHistory, b.methodCallView)),
		)
		if err != nil {
			b.throw(err)
		}
	}
}
