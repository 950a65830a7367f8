// Package reflectwrap records calls made through the func-typed fields of a
// Go struct, the Go counterpart of an object whose methods are properties.
//
// Exported, non-nil func fields are replaced by recording wrappers built
// with reflect.MakeFunc. A field tagged `scribe:"-"` is left alone and
// `scribe:"name"` records the field under name.
//
//	type Store struct {
//		Get func(key string) (string, error)
//		Put func(key, value string) error
//	}
//
//	s, rec, err := reflectwrap.Wrap(&Store{Get: get, Put: put})
//
// Results are recorded as follows: a trailing error result, when non-nil,
// becomes the record's error; of the remaining results none is recorded as
// nil, one as itself and several as a []any. Variadic arguments are recorded
// as individual positional arguments.
package reflectwrap

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jonwraymond/scribe/scribe"
)

// TagName is the struct tag consulted for field names.
const TagName = "scribe"

var errorType = reflect.TypeFor[error]()

// Wrap instruments the func fields of the struct ptr points to.
//
// In scribe.ModeDelegation the returned pointer addresses a shallow copy and
// *ptr is left untouched; in scribe.ModeMutative the fields of *ptr are
// replaced and ptr is returned. Returns scribe.ErrConfiguration if ptr is nil,
// T is not a struct, or the options are invalid.
func Wrap[T any](ptr *T, opts ...scribe.Option) (*T, *scribe.Recorder, error) {
	if ptr == nil {
		return nil, nil, fmt.Errorf("%w: nil pointer", scribe.ErrConfiguration)
	}
	if reflect.TypeFor[T]().Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("%w: %s is not a struct", scribe.ErrConfiguration, reflect.TypeFor[T]())
	}

	rec, err := scribe.NewRecorder(opts...)
	if err != nil {
		return nil, nil, err
	}

	target := ptr
	if rec.Mode() == scribe.ModeDelegation {
		clone := *ptr
		target = &clone
	}

	v := reflect.ValueOf(target).Elem()
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		name, ok := methodName(field)
		if !ok {
			continue
		}
		fv := v.Field(i)
		if fv.IsNil() || !fv.CanSet() {
			continue
		}
		orig := reflect.ValueOf(fv.Interface())
		fv.Set(instrument(rec.Method(name), orig))
	}

	return target, rec, nil
}

// Mutative is Wrap with scribe.ModeMutative.
func Mutative[T any](ptr *T, opts ...scribe.Option) (*T, *scribe.Recorder, error) {
	all := append(make([]scribe.Option, 0, len(opts)+1), opts...)
	return Wrap(ptr, append(all, scribe.WithMode(scribe.ModeMutative))...)
}

func methodName(field reflect.StructField) (string, bool) {
	if !field.IsExported() || field.Type.Kind() != reflect.Func {
		return "", false
	}
	tag, _, _ := strings.Cut(field.Tag.Get(TagName), ",")
	switch tag {
	case "-":
		return "", false
	case "":
		return field.Name, true
	default:
		return tag, true
	}
}

func instrument(m *scribe.MethodRecorder, orig reflect.Value) reflect.Value {
	ft := orig.Type()
	return reflect.MakeFunc(ft, func(in []reflect.Value) []reflect.Value {
		var out []reflect.Value
		_, _ = m.Record(arguments(ft, in), func() (any, error) {
			if ft.IsVariadic() {
				out = orig.CallSlice(in)
			} else {
				out = orig.Call(in)
			}
			return results(ft, out)
		})
		return out
	})
}

func arguments(ft reflect.Type, in []reflect.Value) []any {
	fixed := in
	var variadic reflect.Value
	if ft.IsVariadic() {
		fixed = in[:len(in)-1]
		variadic = in[len(in)-1]
	}

	args := make([]any, 0, len(in))
	for _, v := range fixed {
		args = append(args, v.Interface())
	}
	if variadic.IsValid() {
		for i := range variadic.Len() {
			args = append(args, variadic.Index(i).Interface())
		}
	}
	return args
}

func results(ft reflect.Type, out []reflect.Value) (any, error) {
	var err error
	if n := len(out); n > 0 && ft.Out(n-1) == errorType {
		if e, ok := out[n-1].Interface().(error); ok && e != nil {
			err = e
		}
		out = out[:n-1]
	}
	if err != nil {
		return nil, err
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		values := make([]any, len(out))
		for i, v := range out {
			values[i] = v.Interface()
		}
		return values, nil
	}
}
