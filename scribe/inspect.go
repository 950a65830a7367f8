package scribe

import (
	"github.com/jonwraymond/scribe/history"
	"github.com/jonwraymond/scribe/object"
)

// Inspect returns the query handle over the object-level history of an
// entity returned by Wrap. The history is looked up on obj and then along its
// prototype chain, so an object inheriting from a wrapped entity reports the
// entity's history. Returns ErrNotInstrumented if no history is found.
func Inspect(obj *object.Object) (history.Handle[*history.MethodCall], error) {
	var (
		v  any
		ok bool
	)
	for cur := obj; cur != nil && !ok; cur = cur.Proto() {
		v, ok = cur.Slot(HistoryKey)
	}
	if !ok {
		return history.Handle[*history.MethodCall]{}, &InspectError{Target: "object", Reason: "has no call history"}
	}
	store, ok := v.(*history.Store[*history.MethodCall])
	if !ok || store == nil {
		return history.Handle[*history.MethodCall]{}, &InspectError{Target: "object", Reason: "has a malformed call history"}
	}
	return history.NewHandle(store), nil
}

// InspectMethod returns the query handle over the history of a wrapper
// function. Returns ErrNotInstrumented if fn carries no history.
func InspectMethod(fn *object.Function) (history.Handle[*history.FunctionCall], error) {
	v, ok := fn.Slot(HistoryKey)
	if !ok {
		return history.Handle[*history.FunctionCall]{}, &InspectError{Target: "method", Reason: "has no call history"}
	}
	store, ok := v.(*history.Store[*history.FunctionCall])
	if !ok || store == nil {
		return history.Handle[*history.FunctionCall]{}, &InspectError{Target: "method", Reason: "has a malformed call history"}
	}
	return history.NewHandle(store), nil
}
