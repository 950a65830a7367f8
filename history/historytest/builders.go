// Package historytest builds call records for seeding tests.
package historytest

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jonwraymond/scribe/history"
)

// FunctionCallBuilder builds a history.FunctionCall. The default record has
// no args, no return value and a one nanosecond duration, and is completed.
type FunctionCallBuilder struct {
	call history.FunctionCall
}

// FunctionCall starts a FunctionCall builder.
func FunctionCall() *FunctionCallBuilder {
	return &FunctionCallBuilder{call: history.FunctionCall{
		Args:      []any{},
		Time:      time.Nanosecond,
		Completed: true,
	}}
}

// WithArgs sets the argument list.
func (b *FunctionCallBuilder) WithArgs(args ...any) *FunctionCallBuilder {
	b.call.Args = args
	return b
}

// WithArg sets a single argument.
func (b *FunctionCallBuilder) WithArg(arg any) *FunctionCallBuilder {
	b.call.Args = []any{arg}
	return b
}

// WithReturnValue sets the return value.
func (b *FunctionCallBuilder) WithReturnValue(v any) *FunctionCallBuilder {
	b.call.ReturnValue = v
	return b
}

// WithTime sets the elapsed duration.
func (b *FunctionCallBuilder) WithTime(d time.Duration) *FunctionCallBuilder {
	b.call.Time = d
	return b
}

// WithError marks the call as failed.
func (b *FunctionCallBuilder) WithError(err error) *FunctionCallBuilder {
	b.call.Err = err
	b.call.ReturnValue = nil
	b.call.Completed = false
	return b
}

// WithRandomValues fills args, return value and time with random values.
func (b *FunctionCallBuilder) WithRandomValues() *FunctionCallBuilder {
	b.call.Time = time.Duration(rand.Int64N(int64(time.Second)))
	b.call.ReturnValue = rand.Float64()
	b.call.Args = randomArgs()
	return b
}

// Build returns the record.
func (b *FunctionCallBuilder) Build() *history.FunctionCall {
	call := b.call
	return &call
}

// MethodCallBuilder builds a history.MethodCall.
type MethodCallBuilder struct {
	name string
	call *history.FunctionCall
}

// MethodCall starts a MethodCall builder with a random method name.
func MethodCall() *MethodCallBuilder {
	return &MethodCallBuilder{name: randomName()}
}

// WithName sets the method name.
func (b *MethodCallBuilder) WithName(name string) *MethodCallBuilder {
	b.name = name
	return b
}

// WithFunctionCall sets the invocation record.
func (b *MethodCallBuilder) WithFunctionCall(call *history.FunctionCall) *MethodCallBuilder {
	b.call = call
	return b
}

// WithRandomValues sets a random name and a random invocation record.
func (b *MethodCallBuilder) WithRandomValues() *MethodCallBuilder {
	b.name = randomName()
	b.call = FunctionCall().WithRandomValues().Build()
	return b
}

// Build returns the record, using a default FunctionCall when none was set.
func (b *MethodCallBuilder) Build() *history.MethodCall {
	call := b.call
	if call == nil {
		call = FunctionCall().Build()
	}
	return &history.MethodCall{Name: b.name, Call: call}
}

// Store returns a store seeded with the given records.
func Store[T any](records ...T) *history.Store[T] {
	s := history.NewStore[T]()
	for _, r := range records {
		s.Append(r)
	}
	return s
}

func randomName() string {
	return fmt.Sprintf("method%d", rand.IntN(100000))
}

func randomArgs() []any {
	args := make([]any, rand.IntN(6))
	for i := range args {
		args[i] = rand.Float64()
	}
	return args
}
