package history

import "time"

// FunctionCall captures a single invocation of an intercepted function.
// The record is appended to its history before the function runs and is
// filled in place once the function returns.
type FunctionCall struct {
	// Args contains the positional arguments exactly as passed. They are not
	// copied: a callee that mutates an argument in place mutates the record.
	Args []any `json:"args"`

	// ReturnValue is the value produced by the function. It is nil when the
	// function returned nothing, failed, or has not returned yet.
	ReturnValue any `json:"returnValue,omitempty"`

	// Time is the elapsed duration of the invocation.
	Time time.Duration `json:"time"`

	// Err is the failure the function raised, passed through to the caller
	// unchanged. A failed call never carries a ReturnValue.
	Err error `json:"-"`

	// Completed reports whether the function returned without error.
	Completed bool `json:"-"`
}

// Failed reports whether the call ended with an error.
func (c *FunctionCall) Failed() bool {
	return c.Err != nil
}

// Pending reports whether the call has neither completed nor failed, which is
// the state of an outer call observed while a nested call is running.
func (c *FunctionCall) Pending() bool {
	return !c.Completed && c.Err == nil
}

// MethodCall associates a FunctionCall with the method that produced it.
// The same *FunctionCall is shared with the method-level history.
type MethodCall struct {
	// Name is the property key of the method on the original object.
	Name string `json:"name"`

	// Call is the invocation record.
	Call *FunctionCall `json:"call"`
}
