// Package history holds the call records produced by intercepted methods and
// the append-only stores they are kept in.
//
// Two record shapes exist. A [FunctionCall] describes one invocation of one
// function (arguments, return value, elapsed time). A [MethodCall] pairs a
// FunctionCall with the name of the method that produced it. Every
// instrumented method owns a Store of FunctionCall records and every
// instrumented entity owns a Store of MethodCall records; a single call
// appends to both, sharing the same *FunctionCall.
//
// # Ordering
//
// Records are appended when a call starts, not when it returns. A method that
// calls a sibling method before returning therefore appears first in the
// entity history, followed by the sibling.
//
// # Inspection
//
// [Handle] is the read-only view handed to callers: Calls, LastCall and Tail.
package history
