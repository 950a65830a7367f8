// Package scribe records every call made to the methods of an object.
//
// [Wrap] takes an [object.Object] and returns an entity whose writable,
// function-valued own properties are replaced by recording wrappers. All
// other behavior of the object is preserved: property reads and writes,
// the receiver a method is called with, its name and its arity.
//
// # Modes
//
//   - [ModeDelegation] (default): the returned entity is a new object whose
//     prototype is the original. The original is left untouched.
//   - [ModeMutative]: the wrappers are installed on the original object,
//     which is returned. See [Mutative].
//
// A frozen object is returned unchanged.
//
// # Histories
//
// Each wrapped entity owns an object-level history of [history.MethodCall]
// records and each wrapper owns a method-level history of
// [history.FunctionCall] records. A call's record is appended to both before
// the original function runs and is filled in place afterwards, so a method
// that calls another method of the same entity appears first:
//
//	methodA -> methodB  records [methodA, methodB]
//
// # Inspection
//
// [Inspect] and [InspectMethod] return a read-only [history.Handle] with
// Calls, LastCall and Tail. The same handle is attached to the entity and to
// each wrapper under [InspectKey], and the raw store under [HistoryKey].
//
// # Logging
//
// A [LogFunc] configured with [WithLog] is invoked synchronously after each
// completed call with snapshots of both histories. Failed calls keep their
// record with Err set and are not logged.
//
// [Recorder] implements the recording itself and is shared by the other
// front-ends of this module (Go structs, JavaScript objects).
package scribe
