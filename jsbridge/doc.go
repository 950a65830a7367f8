// Package jsbridge records calls made to the methods of JavaScript objects
// running in a goja runtime.
//
// A [Bridge] wraps goja objects with the same rules package scribe applies
// to Go objects: frozen objects are returned unchanged, every own enumerable
// property holding a function with a writable descriptor is replaced by a
// recording wrapper, the wrapper keeps the receiver, the arguments, the
// return value, the thrown exception, and the original's length and name.
//
// Scripts reach the bridge through a global installed with [Bridge.Install]:
//
//	const math = scribe.wrap({add(a, b) { return a + b }}, {objectName: "math"})
//	math.add(2, 3)
//	scribe.inspect(math).lastCall()      // {name: "add", call: {args: [2, 3], returnValue: 5, time: ...}}
//	math.add.__scribeInspect.tail(1)     // [{args: [2, 3], returnValue: 5, time: ...}]
//
// Wrapped entities and wrappers carry two non-enumerable properties:
// __scribe (the history as an array) and __scribeInspect (the inspection
// object with calls, lastCall and tail). Record objects are live views of
// the Go records and keep their identity across lookups.
//
// [Engine] runs a whole script against a fresh runtime with a timeout and
// returns the registry of everything the script wrapped.
package jsbridge
