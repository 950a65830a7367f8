// Package object is a small dynamic object model for hosting instrumentable
// objects in Go.
//
// An [Object] is a bag of named properties, each carrying a descriptor
// (writable, enumerable, configurable), plus an optional prototype that
// unresolved lookups fall through to. Methods are properties whose value is a
// [*Function]; calling a method through [Object.Call] passes the object the
// lookup started on as the receiver, so a method found on a prototype still
// sees the derived object as this.
//
// Objects can be made non-extensible or frozen. A frozen object rejects every
// write and definition, and [Object.IsFrozen] reports it.
//
// Internal slots keyed by [*Symbol] attach out-of-band state to objects and
// functions. Slots are not properties: they cannot collide with a string key,
// they are never enumerated, and freezing does not affect them.
package object
