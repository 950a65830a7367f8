package object

import "errors"

// Errors returned by property operations.
var (
	// ErrNilObject is returned when writing through a nil *Object.
	ErrNilObject = errors.New("object is nil")

	// ErrReadOnly is returned when assigning to a non-writable property,
	// whether own or inherited.
	ErrReadOnly = errors.New("property is read-only")

	// ErrNotExtensible is returned when adding a property to an object that
	// was frozen or made non-extensible.
	ErrNotExtensible = errors.New("object is not extensible")

	// ErrNotConfigurable is returned when redefining a non-configurable
	// property in an incompatible way.
	ErrNotConfigurable = errors.New("property is not configurable")

	// ErrNotCallable is returned by Call when the property is missing or is
	// not a *Function.
	ErrNotCallable = errors.New("property is not callable")
)
