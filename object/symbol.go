package object

// Symbol is a unique key for internal slots. Two symbols are equal only if
// they are the same pointer, regardless of description.
type Symbol struct {
	description string
}

// NewSymbol creates a new unique symbol.
func NewSymbol(description string) *Symbol {
	return &Symbol{description: description}
}

// String returns the symbol's description.
func (s *Symbol) String() string {
	return "Symbol(" + s.description + ")"
}
