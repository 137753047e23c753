package symbols

// Type is the value type of a symbol, expression or function result.
type Type uint8

const (
	// Unit is the zero value: no type decided yet.
	Unit Type = iota
	Int
	Char
	Void
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Char:
		return "char"
	case Void:
		return "void"
	default:
		return "unit"
	}
}

// IsValue reports whether t can live in a stack slot.
func (t Type) IsValue() bool {
	return t == Int || t == Char
}

// AssignableTo reports whether a value of type t may be stored where dst is
// expected. int and char convert freely; void converts to nothing.
func (t Type) AssignableTo(dst Type) bool {
	return t.IsValue() && dst.IsValue()
}
