package symbols

// Kind is the state of a named slot.
type Kind uint8

const (
	KindUninitialized Kind = iota + 1
	KindVariable
	KindConstant
)

func (k Kind) String() string {
	switch k {
	case KindUninitialized:
		return "uninitialized"
	case KindVariable:
		return "variable"
	case KindConstant:
		return "constant"
	default:
		return "invalid"
	}
}

// ScopeKind distinguishes the global scope from a function scope.
type ScopeKind uint8

const (
	ScopeGlobal ScopeKind = iota
	ScopeLocal
)

func (s ScopeKind) String() string {
	if s == ScopeGlobal {
		return "global"
	}
	return "local"
}

// Symbol is a variable or constant together with its slot.
type Symbol struct {
	Name  string
	Kind  Kind
	Type  Type
	Index int32 // slot within its scope
	Scope ScopeKind
}

// Level is the LOADA level operand addressing the symbol's scope.
func (s Symbol) Level() int32 {
	if s.Scope == ScopeGlobal {
		return 0
	}
	return 1
}

func (s Symbol) IsConst() bool { return s.Kind == KindConstant }

func (s Symbol) IsInitialized() bool { return s.Kind != KindUninitialized }

// Function is an entry of the function table.
type Function struct {
	Name      string
	NameIndex int32 // constant pool index of the name, -1 for the entry procedure
	Level     int32
	Params    []Type
	Return    Type
}

// EntryName names the implicit function that runs the global initialisers.
const EntryName = "_start"
