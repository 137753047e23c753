package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

type scope struct {
	kind    ScopeKind
	byName  map[string]*Symbol
	ordered []*Symbol
}

func newScope(kind ScopeKind) *scope {
	return &scope{
		kind:   kind,
		byName: make(map[string]*Symbol),
	}
}

func (s *scope) lookup(name string) (*Symbol, bool) {
	sym, ok := s.byName[name]
	return sym, ok
}

func (s *scope) declare(name string, kind Kind, typ Type) *Symbol {
	index, err := safecast.Conv[int32](len(s.ordered))
	if err != nil {
		panic(fmt.Errorf("scope slot overflow: %w", err))
	}
	sym := &Symbol{
		Name:  name,
		Kind:  kind,
		Type:  typ,
		Index: index,
		Scope: s.kind,
	}
	s.byName[name] = sym
	s.ordered = append(s.ordered, sym)
	return sym
}
