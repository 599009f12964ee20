package types

import (
	"github.com/benbjohnson/immutable"
)

// Substitutor maps type-parameter ids to types. It is persistent: With
// returns a new Substitutor sharing structure with the receiver, so partial
// substitutions composed while walking a class hierarchy never alias.
type Substitutor struct {
	m *immutable.Map[int, Type]
}

// EmptySubstitutor maps nothing; Apply is the identity on proper types.
func EmptySubstitutor() Substitutor {
	return Substitutor{m: immutable.NewMap[int, Type](nil)}
}

// NewSubstitutor maps each parameter to the argument at the same position.
// Extra parameters (a raw reference) are left unmapped.
func NewSubstitutor(params []*TypeParamDecl, args []Type) Substitutor {
	s := EmptySubstitutor()
	for i, p := range params {
		if i >= len(args) {
			break
		}
		s = s.With(p, args[i])
	}
	return s
}

func (s Substitutor) With(p *TypeParamDecl, t Type) Substitutor {
	if s.m == nil {
		s = EmptySubstitutor()
	}
	return Substitutor{m: s.m.Set(p.ID, t)}
}

// Substitute looks up the mapping for one parameter. The second result is
// false when the parameter is unmapped (raw supertype reference).
func (s Substitutor) Substitute(p *TypeParamDecl) (Type, bool) {
	if s.m == nil {
		return nil, false
	}
	return s.m.Get(p.ID)
}

// Apply rewrites every type-parameter reference in t through the mapping.
// Unmapped parameters are left in place.
func (s Substitutor) Apply(t Type) Type {
	if s.m == nil || s.m.Len() == 0 {
		return t
	}
	switch t := t.(type) {
	case *ClassType:
		if p, ok := t.Decl.(*TypeParamDecl); ok {
			if mapped, found := s.Substitute(p); found {
				return mapped
			}
			return t
		}
		if len(t.Args) == 0 {
			return t
		}
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.Apply(a)
		}
		return &ClassType{Decl: t.Decl, Args: args}
	case *ArrayType:
		return &ArrayType{Component: s.Apply(t.Component)}
	case *WildcardType:
		if t.Bound == nil {
			return t
		}
		return &WildcardType{Bound: s.Apply(t.Bound), Variance: t.Variance}
	case *IntersectionType:
		conjuncts := make([]Type, len(t.Conjuncts))
		for i, c := range t.Conjuncts {
			conjuncts[i] = s.Apply(c)
		}
		return &IntersectionType{Conjuncts: conjuncts}
	default:
		return t
	}
}
