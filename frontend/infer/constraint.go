package infer

import (
	"fmt"

	"github.com/varro-lang/varro/frontend/types"
	"github.com/varro-lang/varro/internal/log"
)

var logger = log.DefaultLogger.With("section", "infer")

// ConstraintFormula is one pending constraint of an inference session.
// Reduce either refutes the constraint (false), absorbs it into a variable's
// bounds, or appends strictly smaller constraints to out for the session to
// reduce later. A true result means "not yet refuted", not "solved".
type ConstraintFormula interface {
	Reduce(session Session, out *[]ConstraintFormula) bool
	Hash() uint64
	fmt.Stringer
}

var _ ConstraintFormula = (*SubtypingConstraint)(nil)

// SubtypingConstraint asserts that S is a subtype of T. With RefTypes unset
// the constraint instead relates two corresponding type-argument slots, where
// wildcard containment replaces plain subtyping.
type SubtypingConstraint struct {
	T        types.Type
	S        types.Type
	RefTypes bool
}

// Subtyping builds the reference-mode constraint "s <: t".
func Subtyping(t, s types.Type) *SubtypingConstraint {
	return &SubtypingConstraint{T: t, S: s, RefTypes: true}
}

// Contained builds the containment-mode constraint "t contains s" between
// two type-argument slots.
func Contained(t, s types.Type) *SubtypingConstraint {
	return &SubtypingConstraint{T: t, S: s}
}

func (c *SubtypingConstraint) String() string {
	if c.RefTypes {
		return fmt.Sprintf("%s <: %s", c.S, c.T)
	}
	return fmt.Sprintf("%s <= %s", c.S, c.T)
}

func (c *SubtypingConstraint) Hash() uint64 {
	mode := uint64(0)
	if c.RefTypes {
		mode = 1
	}
	return 31*c.T.Hash() ^ 17*c.S.Hash() ^ mode
}

func (c *SubtypingConstraint) Reduce(session Session, out *[]ConstraintFormula) bool {
	if c.RefTypes {
		return c.reduceSubtyping(session, out)
	}
	return c.reduceContainment(session, out)
}

func (c *SubtypingConstraint) reduceSubtyping(session Session, out *[]ConstraintFormula) bool {
	if session.IsProperType(c.S) && session.IsProperType(c.T) {
		return session.Oracle().IsAssignable(c.T, c.S)
	}
	if variable := session.Variable(c.S); variable != nil {
		variable.AddBound(c.T, Upper)
		return true
	}
	if types.IsNull(c.S) {
		return true
	}
	if variable := session.Variable(c.T); variable != nil {
		variable.AddBound(c.S, Lower)
		return true
	}
	switch t := c.T.(type) {
	case *types.ArrayType:
		s, ok := c.S.(*types.ArrayType)
		if !ok {
			// no search for a most specific array supertype of S
			return false
		}
		tComponent, tPrimitive := t.Component.(*types.Primitive)
		sComponent, sPrimitive := s.Component.(*types.Primitive)
		if !tPrimitive && !sPrimitive {
			*out = append(*out, Subtyping(t.Component, s.Component))
			return true
		}
		return sPrimitive && tPrimitive && sComponent.Kind == tComponent.Kind

	case *types.ClassType:
		return c.reduceClassTarget(session, t, out)

	case *types.IntersectionType:
		for _, conjunct := range t.Conjuncts {
			*out = append(*out, Subtyping(conjunct, c.S))
		}
		return true

	case *types.NullType:
		return false
	}
	return true
}

// reduceClassTarget handles a class-typed target: a bound type parameter only
// matches an intersection mentioning it, a raw target compares declarations,
// and a parameterized target decomposes into per-argument containment.
func (c *SubtypingConstraint) reduceClassTarget(session Session, t *types.ClassType, out *[]ConstraintFormula) bool {
	if _, isParam := t.Decl.(*types.TypeParamDecl); isParam {
		if s, ok := c.S.(*types.IntersectionType); ok && s.HasConjunct(t) {
			return true
		}
		// the parameter's own declared bound is not consulted
		return false
	}
	tDecl, ok := t.Decl.(*types.ClassDecl)
	if !ok {
		return false
	}

	s, ok := c.S.(*types.ClassType)
	if !ok {
		return false
	}
	sDecl, ok := s.Decl.(*types.ClassDecl)
	if !ok {
		return false
	}
	if t.Raw() {
		return sDecl == tDecl
	}
	tSubstitutor, found := session.Oracle().SubstitutorFrom(tDecl, sDecl, types.NewSubstitutor(tDecl.TypeParams, t.Args))
	if !found {
		return false
	}
	sSubstitutor := types.NewSubstitutor(sDecl.TypeParams, s.Args)
	for _, param := range sDecl.TypeParams {
		tSubstituted, tDefined := tSubstitutor.Substitute(param)
		sSubstituted, sDefined := sSubstitutor.Substitute(param)
		if tDefined && sDefined {
			*out = append(*out, Contained(tSubstituted, sSubstituted))
		}
	}
	return true
}

func (c *SubtypingConstraint) reduceContainment(session Session, out *[]ConstraintFormula) bool {
	t, tWildcard := c.T.(*types.WildcardType)
	if !tWildcard {
		if _, sWildcard := c.S.(*types.WildcardType); sWildcard {
			return false
		}
		*out = append(*out, Subtyping(c.T, c.S))
		return true
	}
	if t.Bound == nil {
		return true
	}
	switch t.Variance {
	case types.Extends:
		if types.IsObjectType(t.Bound) {
			return true
		}
		if s, ok := c.S.(*types.WildcardType); ok {
			if s.Bound != nil && s.Variance == types.Extends {
				*out = append(*out, Subtyping(t.Bound, s.Bound))
				return true
			}
			return false
		}
		*out = append(*out, Subtyping(t.Bound, c.S))
		return true

	case types.Super:
		if s, ok := c.S.(*types.WildcardType); ok {
			if s.Bound != nil && s.Variance == types.Super {
				*out = append(*out, Subtyping(s.Bound, t.Bound))
				return true
			}
			return false
		}
		*out = append(*out, Subtyping(c.S, t.Bound))
		return true
	}
	return false
}
