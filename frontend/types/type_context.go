package types

import (
	"log/slog"

	set "github.com/hashicorp/go-set/v3"
	"github.com/varro-lang/varro/internal/log"
)

var logger = log.DefaultLogger.With("section", "types")

// TypeCtx answers the hierarchy and conversion queries constraint reduction
// delegates to: assignability between proper types, primitive kind tests, and
// substitutor lookup through the class hierarchy.
type TypeCtx struct {
	logger *slog.Logger
}

func NewTypeCtx() *TypeCtx {
	return &TypeCtx{logger: logger}
}

// IsAssignable decides source-to-target assignability for proper types.
// The model has no boxing: a primitive is never assignable to a reference
// type or vice versa, and primitive widening follows int -> long -> double.
func (ctx *TypeCtx) IsAssignable(target, source Type) bool {
	if Equal(target, source) {
		return true
	}
	if IsNull(source) {
		_, primitive := target.(*Primitive)
		return !primitive
	}
	switch target := target.(type) {
	case *Primitive:
		src, ok := source.(*Primitive)
		return ok && primitiveWidens(target.Kind, src.Kind)
	case *ArrayType:
		src, ok := source.(*ArrayType)
		if !ok {
			return false
		}
		tComp, tPrim := target.Component.(*Primitive)
		sComp, sPrim := src.Component.(*Primitive)
		if tPrim || sPrim {
			return tPrim && sPrim && tComp.Kind == sComp.Kind
		}
		return ctx.IsAssignable(target.Component, src.Component)
	case *ClassType:
		return ctx.classAssignable(target, source)
	case *IntersectionType:
		for _, conjunct := range target.Conjuncts {
			if !ctx.IsAssignable(conjunct, source) {
				return false
			}
		}
		return true
	case *NullType:
		return false
	}
	return false
}

func (ctx *TypeCtx) classAssignable(target *ClassType, source Type) bool {
	if IsObjectType(target) {
		_, primitive := source.(*Primitive)
		return !primitive
	}
	switch source := source.(type) {
	case *IntersectionType:
		for _, conjunct := range source.Conjuncts {
			if ctx.IsAssignable(target, conjunct) {
				return true
			}
		}
		return false
	case *ArrayType:
		// arrays only inherit from the top class in this model
		return false
	case *ClassType:
		targetDecl, ok := target.Decl.(*ClassDecl)
		if !ok {
			return false
		}
		sourceDecl, ok := source.Decl.(*ClassDecl)
		if !ok {
			return false
		}
		known := NewSubstitutor(sourceDecl.TypeParams, source.Args)
		projected, found := ctx.SubstitutorFrom(sourceDecl, targetDecl, known)
		if !found {
			return false
		}
		if target.Raw() || source.Raw() {
			return true
		}
		for i, param := range targetDecl.TypeParams {
			if i >= len(target.Args) {
				break
			}
			seen, defined := projected.Substitute(param)
			if !defined {
				return false
			}
			if !ctx.argumentContains(target.Args[i], seen) {
				return false
			}
		}
		return true
	}
	return false
}

// argumentContains decides whether the type argument want contains got,
// respecting wildcard variance.
func (ctx *TypeCtx) argumentContains(want, got Type) bool {
	if wc, ok := want.(*WildcardType); ok {
		switch wc.Variance {
		case Unbounded:
			return true
		case Extends:
			return ctx.IsAssignable(wc.Bound, got)
		case Super:
			return ctx.IsAssignable(got, wc.Bound)
		}
	}
	return Equal(want, got)
}

func primitiveWidens(target, source PrimitiveKind) bool {
	if target == source {
		return true
	}
	switch target {
	case LongKind:
		return source == IntKind
	case DoubleKind:
		return source == IntKind || source == LongKind
	}
	return false
}

// IsNumericType reports whether t is a numeric primitive or a well-known
// numeric box class.
func (ctx *TypeCtx) IsNumericType(t Type) bool {
	switch t := t.(type) {
	case *Primitive:
		return t.Kind.Numeric()
	case *ClassType:
		decl, ok := t.Decl.(*ClassDecl)
		return ok && numericClassNames[decl.Name]
	}
	return false
}

// IsBooleanType reports whether t is the boolean primitive or its box.
func (ctx *TypeCtx) IsBooleanType(t Type) bool {
	switch t := t.(type) {
	case *Primitive:
		return t.Kind == BooleanKind
	case *ClassType:
		decl, ok := t.Decl.(*ClassDecl)
		return ok && decl.Name == "Boolean"
	}
	return false
}

// SubstitutorFrom walks sub's declared supertypes until it reaches super,
// composing type-argument substitutions along the way. The returned
// substitutor binds super's type parameters as seen from sub instantiated by
// known. The second result is false when super is not reachable from sub.
func (ctx *TypeCtx) SubstitutorFrom(sub, super *ClassDecl, known Substitutor) (Substitutor, bool) {
	visited := set.New[int](4)
	result, found := ctx.substitutorWalk(sub, super, known, visited)
	if !found {
		ctx.logger.Debug("no hierarchy path between declarations", "sub", sub.Name, "super", super.Name)
	}
	return result, found
}

func (ctx *TypeCtx) substitutorWalk(sub, super *ClassDecl, known Substitutor, visited *set.Set[int]) (Substitutor, bool) {
	if sub == super || sub.ID == super.ID {
		return known, true
	}
	if !visited.Insert(sub.ID) {
		return Substitutor{}, false
	}
	for _, ref := range sub.Supers {
		decl, ok := ref.Decl.(*ClassDecl)
		if !ok {
			continue
		}
		composed := EmptySubstitutor()
		for i, param := range decl.TypeParams {
			if i >= len(ref.Args) {
				break // raw supertype reference erases the rest
			}
			composed = composed.With(param, known.Apply(ref.Args[i]))
		}
		if result, found := ctx.substitutorWalk(decl, super, composed, visited); found {
			return result, true
		}
	}
	return Substitutor{}, false
}
