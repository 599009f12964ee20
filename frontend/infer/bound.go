package infer

import (
	"cmp"
	"fmt"
	"slices"

	set "github.com/hashicorp/go-set/v3"
	"github.com/varro-lang/varro/frontend/types"
)

// BoundKind classifies a bound recorded on an inference variable.
type BoundKind int

const (
	// Upper bounds the instantiation from above: the variable must
	// instantiate to a subtype of the bound.
	Upper BoundKind = iota
	// Lower bounds the instantiation from below.
	Lower
	// Eq marks an exact bound. Reserved for the resolution machinery; the
	// reduction rules here never record one.
	Eq
)

func (k BoundKind) String() string {
	switch k {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	case Eq:
		return "eq"
	}
	return "?"
}

// InferenceVariable stands for one type parameter being solved within a
// session. Bounds accumulate during reduction; the instantiation is set once
// by the session after solving.
type InferenceVariable struct {
	param    *types.TypeParamDecl
	id       int
	captured bool

	bounds        map[BoundKind]*set.HashSet[types.Type, uint64]
	instantiation types.Type
}

func newInferenceVariable(param *types.TypeParamDecl, id int) *InferenceVariable {
	return &InferenceVariable{
		param:  param,
		id:     id,
		bounds: make(map[BoundKind]*set.HashSet[types.Type, uint64]),
	}
}

// Param returns the type-parameter declaration the variable stands for.
func (v *InferenceVariable) Param() *types.TypeParamDecl { return v.param }

// Ref returns the placeholder type denoting this variable.
func (v *InferenceVariable) Ref() *types.InferenceVarRef {
	return &types.InferenceVarRef{ID: v.id}
}

// AddBound records t under the given kind. Adding a structurally equal type
// twice is a no-op.
func (v *InferenceVariable) AddBound(t types.Type, kind BoundKind) {
	bounds, ok := v.bounds[kind]
	if !ok {
		bounds = set.NewHashSet[types.Type, uint64](1)
		v.bounds[kind] = bounds
	}
	bounds.Insert(t)
}

// Bounds returns a copy of the bounds recorded under kind, empty when none
// were. Order is stable across calls.
func (v *InferenceVariable) Bounds(kind BoundKind) []types.Type {
	bounds, ok := v.bounds[kind]
	if !ok {
		return nil
	}
	out := bounds.Slice()
	slices.SortFunc(out, func(a, b types.Type) int {
		if c := cmp.Compare(a.String(), b.String()); c != 0 {
			return c
		}
		return cmp.Compare(a.Hash(), b.Hash())
	})
	return out
}

// Captured reports whether the variable stands for a captured wildcard
// rather than a declared type parameter.
func (v *InferenceVariable) Captured() bool { return v.captured }

// SetCaptured marks the variable as standing for a captured wildcard.
func (v *InferenceVariable) SetCaptured(captured bool) { v.captured = captured }

// Instantiation returns the type the session resolved the variable to, nil
// while unresolved.
func (v *InferenceVariable) Instantiation() types.Type { return v.instantiation }

// SetInstantiation records the solved type. The session calls this exactly
// once per variable.
func (v *InferenceVariable) SetInstantiation(t types.Type) { v.instantiation = t }

func (v *InferenceVariable) String() string {
	return fmt.Sprintf("α%d(%s)", v.id, v.param.Name)
}
