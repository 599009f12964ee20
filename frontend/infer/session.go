package infer

import (
	set "github.com/hashicorp/go-set/v3"
	"github.com/varro-lang/varro/frontend/diag"
	"github.com/varro-lang/varro/frontend/types"
)

// Session is the collaborator contract constraint reduction runs against.
type Session interface {
	// IsProperType reports whether t mentions no unresolved inference
	// variable.
	IsProperType(t types.Type) bool
	// Variable returns the inference variable t denotes, nil when t is not
	// a placeholder of this session.
	Variable(t types.Type) *InferenceVariable
	// Oracle answers assignability and hierarchy queries over proper types.
	Oracle() *types.TypeCtx
}

var _ Session = (*InferenceSession)(nil)

// InferenceSession owns the inference variables of one inference attempt and
// drains its constraint worklist. One session is solved to completion by one
// goroutine; nothing here is safe for concurrent mutation.
type InferenceSession struct {
	oracle *types.TypeCtx
	vars   []*InferenceVariable

	// reduced caches constraints already processed so bound propagation
	// cannot loop on cyclic hierarchies.
	reduced *set.HashSet[ConstraintFormula, uint64]
	fuel    int
}

const defaultStartingFuel = 10000

func NewSession(oracle *types.TypeCtx) *InferenceSession {
	return &InferenceSession{
		oracle:  oracle,
		reduced: set.NewHashSet[ConstraintFormula, uint64](0),
		fuel:    defaultStartingFuel,
	}
}

// Fresh registers a new inference variable for param and returns it. The
// variable's Ref addresses it for the rest of the session.
func (s *InferenceSession) Fresh(param *types.TypeParamDecl) *InferenceVariable {
	v := newInferenceVariable(param, len(s.vars))
	s.vars = append(s.vars, v)
	return v
}

// Variables returns the session's arena in registration order.
func (s *InferenceSession) Variables() []*InferenceVariable { return s.vars }

func (s *InferenceSession) Oracle() *types.TypeCtx { return s.oracle }

func (s *InferenceSession) Variable(t types.Type) *InferenceVariable {
	ref, ok := t.(*types.InferenceVarRef)
	if !ok || ref.ID < 0 || ref.ID >= len(s.vars) {
		return nil
	}
	return s.vars[ref.ID]
}

// IsProperType reports whether t contains no reference to any of the
// session's unresolved variables.
func (s *InferenceSession) IsProperType(t types.Type) bool {
	switch t := t.(type) {
	case *types.InferenceVarRef:
		return false
	case *types.ArrayType:
		return s.IsProperType(t.Component)
	case *types.WildcardType:
		return t.Bound == nil || s.IsProperType(t.Bound)
	case *types.ClassType:
		for _, arg := range t.Args {
			if !s.IsProperType(arg) {
				return false
			}
		}
		return true
	case *types.IntersectionType:
		for _, conjunct := range t.Conjuncts {
			if !s.IsProperType(conjunct) {
				return false
			}
		}
		return true
	}
	return true
}

// Substitute rewrites every declared type-parameter reference in t with the
// placeholder of the variable registered for it, seeding a constraint over
// the session's variables.
func (s *InferenceSession) Substitute(t types.Type) types.Type {
	substitutor := types.EmptySubstitutor()
	for _, v := range s.vars {
		substitutor = substitutor.With(v.Param(), v.Ref())
	}
	return substitutor.Apply(t)
}

// Solve drains the worklist seeded with the initial constraints. It returns
// false, with diagnostics, as soon as one constraint reduces to a definite
// mismatch. On success it additionally pins the instantiation of any
// variable whose bounds identify a single proper type; full bound resolution
// is the caller's concern.
func (s *InferenceSession) Solve(initial ...ConstraintFormula) (bool, *diag.Diagnostics) {
	queue := append([]ConstraintFormula(nil), initial...)
	steps := 0
	for len(queue) > 0 {
		formula := queue[0]
		queue = queue[1:]
		if !s.reduced.Insert(formula) {
			continue
		}
		steps++
		if steps > s.fuel {
			return false, (&diag.Diagnostics{}).With(diag.OutOfFuel{Steps: steps})
		}
		logger.Debug("reducing constraint", "constraint", formula.String(), "queued", len(queue))
		if !formula.Reduce(s, &queue) {
			diagnostics := &diag.Diagnostics{}
			if subtyping, ok := formula.(*SubtypingConstraint); ok {
				diagnostics = diagnostics.With(diag.CannotInfer{T: subtyping.T, S: subtyping.S})
			}
			return false, diagnostics
		}
	}
	s.pinTrivialInstantiations()
	return true, nil
}

// pinTrivialInstantiations resolves the variables whose bound sets leave no
// choice: a single proper lower bound, or failing that a single proper upper
// bound.
func (s *InferenceSession) pinTrivialInstantiations() {
	for _, v := range s.vars {
		if v.Instantiation() != nil {
			continue
		}
		if t, ok := s.singleProper(v.Bounds(Lower)); ok {
			v.SetInstantiation(t)
			continue
		}
		if t, ok := s.singleProper(v.Bounds(Upper)); ok {
			v.SetInstantiation(t)
		}
	}
}

func (s *InferenceSession) singleProper(bounds []types.Type) (types.Type, bool) {
	if len(bounds) != 1 || !s.IsProperType(bounds[0]) {
		return nil, false
	}
	return bounds[0], true
}
