package infer

import (
	"github.com/varro-lang/varro/frontend/ast"
	"github.com/varro-lang/varro/frontend/types"
	"github.com/varro-lang/varro/util"
)

// Classifier decides whether an expression's type depends on its surrounding
// context, and if so what that context expects.
type Classifier struct {
	oracle *types.TypeCtx
}

func NewClassifier(oracle *types.TypeCtx) *Classifier {
	return &Classifier{oracle: oracle}
}

// HasStandaloneForm reports whether the expression's type can be computed
// without looking at its context. Exactly five shapes cannot: lambdas,
// method references, parenthesized expressions, conditionals, and calls.
func HasStandaloneForm(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Lambda, *ast.MethodRef, *ast.Paren, *ast.Conditional, *ast.MethodCall, *ast.NewExpr:
		return false
	}
	return true
}

// IsPolyExpression classifies e by shape. Calls are poly only when they sit
// in an assignment-or-invocation context and actually leave something to
// infer; everything self-typed is standalone.
func (c *Classifier) IsPolyExpression(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Lambda, *ast.MethodRef:
		return true
	case *ast.Paren:
		if e.Inner == nil {
			return false
		}
		return c.IsPolyExpression(e.Inner)
	case *ast.NewExpr:
		if e.Diamond() {
			return ast.IsAssignmentOrInvocationContext(e.Parent())
		}
	case *ast.MethodCall:
		if ast.IsAssignmentOrInvocationContext(e.Parent()) && len(e.TypeArgs) == 0 {
			method := e.ResolveMethod()
			if method != nil && len(method.TypeParams) > 0 && method.Return != nil {
				return mentionsTypeParams(util.NewSetOf(method.TypeParams), method.Return)
			}
		}
	case *ast.Conditional:
		if c.conditionalKind(e) == condNone {
			return ast.IsAssignmentOrInvocationContext(e.Parent())
		}
	}
	return false
}

// TargetType extracts the contextual target type of a call expression from
// its syntactic parent. The second result is false when the context supplies
// none.
//
// Two deliberate gaps: an argument index past the fixed formal parameters
// produces no target (varargs expansion is not modelled), and a return
// inside a lambda resolves the enclosing method rather than the lambda's
// target.
func (c *Classifier) TargetType(e ast.Expr) (types.Type, bool) {
	switch parent := e.Parent().(type) {
	case *ast.VarInitCtx:
		if parent.Decl == nil || parent.Decl.Declared == nil {
			return nil, false
		}
		return parent.Decl.Declared, true
	case *ast.AssignCtx:
		if parent.TargetType == nil {
			return nil, false
		}
		return parent.TargetType, true
	case *ast.ReturnCtx:
		if parent.Method == nil || parent.Method.Return == nil {
			return nil, false
		}
		return parent.Method.Return, true
	case *ast.ArgumentCtx:
		if parent.Call == nil {
			return nil, false
		}
		method := parent.Call.ResolveMethod()
		if method == nil {
			return nil, false
		}
		if parent.Index < 0 || parent.Index >= len(method.Params) {
			return nil, false
		}
		return method.Params[parent.Index], true
	}
	return nil, false
}

// mentionsTypeParams walks t looking for a reference to any of the given
// type parameters, through class-type arguments and array components.
func mentionsTypeParams(params util.MSet[*types.TypeParamDecl], t types.Type) bool {
	switch t := t.(type) {
	case *types.ClassType:
		for _, arg := range t.Args {
			if mentionsTypeParams(params, arg) {
				return true
			}
		}
		param, ok := t.Decl.(*types.TypeParamDecl)
		return ok && params.Contains(param)
	case *types.ArrayType:
		return mentionsTypeParams(params, t.Component)
	}
	return false
}

type conditionalKind int

const (
	condNone conditionalKind = iota
	condBoolean
	condNumeric
)

// conditionalKind classifies a conditional branch as unanimously boolean or
// numeric. Any mismatch, or a branch that is neither, yields condNone and
// forces the poly check back onto the context rule.
func (c *Classifier) conditionalKind(e ast.Expr) conditionalKind {
	if paren, ok := e.(*ast.Paren); ok {
		if paren.Inner == nil {
			return condNone
		}
		return c.conditionalKind(paren.Inner)
	}
	var t types.Type
	if newExpr, ok := e.(*ast.NewExpr); ok {
		t = newExpr.Type()
	} else if HasStandaloneForm(e) {
		t = selfType(e)
	} else if call, ok := e.(*ast.MethodCall); ok {
		if method := call.ResolveMethod(); method != nil {
			t = method.Return
		}
	}
	if t != nil && c.oracle.IsNumericType(t) {
		return condNumeric
	}
	if t != nil && c.oracle.IsBooleanType(t) {
		return condBoolean
	}
	if cond, ok := e.(*ast.Conditional); ok && cond.Then != nil && cond.Else != nil {
		thenKind := c.conditionalKind(cond.Then)
		elseKind := c.conditionalKind(cond.Else)
		if thenKind == elseKind {
			return thenKind
		}
	}
	return condNone
}

// selfType returns the self-determined type of a standalone-form expression.
func selfType(e ast.Expr) types.Type {
	switch e := e.(type) {
	case *ast.Literal:
		return e.Typ
	case *ast.Ident:
		return e.Typ
	case *ast.Unary:
		return e.Typ
	case *ast.Binary:
		return e.Typ
	}
	return nil
}
