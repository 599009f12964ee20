package ast

import (
	"github.com/varro-lang/varro/frontend/types"
)

// WithCtx is embedded by every expression variant to carry its syntactic
// parent. A nil Ctx means the expression is a bare statement.
type WithCtx struct {
	Ctx Context
}

func (w *WithCtx) Parent() Context {
	if w.Ctx == nil {
		return &StatementCtx{}
	}
	return w.Ctx
}

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*MethodRef)(nil)
	_ Expr = (*Paren)(nil)
	_ Expr = (*Conditional)(nil)
	_ Expr = (*MethodCall)(nil)
	_ Expr = (*NewExpr)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*Binary)(nil)
)

// Literal is a literal value. Typ is its self-determined type as computed by
// the resolver.
type Literal struct {
	WithCtx
	Value string
	Typ   types.Type
}

func (e *Literal) exprNode() {}
func (e *Literal) Hash() uint64 {
	if e.Typ == nil {
		return hashOf("Literal:" + e.Value)
	}
	return hashOf("Literal:"+e.Value, e.Typ.Hash())
}

// Ident is a resolved variable reference.
type Ident struct {
	WithCtx
	Name string
	Typ  types.Type
}

func (e *Ident) exprNode() {}
func (e *Ident) Hash() uint64 {
	if e.Typ == nil {
		return hashOf("Ident:" + e.Name)
	}
	return hashOf("Ident:"+e.Name, e.Typ.Hash())
}

// Lambda is a lambda literal. Its body is irrelevant to classification so it
// is not modelled here.
type Lambda struct {
	WithCtx
}

func (e *Lambda) exprNode()    {}
func (e *Lambda) Hash() uint64 { return hashOf("Lambda") }

// MethodRef is a member or method reference literal.
type MethodRef struct {
	WithCtx
	Name string
}

func (e *MethodRef) exprNode()    {}
func (e *MethodRef) Hash() uint64 { return hashOf("MethodRef:" + e.Name) }

// Paren wraps a parenthesized expression.
type Paren struct {
	WithCtx
	Inner Expr
}

func (e *Paren) exprNode() {}
func (e *Paren) Hash() uint64 {
	if e.Inner == nil {
		return hashOf("Paren")
	}
	return hashOf("Paren", e.Inner.Hash())
}

// Conditional is a ternary conditional expression.
type Conditional struct {
	WithCtx
	Cond Expr
	Then Expr
	Else Expr
}

func (e *Conditional) exprNode() {}
func (e *Conditional) Hash() uint64 {
	var children []uint64
	for _, branch := range []Expr{e.Cond, e.Then, e.Else} {
		if branch != nil {
			children = append(children, branch.Hash())
		}
	}
	return hashOf("Conditional", children...)
}

// MethodCall is a call whose target has already been resolved. TypeArgs holds
// the explicit type arguments, empty when the call relies on inference.
type MethodCall struct {
	WithCtx
	Method   *types.MethodDecl
	TypeArgs []types.Type
	Args     []Expr
}

func (e *MethodCall) exprNode() {}
func (e *MethodCall) Hash() uint64 {
	children := []uint64{uint64(len(e.Args))}
	if e.Method != nil {
		children = append(children, hashOf("Method:"+e.Method.Name))
	}
	for _, a := range e.TypeArgs {
		children = append(children, a.Hash())
	}
	return hashOf("MethodCall", children...)
}

// ResolveMethod returns the call's target declaration, nil when resolution
// failed.
func (e *MethodCall) ResolveMethod() *types.MethodDecl { return e.Method }

// NewExpr is a constructor call. TypeArgs holds the written type-argument
// list of the class reference; a diamond is the single infer-marker slot.
type NewExpr struct {
	WithCtx
	Class    *types.ClassDecl
	TypeArgs []types.Type
	Args     []Expr
}

func (e *NewExpr) exprNode() {}
func (e *NewExpr) Hash() uint64 {
	children := []uint64{uint64(len(e.Args))}
	if e.Class != nil {
		children = append(children, e.Class.Hash())
	}
	for _, a := range e.TypeArgs {
		children = append(children, a.Hash())
	}
	return hashOf("NewExpr", children...)
}

// Diamond reports whether the class reference was written with the inferred
// type-argument marker as its only slot.
func (e *NewExpr) Diamond() bool {
	return len(e.TypeArgs) == 1 && types.IsInferMarker(e.TypeArgs[0])
}

// Type returns the constructed class type as written.
func (e *NewExpr) Type() types.Type {
	if e.Class == nil {
		return nil
	}
	if e.Diamond() {
		return &types.ClassType{Decl: e.Class}
	}
	return &types.ClassType{Decl: e.Class, Args: e.TypeArgs}
}

// Unary is a unary operation; its type is self-determined.
type Unary struct {
	WithCtx
	Operand Expr
	Typ     types.Type
}

func (e *Unary) exprNode() {}
func (e *Unary) Hash() uint64 {
	var children []uint64
	if e.Operand != nil {
		children = append(children, e.Operand.Hash())
	}
	if e.Typ != nil {
		children = append(children, e.Typ.Hash())
	}
	return hashOf("Unary", children...)
}

// Binary is a binary operation; its type is self-determined.
type Binary struct {
	WithCtx
	Left  Expr
	Right Expr
	Typ   types.Type
}

func (e *Binary) exprNode() {}
func (e *Binary) Hash() uint64 {
	var children []uint64
	for _, side := range []Expr{e.Left, e.Right} {
		if side != nil {
			children = append(children, side.Hash())
		}
	}
	if e.Typ != nil {
		children = append(children, e.Typ.Hash())
	}
	return hashOf("Binary", children...)
}
