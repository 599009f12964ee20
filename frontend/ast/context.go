package ast

import (
	"github.com/varro-lang/varro/frontend/types"
)

// ArgumentCtx marks an expression occupying position Index of the argument
// list of Call.
type ArgumentCtx struct {
	Call  *MethodCall
	Index int
}

func (*ArgumentCtx) ctxNode() {}

// VarInitCtx marks an expression initialising a declared variable.
type VarInitCtx struct {
	Decl *types.VarDecl
}

func (*VarInitCtx) ctxNode() {}

// AssignCtx marks an expression on the right-hand side of an assignment
// whose target has the given type.
type AssignCtx struct {
	TargetType types.Type
}

func (*AssignCtx) ctxNode() {}

// ReturnCtx marks a return-statement operand. Method is the lexically
// enclosing method declaration.
type ReturnCtx struct {
	Method *types.MethodDecl
}

func (*ReturnCtx) ctxNode() {}

// StatementCtx marks an expression used as a bare statement; no target type
// is available.
type StatementCtx struct{}

func (*StatementCtx) ctxNode() {}

// IsAssignmentContext reports whether ctx is a variable initialiser, an
// assignment right-hand side, or a return operand.
func IsAssignmentContext(ctx Context) bool {
	switch ctx.(type) {
	case *VarInitCtx, *AssignCtx, *ReturnCtx:
		return true
	}
	return false
}

// IsAssignmentOrInvocationContext additionally admits argument-list slots.
func IsAssignmentOrInvocationContext(ctx Context) bool {
	if _, ok := ctx.(*ArgumentCtx); ok {
		return true
	}
	return IsAssignmentContext(ctx)
}
