// Package ast models the resolved program fragments the inference engine
// classifies: expression shapes, the syntactic context an expression sits in,
// and just enough declaration structure to resolve call targets. Nodes are
// produced by a resolver front end; this package performs no name binding of
// its own.
package ast

import (
	"encoding/binary"
	"hash/fnv"
)

// Expr is the closed union of expression shapes. Every variant reports the
// context it syntactically sits in via Parent.
type Expr interface {
	Hash() uint64
	Parent() Context
	exprNode()
}

// Context is where an expression occurs. The classifier only distinguishes
// the contexts that can supply a target type; everything else is a bare
// statement context.
type Context interface {
	ctxNode()
}

var (
	_ Context = (*ArgumentCtx)(nil)
	_ Context = (*VarInitCtx)(nil)
	_ Context = (*AssignCtx)(nil)
	_ Context = (*ReturnCtx)(nil)
	_ Context = (*StatementCtx)(nil)
)

func hashOf(tag string, children ...uint64) uint64 {
	h := fnv.New64a()
	arr := []byte(tag)
	for _, c := range children {
		arr = binary.LittleEndian.AppendUint64(arr, c)
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}
