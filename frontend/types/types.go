package types

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// Type is the closed union of every type shape the inference engine reasons
// about. All variants are immutable and structurally compared via Hash.
type Type interface {
	fmt.Stringer
	Hash() uint64
	typeNode()
}

var (
	_ Type = (*Primitive)(nil)
	_ Type = (*ClassType)(nil)
	_ Type = (*ArrayType)(nil)
	_ Type = (*WildcardType)(nil)
	_ Type = (*IntersectionType)(nil)
	_ Type = (*NullType)(nil)
	_ Type = (*InferenceVarRef)(nil)
)

// Equal compares two types structurally.
// We compare hashes rather than requiring an Equals method on every variant:
// each variant folds the hashes of its children, so equal hashes mean equal
// trees for the type grammar here.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Hash() == b.Hash()
}

func hashOf(tag string, children ...uint64) uint64 {
	h := fnv.New64a()
	arr := []byte(tag)
	for _, c := range children {
		arr = binary.LittleEndian.AppendUint64(arr, c)
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// PrimitiveKind enumerates the built-in value kinds.
type PrimitiveKind int

const (
	BooleanKind PrimitiveKind = iota
	IntKind
	LongKind
	DoubleKind
	VoidKind
)

func (k PrimitiveKind) String() string {
	switch k {
	case BooleanKind:
		return "boolean"
	case IntKind:
		return "int"
	case LongKind:
		return "long"
	case DoubleKind:
		return "double"
	case VoidKind:
		return "void"
	}
	return "?"
}

// Numeric reports whether the kind takes part in arithmetic widening.
func (k PrimitiveKind) Numeric() bool {
	return k == IntKind || k == LongKind || k == DoubleKind
}

type Primitive struct {
	Kind PrimitiveKind
}

func (t *Primitive) typeNode()      {}
func (t *Primitive) String() string { return t.Kind.String() }
func (t *Primitive) Hash() uint64 {
	return hashOf("Primitive", uint64(t.Kind))
}

// ClassType references a class, interface, or a bound type parameter,
// possibly applied to type arguments. A raw reference to a generic
// declaration carries no arguments.
type ClassType struct {
	Decl RefDecl
	Args []Type
}

func (t *ClassType) typeNode() {}

// Raw reports whether the reference carries no type arguments.
func (t *ClassType) Raw() bool { return len(t.Args) == 0 }

func (t *ClassType) String() string {
	if t.Raw() {
		return t.Decl.DeclName()
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Decl.DeclName() + "<" + strings.Join(args, ", ") + ">"
}

func (t *ClassType) Hash() uint64 {
	children := make([]uint64, 0, len(t.Args)+1)
	children = append(children, t.Decl.Hash())
	for _, a := range t.Args {
		children = append(children, a.Hash())
	}
	return hashOf("ClassType", children...)
}

type ArrayType struct {
	Component Type
}

func (t *ArrayType) typeNode()      {}
func (t *ArrayType) String() string { return t.Component.String() + "[]" }
func (t *ArrayType) Hash() uint64 {
	return hashOf("ArrayType", t.Component.Hash())
}

// Variance of a wildcard type argument.
type Variance int

const (
	Unbounded Variance = iota
	Extends
	Super
)

func (v Variance) String() string {
	switch v {
	case Extends:
		return "extends"
	case Super:
		return "super"
	}
	return "unbounded"
}

// WildcardType is a wildcard type argument. Bound is nil exactly when the
// variance is Unbounded.
type WildcardType struct {
	Bound    Type
	Variance Variance
}

func (t *WildcardType) typeNode() {}

func (t *WildcardType) String() string {
	if t.Bound == nil {
		return "?"
	}
	return "? " + t.Variance.String() + " " + t.Bound.String()
}

func (t *WildcardType) Hash() uint64 {
	if t.Bound == nil {
		return hashOf("WildcardType", uint64(t.Variance))
	}
	return hashOf("WildcardType", uint64(t.Variance), t.Bound.Hash())
}

// IntersectionType holds a conjunction of types. Conjunct order is not
// significant; the hash folds conjunct hashes commutatively.
type IntersectionType struct {
	Conjuncts []Type
}

func (t *IntersectionType) typeNode() {}

func (t *IntersectionType) String() string {
	parts := make([]string, len(t.Conjuncts))
	for i, c := range t.Conjuncts {
		parts[i] = c.String()
	}
	return strings.Join(parts, " & ")
}

func (t *IntersectionType) Hash() uint64 {
	var folded uint64
	for _, c := range t.Conjuncts {
		folded ^= c.Hash()
	}
	return hashOf("IntersectionType", folded)
}

// HasConjunct reports whether the intersection contains a conjunct
// structurally equal to other.
func (t *IntersectionType) HasConjunct(other Type) bool {
	for _, c := range t.Conjuncts {
		if Equal(c, other) {
			return true
		}
	}
	return false
}

// NullType is the bottom reference type.
type NullType struct{}

func (t *NullType) typeNode()      {}
func (t *NullType) String() string { return "null" }
func (t *NullType) Hash() uint64   { return hashOf("NullType") }

var nullInstance = &NullType{}

// Null returns the canonical null type.
func Null() *NullType { return nullInstance }

// IsNull reports whether t is the null type.
func IsNull(t Type) bool {
	_, ok := t.(*NullType)
	return ok
}

// InferenceVarRef stands for an unresolved type parameter during a single
// inference session. The id addresses the session's variable arena.
type InferenceVarRef struct {
	ID int
}

func (t *InferenceVarRef) typeNode()      {}
func (t *InferenceVarRef) String() string { return fmt.Sprintf("α%d", t.ID) }
func (t *InferenceVarRef) Hash() uint64 {
	return hashOf("InferenceVarRef", uint64(t.ID))
}
