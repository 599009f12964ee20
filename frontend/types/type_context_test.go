package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hierarchy under test:
//
//	Number; Integer extends Number
//	Collection<E> (interface); List<E> extends Collection<E>;
//	ArrayList<E> extends List<E>
type testHierarchy struct {
	number     *ClassDecl
	integer    *ClassDecl
	collection *ClassDecl
	list       *ClassDecl
	arrayList  *ClassDecl
}

func newTestHierarchy() *testHierarchy {
	h := &testHierarchy{
		number: &ClassDecl{ID: 1, Name: "Number"},
	}
	h.integer = &ClassDecl{ID: 2, Name: "Integer", Supers: []*ClassType{{Decl: h.number}}}

	collectionParam := &TypeParamDecl{ID: 10, Name: "E", Owner: "Collection"}
	h.collection = &ClassDecl{ID: 3, Name: "Collection", Interface: true, TypeParams: []*TypeParamDecl{collectionParam}}

	listParam := &TypeParamDecl{ID: 11, Name: "E", Owner: "List"}
	h.list = &ClassDecl{
		ID: 4, Name: "List", Interface: true,
		TypeParams: []*TypeParamDecl{listParam},
		Supers:     []*ClassType{{Decl: h.collection, Args: []Type{listParam.Ref()}}},
	}

	arrayListParam := &TypeParamDecl{ID: 12, Name: "E", Owner: "ArrayList"}
	h.arrayList = &ClassDecl{
		ID: 5, Name: "ArrayList",
		TypeParams: []*TypeParamDecl{arrayListParam},
		Supers:     []*ClassType{{Decl: h.list, Args: []Type{arrayListParam.Ref()}}},
	}
	return h
}

func classOf(decl *ClassDecl, args ...Type) *ClassType {
	return &ClassType{Decl: decl, Args: args}
}

func TestIsAssignablePrimitives(t *testing.T) {
	ctx := NewTypeCtx()
	intT := &Primitive{Kind: IntKind}
	longT := &Primitive{Kind: LongKind}
	doubleT := &Primitive{Kind: DoubleKind}
	boolT := &Primitive{Kind: BooleanKind}

	assert.True(t, ctx.IsAssignable(intT, intT))
	assert.True(t, ctx.IsAssignable(longT, intT))
	assert.True(t, ctx.IsAssignable(doubleT, intT))
	assert.True(t, ctx.IsAssignable(doubleT, longT))
	assert.False(t, ctx.IsAssignable(intT, longT))
	assert.False(t, ctx.IsAssignable(boolT, intT))
	assert.False(t, ctx.IsAssignable(intT, boolT))

	h := newTestHierarchy()
	assert.False(t, ctx.IsAssignable(intT, classOf(h.number)), "no unboxing in this model")
	assert.False(t, ctx.IsAssignable(classOf(h.number), intT), "no boxing in this model")
}

func TestIsAssignableReferences(t *testing.T) {
	ctx := NewTypeCtx()
	h := newTestHierarchy()

	t.Run("null to any reference", func(t *testing.T) {
		assert.True(t, ctx.IsAssignable(classOf(h.number), Null()))
		assert.True(t, ctx.IsAssignable(&ArrayType{Component: classOf(h.number)}, Null()))
		assert.False(t, ctx.IsAssignable(&Primitive{Kind: IntKind}, Null()))
	})

	t.Run("hierarchy", func(t *testing.T) {
		assert.True(t, ctx.IsAssignable(classOf(h.number), classOf(h.integer)))
		assert.False(t, ctx.IsAssignable(classOf(h.integer), classOf(h.number)))
		assert.True(t, ctx.IsAssignable(ObjectType(), classOf(h.integer)))
	})

	t.Run("parameterized through hierarchy", func(t *testing.T) {
		listOfInt := classOf(h.list, classOf(h.integer))
		arrayListOfInt := classOf(h.arrayList, classOf(h.integer))
		collectionOfInt := classOf(h.collection, classOf(h.integer))

		assert.True(t, ctx.IsAssignable(listOfInt, arrayListOfInt))
		assert.True(t, ctx.IsAssignable(collectionOfInt, arrayListOfInt), "two-step walk")
		assert.False(t, ctx.IsAssignable(arrayListOfInt, listOfInt))
	})

	t.Run("invariant type arguments", func(t *testing.T) {
		listOfInt := classOf(h.list, classOf(h.integer))
		listOfNum := classOf(h.list, classOf(h.number))
		assert.False(t, ctx.IsAssignable(listOfNum, listOfInt))
		assert.False(t, ctx.IsAssignable(listOfInt, listOfNum))
	})

	t.Run("wildcard type arguments", func(t *testing.T) {
		arrayListOfInt := classOf(h.arrayList, classOf(h.integer))
		listExtendsNum := classOf(h.list, &WildcardType{Bound: classOf(h.number), Variance: Extends})
		listSuperInt := classOf(h.list, &WildcardType{Bound: classOf(h.integer), Variance: Super})
		listSuperNum := classOf(h.list, &WildcardType{Bound: classOf(h.number), Variance: Super})
		listUnbounded := classOf(h.list, &WildcardType{Variance: Unbounded})

		assert.True(t, ctx.IsAssignable(listExtendsNum, arrayListOfInt))
		assert.True(t, ctx.IsAssignable(listSuperInt, arrayListOfInt))
		assert.False(t, ctx.IsAssignable(listSuperNum, arrayListOfInt))
		assert.True(t, ctx.IsAssignable(listUnbounded, arrayListOfInt))
	})

	t.Run("raw target accepts any parameterization", func(t *testing.T) {
		rawList := classOf(h.list)
		assert.True(t, ctx.IsAssignable(rawList, classOf(h.arrayList, classOf(h.integer))))
	})

	t.Run("intersection target requires all conjuncts", func(t *testing.T) {
		both := &IntersectionType{Conjuncts: []Type{classOf(h.number), ObjectType()}}
		assert.True(t, ctx.IsAssignable(both, classOf(h.integer)))
		withList := &IntersectionType{Conjuncts: []Type{classOf(h.number), classOf(h.list)}}
		assert.False(t, ctx.IsAssignable(withList, classOf(h.integer)))
	})
}

func TestIsAssignableArrays(t *testing.T) {
	ctx := NewTypeCtx()
	h := newTestHierarchy()
	intT := &Primitive{Kind: IntKind}
	longT := &Primitive{Kind: LongKind}

	assert.True(t, ctx.IsAssignable(
		&ArrayType{Component: classOf(h.number)},
		&ArrayType{Component: classOf(h.integer)},
	), "reference arrays are covariant")
	assert.False(t, ctx.IsAssignable(
		&ArrayType{Component: longT},
		&ArrayType{Component: intT},
	), "primitive arrays are invariant")
	assert.True(t, ctx.IsAssignable(
		&ArrayType{Component: intT},
		&ArrayType{Component: intT},
	))
	assert.False(t, ctx.IsAssignable(&ArrayType{Component: intT}, classOf(h.number)))
}

func TestKindQueries(t *testing.T) {
	ctx := NewTypeCtx()
	h := newTestHierarchy()

	assert.True(t, ctx.IsNumericType(&Primitive{Kind: IntKind}))
	assert.True(t, ctx.IsNumericType(&Primitive{Kind: DoubleKind}))
	assert.False(t, ctx.IsNumericType(&Primitive{Kind: BooleanKind}))
	assert.True(t, ctx.IsNumericType(classOf(h.integer)), "boxed numeric recognised by name")
	assert.True(t, ctx.IsNumericType(classOf(h.number)))
	assert.False(t, ctx.IsNumericType(classOf(h.list)))
	assert.False(t, ctx.IsNumericType(nil))

	assert.True(t, ctx.IsBooleanType(&Primitive{Kind: BooleanKind}))
	assert.True(t, ctx.IsBooleanType(classOf(&ClassDecl{ID: 99, Name: "Boolean"})))
	assert.False(t, ctx.IsBooleanType(classOf(h.number)))
	assert.False(t, ctx.IsBooleanType(nil))
}

func TestSubstitutorFrom(t *testing.T) {
	ctx := NewTypeCtx()
	h := newTestHierarchy()

	t.Run("identity", func(t *testing.T) {
		known := NewSubstitutor(h.list.TypeParams, []Type{classOf(h.integer)})
		result, found := ctx.SubstitutorFrom(h.list, h.list, known)
		require.True(t, found)
		mapped, defined := result.Substitute(h.list.TypeParams[0])
		require.True(t, defined)
		assert.True(t, Equal(classOf(h.integer), mapped))
	})

	t.Run("two-step composition", func(t *testing.T) {
		known := NewSubstitutor(h.arrayList.TypeParams, []Type{classOf(h.number)})
		result, found := ctx.SubstitutorFrom(h.arrayList, h.collection, known)
		require.True(t, found)
		mapped, defined := result.Substitute(h.collection.TypeParams[0])
		require.True(t, defined)
		assert.True(t, Equal(classOf(h.number), mapped))
	})

	t.Run("unreachable", func(t *testing.T) {
		_, found := ctx.SubstitutorFrom(h.collection, h.arrayList, EmptySubstitutor())
		assert.False(t, found)
	})

	t.Run("cyclic hierarchy terminates", func(t *testing.T) {
		a := &ClassDecl{ID: 50, Name: "A"}
		b := &ClassDecl{ID: 51, Name: "B", Supers: []*ClassType{{Decl: a}}}
		a.Supers = []*ClassType{{Decl: b}}
		_, found := ctx.SubstitutorFrom(a, h.number, EmptySubstitutor())
		assert.False(t, found)
	})

	t.Run("raw supertype erases arguments", func(t *testing.T) {
		rawChild := &ClassDecl{
			ID: 52, Name: "RawList",
			Supers: []*ClassType{{Decl: h.list}},
		}
		result, found := ctx.SubstitutorFrom(rawChild, h.list, EmptySubstitutor())
		require.True(t, found)
		_, defined := result.Substitute(h.list.TypeParams[0])
		assert.False(t, defined)
	})
}
