package types

// Declarations form the program model the engine resolves types against.
// Identity is pointer identity plus a stable integer id, so hashing and
// substitution never depend on object addresses.

// RefDecl is what a ClassType may reference: a class/interface declaration
// or a bound type parameter.
type RefDecl interface {
	DeclName() string
	Hash() uint64
	declNode()
}

var (
	_ RefDecl = (*ClassDecl)(nil)
	_ RefDecl = (*TypeParamDecl)(nil)
)

// TypeParamDecl declares one type parameter of a class or method.
type TypeParamDecl struct {
	ID    int
	Name  string
	Owner string // declaring class or method name, for diagnostics
}

func (d *TypeParamDecl) declNode()        {}
func (d *TypeParamDecl) DeclName() string { return d.Name }
func (d *TypeParamDecl) Hash() uint64 {
	return hashOf("TypeParamDecl", uint64(d.ID))
}

// Ref returns a ClassType referencing the parameter, the shape declared
// type parameters take when they appear inside other types.
func (d *TypeParamDecl) Ref() *ClassType {
	return &ClassType{Decl: d}
}

// ClassDecl declares a class or interface. Supers lists the declared
// superclass and superinterface references; their arguments may mention the
// declaring class's own type parameters.
type ClassDecl struct {
	ID         int
	Name       string
	Interface  bool
	TypeParams []*TypeParamDecl
	Supers     []*ClassType
}

func (d *ClassDecl) declNode()        {}
func (d *ClassDecl) DeclName() string { return d.Name }
func (d *ClassDecl) Hash() uint64 {
	return hashOf("ClassDecl", uint64(d.ID))
}

// MethodDecl declares a method: its own type parameters, formal parameter
// types in declaration order, and a return type.
type MethodDecl struct {
	Name       string
	TypeParams []*TypeParamDecl
	Params     []Type
	Return     Type
}

// VarDecl declares a variable with an explicit type.
type VarDecl struct {
	Name     string
	Declared Type
}
