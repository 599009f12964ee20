package types

// The universe holds the declarations every program model shares. Ids below
// zero are reserved for it so user-built hierarchies can number from zero up.

var objectDecl = &ClassDecl{ID: -1, Name: "Object"}

// ObjectDecl returns the universal top class declaration.
func ObjectDecl() *ClassDecl { return objectDecl }

// ObjectType returns a reference to the universal top class.
func ObjectType() *ClassType { return &ClassType{Decl: objectDecl} }

// IsObjectType reports whether t is a raw reference to the top class. The
// check is by name so program models that declare their own top class are
// treated the same way.
func IsObjectType(t Type) bool {
	ct, ok := t.(*ClassType)
	if !ok || !ct.Raw() {
		return false
	}
	decl, ok := ct.Decl.(*ClassDecl)
	return ok && decl.Name == "Object"
}

// Well-known box and numeric class names, recognised by the oracle's numeric
// and boolean kind queries.
var numericClassNames = map[string]bool{
	"Byte":    true,
	"Short":   true,
	"Integer": true,
	"Long":    true,
	"Float":   true,
	"Double":  true,
	"Number":  true,
}
