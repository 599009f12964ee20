package types

// inferMarker is the "infer these" slot a constructor call writes as <> in
// its type-argument list. It only ever appears in syntax; reduction never
// sees it.
type inferMarker struct{}

func (t *inferMarker) typeNode()      {}
func (t *inferMarker) String() string { return "<>" }
func (t *inferMarker) Hash() uint64   { return hashOf("inferMarker") }

var inferMarkerInstance = &inferMarker{}

// InferMarker returns the canonical infer-these type-argument slot.
func InferMarker() Type { return inferMarkerInstance }

// IsInferMarker reports whether t is the infer-these marker.
func IsInferMarker(t Type) bool {
	_, ok := t.(*inferMarker)
	return ok
}
