package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/varro-lang/varro/frontend/infer"
	"github.com/varro-lang/varro/frontend/types"
)

const collectionsScenario = `
classes:
  - name: Number
  - name: Integer
    supers: [Number]
  - name: String
  - name: Collection
    interface: true
    params: [E]
  - name: List
    interface: true
    params: [E]
    supers: ["Collection<E>"]
  - name: ArrayList
    params: [E]
    supers: ["List<E>"]
infer: [T]
constraints:
  - target: "List<String>"
    source: "List<T>"
`

func buildScenario(t *testing.T, src string) *Built {
	t.Helper()
	var s Scenario
	require.NoError(t, yaml.Unmarshal([]byte(src), &s))
	built, err := s.Build()
	require.NoError(t, err)
	return built
}

func TestBuildAndSolve(t *testing.T) {
	built := buildScenario(t, collectionsScenario)
	require.Len(t, built.Constraints, 1)
	require.Len(t, built.Session.Variables(), 1)

	ok, diagnostics := built.Session.Solve(built.Constraints...)
	require.True(t, ok)
	assert.False(t, diagnostics.HasError())

	v := built.Session.Variables()[0]
	bounds := v.Bounds(infer.Upper)
	require.Len(t, bounds, 1)
	assert.Equal(t, "String", bounds[0].String())
	require.NotNil(t, v.Instantiation())
	assert.Equal(t, "String", v.Instantiation().String())
}

func TestBuildRefutableScenario(t *testing.T) {
	built := buildScenario(t, `
classes:
  - name: Number
  - name: String
constraints:
  - target: "Number"
    source: "String"
`)
	ok, diagnostics := built.Session.Solve(built.Constraints...)
	assert.False(t, ok)
	assert.True(t, diagnostics.HasError())
}

func TestBuildContainmentMode(t *testing.T) {
	built := buildScenario(t, `
classes:
  - name: Number
  - name: Integer
    supers: [Number]
constraints:
  - target: "? extends Number"
    source: "Integer"
    mode: contains
`)
	ok, _ := built.Session.Solve(built.Constraints...)
	assert.True(t, ok)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(collectionsScenario), 0o644))

	built, err := Load(path)
	require.NoError(t, err)
	ok, _ := built.Session.Solve(built.Constraints...)
	assert.True(t, ok)
}

func TestBuildErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{
			name: "duplicate class",
			src: `
classes:
  - name: A
  - name: A
`,
		},
		{
			name: "unknown super",
			src: `
classes:
  - name: A
    supers: [Missing]
`,
		},
		{
			name: "arity mismatch",
			src: `
classes:
  - name: List
    params: [E]
constraints:
  - target: "List<List, List>"
    source: "List"
`,
		},
		{
			name: "unknown mode",
			src: `
classes:
  - name: A
constraints:
  - target: "A"
    source: "A"
    mode: sideways
`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var s Scenario
			require.NoError(t, yaml.Unmarshal([]byte(tc.src), &s))
			_, err := s.Build()
			assert.Error(t, err)
		})
	}
}

func TestParseTypeExpressions(t *testing.T) {
	built := buildScenario(t, `
classes:
  - name: Number
  - name: List
    interface: true
    params: [E]
`)
	sc := newScope(built, nil, nil)

	testCases := []struct {
		src      string
		expected string
	}{
		{src: "Number", expected: "Number"},
		{src: "List<Number>", expected: "List<Number>"},
		{src: "List<? extends Number>", expected: "List<? extends Number>"},
		{src: "List<? super Number>", expected: "List<? super Number>"},
		{src: "List<?>", expected: "List<?>"},
		{src: "Number[][]", expected: "Number[][]"},
		{src: "int[]", expected: "int[]"},
		{src: "null", expected: "null"},
		{src: "Number & List<Number>", expected: "Number & List<Number>"},
		{src: "Object", expected: "Object"},
		{src: " List < Number > ", expected: "List<Number>"},
	}
	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			parsed, err := parseType(tc.src, sc)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, parsed.String())
		})
	}

	for _, bad := range []string{"", "List<", "List<Number", "Missing", "Number]]", "List<>"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := parseType(bad, sc)
			assert.Error(t, err)
		})
	}
}

func TestInferVariableShadowing(t *testing.T) {
	built := buildScenario(t, `
classes:
  - name: Number
infer: [T]
constraints:
  - target: "Number"
    source: "T"
`)
	require.Len(t, built.Constraints, 1)
	constraint := built.Constraints[0].(*infer.SubtypingConstraint)
	_, isRef := constraint.S.(*types.InferenceVarRef)
	assert.True(t, isRef, "infer names must resolve to session placeholders")
}
