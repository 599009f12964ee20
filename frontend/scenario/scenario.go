// Package scenario loads a declarative description of a class hierarchy and
// a set of constraints, and builds the program model the inference engine
// runs against. It is the repo's input surface for the CLI and the
// end-to-end tests.
package scenario

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/varro-lang/varro/frontend/infer"
	"github.com/varro-lang/varro/frontend/types"
)

// Scenario is the YAML shape of one inference problem.
type Scenario struct {
	Classes     []ClassSpec      `yaml:"classes"`
	Infer       []string         `yaml:"infer"`
	Constraints []ConstraintSpec `yaml:"constraints"`
}

// ClassSpec declares one class or interface. Supers are written as type
// expressions over the class's own type parameters, e.g. "List<E>".
type ClassSpec struct {
	Name      string   `yaml:"name"`
	Interface bool     `yaml:"interface"`
	Params    []string `yaml:"params"`
	Supers    []string `yaml:"supers"`
}

// ConstraintSpec is one constraint to seed the session with. Mode is
// "subtype" (the default) or "contains".
type ConstraintSpec struct {
	Target string `yaml:"target"`
	Source string `yaml:"source"`
	Mode   string `yaml:"mode"`
}

// Built is a scenario turned into a live program model.
type Built struct {
	Oracle      *types.TypeCtx
	Session     *infer.InferenceSession
	Constraints []infer.ConstraintFormula
	Classes     map[string]*types.ClassDecl
}

// Load reads and builds a scenario file.
func Load(path string) (*Built, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, errors.Wrapf(err, "parsing scenario %s", path)
	}
	return s.Build()
}

// Build resolves the scenario into declarations, registers the inference
// variables, and parses the constraint types.
func (s *Scenario) Build() (*Built, error) {
	built := &Built{
		Oracle:  types.NewTypeCtx(),
		Classes: make(map[string]*types.ClassDecl, len(s.Classes)+1),
	}
	built.Session = infer.NewSession(built.Oracle)
	built.Classes["Object"] = types.ObjectDecl()

	nextID := 0
	// declare every class first so supers may reference classes declared
	// later in the file
	for _, spec := range s.Classes {
		if _, dup := built.Classes[spec.Name]; dup {
			return nil, errors.Errorf("class %q declared twice", spec.Name)
		}
		decl := &types.ClassDecl{ID: nextID, Name: spec.Name, Interface: spec.Interface}
		nextID++
		for _, param := range spec.Params {
			decl.TypeParams = append(decl.TypeParams, &types.TypeParamDecl{
				ID:    nextID,
				Name:  param,
				Owner: spec.Name,
			})
			nextID++
		}
		built.Classes[spec.Name] = decl
	}

	for _, spec := range s.Classes {
		decl := built.Classes[spec.Name]
		scope := newScope(built, decl.TypeParams, nil)
		for _, super := range spec.Supers {
			parsed, err := parseType(super, scope)
			if err != nil {
				return nil, errors.Wrapf(err, "super of class %q", spec.Name)
			}
			ref, ok := parsed.(*types.ClassType)
			if !ok {
				return nil, errors.Errorf("super %q of class %q is not a class type", super, spec.Name)
			}
			decl.Supers = append(decl.Supers, ref)
		}
	}

	inferVars := make(map[string]*infer.InferenceVariable, len(s.Infer))
	for _, name := range s.Infer {
		param := &types.TypeParamDecl{ID: nextID, Name: name, Owner: "query"}
		nextID++
		inferVars[name] = built.Session.Fresh(param)
	}

	scope := newScope(built, nil, inferVars)
	for i, spec := range s.Constraints {
		target, err := parseType(spec.Target, scope)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint %d target", i)
		}
		source, err := parseType(spec.Source, scope)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint %d source", i)
		}
		switch spec.Mode {
		case "", "subtype":
			built.Constraints = append(built.Constraints, infer.Subtyping(target, source))
		case "contains":
			built.Constraints = append(built.Constraints, infer.Contained(target, source))
		default:
			return nil, errors.Errorf("constraint %d: unknown mode %q", i, spec.Mode)
		}
	}
	return built, nil
}

// scope resolves names inside type expressions.
type scope struct {
	built     *Built
	params    map[string]*types.TypeParamDecl
	inferVars map[string]*infer.InferenceVariable
}

func newScope(built *Built, params []*types.TypeParamDecl, inferVars map[string]*infer.InferenceVariable) *scope {
	byName := make(map[string]*types.TypeParamDecl, len(params))
	for _, p := range params {
		byName[p.Name] = p
	}
	return &scope{built: built, params: byName, inferVars: inferVars}
}

// resolve maps a bare name to a type. Inference variables shadow classes.
func (sc *scope) resolve(name string, args []types.Type) (types.Type, error) {
	if v, ok := sc.inferVars[name]; ok {
		if len(args) > 0 {
			return nil, errors.Errorf("inference variable %q cannot take type arguments", name)
		}
		return v.Ref(), nil
	}
	if p, ok := sc.params[name]; ok {
		if len(args) > 0 {
			return nil, errors.Errorf("type parameter %q cannot take type arguments", name)
		}
		return p.Ref(), nil
	}
	if decl, ok := sc.built.Classes[name]; ok {
		if len(args) > 0 && len(args) != len(decl.TypeParams) {
			return nil, errors.Errorf("class %q expects %d type arguments, got %d", name, len(decl.TypeParams), len(args))
		}
		return &types.ClassType{Decl: decl, Args: args}, nil
	}
	return nil, errors.Errorf("unknown type name %q", name)
}
