package scenario

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/varro-lang/varro/frontend/types"
)

// parseType parses a type expression such as "List<? extends Number>",
// "Integer[]", "A & B", "null" or "int" against the given scope.
func parseType(src string, sc *scope) (types.Type, error) {
	p := &typeParser{src: src, scope: sc}
	t, err := p.parseIntersection()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, errors.Errorf("unexpected %q at offset %d in %q", p.src[p.pos:], p.pos, src)
	}
	return t, nil
}

type typeParser struct {
	src   string
	pos   int
	scope *scope
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) consume(prefix string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *typeParser) parseIntersection() (types.Type, error) {
	first, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	conjuncts := []types.Type{first}
	for p.consume("&") {
		next, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		conjuncts = append(conjuncts, next)
	}
	if len(conjuncts) == 1 {
		return first, nil
	}
	return &types.IntersectionType{Conjuncts: conjuncts}, nil
}

func (p *typeParser) parsePrimary() (types.Type, error) {
	if p.consume("?") {
		return p.parseWildcard()
	}
	name := p.ident()
	if name == "" {
		return nil, errors.Errorf("expected a type name at offset %d in %q", p.pos, p.src)
	}
	switch name {
	case "null":
		return types.Null(), nil
	case "boolean":
		return p.arraySuffix(&types.Primitive{Kind: types.BooleanKind})
	case "int":
		return p.arraySuffix(&types.Primitive{Kind: types.IntKind})
	case "long":
		return p.arraySuffix(&types.Primitive{Kind: types.LongKind})
	case "double":
		return p.arraySuffix(&types.Primitive{Kind: types.DoubleKind})
	case "void":
		return &types.Primitive{Kind: types.VoidKind}, nil
	}
	var args []types.Type
	if p.consume("<") {
		for {
			arg, err := p.parseArg()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.consume(",") {
				continue
			}
			break
		}
		if !p.consume(">") {
			return nil, errors.Errorf("missing '>' at offset %d in %q", p.pos, p.src)
		}
	}
	resolved, err := p.scope.resolve(name, args)
	if err != nil {
		return nil, err
	}
	return p.arraySuffix(resolved)
}

// parseArg parses one type-argument slot, where wildcards are admitted.
func (p *typeParser) parseArg() (types.Type, error) {
	if p.consume("?") {
		return p.parseWildcard()
	}
	return p.parseIntersection()
}

func (p *typeParser) parseWildcard() (types.Type, error) {
	if p.consume("extends ") {
		bound, err := p.parseIntersection()
		if err != nil {
			return nil, err
		}
		return &types.WildcardType{Bound: bound, Variance: types.Extends}, nil
	}
	if p.consume("super ") {
		bound, err := p.parseIntersection()
		if err != nil {
			return nil, err
		}
		return &types.WildcardType{Bound: bound, Variance: types.Super}, nil
	}
	return &types.WildcardType{Variance: types.Unbounded}, nil
}

func (p *typeParser) arraySuffix(t types.Type) (types.Type, error) {
	for p.consume("[]") {
		t = &types.ArrayType{Component: t}
	}
	return t, nil
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}
