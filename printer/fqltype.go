package printer

import (
	"fmt"

	"github.com/foursquare/fsltool/ast"
)

// printFQLType renders t in canonical form. Parenthesization follows
// the same precedence parseFQLType parses by: union loosest, then
// optional, then postfix template application; function/object/tuple
// types are already self-delimiting.
func (p *Printer) printFQLType(t *ast.FQLType) error {
	return p.printFQLTypeAt(t, precUnion)
}

const (
	precUnion = iota
	precOptional
	precPostfix
)

func (p *Printer) printFQLTypeAt(t *ast.FQLType, minPrec int) error {
	switch t.Kind {
	case ast.TNamed:
		p.text(t.Name)
	case ast.TStringLiteral:
		p.printStringLit(t.Literal)
	case ast.TNumberLiteral:
		p.text(t.Literal)
	case ast.TIsolated:
		p.raw("*")
		return p.printFQLTypeAt(t.Inner, precPostfix)
	case ast.TOptional:
		if err := p.printFQLTypeAt(t.Inner, precPostfix); err != nil {
			return err
		}
		p.raw("?")
	case ast.TUnion:
		wrap := minPrec > precUnion
		if wrap {
			p.raw("(")
		}
		if err := p.printFQLTypeAt(t.Lhs, precUnion); err != nil {
			return err
		}
		p.raw(" | ")
		if err := p.printFQLTypeAt(t.Rhs, precOptional); err != nil {
			return err
		}
		if wrap {
			p.raw(")")
		}
	case ast.TTemplate:
		p.text(t.TemplateName)
		p.raw("<")
		for i, param := range t.TemplateParams {
			if i > 0 {
				p.raw(", ")
			}
			if err := p.printFQLTypeAt(param, precUnion); err != nil {
				return err
			}
		}
		p.raw(">")
	case ast.TObject:
		p.raw("{")
		for i, f := range t.Fields {
			if i > 0 {
				p.raw(", ")
			}
			p.text(f.Key)
			if f.Optional {
				p.raw("?")
			}
			p.raw(": ")
			if err := p.printFQLTypeAt(f.Type, precUnion); err != nil {
				return err
			}
		}
		if t.Wildcard != nil {
			if len(t.Fields) > 0 {
				p.raw(", ")
			}
			p.raw("*: ")
			if err := p.printFQLTypeAt(t.Wildcard, precUnion); err != nil {
				return err
			}
		}
		p.raw("}")
	case ast.TTuple:
		p.raw("[")
		for i, elem := range t.TupleTypes {
			if i > 0 {
				p.raw(", ")
			}
			if err := p.printFQLTypeAt(elem, precUnion); err != nil {
				return err
			}
		}
		p.raw("]")
	case ast.TFunction:
		return p.printFunctionType(t.Function)
	default:
		return fmt.Errorf("printer: unknown FQLType kind %v", t.Kind)
	}
	return nil
}

func (p *Printer) printFunctionType(fn *ast.FunctionType) error {
	p.raw("(")
	for i, param := range fn.Params {
		if i > 0 {
			p.raw(", ")
		}
		if fn.Variadic && i == len(fn.Params)-1 {
			p.raw("...")
		}
		if err := p.printFQLTypeAt(param, precUnion); err != nil {
			return err
		}
	}
	p.raw(") => ")
	return p.printFQLTypeAt(fn.Return, precUnion)
}
