package parser

import (
	"github.com/foursquare/fsltool/ast"
	"github.com/foursquare/fsltool/token"
)

// parseFQLType implements the operator-precedence type grammar from
// spec.md §4.1: union ('|', left-associative) binds loosest, below
// postfix optional ('?'), below postfix application (template
// instantiation 'T<...>' and the function type '(params) => T').
func (p *parser) parseFQLType() (*ast.FQLType, error) {
	return p.parseUnionType()
}

func (p *parser) parseUnionType() (*ast.FQLType, error) {
	lhs, err := p.parseOptionalType()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.Pipe {
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseOptionalType()
		if err != nil {
			return nil, err
		}
		u := &ast.FQLType{Kind: ast.TUnion, Pos: pos, Lhs: lhs, Rhs: rhs}
		u = p.tree.Allocator.OwnFQLType(u)
		lhs = u
	}
	return lhs, nil
}

func (p *parser) parseOptionalType() (*ast.FQLType, error) {
	inner, err := p.parsePostfixType()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.Question {
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner = p.tree.Allocator.OwnFQLType(&ast.FQLType{Kind: ast.TOptional, Pos: pos, Inner: inner})
	}
	return inner, nil
}

// parsePostfixType handles template instantiation (T<A,B>) chained onto
// a primary type. Function types are recognized at the primary level
// since they start with '(' rather than postfix-applying to one.
func (p *parser) parsePostfixType() (*ast.FQLType, error) {
	primary, err := p.parsePrimaryType()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.Lt {
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		var params []*ast.FQLType
		for p.cur.Kind != token.Gt {
			param, err := p.parseFQLType()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if p.cur.Kind == token.Comma {
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
		}
		if _, err := p.expect(token.Gt, "'>'"); err != nil {
			return nil, err
		}
		if primary.Kind != ast.TNamed {
			return nil, p.errorf("template name")
		}
		primary = p.tree.Allocator.OwnFQLType(&ast.FQLType{
			Kind:           ast.TTemplate,
			Pos:            pos,
			TemplateName:   primary.Name,
			TemplateParams: params,
		})
	}
	return primary, nil
}

func (p *parser) parsePrimaryType() (*ast.FQLType, error) {
	switch p.cur.Kind {
	case token.LParen:
		return p.parseFunctionType(ast.ParamsShort)
	case token.LBrace:
		return p.parseObjectType()
	case token.LBracket:
		return p.parseTupleType()
	case token.String:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.tree.Allocator.OwnFQLType(&ast.FQLType{Kind: ast.TStringLiteral, Pos: tok.Pos, Literal: p.newText(tok)}), nil
	case token.Int, token.Decimal:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.tree.Allocator.OwnFQLType(&ast.FQLType{Kind: ast.TNumberLiteral, Pos: tok.Pos, Literal: p.newText(tok)}), nil
	case token.Star:
		// `*` denotes the isolated-query marker type: *T
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parsePostfixType()
		if err != nil {
			return nil, err
		}
		return p.tree.Allocator.OwnFQLType(&ast.FQLType{Kind: ast.TIsolated, Pos: pos, Inner: inner}), nil
	case token.Ident:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.tree.Allocator.OwnFQLType(&ast.FQLType{Kind: ast.TNamed, Pos: tok.Pos, Name: p.newText(tok)}), nil
	default:
		return nil, p.errorf("a type")
	}
}

func (p *parser) parseObjectType() (*ast.FQLType, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // consume '{'
		return nil, err
	}
	obj := &ast.FQLType{Kind: ast.TObject, Pos: pos}
	for p.cur.Kind != token.RBrace {
		if p.cur.Kind == token.Star {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if _, err := p.expect(token.Colon, "':'"); err != nil {
				return nil, err
			}
			wc, err := p.parseFQLType()
			if err != nil {
				return nil, err
			}
			obj.Wildcard = wc
		} else {
			keyTok, err := p.expect(token.Ident, "field name")
			if err != nil {
				return nil, err
			}
			field := ast.ObjectField{Key: p.newText(keyTok)}
			if p.cur.Kind == token.Question {
				field.Optional = true
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
			if _, err := p.expect(token.Colon, "':'"); err != nil {
				return nil, err
			}
			t, err := p.parseFQLType()
			if err != nil {
				return nil, err
			}
			field.Type = t
			obj.Fields = append(obj.Fields, field)
		}
		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(token.RBrace, "'}'"); err != nil {
		return nil, err
	}
	return p.tree.Allocator.OwnFQLType(obj), nil
}

func (p *parser) parseTupleType() (*ast.FQLType, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	tup := &ast.FQLType{Kind: ast.TTuple, Pos: pos}
	for p.cur.Kind != token.RBracket {
		t, err := p.parseFQLType()
		if err != nil {
			return nil, err
		}
		tup.TupleTypes = append(tup.TupleTypes, t)
		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(token.RBracket, "']'"); err != nil {
		return nil, err
	}
	return p.tree.Allocator.OwnFQLType(tup), nil
}

// parseFunctionType parses "(params) => T", where params may be a
// comma-separated list of bare types (short form) or named params
// "name: T" (long form); a trailing "...T" marks the final parameter
// variadic.
func (p *parser) parseFunctionType(_ ast.FuncParamForm) (*ast.FQLType, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	fn := &ast.FunctionType{ParamForm: ast.ParamsShort}
	first := true
	for p.cur.Kind != token.RParen {
		if first && p.cur.Kind == token.Ident && p.peekIsColon() {
			fn.ParamForm = ast.ParamsLong
		}
		if p.cur.Kind == token.Dot { // "..." variadic marker, lexed as three Dot tokens
			for i := 0; i < 3 && p.cur.Kind == token.Dot; i++ {
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
			fn.Variadic = true
		}
		if fn.ParamForm == ast.ParamsLong {
			if _, err := p.expect(token.Ident, "parameter name"); err != nil {
				return nil, err
			}
			if _, err := p.expect(token.Colon, "':'"); err != nil {
				return nil, err
			}
		}
		t, err := p.parseFQLType()
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, t)
		first = false
		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(token.RParen, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.FatArrow, "'=>'"); err != nil {
		return nil, err
	}
	ret, err := p.parseFQLType()
	if err != nil {
		return nil, err
	}
	fn.Return = ret
	return p.tree.Allocator.OwnFQLType(&ast.FQLType{Kind: ast.TFunction, Pos: pos, Function: fn}), nil
}

// peekIsColon is a one-token lookahead helper used only to disambiguate
// the function-type long form ("name: T") from the short form (bare
// "T"): a bare named type is never itself followed by ':' at this
// position, so IDENT+':' unambiguously means a named parameter.
func (p *parser) peekIsColon() bool {
	next, err := p.peek()
	if err != nil {
		return false
	}
	return next.Kind == token.Colon
}
