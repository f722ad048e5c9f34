package parser

import (
	"github.com/foursquare/fsltool/ast"
	"github.com/foursquare/fsltool/token"
)

func (p *parser) parseFunction() error {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // consume "function"
		return err
	}
	nameTok, err := p.expect(token.Ident, "function name")
	if err != nil {
		return err
	}
	fn := &ast.FunctionDecl{Name: p.newText(nameTok)}
	if _, err := p.expect(token.LParen, "'('"); err != nil {
		return err
	}
	for p.cur.Kind != token.RParen {
		param, err := p.parseParam()
		if err != nil {
			return err
		}
		fn.Params = append(fn.Params, param)
		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return err
			}
		}
	}
	if _, err := p.expect(token.RParen, "')'"); err != nil {
		return err
	}
	if p.cur.Kind == token.Colon {
		if err := p.advance(); err != nil {
			return err
		}
		t, err := p.parseFQLType()
		if err != nil {
			return err
		}
		fn.Return = t
	}
	if p.cur.Kind == token.KwRole {
		if err := p.advance(); err != nil {
			return err
		}
		roleTok, err := p.expect(token.Ident, "role name")
		if err != nil {
			return err
		}
		fn.Role = p.newText(roleTok)
	}
	blob, err := p.parseExprBlock()
	if err != nil {
		return err
	}
	fn.Body = blob

	decl := p.tree.NewDecl(ast.DeclFunction, pos)
	decl.Function = fn
	p.tree.Declarations = append(p.tree.Declarations, decl)
	return nil
}

func (p *parser) parseParam() (ast.Param, error) {
	nameTok, err := p.expect(token.Ident, "parameter name")
	if err != nil {
		return ast.Param{}, err
	}
	param := ast.Param{Name: p.newText(nameTok)}
	if p.cur.Kind == token.Colon {
		if err := p.advance(); err != nil {
			return ast.Param{}, err
		}
		t, err := p.parseFQLType()
		if err != nil {
			return ast.Param{}, err
		}
		param.Type = t
	}
	return param, nil
}
