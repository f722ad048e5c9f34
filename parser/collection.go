package parser

import (
	"github.com/foursquare/fsltool/ast"
	"github.com/foursquare/fsltool/token"
)

func (p *parser) parseCollection() error {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // consume "collection"
		return err
	}
	nameTok, err := p.expect(token.Ident, "collection name")
	if err != nil {
		return err
	}
	col := &ast.CollectionDecl{Name: p.newText(nameTok)}
	if p.cur.Kind == token.KwAs {
		if err := p.advance(); err != nil {
			return err
		}
		t, err := p.parseFQLType()
		if err != nil {
			return err
		}
		col.TypeAlias = t
	}
	if _, err := p.expect(token.LBrace, "'{'"); err != nil {
		return err
	}
	for p.cur.Kind != token.RBrace {
		m, err := p.parseCollectionMember()
		if err != nil {
			return err
		}
		col.Members = append(col.Members, m)
	}
	if _, err := p.expect(token.RBrace, "'}'"); err != nil {
		return err
	}
	decl := p.tree.NewDecl(ast.DeclCollection, pos)
	decl.Collection = col
	p.tree.Declarations = append(p.tree.Declarations, decl)
	return nil
}

func (p *parser) parseCollectionMember() (ast.CollectionMember, error) {
	pos := p.cur.Pos
	switch {
	case p.cur.Kind == token.KwCompute:
		return p.parseComputedField(pos)
	case p.cur.Kind == token.KwCheck:
		if err := p.advance(); err != nil {
			return ast.CollectionMember{}, err
		}
		blob, err := p.parseExprBlock()
		if err != nil {
			return ast.CollectionMember{}, err
		}
		return ast.CollectionMember{Kind: ast.MemberConstraint, Pos: pos, Constraint: &ast.ConstraintDecl{Expr: blob}}, nil
	case p.cur.Kind == token.KwIndex:
		return p.parseIndex(pos)
	case p.cur.Kind == token.KwHistoryDays:
		tok, err := p.parseAssignedNumber()
		if err != nil {
			return ast.CollectionMember{}, err
		}
		return ast.CollectionMember{Kind: ast.MemberHistoryDays, Pos: pos, HistoryDays: p.newText(tok)}, nil
	case p.cur.Kind == token.KwTTLDays:
		tok, err := p.parseAssignedNumber()
		if err != nil {
			return ast.CollectionMember{}, err
		}
		return ast.CollectionMember{Kind: ast.MemberTTLDays, Pos: pos, TTLDays: p.newText(tok)}, nil
	case p.cur.Kind == token.Ident && p.cur.Text == "document_ttls":
		if err := p.advance(); err != nil {
			return ast.CollectionMember{}, err
		}
		if _, err := p.expect(token.Assign, "'='"); err != nil {
			return ast.CollectionMember{}, err
		}
		v, err := p.parseBool()
		if err != nil {
			return ast.CollectionMember{}, err
		}
		if err := p.consumeOptionalSemicolon(); err != nil {
			return ast.CollectionMember{}, err
		}
		return ast.CollectionMember{Kind: ast.MemberDocumentTTLs, Pos: pos, DocumentTTLs: v}, nil
	case p.cur.Kind == token.KwMigrations:
		if err := p.advance(); err != nil {
			return ast.CollectionMember{}, err
		}
		blob, err := p.parseExprBlock()
		if err != nil {
			return ast.CollectionMember{}, err
		}
		return ast.CollectionMember{Kind: ast.MemberMigrations, Pos: pos, Migrations: blob}, nil
	case p.cur.Kind == token.Ident:
		return p.parseField(pos)
	default:
		return ast.CollectionMember{}, p.errorf("collection member")
	}
}

func (p *parser) parseField(pos token.Position) (ast.CollectionMember, error) {
	nameTok, err := p.expect(token.Ident, "field name")
	if err != nil {
		return ast.CollectionMember{}, err
	}
	field := &ast.FieldDecl{Name: p.newText(nameTok)}
	if p.cur.Kind == token.Colon {
		if err := p.advance(); err != nil {
			return ast.CollectionMember{}, err
		}
		t, err := p.parseFQLType()
		if err != nil {
			return ast.CollectionMember{}, err
		}
		field.Type = t
	}
	if err := p.consumeOptionalSemicolon(); err != nil {
		return ast.CollectionMember{}, err
	}
	return ast.CollectionMember{Kind: ast.MemberField, Pos: pos, Field: field}, nil
}

func (p *parser) parseComputedField(pos token.Position) (ast.CollectionMember, error) {
	if err := p.advance(); err != nil { // consume "compute"
		return ast.CollectionMember{}, err
	}
	nameTok, err := p.expect(token.Ident, "computed field name")
	if err != nil {
		return ast.CollectionMember{}, err
	}
	cf := &ast.ComputedFieldDecl{Name: p.newText(nameTok)}
	if p.cur.Kind == token.Colon {
		if err := p.advance(); err != nil {
			return ast.CollectionMember{}, err
		}
		t, err := p.parseFQLType()
		if err != nil {
			return ast.CollectionMember{}, err
		}
		cf.Type = t
	}
	if _, err := p.expect(token.Assign, "'='"); err != nil {
		return ast.CollectionMember{}, err
	}
	blob, err := p.parseExprBlock()
	if err != nil {
		return ast.CollectionMember{}, err
	}
	cf.Expr = blob
	return ast.CollectionMember{Kind: ast.MemberComputedField, Pos: pos, ComputedField: cf}, nil
}

func (p *parser) parseIndex(pos token.Position) (ast.CollectionMember, error) {
	if err := p.advance(); err != nil { // consume "index"
		return ast.CollectionMember{}, err
	}
	idx := &ast.IndexDecl{}
	if p.cur.Kind == token.Ident {
		tok := p.cur
		if err := p.advance(); err != nil {
			return ast.CollectionMember{}, err
		}
		idx.Name = p.newText(tok)
	}
	if _, err := p.expect(token.LBrace, "'{'"); err != nil {
		return ast.CollectionMember{}, err
	}
	if err := p.expectIdentText("terms"); err != nil {
		return ast.CollectionMember{}, err
	}
	if _, err := p.expect(token.Colon, "':'"); err != nil {
		return ast.CollectionMember{}, err
	}
	if _, err := p.expect(token.LBracket, "'['"); err != nil {
		return ast.CollectionMember{}, err
	}
	for p.cur.Kind != token.RBracket {
		tok, err := p.expect(token.Ident, "index term")
		if err != nil {
			return ast.CollectionMember{}, err
		}
		idx.Terms = append(idx.Terms, p.newText(tok))
		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return ast.CollectionMember{}, err
			}
		}
	}
	if _, err := p.expect(token.RBracket, "']'"); err != nil {
		return ast.CollectionMember{}, err
	}
	if p.cur.Kind == token.Comma {
		if err := p.advance(); err != nil {
			return ast.CollectionMember{}, err
		}
		if err := p.expectIdentText("unique"); err != nil {
			return ast.CollectionMember{}, err
		}
		if _, err := p.expect(token.Assign, "'='"); err != nil {
			return ast.CollectionMember{}, err
		}
		v, err := p.parseBool()
		if err != nil {
			return ast.CollectionMember{}, err
		}
		idx.Unique = v
	}
	if err := p.consumeOptionalSemicolon(); err != nil {
		return ast.CollectionMember{}, err
	}
	if _, err := p.expect(token.RBrace, "'}'"); err != nil {
		return ast.CollectionMember{}, err
	}
	return ast.CollectionMember{Kind: ast.MemberIndex, Pos: pos, Index: idx}, nil
}

func (p *parser) parseAssignedNumber() (token.Token, error) {
	if err := p.advance(); err != nil { // consume keyword
		return token.Token{}, err
	}
	if _, err := p.expect(token.Assign, "'='"); err != nil {
		return token.Token{}, err
	}
	tok := p.cur
	if tok.Kind != token.Int && tok.Kind != token.Decimal {
		return token.Token{}, p.errorf("number")
	}
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, p.consumeOptionalSemicolon()
}

func (p *parser) parseBool() (bool, error) {
	switch p.cur.Kind {
	case token.KwTrue:
		return true, p.advance()
	case token.KwFalse:
		return false, p.advance()
	default:
		return false, p.errorf("'true' or 'false'")
	}
}
