// Package parser implements the recursive-descent FSL parser described
// in spec.md §4.1: declarations dispatch on their leading keyword, FQL
// expression bodies are captured as brace-balanced text blobs rather
// than parsed, and FQL types are fully parsed into ast.FQLType.
//
// Concrete grammar (spec.md §6.1 gives only a sketch; this fills it in):
//
//	decl          := access_provider | collection | function | role
//	access_provider := "access" "provider" IDENT "{" ap_member* "}"
//	ap_member     := "issuer" "=" STRING ";"
//	               | "jwks_uri" "=" STRING ";"
//	               | "roles" "=" "[" IDENT ("," IDENT)* "]" ";"
//	               | "ttl" "=" number ";"
//	collection    := "collection" IDENT ("as" fql_type)? "{" col_member* "}"
//	col_member    := IDENT (":" fql_type)? ";"
//	               | "compute" IDENT (":" fql_type)? "=" expr_block
//	               | "check" expr_block
//	               | "index" IDENT? "{" "terms" ":" "[" IDENT ("," IDENT)* "]"
//	                     ("," "unique" "=" bool)? ";"? "}"
//	               | "history_days" "=" number ";"
//	               | "ttl_days" "=" number ";"
//	               | "document_ttls" "=" bool ";"
//	               | "migrations" expr_block
//	function      := "function" IDENT "(" params? ")" (":" fql_type)?
//	                     ("role" IDENT)? expr_block
//	params        := param ("," param)*
//	param         := IDENT (":" fql_type)?
//	role          := "role" IDENT "{" role_member* "}"
//	role_member   := "privileges" "{" privilege_entry* "}"
//	               | "membership" "{" membership_entry* "}"
//	privilege_entry := (IDENT|STRING) "{" action_entry ("," action_entry)* "}"
//	action_entry  := action_kw expr_block?
//	membership_entry := (IDENT|STRING) expr_block? ";"
package parser

import (
	"fmt"

	"github.com/foursquare/fsltool/ast"
	"github.com/foursquare/fsltool/lexer"
	"github.com/foursquare/fsltool/token"
)

type parser struct {
	lex       *lexer.Lexer
	file      string
	src       []byte
	tree      *ast.SchemaTree
	cur       token.Token
	lookahead *lookaheadTok
}

// ParseFile parses a single FSL source file into a fresh SchemaTree.
func ParseFile(file string, src []byte) (*ast.SchemaTree, error) {
	p := &parser{
		lex:  lexer.New(file, src),
		file: file,
		src:  src,
		tree: ast.NewTree(nil),
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.EOF {
		if err := p.parseDeclaration(); err != nil {
			return nil, err
		}
	}
	p.tree.EOFPos = p.cur.Pos
	return p.tree, nil
}

type lookaheadTok struct {
	tok    token.Token
	extras []lexer.RawExtra
}

func (p *parser) readRaw() (token.Token, []lexer.RawExtra, error) {
	tok, err := p.lex.Next()
	if err != nil {
		le := err.(*lexer.Error)
		return token.Token{}, nil, &ParseError{File: le.Pos.File, Line: le.Pos.Line, Column: le.Pos.Column, Expected: "valid token", Found: le.Message}
	}
	return tok, p.lex.TakeExtras(), nil
}

func (p *parser) attachExtras(raws []lexer.RawExtra, anchor token.Position) {
	for _, raw := range raws {
		kind := ast.ExtraComment
		if raw.Kind == lexer.ExtraBlankLine {
			kind = ast.ExtraBlankLine
		}
		p.tree.AddExtra(ast.NewExtra(kind, raw.Text, anchor))
	}
}

// peek returns the token after p.cur without consuming it, buffering it
// (and the extras that precede it) for the next advance. Used only to
// disambiguate the function-type long form from the short form.
func (p *parser) peek() (token.Token, error) {
	if p.lookahead == nil {
		tok, extras, err := p.readRaw()
		if err != nil {
			return token.Token{}, err
		}
		p.lookahead = &lookaheadTok{tok: tok, extras: extras}
	}
	return p.lookahead.tok, nil
}

// advance pulls the next token (from the lookahead buffer if peek filled
// it) and attaches any comments/blank lines the lexer collected
// immediately before it as extras anchored at its position.
func (p *parser) advance() error {
	if p.lookahead != nil {
		la := p.lookahead
		p.lookahead = nil
		p.attachExtras(la.extras, la.tok.Pos)
		p.cur = la.tok
		return nil
	}
	tok, extras, err := p.readRaw()
	if err != nil {
		return err
	}
	p.attachExtras(extras, tok.Pos)
	p.cur = tok
	return nil
}

func (p *parser) errorf(expected string) error {
	return newParseError(p.cur.Pos, expected, p.cur)
}

func (p *parser) expect(k token.Kind, expected string) (token.Token, error) {
	if p.cur.Kind != k {
		return token.Token{}, p.errorf(expected)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

func (p *parser) expectIdentText(text string) error {
	if p.cur.Kind != token.Ident || p.cur.Text != text {
		return p.errorf(fmt.Sprintf("%q", text))
	}
	return p.advance()
}

func (p *parser) newText(tok token.Token) *ast.TextNode {
	return p.tree.Allocator.NewText(tok.Text, tok.Pos)
}

// textOrString accepts either a bare identifier or a string literal,
// used anywhere FSL allows a resource/collection name to be quoted.
func (p *parser) textOrString() (*ast.TextNode, error) {
	if p.cur.Kind != token.Ident && p.cur.Kind != token.String {
		return nil, p.errorf("identifier or string")
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.newText(tok), nil
}

func (p *parser) parseDeclaration() error {
	switch {
	case p.cur.Kind == token.Ident && p.cur.Text == "access":
		return p.parseAccessProvider()
	case p.cur.Kind == token.KwCollection:
		return p.parseCollection()
	case p.cur.Kind == token.KwFunction:
		return p.parseFunction()
	case p.cur.Kind == token.KwRole:
		return p.parseRole()
	default:
		return p.errorf("'access provider', 'collection', 'function', or 'role'")
	}
}

func (p *parser) parseAccessProvider() error {
	pos := p.cur.Pos
	if err := p.expectIdentText("access"); err != nil {
		return err
	}
	if err := p.expectIdentText("provider"); err != nil {
		return err
	}
	nameTok, err := p.expect(token.Ident, "access provider name")
	if err != nil {
		return err
	}
	if _, err := p.expect(token.LBrace, "'{'"); err != nil {
		return err
	}
	ap := &ast.AccessProviderDecl{Name: p.newText(nameTok)}
	for p.cur.Kind != token.RBrace {
		if err := p.parseAccessProviderMember(ap); err != nil {
			return err
		}
	}
	if _, err := p.expect(token.RBrace, "'}'"); err != nil {
		return err
	}
	decl := p.tree.NewDecl(ast.DeclAccessProvider, pos)
	decl.AccessProvider = ap
	p.tree.Declarations = append(p.tree.Declarations, decl)
	return nil
}

func (p *parser) parseAccessProviderMember(ap *ast.AccessProviderDecl) error {
	if p.cur.Kind != token.Ident {
		return p.errorf("access provider member")
	}
	switch p.cur.Text {
	case "issuer":
		if err := p.advance(); err != nil {
			return err
		}
		if _, err := p.expect(token.Assign, "'='"); err != nil {
			return err
		}
		tok, err := p.expect(token.String, "issuer string")
		if err != nil {
			return err
		}
		ap.Issuer = p.newText(tok)
	case "jwks_uri":
		if err := p.advance(); err != nil {
			return err
		}
		if _, err := p.expect(token.Assign, "'='"); err != nil {
			return err
		}
		tok, err := p.expect(token.String, "jwks_uri string")
		if err != nil {
			return err
		}
		ap.JWKSURI = p.newText(tok)
	case "roles":
		if err := p.advance(); err != nil {
			return err
		}
		if _, err := p.expect(token.Assign, "'='"); err != nil {
			return err
		}
		if _, err := p.expect(token.LBracket, "'['"); err != nil {
			return err
		}
		for p.cur.Kind != token.RBracket {
			tok, err := p.expect(token.Ident, "role name")
			if err != nil {
				return err
			}
			ap.Roles = append(ap.Roles, p.newText(tok))
			if p.cur.Kind == token.Comma {
				if err := p.advance(); err != nil {
					return err
				}
			}
		}
		if _, err := p.expect(token.RBracket, "']'"); err != nil {
			return err
		}
	case "ttl":
		if err := p.advance(); err != nil {
			return err
		}
		if _, err := p.expect(token.Assign, "'='"); err != nil {
			return err
		}
		tok := p.cur
		if tok.Kind != token.Int && tok.Kind != token.Decimal {
			return p.errorf("ttl number")
		}
		if err := p.advance(); err != nil {
			return err
		}
		ap.TTL = p.newText(tok)
	default:
		return p.errorf("'issuer', 'jwks_uri', 'roles', or 'ttl'")
	}
	return p.consumeOptionalSemicolon()
}

func (p *parser) consumeOptionalSemicolon() error {
	if p.cur.Kind == token.Semicolon {
		return p.advance()
	}
	return nil
}

// parseExprBlock captures a `{ ... }` FQL expression verbatim via a
// brace-balanced scan of the raw source, without tokenizing its
// contents, then resynchronizes the lexer past the block.
func (p *parser) parseExprBlock() (*ast.ExprBlob, error) {
	if p.cur.Kind != token.LBrace {
		return nil, p.errorf("'{'")
	}
	openTok := p.cur
	closeOffset, err := lexer.FindMatchingBrace(p.src, openTok.Pos.Offset)
	if err != nil {
		return nil, &ParseError{File: p.file, Line: openTok.Pos.Line, Column: openTok.Pos.Column, Expected: "matching '}'", Found: "EOF"}
	}
	text := string(p.src[openTok.Pos.Offset : closeOffset+1])
	blob := p.tree.Allocator.NewExprBlob(text, openTok.Pos)
	p.lex.SeekPast(closeOffset + 1)
	if err := p.advance(); err != nil {
		return nil, err
	}
	return blob, nil
}
