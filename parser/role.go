package parser

import (
	"github.com/foursquare/fsltool/ast"
	"github.com/foursquare/fsltool/token"
)

var actionKeywords = map[string]ast.RoleAction{
	"read":         ast.ActionRead,
	"write":        ast.ActionWrite,
	"create":       ast.ActionCreate,
	"delete":       ast.ActionDelete,
	"history_read": ast.ActionHistoryRead,
	"call":         ast.ActionCall,
}

func (p *parser) parseRole() error {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // consume "role"
		return err
	}
	nameTok, err := p.expect(token.Ident, "role name")
	if err != nil {
		return err
	}
	role := &ast.RoleDecl{Name: p.newText(nameTok)}
	if _, err := p.expect(token.LBrace, "'{'"); err != nil {
		return err
	}
	for p.cur.Kind != token.RBrace {
		ms, err := p.parseRoleMember()
		if err != nil {
			return err
		}
		role.Members = append(role.Members, ms...)
	}
	if _, err := p.expect(token.RBrace, "'}'"); err != nil {
		return err
	}
	decl := p.tree.NewDecl(ast.DeclRole, pos)
	decl.Role = role
	p.tree.Declarations = append(p.tree.Declarations, decl)
	return nil
}

// parseRoleMember parses one "privileges { ... }" or "membership { ... }"
// block. The AST models each resource grant / collection grant as its
// own RoleMember in the role's flat ordered member list (spec.md §3), so
// a single "privileges { ... }" block with N resources yields N members.
func (p *parser) parseRoleMember() ([]ast.RoleMember, error) {
	switch p.cur.Kind {
	case token.KwPrivileges:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LBrace, "'{'"); err != nil {
			return nil, err
		}
		var privs []ast.RoleMember
		for p.cur.Kind != token.RBrace {
			priv, err := p.parsePrivilege()
			if err != nil {
				return nil, err
			}
			privs = append(privs, priv)
		}
		if _, err := p.expect(token.RBrace, "'}'"); err != nil {
			return nil, err
		}
		return privs, nil
	case token.KwMembership:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LBrace, "'{'"); err != nil {
			return nil, err
		}
		var mems []ast.RoleMember
		for p.cur.Kind != token.RBrace {
			mem, err := p.parseMembership()
			if err != nil {
				return nil, err
			}
			mems = append(mems, mem)
		}
		if _, err := p.expect(token.RBrace, "'}'"); err != nil {
			return nil, err
		}
		return mems, nil
	default:
		return nil, p.errorf("'privileges' or 'membership'")
	}
}

func (p *parser) parsePrivilege() (ast.RoleMember, error) {
	pos := p.cur.Pos
	resource, err := p.textOrString()
	if err != nil {
		return ast.RoleMember{}, err
	}
	if _, err := p.expect(token.LBrace, "'{'"); err != nil {
		return ast.RoleMember{}, err
	}
	priv := &ast.Privilege{Resource: resource}
	for p.cur.Kind != token.RBrace {
		action, err := p.parseAction()
		if err != nil {
			return ast.RoleMember{}, err
		}
		priv.Actions = append(priv.Actions, action)
		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return ast.RoleMember{}, err
			}
		}
	}
	if _, err := p.expect(token.RBrace, "'}'"); err != nil {
		return ast.RoleMember{}, err
	}
	if err := p.consumeOptionalSemicolon(); err != nil {
		return ast.RoleMember{}, err
	}
	return ast.RoleMember{Kind: ast.RoleMemberPrivilege, Pos: pos, Privilege: priv}, nil
}

func (p *parser) parseAction() (ast.PrivilegeAction, error) {
	pos := p.cur.Pos
	if p.cur.Kind != token.Ident {
		return ast.PrivilegeAction{}, p.errorf("action ('read', 'write', 'create', 'delete', 'history_read', 'call')")
	}
	action, ok := actionKeywords[p.cur.Text]
	if !ok {
		return ast.PrivilegeAction{}, p.errorf("action ('read', 'write', 'create', 'delete', 'history_read', 'call')")
	}
	if err := p.advance(); err != nil {
		return ast.PrivilegeAction{}, err
	}
	pa := ast.PrivilegeAction{Action: action, Pos: pos}
	if p.cur.Kind == token.LBrace {
		blob, err := p.parseExprBlock()
		if err != nil {
			return ast.PrivilegeAction{}, err
		}
		pa.Predicate = blob
	}
	return pa, nil
}

func (p *parser) parseMembership() (ast.RoleMember, error) {
	pos := p.cur.Pos
	collection, err := p.textOrString()
	if err != nil {
		return ast.RoleMember{}, err
	}
	mem := &ast.Membership{Collection: collection}
	if p.cur.Kind == token.LBrace {
		blob, err := p.parseExprBlock()
		if err != nil {
			return ast.RoleMember{}, err
		}
		mem.Predicate = blob
	}
	if err := p.consumeOptionalSemicolon(); err != nil {
		return ast.RoleMember{}, err
	}
	return ast.RoleMember{Kind: ast.RoleMemberMembership, Pos: pos, Membership: mem}, nil
}
