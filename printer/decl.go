package printer

import "github.com/foursquare/fsltool/ast"

func (p *Printer) printAccessProvider(ap *ast.AccessProviderDecl) error {
	p.raw("access provider ")
	p.text(ap.Name)
	p.raw(" {\n")
	p.depth++
	if ap.Issuer != nil {
		p.writeIndent()
		p.raw("issuer = ")
		p.printStringLit(ap.Issuer)
		p.raw(";\n")
	}
	if ap.JWKSURI != nil {
		p.writeIndent()
		p.raw("jwks_uri = ")
		p.printStringLit(ap.JWKSURI)
		p.raw(";\n")
	}
	if len(ap.Roles) > 0 {
		p.writeIndent()
		p.raw("roles = [")
		for i, r := range ap.Roles {
			if i > 0 {
				p.raw(", ")
			}
			p.text(r)
		}
		p.raw("];\n")
	}
	if ap.TTL != nil {
		p.writeIndent()
		p.raw("ttl = ")
		p.text(ap.TTL)
		p.raw(";\n")
	}
	p.depth--
	p.writeIndent()
	p.raw("}\n")
	return nil
}

// printStringLit writes n.Text wrapped in double quotes; TextNode.Text
// holds the unquoted literal value for string-typed fields.
func (p *Printer) printStringLit(n *ast.TextNode) {
	p.raw("\"")
	p.text(n)
	p.raw("\"")
}

// collectionMemberOrder is the canonical member ordering spec.md §4.2
// rule 2 requires regardless of source order: scalar config first, then
// fields, computed fields, constraints, indexes, migrations last.
var collectionMemberOrder = []ast.CollectionMemberKind{
	ast.MemberHistoryDays,
	ast.MemberTTLDays,
	ast.MemberDocumentTTLs,
	ast.MemberField,
	ast.MemberComputedField,
	ast.MemberConstraint,
	ast.MemberIndex,
	ast.MemberMigrations,
}

func (p *Printer) printCollection(c *ast.CollectionDecl) error {
	p.raw("collection ")
	p.text(c.Name)
	if c.TypeAlias != nil {
		p.raw(" as ")
		if err := p.printFQLType(c.TypeAlias); err != nil {
			return err
		}
	}
	p.raw(" {\n")
	p.depth++
	for _, kind := range collectionMemberOrder {
		for _, m := range c.Members {
			if m.Kind != kind {
				continue
			}
			if err := p.printCollectionMember(m); err != nil {
				return err
			}
		}
	}
	p.depth--
	p.writeIndent()
	p.raw("}\n")
	return nil
}

func (p *Printer) printCollectionMember(m ast.CollectionMember) error {
	p.writeIndent()
	switch m.Kind {
	case ast.MemberHistoryDays:
		p.raw("history_days = ")
		p.text(m.HistoryDays)
		p.raw(";\n")
	case ast.MemberTTLDays:
		p.raw("ttl_days = ")
		p.text(m.TTLDays)
		p.raw(";\n")
	case ast.MemberDocumentTTLs:
		p.raw("document_ttls = ")
		if m.DocumentTTLs {
			p.raw("true")
		} else {
			p.raw("false")
		}
		p.raw(";\n")
	case ast.MemberField:
		p.text(m.Field.Name)
		if m.Field.Type != nil {
			p.raw(": ")
			if err := p.printFQLType(m.Field.Type); err != nil {
				return err
			}
		}
		p.raw(";\n")
	case ast.MemberComputedField:
		p.raw("compute ")
		p.text(m.ComputedField.Name)
		if m.ComputedField.Type != nil {
			p.raw(": ")
			if err := p.printFQLType(m.ComputedField.Type); err != nil {
				return err
			}
		}
		p.raw(" = ")
		p.printExprBlob(m.ComputedField.Expr)
		p.raw("\n")
	case ast.MemberConstraint:
		p.raw("check ")
		p.printExprBlob(m.Constraint.Expr)
		p.raw("\n")
	case ast.MemberIndex:
		p.raw("index")
		if m.Index.Name != nil {
			p.raw(" ")
			p.text(m.Index.Name)
		}
		p.raw(" {\n")
		p.depth++
		p.writeIndent()
		p.raw("terms: [")
		for i, t := range m.Index.Terms {
			if i > 0 {
				p.raw(", ")
			}
			p.text(t)
		}
		p.raw("]")
		if m.Index.Unique {
			p.raw(",\n")
			p.writeIndent()
			p.raw("unique = true")
		}
		p.raw("\n")
		p.depth--
		p.writeIndent()
		p.raw("}\n")
	case ast.MemberMigrations:
		p.raw("migrations ")
		p.printExprBlob(m.Migrations)
		p.raw("\n")
	}
	return nil
}

func (p *Printer) printFunction(f *ast.FunctionDecl) error {
	p.raw("function ")
	p.text(f.Name)
	p.raw("(")
	for i, param := range f.Params {
		if i > 0 {
			p.raw(", ")
		}
		p.text(param.Name)
		if param.Type != nil {
			p.raw(": ")
			if err := p.printFQLType(param.Type); err != nil {
				return err
			}
		}
	}
	p.raw(")")
	if f.Return != nil {
		p.raw(": ")
		if err := p.printFQLType(f.Return); err != nil {
			return err
		}
	}
	if f.Role != nil {
		p.raw(" role ")
		p.text(f.Role)
	}
	p.raw(" ")
	p.printExprBlob(f.Body)
	p.raw("\n")
	return nil
}

func (p *Printer) printRole(r *ast.RoleDecl) error {
	p.raw("role ")
	p.text(r.Name)
	p.raw(" {\n")
	p.depth++
	for _, m := range r.Members {
		switch m.Kind {
		case ast.RoleMemberPrivilege:
			if err := p.printPrivilege(m.Privilege); err != nil {
				return err
			}
		case ast.RoleMemberMembership:
			p.printMembership(m.Membership)
		}
	}
	p.depth--
	p.writeIndent()
	p.raw("}\n")
	return nil
}

func (p *Printer) printPrivilege(priv *ast.Privilege) error {
	p.writeIndent()
	p.raw("privileges {\n")
	p.depth++
	p.writeIndent()
	p.text(priv.Resource)
	p.raw(" {\n")
	p.depth++
	for i, a := range priv.Actions {
		p.writeIndent()
		p.raw(string(a.Action))
		if a.Predicate != nil {
			p.raw(" ")
			p.printExprBlob(a.Predicate)
		}
		if i < len(priv.Actions)-1 {
			p.raw(",")
		}
		p.raw("\n")
	}
	p.depth--
	p.writeIndent()
	p.raw("}\n")
	p.depth--
	p.writeIndent()
	p.raw("}\n")
	return nil
}

func (p *Printer) printMembership(m *ast.Membership) {
	p.writeIndent()
	p.raw("membership {\n")
	p.depth++
	p.writeIndent()
	p.text(m.Collection)
	if m.Predicate != nil {
		p.raw(" ")
		p.printExprBlob(m.Predicate)
	}
	p.raw(";\n")
	p.depth--
	p.writeIndent()
	p.raw("}\n")
}
