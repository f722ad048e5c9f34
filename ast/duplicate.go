package ast

// This file implements deep duplication of every AST node into a
// (possibly different) destination allocator. It is the one place the
// tree's ownership invariant is actively enforced: Clone, filter, and
// cross-allocator Merge all go through these functions rather than
// copying struct values directly, so that every string and node in the
// result was "obtained from" the destination allocator per spec.md §3.

// DuplicateDeclaration deep-copies decl into dest.
func DuplicateDeclaration(dest *Allocator, decl *Declaration) *Declaration {
	if decl == nil {
		return nil
	}
	out := &Declaration{Kind: decl.Kind, Pos: decl.Pos, owner: dest}
	switch decl.Kind {
	case DeclAccessProvider:
		out.AccessProvider = duplicateAccessProvider(dest, decl.AccessProvider)
	case DeclCollection:
		out.Collection = duplicateCollection(dest, decl.Collection)
	case DeclFunction:
		out.Function = duplicateFunction(dest, decl.Function)
	case DeclRole:
		out.Role = duplicateRole(dest, decl.Role)
	}
	return out
}

func duplicateAccessProvider(dest *Allocator, ap *AccessProviderDecl) *AccessProviderDecl {
	if ap == nil {
		return nil
	}
	roles := make([]*TextNode, len(ap.Roles))
	for i, r := range ap.Roles {
		roles[i] = dest.DuplicateText(r)
	}
	return &AccessProviderDecl{
		Name:    dest.DuplicateText(ap.Name),
		Issuer:  dest.DuplicateText(ap.Issuer),
		JWKSURI: dest.DuplicateText(ap.JWKSURI),
		Roles:   roles,
		TTL:     dest.DuplicateText(ap.TTL),
	}
}

func duplicateCollection(dest *Allocator, c *CollectionDecl) *CollectionDecl {
	if c == nil {
		return nil
	}
	members := make([]CollectionMember, len(c.Members))
	for i, m := range c.Members {
		members[i] = duplicateCollectionMember(dest, m)
	}
	return &CollectionDecl{
		Name:      dest.DuplicateText(c.Name),
		TypeAlias: DuplicateFQLType(dest, c.TypeAlias),
		Members:   members,
	}
}

func duplicateCollectionMember(dest *Allocator, m CollectionMember) CollectionMember {
	out := CollectionMember{Kind: m.Kind, Pos: m.Pos, DocumentTTLs: m.DocumentTTLs}
	if m.Field != nil {
		out.Field = &FieldDecl{Name: dest.DuplicateText(m.Field.Name), Type: DuplicateFQLType(dest, m.Field.Type)}
	}
	if m.ComputedField != nil {
		out.ComputedField = &ComputedFieldDecl{
			Name: dest.DuplicateText(m.ComputedField.Name),
			Type: DuplicateFQLType(dest, m.ComputedField.Type),
			Expr: dest.DuplicateExprBlob(m.ComputedField.Expr),
		}
	}
	if m.Constraint != nil {
		out.Constraint = &ConstraintDecl{Expr: dest.DuplicateExprBlob(m.Constraint.Expr)}
	}
	if m.Index != nil {
		terms := make([]*TextNode, len(m.Index.Terms))
		for i, term := range m.Index.Terms {
			terms[i] = dest.DuplicateText(term)
		}
		out.Index = &IndexDecl{Name: dest.DuplicateText(m.Index.Name), Unique: m.Index.Unique, Terms: terms}
	}
	out.HistoryDays = dest.DuplicateText(m.HistoryDays)
	out.TTLDays = dest.DuplicateText(m.TTLDays)
	out.Migrations = dest.DuplicateExprBlob(m.Migrations)
	return out
}

func duplicateFunction(dest *Allocator, f *FunctionDecl) *FunctionDecl {
	if f == nil {
		return nil
	}
	params := make([]Param, len(f.Params))
	for i, p := range f.Params {
		params[i] = Param{Name: dest.DuplicateText(p.Name), Type: DuplicateFQLType(dest, p.Type)}
	}
	return &FunctionDecl{
		Name:   dest.DuplicateText(f.Name),
		Params: params,
		Return: DuplicateFQLType(dest, f.Return),
		Body:   dest.DuplicateExprBlob(f.Body),
		Role:   dest.DuplicateText(f.Role),
	}
}

func duplicateRole(dest *Allocator, r *RoleDecl) *RoleDecl {
	if r == nil {
		return nil
	}
	members := make([]RoleMember, len(r.Members))
	for i, m := range r.Members {
		members[i] = duplicateRoleMember(dest, m)
	}
	return &RoleDecl{Name: dest.DuplicateText(r.Name), Members: members}
}

func duplicateRoleMember(dest *Allocator, m RoleMember) RoleMember {
	out := RoleMember{Kind: m.Kind, Pos: m.Pos}
	if m.Privilege != nil {
		actions := make([]PrivilegeAction, len(m.Privilege.Actions))
		for i, a := range m.Privilege.Actions {
			actions[i] = PrivilegeAction{Action: a.Action, Predicate: dest.DuplicateExprBlob(a.Predicate), Pos: a.Pos}
		}
		out.Privilege = &Privilege{Resource: dest.DuplicateText(m.Privilege.Resource), Actions: actions}
	}
	if m.Membership != nil {
		out.Membership = &Membership{
			Collection: dest.DuplicateText(m.Membership.Collection),
			Predicate:  dest.DuplicateExprBlob(m.Membership.Predicate),
		}
	}
	return out
}

// DuplicateFQLType deep-copies t into dest, or returns nil for an
// absent (optional) type.
func DuplicateFQLType(dest *Allocator, t *FQLType) *FQLType {
	if t == nil {
		return nil
	}
	out := &FQLType{Kind: t.Kind, Pos: t.Pos, owner: dest}
	switch t.Kind {
	case TNamed:
		out.Name = dest.DuplicateText(t.Name)
	case TObject:
		fields := make([]ObjectField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = ObjectField{Key: dest.DuplicateText(f.Key), Type: DuplicateFQLType(dest, f.Type), Optional: f.Optional}
		}
		out.Fields = fields
		out.Wildcard = DuplicateFQLType(dest, t.Wildcard)
	case TUnion:
		out.Lhs = DuplicateFQLType(dest, t.Lhs)
		out.Rhs = DuplicateFQLType(dest, t.Rhs)
	case TOptional, TIsolated:
		out.Inner = DuplicateFQLType(dest, t.Inner)
	case TTemplate:
		out.TemplateName = dest.DuplicateText(t.TemplateName)
		params := make([]*FQLType, len(t.TemplateParams))
		for i, p := range t.TemplateParams {
			params[i] = DuplicateFQLType(dest, p)
		}
		out.TemplateParams = params
	case TTuple:
		types := make([]*FQLType, len(t.TupleTypes))
		for i, tt := range t.TupleTypes {
			types[i] = DuplicateFQLType(dest, tt)
		}
		out.TupleTypes = types
	case TStringLiteral, TNumberLiteral:
		out.Literal = dest.DuplicateText(t.Literal)
	case TFunction:
		params := make([]*FQLType, len(t.Function.Params))
		for i, p := range t.Function.Params {
			params[i] = DuplicateFQLType(dest, p)
		}
		out.Function = &FunctionType{
			ParamForm: t.Function.ParamForm,
			Params:    params,
			Variadic:  t.Function.Variadic,
			Return:    DuplicateFQLType(dest, t.Function.Return),
		}
	}
	return out
}

// Clone deep-duplicates the entire tree into dest (a fresh allocator if
// nil), cloning rather than copying extras so the refcount reflects the
// new shared owner.
func (t *SchemaTree) Clone(dest *Allocator) *SchemaTree {
	if dest == nil {
		dest = NewAllocator()
	}
	out := NewTree(dest)
	for _, d := range t.Declarations {
		out.Declarations = append(out.Declarations, DuplicateDeclaration(dest, d))
	}
	for _, e := range t.Extras {
		out.Extras = append(out.Extras, e.Clone())
	}
	return out
}

// Merge consumes a and b and returns a new tree holding every
// declaration and extra of both, in a's-then-b's order. Per spec.md
// §6.2 this is a consuming operation: a and b must not be used again
// afterward. If the two trees share an allocator (same Same()), b's
// nodes are moved in directly; otherwise they are duplicated into a's
// allocator, which is the tree-merge equivalent of spec.md §3's
// "operations that move nodes between trees must either duplicate with
// the destination allocator or be guarded by an allocator-equality
// check".
func Merge(a, b *SchemaTree) *SchemaTree {
	out := NewTree(a.Allocator)
	out.Declarations = append(out.Declarations, a.Declarations...)
	out.Extras = append(out.Extras, a.Extras...)

	if a.Allocator.Same(b.Allocator) {
		out.Declarations = append(out.Declarations, b.Declarations...)
		out.Extras = append(out.Extras, b.Extras...)
		b.Declarations = nil
		b.Extras = nil
	} else {
		for _, d := range b.Declarations {
			out.Declarations = append(out.Declarations, DuplicateDeclaration(a.Allocator, d))
		}
		for _, e := range b.Extras {
			out.Extras = append(out.Extras, e.Clone())
		}
		b.Dispose()
	}
	a.Declarations = nil
	a.Extras = nil
	return out
}
