package ast

// This file implements "code-equality": structural comparison that
// ignores Position/SourceLocation fields and, per spec.md §4.4 and the
// resolved Open Question in §9, treats optional fields symmetrically —
// both absent is equal, one absent and one present is never equal,
// regardless of what the present side contains.

func textEqual(a, b *TextNode) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Text == b.Text
}

func exprEqual(a, b *ExprBlob) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Text == b.Text
}

// FQLTypeEqual reports code-equality of two FQLTypes.
func FQLTypeEqual(a, b *FQLType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case TNamed:
		return textEqual(a.Name, b.Name)
	case TObject:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			fa, fb := a.Fields[i], b.Fields[i]
			if !textEqual(fa.Key, fb.Key) || fa.Optional != fb.Optional || !FQLTypeEqual(fa.Type, fb.Type) {
				return false
			}
		}
		return FQLTypeEqual(a.Wildcard, b.Wildcard)
	case TUnion:
		return FQLTypeEqual(a.Lhs, b.Lhs) && FQLTypeEqual(a.Rhs, b.Rhs)
	case TOptional, TIsolated:
		return FQLTypeEqual(a.Inner, b.Inner)
	case TTemplate:
		if !textEqual(a.TemplateName, b.TemplateName) || len(a.TemplateParams) != len(b.TemplateParams) {
			return false
		}
		for i := range a.TemplateParams {
			if !FQLTypeEqual(a.TemplateParams[i], b.TemplateParams[i]) {
				return false
			}
		}
		return true
	case TTuple:
		if len(a.TupleTypes) != len(b.TupleTypes) {
			return false
		}
		for i := range a.TupleTypes {
			if !FQLTypeEqual(a.TupleTypes[i], b.TupleTypes[i]) {
				return false
			}
		}
		return true
	case TStringLiteral, TNumberLiteral:
		return textEqual(a.Literal, b.Literal)
	case TFunction:
		fa, fb := a.Function, b.Function
		if fa.ParamForm != fb.ParamForm || fa.Variadic != fb.Variadic || len(fa.Params) != len(fb.Params) {
			return false
		}
		for i := range fa.Params {
			if !FQLTypeEqual(fa.Params[i], fb.Params[i]) {
				return false
			}
		}
		return FQLTypeEqual(fa.Return, fb.Return)
	default:
		return false
	}
}

// PrivilegeActionEqual compares two actions' tag and predicate (ignoring
// position).
func PrivilegeActionEqual(a, b PrivilegeAction) bool {
	return a.Action == b.Action && exprEqual(a.Predicate, b.Predicate)
}

// MembershipEqual compares two memberships' collection and predicate.
func MembershipEqual(a, b *Membership) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return textEqual(a.Collection, b.Collection) && exprEqual(a.Predicate, b.Predicate)
}

// DeclarationEqual reports code-equality of two declarations of the
// same kind. Declarations of different kinds are never equal.
func DeclarationEqual(a, b *Declaration) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case DeclAccessProvider:
		x, y := a.AccessProvider, b.AccessProvider
		if !textEqual(x.Name, y.Name) || !textEqual(x.Issuer, y.Issuer) || !textEqual(x.JWKSURI, y.JWKSURI) || !textEqual(x.TTL, y.TTL) {
			return false
		}
		if len(x.Roles) != len(y.Roles) {
			return false
		}
		for i := range x.Roles {
			if !textEqual(x.Roles[i], y.Roles[i]) {
				return false
			}
		}
		return true
	case DeclCollection:
		x, y := a.Collection, b.Collection
		if !textEqual(x.Name, y.Name) || !FQLTypeEqual(x.TypeAlias, y.TypeAlias) {
			return false
		}
		if len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if !collectionMemberEqual(x.Members[i], y.Members[i]) {
				return false
			}
		}
		return true
	case DeclFunction:
		x, y := a.Function, b.Function
		if !textEqual(x.Name, y.Name) || !FQLTypeEqual(x.Return, y.Return) || !exprEqual(x.Body, y.Body) || !textEqual(x.Role, y.Role) {
			return false
		}
		if len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if !textEqual(x.Params[i].Name, y.Params[i].Name) || !FQLTypeEqual(x.Params[i].Type, y.Params[i].Type) {
				return false
			}
		}
		return true
	case DeclRole:
		x, y := a.Role, b.Role
		if !textEqual(x.Name, y.Name) || len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if !roleMemberEqual(x.Members[i], y.Members[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func collectionMemberEqual(a, b CollectionMember) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case MemberField:
		return textEqual(a.Field.Name, b.Field.Name) && FQLTypeEqual(a.Field.Type, b.Field.Type)
	case MemberComputedField:
		return textEqual(a.ComputedField.Name, b.ComputedField.Name) &&
			FQLTypeEqual(a.ComputedField.Type, b.ComputedField.Type) &&
			exprEqual(a.ComputedField.Expr, b.ComputedField.Expr)
	case MemberConstraint:
		return exprEqual(a.Constraint.Expr, b.Constraint.Expr)
	case MemberIndex:
		x, y := a.Index, b.Index
		if !textEqual(x.Name, y.Name) || x.Unique != y.Unique || len(x.Terms) != len(y.Terms) {
			return false
		}
		for i := range x.Terms {
			if !textEqual(x.Terms[i], y.Terms[i]) {
				return false
			}
		}
		return true
	case MemberHistoryDays:
		return textEqual(a.HistoryDays, b.HistoryDays)
	case MemberTTLDays:
		return textEqual(a.TTLDays, b.TTLDays)
	case MemberDocumentTTLs:
		return a.DocumentTTLs == b.DocumentTTLs
	case MemberMigrations:
		return exprEqual(a.Migrations, b.Migrations)
	default:
		return false
	}
}

func roleMemberEqual(a, b RoleMember) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case RoleMemberPrivilege:
		x, y := a.Privilege, b.Privilege
		if !textEqual(x.Resource, y.Resource) || len(x.Actions) != len(y.Actions) {
			return false
		}
		for i := range x.Actions {
			if !PrivilegeActionEqual(x.Actions[i], y.Actions[i]) {
				return false
			}
		}
		return true
	case RoleMemberMembership:
		return MembershipEqual(a.Membership, b.Membership)
	default:
		return false
	}
}

// TreeEqual reports code-equality of two trees: same declarations in
// the same order. Extras are not compared (they are formatting, not
// code).
func TreeEqual(a, b *SchemaTree) bool {
	if len(a.Declarations) != len(b.Declarations) {
		return false
	}
	for i := range a.Declarations {
		if !DeclarationEqual(a.Declarations[i], b.Declarations[i]) {
			return false
		}
	}
	return true
}
