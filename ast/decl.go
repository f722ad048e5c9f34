package ast

import "github.com/foursquare/fsltool/token"

// DeclKind tags the top-level Declaration variant.
type DeclKind int

const (
	DeclAccessProvider DeclKind = iota
	DeclCollection
	DeclFunction
	DeclRole
)

// Tag is the stable lowercase identifier used in the declarations JSON
// (spec.md §6.4) and at the FFI kind-string boundary (spec.md §6.2).
func (k DeclKind) Tag() string {
	switch k {
	case DeclAccessProvider:
		return "access_provider"
	case DeclCollection:
		return "collection"
	case DeclFunction:
		return "function"
	case DeclRole:
		return "role"
	default:
		return "unknown"
	}
}

// ParseDeclKind resolves a kind-string from the FFI boundary, returning
// ok=false for anything but the four accepted values.
func ParseDeclKind(s string) (DeclKind, bool) {
	switch s {
	case "access_provider":
		return DeclAccessProvider, true
	case "collection":
		return DeclCollection, true
	case "function":
		return DeclFunction, true
	case "role":
		return DeclRole, true
	default:
		return 0, false
	}
}

// Declaration is a tagged variant over the four top-level FSL entities.
type Declaration struct {
	Kind DeclKind
	Pos  token.Position
	owner *Allocator

	AccessProvider *AccessProviderDecl
	Collection     *CollectionDecl
	Function       *FunctionDecl
	Role           *RoleDecl
}

// Owner returns the allocator this declaration was obtained from.
func (d *Declaration) Owner() *Allocator {
	if d == nil {
		return nil
	}
	return d.owner
}

// Name returns the declaration's identifying TextNode, present on every
// variant.
func (d *Declaration) Name() *TextNode {
	switch d.Kind {
	case DeclAccessProvider:
		return d.AccessProvider.Name
	case DeclCollection:
		return d.Collection.Name
	case DeclFunction:
		return d.Function.Name
	case DeclRole:
		return d.Role.Name
	default:
		return nil
	}
}

// AccessProviderDecl is an `access provider NAME { ... }` declaration.
type AccessProviderDecl struct {
	Name    *TextNode
	Issuer  *TextNode // optional
	JWKSURI *TextNode // optional
	Roles   []*TextNode
	TTL     *TextNode // optional, numeric literal text
}

// CollectionMemberKind tags a collection's ordered member list.
type CollectionMemberKind int

const (
	MemberField CollectionMemberKind = iota
	MemberComputedField
	MemberConstraint
	MemberIndex
	MemberHistoryDays
	MemberTTLDays
	MemberDocumentTTLs
	MemberMigrations
)

// FieldDecl is a plain typed field. Type is nil when the source omitted
// a type, which spec.md §3 defines as meaning `unknown`.
type FieldDecl struct {
	Name *TextNode
	Type *FQLType
}

// ComputedFieldDecl is a `compute NAME: TYPE = { EXPR }` member.
type ComputedFieldDecl struct {
	Name *TextNode
	Type *FQLType // optional
	Expr *ExprBlob
}

// ConstraintDecl is a `check { EXPR }` member.
type ConstraintDecl struct {
	Expr *ExprBlob
}

// IndexDecl is an `index NAME { terms: [...] , unique? }` member.
type IndexDecl struct {
	Name   *TextNode // optional
	Unique bool
	Terms  []*TextNode
}

// CollectionMember is one ordered member of a collection body.
type CollectionMember struct {
	Kind CollectionMemberKind
	Pos  token.Position

	Field         *FieldDecl
	ComputedField *ComputedFieldDecl
	Constraint    *ConstraintDecl
	Index         *IndexDecl
	HistoryDays   *TextNode // numeric literal text
	TTLDays       *TextNode
	DocumentTTLs  bool
	Migrations    *ExprBlob
}

// CollectionDecl is a `collection NAME (as TYPE)? { ... }` declaration.
type CollectionDecl struct {
	Name      *TextNode
	TypeAlias *FQLType // optional
	Members   []CollectionMember
}

// Param is one `name (: type)?` function parameter.
type Param struct {
	Name *TextNode
	Type *FQLType // optional
}

// FunctionDecl is a `function NAME(params) (: TYPE)? { body }` UDF.
// Body is captured verbatim as an ExprBlob; the core never evaluates it.
type FunctionDecl struct {
	Name   *TextNode
	Params []Param
	Return *FQLType // optional
	Body   *ExprBlob
	Role   *TextNode // optional role annotation
}

// RoleAction is one of the six privilege actions.
type RoleAction string

const (
	ActionRead        RoleAction = "read"
	ActionWrite       RoleAction = "write"
	ActionCreate      RoleAction = "create"
	ActionDelete      RoleAction = "delete"
	ActionHistoryRead RoleAction = "history_read"
	ActionCall        RoleAction = "call"
)

// PrivilegeAction is one action entry within a privilege block, with an
// optional guarding predicate.
type PrivilegeAction struct {
	Action    RoleAction
	Predicate *ExprBlob // optional
	Pos       token.Position
}

// Privilege grants a set of actions on a resource.
type Privilege struct {
	Resource *TextNode
	Actions  []PrivilegeAction
}

// Membership grants the role to members of a collection, optionally
// guarded by a predicate.
type Membership struct {
	Collection *TextNode
	Predicate  *ExprBlob // optional
}

// RoleMemberKind tags a role's ordered member list.
type RoleMemberKind int

const (
	RoleMemberPrivilege RoleMemberKind = iota
	RoleMemberMembership
)

// RoleMember is one ordered member (privileges block or membership
// block) of a role body.
type RoleMember struct {
	Kind       RoleMemberKind
	Pos        token.Position
	Privilege  *Privilege
	Membership *Membership
}

// RoleDecl is a `role NAME { ... }` declaration.
type RoleDecl struct {
	Name    *TextNode
	Members []RoleMember
}
