// Package rolemerge implements the FSL role merger (spec.md §4.4):
// fusing multiple declarations of the same role name into one,
// deduplicating privilege actions per resource and membership rules per
// collection, and failing on genuine conflicts.
package rolemerge

import (
	"fmt"

	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/foursquare/fsltool/ast"
)

// DuplicateActionError is returned when two privilege blocks on the
// same resource grant the same action with code-unequal predicates.
type DuplicateActionError struct {
	Resource string
	Action   ast.RoleAction
}

func (e *DuplicateActionError) Error() string {
	return fmt.Sprintf("rolemerge: conflicting %q privilege on resource %q", e.Action, e.Resource)
}

// DuplicateMembershipError is returned when two membership entries for
// the same collection are not code-equal.
type DuplicateMembershipError struct {
	Collection string
}

func (e *DuplicateMembershipError) Error() string {
	return fmt.Sprintf("rolemerge: conflicting membership entries for collection %q", e.Collection)
}

// Merge consolidates every role sharing a name into a single
// declaration and returns a new declaration list: non-role declarations
// first in original order, then merged roles in first-seen order
// (spec.md §4.4 step 3).
func Merge(tree *ast.SchemaTree) ([]*ast.Declaration, error) {
	var others []*ast.Declaration
	roleOrder := linkedhashset.New()
	grouped := make(map[string][]*ast.Declaration)

	for _, d := range tree.Declarations {
		if d.Kind != ast.DeclRole {
			others = append(others, d)
			continue
		}
		name := d.Role.Name.Text
		roleOrder.Add(name)
		grouped[name] = append(grouped[name], d)
	}

	out := append([]*ast.Declaration(nil), others...)
	for _, v := range roleOrder.Values() {
		name := v.(string)
		merged, err := mergeRoleGroup(grouped[name])
		if err != nil {
			return nil, err
		}
		out = append(out, merged)
	}
	return out, nil
}

func mergeRoleGroup(decls []*ast.Declaration) (*ast.Declaration, error) {
	if len(decls) == 1 {
		return decls[0], nil
	}

	var allMembers []ast.RoleMember
	for _, d := range decls {
		allMembers = append(allMembers, d.Role.Members...)
	}

	resourceOrder := linkedhashset.New()
	privilegesByResource := make(map[string][]*ast.Privilege)
	collectionOrder := linkedhashset.New()
	membershipsByCollection := make(map[string][]*ast.Membership)

	for _, m := range allMembers {
		switch m.Kind {
		case ast.RoleMemberPrivilege:
			res := m.Privilege.Resource.Text
			resourceOrder.Add(res)
			privilegesByResource[res] = append(privilegesByResource[res], m.Privilege)
		case ast.RoleMemberMembership:
			col := m.Membership.Collection.Text
			collectionOrder.Add(col)
			membershipsByCollection[col] = append(membershipsByCollection[col], m.Membership)
		}
	}

	var mergedMembers []ast.RoleMember
	for _, v := range resourceOrder.Values() {
		res := v.(string)
		priv, err := mergePrivileges(res, privilegesByResource[res])
		if err != nil {
			return nil, err
		}
		mergedMembers = append(mergedMembers, ast.RoleMember{Kind: ast.RoleMemberPrivilege, Privilege: priv})
	}
	for _, v := range collectionOrder.Values() {
		col := v.(string)
		mem, err := mergeMemberships(col, membershipsByCollection[col])
		if err != nil {
			return nil, err
		}
		mergedMembers = append(mergedMembers, ast.RoleMember{Kind: ast.RoleMemberMembership, Membership: mem})
	}

	role := &ast.RoleDecl{Name: decls[0].Role.Name, Members: mergedMembers}
	return &ast.Declaration{Kind: ast.DeclRole, Pos: decls[0].Pos, Role: role}, nil
}

// mergePrivileges unions the actions granted on resource across every
// privilege block, deduplicating by action tag and failing when two
// entries share an action tag with code-unequal predicates.
func mergePrivileges(resource string, privs []*ast.Privilege) (*ast.Privilege, error) {
	actionOrder := linkedhashset.New()
	byAction := make(map[ast.RoleAction]ast.PrivilegeAction)

	for _, priv := range privs {
		for _, action := range priv.Actions {
			if existing, ok := byAction[action.Action]; ok {
				if !ast.PrivilegeActionEqual(existing, action) {
					return nil, &DuplicateActionError{Resource: resource, Action: action.Action}
				}
				continue
			}
			byAction[action.Action] = action
			actionOrder.Add(action.Action)
		}
	}

	actions := make([]ast.PrivilegeAction, 0, actionOrder.Size())
	for _, v := range actionOrder.Values() {
		actions = append(actions, byAction[v.(ast.RoleAction)])
	}
	return &ast.Privilege{Resource: privs[0].Resource, Actions: actions}, nil
}

// mergeMemberships requires every membership entry for collection to be
// code-equal and returns the first.
func mergeMemberships(collection string, members []*ast.Membership) (*ast.Membership, error) {
	first := members[0]
	for _, m := range members[1:] {
		if !ast.MembershipEqual(first, m) {
			return nil, &DuplicateMembershipError{Collection: collection}
		}
	}
	return first, nil
}
