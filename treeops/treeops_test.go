package treeops_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foursquare/fsltool/ast"
	"github.com/foursquare/fsltool/parser"
	"github.com/foursquare/fsltool/treeops"
)

const fixture = `
collection Users {
  name: String;
}

function greet() { "hi" }

role R {
  privileges {
    Users { read }
    Orders { write }
  }
}
`

func TestFilter(t *testing.T) {
	tree, err := parser.ParseFile("test.fsl", []byte(fixture))
	require.NoError(t, err)

	fns := treeops.Filter(tree, ast.DeclFunction)
	require.Equal(t, 1, fns.Length())
	require.Equal(t, "greet", fns.Declarations[0].Function.Name.Text)
}

func TestRemove(t *testing.T) {
	tree, err := parser.ParseFile("test.fsl", []byte(fixture))
	require.NoError(t, err)

	before := tree.Length()
	ok := treeops.Remove(tree, ast.DeclFunction, "greet")
	require.True(t, ok)
	require.Equal(t, before-1, tree.Length())

	require.False(t, treeops.Remove(tree, ast.DeclFunction, "greet"))
}

func TestStripRolesResource(t *testing.T) {
	tree, err := parser.ParseFile("test.fsl", []byte(fixture))
	require.NoError(t, err)

	treeops.StripRolesResource(tree, "Orders")

	for _, d := range tree.Declarations {
		if d.Kind != ast.DeclRole {
			continue
		}
		for _, m := range d.Role.Members {
			if m.Kind == ast.RoleMemberPrivilege {
				require.NotEqual(t, "Orders", m.Privilege.Resource.Text)
			}
		}
	}
}

func TestSort(t *testing.T) {
	tree, err := parser.ParseFile("test.fsl", []byte(fixture))
	require.NoError(t, err)

	treeops.Sort(tree)
	for i := 1; i < len(tree.Declarations); i++ {
		prev, cur := tree.Declarations[i-1], tree.Declarations[i]
		require.True(t, prev.Kind <= cur.Kind)
	}
}

func TestListDeclarations(t *testing.T) {
	tree, err := parser.ParseFile("test.fsl", []byte(fixture))
	require.NoError(t, err)

	out, err := treeops.ListDeclarations(tree)
	require.NoError(t, err)
	require.Contains(t, string(out), `"type":"role"`)
	require.Contains(t, string(out), `"resources":["Users","Orders"]`)
}

func TestClone(t *testing.T) {
	tree, err := parser.ParseFile("test.fsl", []byte(fixture))
	require.NoError(t, err)

	clone := treeops.Clone(tree, nil)
	require.Equal(t, tree.Length(), clone.Length())
	require.True(t, ast.TreeEqual(tree, clone))
	require.False(t, clone.Allocator.Same(tree.Allocator))
}
