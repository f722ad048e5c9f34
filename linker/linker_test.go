package linker_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foursquare/fsltool/linker"
	"github.com/foursquare/fsltool/parser"
)

func TestLink_IndependentFunctions(t *testing.T) {
	tree, err := parser.ParseFile("test.fsl", []byte(`
function a() { 1 }
function b() { 2 }
`))
	require.NoError(t, err)

	mangled, err := linker.Link(tree)
	require.NoError(t, err)
	require.Len(t, mangled, 2)
	require.NotEqual(t, mangled["a"], mangled["b"])
	require.Equal(t, mangled["a"], tree.Declarations[0].Function.Name.Text)
	require.Equal(t, mangled["b"], tree.Declarations[1].Function.Name.Text)
}

func TestLink_SingleDependency(t *testing.T) {
	tree, err := parser.ParseFile("test.fsl", []byte(`
function a() { 1 }
function b() { a() }
`))
	require.NoError(t, err)

	mangled, err := linker.Link(tree)
	require.NoError(t, err)

	bBody := tree.Declarations[1].Function.Body.Text
	require.Contains(t, bBody, mangled["a"]+"(")
	require.NotContains(t, bBody, `a()`)
}

func TestLink_MutualRecursion(t *testing.T) {
	tree, err := parser.ParseFile("test.fsl", []byte(`
function f() { g() }
function g() { f() }
`))
	require.NoError(t, err)

	mangled, err := linker.Link(tree)
	require.NoError(t, err)

	fSuffix := mangled["f"][len("f"):]
	gSuffix := mangled["g"][len("g"):]
	require.Equal(t, fSuffix, gSuffix)

	fBody := tree.Declarations[0].Function.Body.Text
	gBody := tree.Declarations[1].Function.Body.Text
	require.Contains(t, fBody, mangled["g"]+"(")
	require.Contains(t, gBody, mangled["f"]+"(")
}

// TestLink_HashPropagatesToDependent exercises spec.md §4.3's Purpose
// clause: a dependent function's mangled suffix must depend on its
// dependency's mangled name (and so, transitively, on the dependency's
// body), not just on the dependent's own literal source text.
func TestLink_HashPropagatesToDependent(t *testing.T) {
	tree1, err := parser.ParseFile("test.fsl", []byte(`
function a() { 1 }
function b() { a() }
`))
	require.NoError(t, err)
	m1, err := linker.Link(tree1)
	require.NoError(t, err)

	tree2, err := parser.ParseFile("test.fsl", []byte(`
function a() { 2 }
function b() { a() }
`))
	require.NoError(t, err)
	m2, err := linker.Link(tree2)
	require.NoError(t, err)

	require.NotEqual(t, m1["a"], m2["a"], "changing a's body must change a's mangled name")
	require.NotEqual(t, m1["b"], m2["b"], "b's mangled name must change when a's mangled name changes, since b's hash is taken after rewriting b's call to a's mangled form")
}

func TestLink_Deterministic(t *testing.T) {
	src := `
function a() { 1 }
function b() { a() }
`
	tree1, err := parser.ParseFile("test.fsl", []byte(src))
	require.NoError(t, err)
	tree2, err := parser.ParseFile("test.fsl", []byte(src))
	require.NoError(t, err)

	m1, err := linker.Link(tree1)
	require.NoError(t, err)
	m2, err := linker.Link(tree2)
	require.NoError(t, err)
	require.Equal(t, m1, m2)
}
