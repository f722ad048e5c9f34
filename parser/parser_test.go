package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foursquare/fsltool/ast"
	"github.com/foursquare/fsltool/parser"
	"github.com/foursquare/fsltool/printer"
)

const fixture = `access provider AP {
  issuer = "https://issuer.example";
  jwks_uri = "https://issuer.example/jwks";
  roles = [Admin, Viewer];
  ttl = 3600;
}

collection Users {
  name: String;
  age: Int?;

  index by_name {
    terms: [name];
  }

  check { name != "" }
}

function greet(name: String): String role Viewer {
  "hello " + name
}

role Viewer {
  privileges {
    Users { read }
  }
  membership {
    Users { true }
  }
}
`

func TestParseFile_AllDeclarationKinds(t *testing.T) {
	tree, err := parser.ParseFile("fixture.fsl", []byte(fixture))
	require.NoError(t, err)
	require.Len(t, tree.Declarations, 4)
	require.Equal(t, ast.DeclAccessProvider, tree.Declarations[0].Kind)
	require.Equal(t, ast.DeclCollection, tree.Declarations[1].Kind)
	require.Equal(t, ast.DeclFunction, tree.Declarations[2].Kind)
	require.Equal(t, ast.DeclRole, tree.Declarations[3].Kind)
}

// TestRoundTrip_CodeEquality exercises spec.md's P1 property: parsing a
// tree's own canonical printing must yield a code-equal tree.
func TestRoundTrip_CodeEquality(t *testing.T) {
	tree, err := parser.ParseFile("fixture.fsl", []byte(fixture))
	require.NoError(t, err)

	text, err := printer.Print(tree, printer.Options{})
	require.NoError(t, err)

	reparsed, err := parser.ParseFile("fixture.fsl", []byte(text))
	require.NoError(t, err)

	require.True(t, ast.TreeEqual(tree, reparsed))
}

// TestRoundTrip_IsStable exercises spec.md's P1 corollary: canonical
// printing is idempotent once a tree has already been printed once.
func TestRoundTrip_IsStable(t *testing.T) {
	tree, err := parser.ParseFile("fixture.fsl", []byte(fixture))
	require.NoError(t, err)

	first, err := printer.Print(tree, printer.Options{})
	require.NoError(t, err)

	reparsed, err := parser.ParseFile("fixture.fsl", []byte(first))
	require.NoError(t, err)

	second, err := printer.Print(reparsed, printer.Options{})
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestParseFile_PreservesExtras(t *testing.T) {
	src := `// a leading comment
collection Users {
  name: String;
}

// trailing comment
`
	tree, err := parser.ParseFile("fixture.fsl", []byte(src))
	require.NoError(t, err)
	require.NotEmpty(t, tree.Extras)

	text, err := printer.Print(tree, printer.Options{})
	require.NoError(t, err)
	require.Contains(t, text, "// a leading comment")
	require.Contains(t, text, "// trailing comment")
}

func TestParseFile_ExprBlocksCapturedVerbatim(t *testing.T) {
	tree, err := parser.ParseFile("fixture.fsl", []byte(fixture))
	require.NoError(t, err)

	fn := tree.Declarations[2].Function
	require.Equal(t, `{
  "hello " + name
}`, fn.Body.Text)
}

func TestParseFile_UnterminatedBlockIsError(t *testing.T) {
	_, err := parser.ParseFile("broken.fsl", []byte(`function f() { a(`))
	require.Error(t, err)
}
