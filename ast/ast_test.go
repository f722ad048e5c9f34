package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foursquare/fsltool/ast"
	"github.com/foursquare/fsltool/token"
)

func textNode(text string) *ast.TextNode {
	return &ast.TextNode{Text: text}
}

func TestDeclarationEqual_IgnoresPosition(t *testing.T) {
	a := &ast.Declaration{Kind: ast.DeclCollection, Pos: pos(1, 1), Collection: &ast.CollectionDecl{Name: textNode("Users")}}
	b := &ast.Declaration{Kind: ast.DeclCollection, Pos: pos(9, 9), Collection: &ast.CollectionDecl{Name: textNode("Users")}}
	require.True(t, ast.DeclarationEqual(a, b))
}

func TestDeclarationEqual_OptionalFieldsBothNilOrBothPresent(t *testing.T) {
	withTTL := &ast.Declaration{Kind: ast.DeclAccessProvider, AccessProvider: &ast.AccessProviderDecl{
		Name: textNode("AP"), Issuer: textNode("iss"), JWKSURI: textNode("uri"), TTL: textNode("60"),
	}}
	withoutTTL := &ast.Declaration{Kind: ast.DeclAccessProvider, AccessProvider: &ast.AccessProviderDecl{
		Name: textNode("AP"), Issuer: textNode("iss"), JWKSURI: textNode("uri"),
	}}
	require.False(t, ast.DeclarationEqual(withTTL, withoutTTL), "one side carrying TTL and the other not must never be equal")

	alsoWithoutTTL := &ast.Declaration{Kind: ast.DeclAccessProvider, AccessProvider: &ast.AccessProviderDecl{
		Name: textNode("AP"), Issuer: textNode("iss"), JWKSURI: textNode("uri"),
	}}
	require.True(t, ast.DeclarationEqual(withoutTTL, alsoWithoutTTL))
}

func TestDeclarationEqual_DifferentKindsNeverEqual(t *testing.T) {
	a := &ast.Declaration{Kind: ast.DeclCollection, Collection: &ast.CollectionDecl{Name: textNode("X")}}
	b := &ast.Declaration{Kind: ast.DeclFunction, Function: &ast.FunctionDecl{Name: textNode("X")}}
	require.False(t, ast.DeclarationEqual(a, b))
}

func TestParseDeclKind(t *testing.T) {
	for _, tc := range []struct {
		s    string
		want ast.DeclKind
	}{
		{"access_provider", ast.DeclAccessProvider},
		{"collection", ast.DeclCollection},
		{"function", ast.DeclFunction},
		{"role", ast.DeclRole},
	} {
		got, ok := ast.ParseDeclKind(tc.s)
		require.True(t, ok)
		require.Equal(t, tc.want, got)
		require.Equal(t, tc.s, got.Tag())
	}
	_, ok := ast.ParseDeclKind("bogus")
	require.False(t, ok)
}

func TestWalkIdentifiers(t *testing.T) {
	blob := &ast.ExprBlob{Text: `{ a.helper() + "ignored ident" + otherFn(b) }`}
	refs := ast.WalkIdentifiers(blob)

	var names []string
	for _, r := range refs {
		names = append(names, r.Text)
	}
	require.Equal(t, []string{"a", "helper", "otherFn", "b"}, names)
}

func TestRewriteIdentifiers(t *testing.T) {
	blob := &ast.ExprBlob{Text: `{ helper() + helper() }`}
	ast.RewriteIdentifiers(blob, map[string]string{"helper": "helper_abc123"})
	require.Equal(t, `{ helper_abc123() + helper_abc123() }`, blob.Text)
}

func TestRewriteIdentifiers_NoMatchIsNoop(t *testing.T) {
	original := `{ other() }`
	blob := &ast.ExprBlob{Text: original}
	ast.RewriteIdentifiers(blob, map[string]string{"helper": "helper_abc123"})
	require.Equal(t, original, blob.Text)
}

func pos(line, col int) token.Position {
	return token.Position{Line: line, Column: col}
}
