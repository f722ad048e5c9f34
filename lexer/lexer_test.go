package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foursquare/fsltool/lexer"
	"github.com/foursquare/fsltool/token"
)

func collectKinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	l := lexer.New("test.fsl", []byte(src))
	var kinds []token.Kind
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			return kinds
		}
	}
}

func TestNext_Punctuation(t *testing.T) {
	kinds := collectKinds(t, `collection Users { name: String; }`)
	require.Equal(t, []token.Kind{
		token.KwCollection, token.Ident, token.LBrace,
		token.Ident, token.Colon, token.Ident, token.Semicolon,
		token.RBrace, token.EOF,
	}, kinds)
}

func TestNext_StringAndNumberLiterals(t *testing.T) {
	l := lexer.New("test.fsl", []byte(`"hello" 42 3.5`))

	str, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.String, str.Kind)
	require.Equal(t, "hello", str.Text)

	i, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.Int, i.Kind)
	require.Equal(t, "42", i.Text)

	d, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.Decimal, d.Kind)
	require.Equal(t, "3.5", d.Text)
}

func TestNext_CommentCapturedAsExtra(t *testing.T) {
	l := lexer.New("test.fsl", []byte("// a comment\ncollection Users {}"))
	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.KwCollection, tok.Kind)

	extras := l.TakeExtras()
	require.Len(t, extras, 1)
	require.Equal(t, lexer.ExtraComment, extras[0].Kind)
	require.Equal(t, "// a comment", extras[0].Text)
}

func TestNext_BlankLineCapturedAsExtra(t *testing.T) {
	l := lexer.New("test.fsl", []byte("collection A {}\n\ncollection B {}"))
	_, err := l.Next() // KwCollection
	require.NoError(t, err)
	for i := 0; i < 3; i++ { // Ident("A"), LBrace, RBrace
		_, err := l.Next()
		require.NoError(t, err)
	}

	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.KwCollection, tok.Kind)
	extras := l.TakeExtras()

	var sawBlank bool
	for _, e := range extras {
		if e.Kind == lexer.ExtraBlankLine {
			sawBlank = true
		}
	}
	require.True(t, sawBlank)
}

func TestFindMatchingBrace(t *testing.T) {
	src := []byte(`{ a() { b() } c }`)
	close, err := lexer.FindMatchingBrace(src, 0)
	require.NoError(t, err)
	require.Equal(t, len(src)-1, close)
}

func TestFindMatchingBrace_Unbalanced(t *testing.T) {
	src := []byte(`{ a() `)
	_, err := lexer.FindMatchingBrace(src, 0)
	require.Error(t, err)
}
