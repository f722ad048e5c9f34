package printer_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foursquare/fsltool/parser"
	"github.com/foursquare/fsltool/printer"
)

func TestPrint_CollectionMemberOrder(t *testing.T) {
	src := `collection Users {
  check { name != "" }
  name: String;
  ttl_days = 30;
  compute upper: String = { name }
  index by_name { terms: [name] }
}`
	tree, err := parser.ParseFile("t.fsl", []byte(src))
	require.NoError(t, err)

	out, err := printer.Print(tree, printer.Options{})
	require.NoError(t, err)

	// spec.md §4.2 rule 2: ttl_days, then fields, computed fields,
	// constraints, indexes — regardless of source order.
	ttlIdx := strings.Index(out, "ttl_days")
	nameIdx := strings.Index(out, "name: String")
	computeIdx := strings.Index(out, "compute upper")
	checkIdx := strings.Index(out, "check {")
	indexIdx := strings.Index(out, "index by_name")

	require.True(t, ttlIdx < nameIdx)
	require.True(t, nameIdx < computeIdx)
	require.True(t, computeIdx < checkIdx)
	require.True(t, checkIdx < indexIdx)
}

func TestPrint_SortsDeclarationsWhenRequested(t *testing.T) {
	src := `function zeta() { 1 }
collection Apples { name: String; }
function alpha() { 1 }
`
	tree, err := parser.ParseFile("t.fsl", []byte(src))
	require.NoError(t, err)

	out, err := printer.Print(tree, printer.Options{Sort: true})
	require.NoError(t, err)

	// kind order is access_provider < collection < function < role, so
	// "Apples" (a collection) sorts before either function regardless of
	// name, and "alpha" sorts before "zeta" within functions.
	applesIdx := strings.Index(out, "collection Apples")
	alphaIdx := strings.Index(out, "function alpha")
	zetaIdx := strings.Index(out, "function zeta")
	require.True(t, applesIdx < alphaIdx)
	require.True(t, alphaIdx < zetaIdx)
}

func TestPrint_TwoSpaceIndentation(t *testing.T) {
	tree, err := parser.ParseFile("t.fsl", []byte(`collection Users { name: String; }`))
	require.NoError(t, err)

	out, err := printer.Print(tree, printer.Options{})
	require.NoError(t, err)
	require.Contains(t, out, "\n  name: String;\n")
}

func TestPrint_SourceMapInlineComment(t *testing.T) {
	tree, err := parser.ParseFile("t.fsl", []byte(`function greet() { 1 }`))
	require.NoError(t, err)

	out, err := printer.Print(tree, printer.Options{SourceMapFile: "out.fsl"})
	require.NoError(t, err)

	const marker = "//# sourceMappingURL=data:application/json;base64,"
	idx := strings.LastIndex(out, marker)
	require.Greater(t, idx, -1)

	encoded := strings.TrimSpace(out[idx+len(marker):])
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	var doc struct {
		File     string `json:"file"`
		Mappings []struct {
			OrigLine int `json:"origLine"`
		} `json:"mappings"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Equal(t, "out.fsl", doc.File)
	require.NotEmpty(t, doc.Mappings)
}

// TestPrint_SourcesOverridesOriginFile exercises a host re-attributing a
// merged tree's declarations to their true origin files, overriding
// whatever filename the declaration's tokens carry from their original
// standalone parse.
func TestPrint_SourcesOverridesOriginFile(t *testing.T) {
	tree, err := parser.ParseFile("merged.fsl", []byte(`function greet() { 1 }`))
	require.NoError(t, err)

	out, err := printer.Print(tree, printer.Options{
		SourceMapFile: "out.fsl",
		Sources:       map[string]string{"greet": "original/greet.fsl"},
	})
	require.NoError(t, err)

	const marker = "//# sourceMappingURL=data:application/json;base64,"
	idx := strings.LastIndex(out, marker)
	require.Greater(t, idx, -1)
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(out[idx+len(marker):]))
	require.NoError(t, err)

	var doc struct {
		Mappings []struct {
			OrigFile string `json:"origFile"`
		} `json:"mappings"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.NotEmpty(t, doc.Mappings)
	for _, m := range doc.Mappings {
		require.Equal(t, "original/greet.fsl", m.OrigFile)
	}
}
