package tsgen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foursquare/fsltool/parser"
	"github.com/foursquare/fsltool/tsgen"
)

func TestGenerate(t *testing.T) {
	tree, err := parser.ParseFile("test.fsl", []byte(`
collection Users {
  name: String;
  age: Int?;
}
`))
	require.NoError(t, err)

	out, err := tsgen.Generate(tree)
	require.NoError(t, err)
	require.Contains(t, out, "export interface Users {")
	require.Contains(t, out, "name: string;")
	require.Contains(t, out, "age?: number;")
}
