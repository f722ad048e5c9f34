package rolemerge_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foursquare/fsltool/parser"
	"github.com/foursquare/fsltool/rolemerge"
)

func TestMerge_UnionsPrivileges(t *testing.T) {
	tree, err := parser.ParseFile("test.fsl", []byte(`
role R {
  privileges {
    Users { read }
  }
}
role R {
  privileges {
    Users { write }
  }
}
`))
	require.NoError(t, err)

	merged, err := rolemerge.Merge(tree)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	require.Equal(t, "R", merged[0].Role.Name.Text)
	require.Len(t, merged[0].Role.Members, 1)
	priv := merged[0].Role.Members[0].Privilege
	require.Equal(t, "Users", priv.Resource.Text)
	require.Len(t, priv.Actions, 2)
}

func TestMerge_ConflictingActionFails(t *testing.T) {
	tree, err := parser.ParseFile("test.fsl", []byte(`
role R {
  privileges {
    Users { read { true } }
  }
}
role R {
  privileges {
    Users { read { false } }
  }
}
`))
	require.NoError(t, err)

	_, err = rolemerge.Merge(tree)
	require.Error(t, err)
	var dupErr *rolemerge.DuplicateActionError
	require.ErrorAs(t, err, &dupErr)
	require.Equal(t, "Users", dupErr.Resource)
}

func TestMerge_Idempotent(t *testing.T) {
	tree, err := parser.ParseFile("test.fsl", []byte(`
role R {
  privileges {
    Users { read }
  }
}
role R {
  privileges {
    Orders { write }
  }
}
`))
	require.NoError(t, err)

	once, err := rolemerge.Merge(tree)
	require.NoError(t, err)

	tree.Declarations = once
	twice, err := rolemerge.Merge(tree)
	require.NoError(t, err)
	require.Len(t, twice, 1)
	require.Len(t, twice[0].Role.Members, 2)
}
