package tablecache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Get_returnsSameTableEveryCall(t *testing.T) {
	first, err := Get()
	require.NoError(t, err)
	second, err := Get()
	require.NoError(t, err)
	assert.Same(t, first, second, "Get should return the same process-wide singleton")
}

func Test_WriteFile_ReadFile_roundTripsActionAndGoto(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	table, err := Get()
	require.NoError(err)

	path := filepath.Join(t.TempDir(), "table.bin")
	require.NoError(WriteFile(table, path))

	reloaded, err := ReadFile(path)
	require.NoError(err)

	for state, row := range table.Action {
		for term, action := range row {
			got, ok := reloaded.Action[state][term]
			require.Truef(ok, "reloaded table missing ACTION[%d][%s]", state, term)
			assert.Equal(action, got)
		}
	}
	for state, row := range table.Goto {
		for sym, target := range row {
			got, ok := reloaded.Goto[state][sym]
			require.Truef(ok, "reloaded table missing GOTO[%d][%s]", state, sym)
			assert.Equal(target, got)
		}
	}

	assert.Equal(len(table.LALR.States), len(reloaded.LALR.States), "reloaded table should carry one ID-only state per original state, for DumpRows")
}

func Test_ReadFile_rejectsMissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.bin"))
	assert.Error(t, err)
}
