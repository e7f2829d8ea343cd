package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, fixtureResult()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 3)

	assert.Equal(t, "Risk", f.Sheets[0].Name)
	assert.Equal(t, "Revenue", f.Sheets[1].Name)
	assert.Equal(t, "Opportunity", f.Sheets[2].Name)

	// Header row plus one assessment row.
	risk := f.Sheets[0]
	require.Len(t, risk.Rows, 2)
	assert.Equal(t, "key", risk.Rows[0].Cells[0].String())
	assert.Equal(t, "90011", risk.Rows[1].Cells[0].String())
}
