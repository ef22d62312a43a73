package formatter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter().Format(&buf, sampleReport()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, csvHeaders, records[0])
	assert.Equal(t, []string{"2025-01-01", "opus-4-5", "20000000", "5000000", "90000000", "5000000",
		"120000000", "120", "78.3", "180.12", "40.50"}, records[1])
	assert.Equal(t, "2025-01-01", records[2][0])
	assert.Equal(t, "opus-4-5", records[2][1])
	assert.Equal(t, "opus-4-5 sonnet-4-5", records[3][1])
	assert.Equal(t, "Total", records[4][0])
	assert.Equal(t, "309500000", records[4][6])
	assert.Equal(t, "464.22", records[4][9])
}
