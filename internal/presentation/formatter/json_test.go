package formatter

import (
	"bytes"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, sampleReport()))

	var decoded map[string]interface{}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "daily", decoded["report"])
	assert.Equal(t, "UTC", decoded["timezone"])

	rows, ok := decoded["rows"].([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 2)

	first := rows[0].(map[string]interface{})
	assert.Equal(t, "2025-01-01", first["label"])
	assert.Equal(t, float64(120_000_000), first["totalTokens"])
	assert.InDelta(t, 78.26, first["cacheHitRate"], 0.01)
	assert.Len(t, first["breakdown"], 1)

	total := decoded["total"].(map[string]interface{})
	assert.InDelta(t, 464.22, total["costUSD"], 1e-9)
	assert.Equal(t, float64(309_500_000), total["totalTokens"])
}
