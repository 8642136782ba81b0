package pricing

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableEmbeddedDefaults(t *testing.T) {
	table, err := NewTable("", nil)
	require.NoError(t, err)

	price, ok := table.ModelPrice("gpt-4o")
	require.True(t, ok)
	assert.Greater(t, price.InputPerToken, 0.0)
	assert.Greater(t, price.OutputPerToken, price.InputPerToken)

	assert.NotEmpty(t, table.Models())
}

func TestNewTableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.yaml")
	content := `models:
  custom-model:
    input_per_token: 0.001
    output_per_token: 0.002
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := NewTable(path, nil)
	require.NoError(t, err)

	price, ok := table.ModelPrice("custom-model")
	require.True(t, ok)
	assert.InDelta(t, 0.001, price.InputPerToken, 1e-9)
	assert.InDelta(t, 0.002, price.OutputPerToken, 1e-9)

	// File table replaces the defaults entirely
	_, ok = table.ModelPrice("gpt-4o")
	assert.False(t, ok)
}

func TestNewTableErrors(t *testing.T) {
	_, err := NewTable("/nonexistent/prices.yaml", nil)
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("other: 1\n"), 0o644))
	_, err = NewTable(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no models")
}

func TestModelPriceMissWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	table, err := NewTable("", logger)
	require.NoError(t, err)

	_, ok := table.ModelPrice("unknown-model")
	assert.False(t, ok)
	_, ok = table.ModelPrice("unknown-model")
	assert.False(t, ok)

	// Cached miss logs a single warning
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("price table")))
}

func TestRecordCostWithTable(t *testing.T) {
	table, err := NewTable("", nil)
	require.NoError(t, err)

	in := int64(1000)
	out := int64(500)
	record := schema.EvaluationRecord{Model: "gpt-4o", InputTokens: &in, OutputTokens: &out}
	cost := contract.RecordCost(&record, table)
	assert.InDelta(t, 1000*0.0000025+500*0.00001, cost, 1e-9)

	unpriced := schema.EvaluationRecord{Model: "mystery", InputTokens: &in}
	assert.Zero(t, contract.RecordCost(&unpriced, table))
}
