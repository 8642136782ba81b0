package core_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qualens/qualens/core"
	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/internal/pricing"
	"github.com/qualens/qualens/internal/recordstore"
	"github.com/qualens/qualens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEnv builds an in-memory store with two weeks of mixed records.
func newTestEnv(t *testing.T) (*core.Env, *contract.Config) {
	t.Helper()

	store := recordstore.NewMemoryStore()
	now := time.Now().UTC()
	var records []schema.EvaluationRecord
	for day := 0; day < 14; day++ {
		for i := 0; i < 4; i++ {
			rating := 4
			success := true
			errType := ""
			if i == 3 && day%3 == 0 {
				rating = 2
				success = false
				errType = "timeout"
			}
			rec := schema.EvaluationRecord{
				ID:        fmt.Sprintf("rec-%d-%d", day, i),
				OwnerID:   "owner-1",
				Rating:    rating,
				Success:   &success,
				Notes:     "helpful and accurate answer",
				ErrorType: errType,
				Model:     "gpt-4o",
				Provider:  "openai",
				CreatedAt: now.AddDate(0, 0, -day).Add(-time.Duration(i) * time.Hour),
			}
			if i == 1 {
				rec.ToolCalls = []schema.ToolCall{{Name: "search", Success: true}}
			}
			records = append(records, rec)
		}
	}
	require.NoError(t, store.InsertRecords(context.Background(), records))

	prices, err := pricing.NewTable("", nil)
	require.NoError(t, err)

	cfg := &contract.Config{
		OwnerID:        "owner-1",
		StartTime:      now.AddDate(0, 0, -15),
		EndTime:        now.Add(time.Hour),
		FetchLimit:     contract.DefaultFetchLimit,
		ResultLimit:    contract.DefaultResultLimit,
		Precision:      contract.DefaultPrecision,
		Output:         schema.JSONOut,
		TrendMinDays:   contract.DefaultTrendMinDays,
		TrendThreshold: contract.DefaultTrendThreshold,
		Horizons:       []int{7, 14},
	}
	return &core.Env{Store: store, Prices: prices}, cfg
}

// TestExecutorForAllOperations verifies every operation dispatches and
// unknown names are rejected.
func TestExecutorForAllOperations(t *testing.T) {
	for _, op := range schema.AllOperations {
		fn, err := core.ExecutorFor(op)
		assert.NoError(t, err, "operation %s", op)
		assert.NotNil(t, fn, "operation %s", op)
	}

	fn, err := core.ExecutorFor(schema.Operation("bogus"))
	assert.Error(t, err)
	assert.Nil(t, fn)
}

// TestExecutorsWriteJSON runs every executor end to end against the
// in-memory store and checks each one writes valid JSON.
func TestExecutorsWriteJSON(t *testing.T) {
	ctx := context.Background()
	env, cfg := newTestEnv(t)
	dir := t.TempDir()

	for _, op := range schema.AllOperations {
		t.Run(string(op), func(t *testing.T) {
			fn, err := core.ExecutorFor(op)
			require.NoError(t, err)

			opCfg := cfg.Clone()
			opCfg.OutputFile = filepath.Join(dir, string(op)+".json")
			require.NoError(t, fn(ctx, opCfg, env))

			data, err := os.ReadFile(opCfg.OutputFile)
			require.NoError(t, err)
			assert.True(t, json.Valid(data), "output of %s is not valid JSON", op)
		})
	}
}

// TestExecuteMetricsEmptyWindow verifies an owner with no records still
// produces a report instead of an error.
func TestExecuteMetricsEmptyWindow(t *testing.T) {
	ctx := context.Background()
	env, cfg := newTestEnv(t)

	cfg = cfg.Clone()
	cfg.OwnerID = "nobody"
	cfg.OutputFile = filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, core.ExecuteMetrics(ctx, cfg, env))

	var metrics schema.WindowMetrics
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &metrics))
	assert.Zero(t, metrics.TotalRecords)
}

// TestGetWindowMetricsValues spot-checks the aggregate numbers.
func TestGetWindowMetricsValues(t *testing.T) {
	ctx := context.Background()
	env, cfg := newTestEnv(t)

	metrics, err := core.GetWindowMetrics(ctx, cfg, env)
	require.NoError(t, err)
	assert.Equal(t, 56, metrics.TotalRecords)
	assert.Greater(t, metrics.AverageRating, 3.0)
	assert.Greater(t, metrics.SuccessRate, 0.8)
}

// TestExecuteLogsOperationKey verifies the debug trace written during the
// fetch carries the operation name and owner id.
func TestExecuteLogsOperationKey(t *testing.T) {
	ctx := context.Background()
	env, cfg := newTestEnv(t)

	var buf bytes.Buffer
	cfg = cfg.Clone()
	cfg.OutputFile = filepath.Join(t.TempDir(), "trends.json")
	cfg.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	require.NoError(t, core.ExecuteTrends(ctx, cfg, env))

	logged := buf.String()
	assert.Contains(t, logged, "operation=trends")
	assert.Contains(t, logged, "owner=owner-1")
}

// TestGetPredictionReportStoreError verifies store failures surface.
func TestGetPredictionReportStoreError(t *testing.T) {
	ctx := context.Background()
	_, cfg := newTestEnv(t)

	mockStore := &recordstore.MockRecordStore{}
	mockStore.On("FindRecords", ctx, cfg.Filter()).
		Return([]schema.EvaluationRecord(nil), fmt.Errorf("connection reset"))

	env := &core.Env{Store: mockStore}
	_, err := core.GetPredictionReport(ctx, cfg, env)
	assert.ErrorContains(t, err, "connection reset")
	mockStore.AssertExpectations(t)
}
