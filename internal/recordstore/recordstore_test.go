package recordstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/qualens/qualens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "records.db")
	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*SQLStore)
}

func seedRecord(id, owner string, rating int, createdAt time.Time) schema.EvaluationRecord {
	success := rating >= 3
	return schema.EvaluationRecord{
		ID:        id,
		OwnerID:   owner,
		Rating:    rating,
		Success:   &success,
		Model:     "gpt-4o",
		Provider:  "openai",
		CreatedAt: createdAt,
	}
}

func TestSQLiteInsertAndFind(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	base := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	tokens := int64(512)
	latency := int64(1800)
	records := []schema.EvaluationRecord{
		{
			ID:             "rec-1",
			OwnerID:        "alice",
			ConversationID: "conv-1",
			Rating:         5,
			Notes:          "excellent answer",
			Model:          "gpt-4o",
			Provider:       "openai",
			InputTokens:    &tokens,
			LatencyMs:      &latency,
			ToolCalls: []schema.ToolCall{
				{Name: "search", Success: true},
				{Name: "browse", Success: false},
			},
			CreatedAt: base,
		},
		seedRecord("rec-2", "alice", 2, base.Add(time.Hour)),
		seedRecord("rec-3", "bob", 4, base.Add(2*time.Hour)),
	}
	require.NoError(t, store.InsertRecords(ctx, records))

	found, err := store.FindRecords(ctx, schema.RecordFilter{OwnerID: "alice"})
	require.NoError(t, err)
	require.Len(t, found, 2)

	// Ordered by creation time ascending
	assert.Equal(t, "rec-1", found[0].ID)
	assert.Equal(t, "rec-2", found[1].ID)

	// Round-trip of nullable and nested fields
	first := found[0]
	assert.Equal(t, "conv-1", first.ConversationID)
	assert.Equal(t, "excellent answer", first.Notes)
	assert.Nil(t, first.Success)
	require.NotNil(t, first.InputTokens)
	assert.Equal(t, int64(512), *first.InputTokens)
	assert.Nil(t, first.OutputTokens)
	require.NotNil(t, first.LatencyMs)
	assert.Equal(t, int64(1800), *first.LatencyMs)
	require.Len(t, first.ToolCalls, 2)
	assert.Equal(t, "search", first.ToolCalls[0].Name)
	assert.False(t, first.ToolCalls[1].Success)
	assert.True(t, first.CreatedAt.Equal(base))

	second := found[1]
	require.NotNil(t, second.Success)
	assert.False(t, *second.Success)
	assert.Empty(t, second.ToolCalls)
}

func TestSQLiteFindFilters(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	var records []schema.EvaluationRecord
	for i := 0; i < 10; i++ {
		r := seedRecord(string(rune('a'+i)), "alice", i%5+1, base.Add(time.Duration(i)*time.Hour))
		if i%2 == 0 {
			r.Model = "claude-sonnet"
		}
		records = append(records, r)
	}
	require.NoError(t, store.InsertRecords(ctx, records))

	t.Run("time window", func(t *testing.T) {
		found, err := store.FindRecords(ctx, schema.RecordFilter{
			OwnerID: "alice",
			Start:   base.Add(2 * time.Hour),
			End:     base.Add(5 * time.Hour),
		})
		require.NoError(t, err)
		assert.Len(t, found, 3) // exclusive end bound
	})

	t.Run("model", func(t *testing.T) {
		found, err := store.FindRecords(ctx, schema.RecordFilter{OwnerID: "alice", Model: "claude-sonnet"})
		require.NoError(t, err)
		assert.Len(t, found, 5)
	})

	t.Run("rating bounds", func(t *testing.T) {
		found, err := store.FindRecords(ctx, schema.RecordFilter{OwnerID: "alice", MinRating: 4, MaxRating: 5})
		require.NoError(t, err)
		for _, r := range found {
			assert.GreaterOrEqual(t, r.Rating, 4)
			assert.LessOrEqual(t, r.Rating, 5)
		}
	})

	t.Run("limit", func(t *testing.T) {
		found, err := store.FindRecords(ctx, schema.RecordFilter{OwnerID: "alice", Limit: 3})
		require.NoError(t, err)
		require.Len(t, found, 3)
		// Limit keeps the oldest records
		assert.Equal(t, "a", found[0].ID)
	})

	t.Run("unknown owner", func(t *testing.T) {
		found, err := store.FindRecords(ctx, schema.RecordFilter{OwnerID: "nobody"})
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestSQLiteGetStatus(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Zero(t, status.RecordCount)

	base := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.InsertRecords(ctx, []schema.EvaluationRecord{
		seedRecord("rec-1", "alice", 4, base),
		seedRecord("rec-2", "alice", 3, base.Add(time.Hour)),
	}))

	status, err = store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.RecordCount)
	assert.True(t, status.OldestRecord.Equal(base))
	assert.True(t, status.NewestRecord.Equal(base.Add(time.Hour)))
}

func TestNoneBackendIsNoop(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	require.NoError(t, store.InsertRecords(ctx, []schema.EvaluationRecord{seedRecord("rec-1", "alice", 4, time.Now())}))

	found, err := store.FindRecords(ctx, schema.RecordFilter{OwnerID: "alice"})
	require.NoError(t, err)
	assert.Empty(t, found)

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
}

func TestNewStoreUnsupportedBackend(t *testing.T) {
	_, err := NewStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestMigrateSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	// Up to latest, then back down
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1))
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1)) // idempotent
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 0))
}

func TestMigrateNoneBackend(t *testing.T) {
	err := Migrate(schema.NoneBackend, "", -1)
	require.Error(t, err)
}

func TestMemoryStoreFilters(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.InsertRecords(ctx, []schema.EvaluationRecord{
		seedRecord("rec-2", "alice", 4, base.Add(time.Hour)),
		seedRecord("rec-1", "alice", 2, base),
		seedRecord("rec-3", "bob", 5, base.Add(2*time.Hour)),
	}))

	found, err := store.FindRecords(ctx, schema.RecordFilter{OwnerID: "alice"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "rec-1", found[0].ID) // sorted by creation time

	found, err = store.FindRecords(ctx, schema.RecordFilter{OwnerID: "alice", MinRating: 3})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "rec-2", found[0].ID)

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), status.RecordCount)
	assert.True(t, status.OldestRecord.Equal(base))
}

func TestSeedGeneratesRecords(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	inserted, err := Seed(ctx, store, "alice", 200, 30, 42)
	require.NoError(t, err)
	assert.Equal(t, 200, inserted)

	records, err := store.FindRecords(ctx, schema.RecordFilter{OwnerID: "alice"})
	require.NoError(t, err)
	require.Len(t, records, 200)

	var rated, withTools, withErrors int
	for _, r := range records {
		assert.Equal(t, "alice", r.OwnerID)
		assert.GreaterOrEqual(t, r.Rating, 0)
		assert.LessOrEqual(t, r.Rating, 5)
		require.NotNil(t, r.InputTokens)
		if r.Rating > 0 {
			rated++
		}
		if len(r.ToolCalls) > 0 {
			withTools++
		}
		if r.HasError() {
			withErrors++
		}
	}
	assert.Greater(t, rated, 150)
	assert.Greater(t, withTools, 50)
	assert.Greater(t, withErrors, 5)
}

func TestSeedValidation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := Seed(ctx, store, "alice", 0, 30, 1)
	require.Error(t, err)

	_, err = Seed(ctx, store, "alice", 10, 0, 1)
	require.Error(t, err)
}

func TestSeedIsDeterministic(t *testing.T) {
	ctx := context.Background()
	a := NewMemoryStore()
	b := NewMemoryStore()

	_, err := Seed(ctx, a, "alice", 50, 7, 7)
	require.NoError(t, err)
	_, err = Seed(ctx, b, "alice", 50, 7, 7)
	require.NoError(t, err)

	ra, err := a.FindRecords(ctx, schema.RecordFilter{OwnerID: "alice"})
	require.NoError(t, err)
	rb, err := b.FindRecords(ctx, schema.RecordFilter{OwnerID: "alice"})
	require.NoError(t, err)

	require.Equal(t, len(ra), len(rb))
	for i := range ra {
		assert.Equal(t, ra[i].ID, rb[i].ID)
		assert.Equal(t, ra[i].Rating, rb[i].Rating)
		assert.Equal(t, ra[i].Model, rb[i].Model)
	}
}

func TestExecuteExport(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.InsertRecords(ctx, []schema.EvaluationRecord{
		seedRecord("rec-1", "alice", 4, base),
		seedRecord("rec-2", "alice", 5, base.Add(time.Hour)),
	}))

	outputFile := filepath.Join(t.TempDir(), "records.parquet")
	err := ExecuteExport(ctx, store, schema.RecordFilter{OwnerID: "alice"}, outputFile)
	require.NoError(t, err)

	// Missing output file is rejected before any fetch
	err = ExecuteExport(ctx, store, schema.RecordFilter{OwnerID: "alice"}, "")
	require.Error(t, err)
}

func TestExecuteExportEmptyStore(t *testing.T) {
	store := NewMemoryStore()
	outputFile := filepath.Join(t.TempDir(), "records.parquet")
	err := ExecuteExport(context.Background(), store, schema.RecordFilter{OwnerID: "alice"}, outputFile)
	require.Error(t, err)
}
