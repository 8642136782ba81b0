package recordstore

import (
	"context"
	"sort"
	"sync"

	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/schema"
	"github.com/stretchr/testify/mock"
)

// MockRecordStore is a mock implementation of RecordStore for testing.
type MockRecordStore struct {
	mock.Mock
}

var _ contract.RecordStore = &MockRecordStore{} // Compile-time check

// FindRecords implements the RecordStore interface.
func (m *MockRecordStore) FindRecords(ctx context.Context, filter schema.RecordFilter) ([]schema.EvaluationRecord, error) {
	args := m.Called(ctx, filter)
	records, _ := args.Get(0).([]schema.EvaluationRecord)
	return records, args.Error(1)
}

// InsertRecords implements the RecordStore interface.
func (m *MockRecordStore) InsertRecords(ctx context.Context, records []schema.EvaluationRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

// GetStatus implements the RecordStore interface.
func (m *MockRecordStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the RecordStore interface.
func (m *MockRecordStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MemoryStore is an in-memory RecordStore with real filter semantics. It
// backs tests and demo runs that need filtering without a database.
type MemoryStore struct {
	mu      sync.RWMutex
	records []schema.EvaluationRecord
}

var _ contract.RecordStore = &MemoryStore{} // Compile-time check

// NewMemoryStore returns an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// FindRecords implements the RecordStore interface.
func (m *MemoryStore) FindRecords(_ context.Context, filter schema.RecordFilter) ([]schema.EvaluationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = contract.DefaultFetchLimit
	}

	var results []schema.EvaluationRecord
	for _, r := range m.records {
		if !matchesFilter(&r, filter) {
			continue
		}
		results = append(results, r)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.Before(results[j].CreatedAt)
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// InsertRecords implements the RecordStore interface.
func (m *MemoryStore) InsertRecords(_ context.Context, records []schema.EvaluationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, records...)
	return nil
}

// GetStatus implements the RecordStore interface.
func (m *MemoryStore) GetStatus(_ context.Context) (schema.StoreStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := schema.StoreStatus{
		Backend:     schema.NoneBackend,
		Location:    "memory",
		RecordCount: int64(len(m.records)),
	}
	for _, r := range m.records {
		if status.OldestRecord.IsZero() || r.CreatedAt.Before(status.OldestRecord) {
			status.OldestRecord = r.CreatedAt
		}
		if r.CreatedAt.After(status.NewestRecord) {
			status.NewestRecord = r.CreatedAt
		}
	}
	return status, nil
}

// Close implements the RecordStore interface.
func (m *MemoryStore) Close() error {
	return nil
}

// matchesFilter applies the same predicate the SQL stores express in WHERE.
func matchesFilter(r *schema.EvaluationRecord, filter schema.RecordFilter) bool {
	if filter.OwnerID != "" && r.OwnerID != filter.OwnerID {
		return false
	}
	if !filter.Start.IsZero() && r.CreatedAt.Before(filter.Start) {
		return false
	}
	if !filter.End.IsZero() && !r.CreatedAt.Before(filter.End) {
		return false
	}
	if filter.ConversationID != "" && r.ConversationID != filter.ConversationID {
		return false
	}
	if filter.Model != "" && r.Model != filter.Model {
		return false
	}
	if filter.MinRating > 0 && r.Rating < filter.MinRating {
		return false
	}
	if filter.MaxRating > 0 && r.Rating > filter.MaxRating {
		return false
	}
	return true
}
