// Package recordstore provides the SQL-backed evaluation record store.
package recordstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// recordsTable is the name of the evaluation records table.
const recordsTable = "qualens_evaluation_records"

// recordColumns is the column list shared by the find and insert queries.
const recordColumns = "id, owner_id, conversation_id, rating, success, notes, expected, actual, " +
	"error_type, fallback_used, tool_calls, model, provider, input_tokens, output_tokens, " +
	"latency_ms, created_at"

// SQLStore implements the RecordStore interface over various database backends.
type SQLStore struct {
	db       *sql.DB
	backend  schema.DatabaseBackend
	location string
}

var _ contract.RecordStore = &SQLStore{} // Compile-time check

// NewStore initializes and returns a new record store based on the backend type.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.RecordStore, error) {
	var db *sql.DB
	var err error
	var location string

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		location = dbPath
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname?parseTime=true
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=secret dbname=qualens
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled persistence
		return &SQLStore{db: nil, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database server is running and accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	// Create the table schema
	if _, err := db.Exec(getCreateRecordsQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", recordsTable, err)
	}

	return &SQLStore{db: db, backend: backend, location: location}, nil
}

// getCreateRecordsQuery returns the CREATE TABLE query for qualens_evaluation_records.
func getCreateRecordsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(recordsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id VARCHAR(100) PRIMARY KEY,
				owner_id VARCHAR(100) NOT NULL,
				conversation_id VARCHAR(100) NOT NULL,
				rating INT NOT NULL,
				success TINYINT(1),
				notes TEXT NOT NULL,
				expected TEXT NOT NULL,
				actual TEXT NOT NULL,
				error_type VARCHAR(100) NOT NULL,
				fallback_used TINYINT(1) NOT NULL,
				tool_calls TEXT NOT NULL,
				model VARCHAR(100) NOT NULL,
				provider VARCHAR(100) NOT NULL,
				input_tokens BIGINT,
				output_tokens BIGINT,
				latency_ms BIGINT,
				created_at DATETIME(6) NOT NULL,
				INDEX idx_owner_created (owner_id, created_at)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				owner_id TEXT NOT NULL,
				conversation_id TEXT NOT NULL,
				rating INT NOT NULL,
				success BOOLEAN,
				notes TEXT NOT NULL,
				expected TEXT NOT NULL,
				actual TEXT NOT NULL,
				error_type TEXT NOT NULL,
				fallback_used BOOLEAN NOT NULL,
				tool_calls TEXT NOT NULL,
				model TEXT NOT NULL,
				provider TEXT NOT NULL,
				input_tokens BIGINT,
				output_tokens BIGINT,
				latency_ms BIGINT,
				created_at TIMESTAMPTZ NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				owner_id TEXT NOT NULL,
				conversation_id TEXT NOT NULL,
				rating INTEGER NOT NULL,
				success INTEGER,
				notes TEXT NOT NULL,
				expected TEXT NOT NULL,
				actual TEXT NOT NULL,
				error_type TEXT NOT NULL,
				fallback_used INTEGER NOT NULL,
				tool_calls TEXT NOT NULL,
				model TEXT NOT NULL,
				provider TEXT NOT NULL,
				input_tokens INTEGER,
				output_tokens INTEGER,
				latency_ms INTEGER,
				created_at TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// FindRecords returns evaluation records matching the filter, ordered by
// creation time ascending and capped at the filter limit.
func (s *SQLStore) FindRecords(ctx context.Context, filter schema.RecordFilter) ([]schema.EvaluationRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	query, args := s.buildFindQuery(filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.EvaluationRecord
	for rows.Next() {
		record, err := s.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evaluation records: %w", err)
	}
	return results, nil
}

// buildFindQuery assembles the filtered SELECT with backend placeholders.
func (s *SQLStore) buildFindQuery(filter schema.RecordFilter) (string, []any) {
	var conditions []string
	var args []any

	addCondition := func(clause string, value any) {
		args = append(args, value)
		placeholder := "?"
		if s.backend == schema.PostgreSQLBackend {
			placeholder = fmt.Sprintf("$%d", len(args))
		}
		conditions = append(conditions, fmt.Sprintf(clause, placeholder))
	}

	addCondition("owner_id = %s", filter.OwnerID)
	if !filter.Start.IsZero() {
		addCondition("created_at >= %s", formatTime(filter.Start, s.backend))
	}
	if !filter.End.IsZero() {
		addCondition("created_at < %s", formatTime(filter.End, s.backend))
	}
	if filter.ConversationID != "" {
		addCondition("conversation_id = %s", filter.ConversationID)
	}
	if filter.Model != "" {
		addCondition("model = %s", filter.Model)
	}
	if filter.MinRating > 0 {
		addCondition("rating >= %s", filter.MinRating)
	}
	if filter.MaxRating > 0 {
		addCondition("rating <= %s", filter.MaxRating)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = contract.DefaultFetchLimit
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY created_at LIMIT %d",
		recordColumns, quoteTableName(recordsTable, s.backend), strings.Join(conditions, " AND "), limit)
	return query, args
}

// scanRecord scans one row into an evaluation record, handling backend time
// representations and nullable columns.
func (s *SQLStore) scanRecord(rows *sql.Rows) (schema.EvaluationRecord, error) {
	var record schema.EvaluationRecord
	var success sql.NullBool
	var inputTokens, outputTokens, latencyMs sql.NullInt64
	var toolCallsJSON string

	switch s.backend {
	case schema.SQLiteBackend:
		var createdAtStr string
		if err := rows.Scan(&record.ID, &record.OwnerID, &record.ConversationID, &record.Rating,
			&success, &record.Notes, &record.Expected, &record.Actual, &record.ErrorType,
			&record.FallbackUsed, &toolCallsJSON, &record.Model, &record.Provider,
			&inputTokens, &outputTokens, &latencyMs, &createdAtStr); err != nil {
			return record, fmt.Errorf("failed to scan evaluation record: %w", err)
		}
		createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
		if err != nil {
			return record, fmt.Errorf("failed to parse created_at: %w", err)
		}
		record.CreatedAt = createdAt
	default: // MySQL and PostgreSQL store as native datetime
		if err := rows.Scan(&record.ID, &record.OwnerID, &record.ConversationID, &record.Rating,
			&success, &record.Notes, &record.Expected, &record.Actual, &record.ErrorType,
			&record.FallbackUsed, &toolCallsJSON, &record.Model, &record.Provider,
			&inputTokens, &outputTokens, &latencyMs, &record.CreatedAt); err != nil {
			return record, fmt.Errorf("failed to scan evaluation record: %w", err)
		}
	}

	if success.Valid {
		v := success.Bool
		record.Success = &v
	}
	if inputTokens.Valid {
		v := inputTokens.Int64
		record.InputTokens = &v
	}
	if outputTokens.Valid {
		v := outputTokens.Int64
		record.OutputTokens = &v
	}
	if latencyMs.Valid {
		v := latencyMs.Int64
		record.LatencyMs = &v
	}
	if toolCallsJSON != "" && toolCallsJSON != "[]" {
		if err := json.Unmarshal([]byte(toolCallsJSON), &record.ToolCalls); err != nil {
			return record, fmt.Errorf("failed to unmarshal tool calls for record %s: %w", record.ID, err)
		}
	}
	return record, nil
}

// InsertRecords writes records into the store inside a single transaction.
func (s *SQLStore) InsertRecords(ctx context.Context, records []schema.EvaluationRecord) error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := s.getInsertQuery()
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		toolCallsJSON, err := json.Marshal(r.ToolCalls)
		if err != nil {
			return fmt.Errorf("failed to marshal tool calls for record %s: %w", r.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.OwnerID, r.ConversationID, r.Rating, r.Success,
			r.Notes, r.Expected, r.Actual, r.ErrorType, r.FallbackUsed,
			string(toolCallsJSON), r.Model, r.Provider,
			r.InputTokens, r.OutputTokens, r.LatencyMs,
			formatTime(r.CreatedAt, s.backend)); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// getInsertQuery returns the INSERT query with backend placeholders.
func (s *SQLStore) getInsertQuery() string {
	quotedTableName := quoteTableName(recordsTable, s.backend)
	columnCount := len(strings.Split(recordColumns, ","))

	placeholders := make([]string, columnCount)
	for i := range placeholders {
		if s.backend == schema.PostgreSQLBackend {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quotedTableName, recordColumns, strings.Join(placeholders, ", "))
}

// GetStatus returns status information about the record store.
func (s *SQLStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:  s.backend,
		Location: s.location,
	}

	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(recordsTable, s.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := s.db.QueryRowContext(ctx, countQuery).Scan(&status.RecordCount); err != nil {
		return status, fmt.Errorf("failed to get record count: %w", err)
	}
	if status.RecordCount == 0 {
		return status, nil
	}

	boundsQuery := fmt.Sprintf("SELECT MIN(created_at), MAX(created_at) FROM %s", quotedTableName)
	row := s.db.QueryRowContext(ctx, boundsQuery)

	switch s.backend {
	case schema.SQLiteBackend:
		var oldestStr, newestStr string
		if err := row.Scan(&oldestStr, &newestStr); err != nil {
			return status, fmt.Errorf("failed to get record time bounds: %w", err)
		}
		oldest, err := time.Parse(time.RFC3339Nano, oldestStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse oldest record time: %w", err)
		}
		newest, err := time.Parse(time.RFC3339Nano, newestStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse newest record time: %w", err)
		}
		status.OldestRecord = oldest
		status.NewestRecord = newest
	default: // MySQL and PostgreSQL store as native datetime
		if err := row.Scan(&status.OldestRecord, &status.NewestRecord); err != nil {
			return status, fmt.Errorf("failed to get record time bounds: %w", err)
		}
	}

	return status, nil
}

// Close closes the underlying connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}
