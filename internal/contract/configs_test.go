package contract

import (
	"testing"
	"time"

	"github.com/qualens/qualens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation, for mutation in
// individual cases.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		OwnerIDStr:   "owner-1",
		Period:       "30d",
		Limit:        DefaultResultLimit,
		FetchLimit:   DefaultFetchLimit,
		Precision:    DefaultPrecision,
		Output:       string(schema.TextOut),
		Color:        "yes",
		StoreBackend: string(schema.SQLiteBackend),
	}
}

// TestProcessAndValidateDefaults verifies the happy path populates the
// config with sane defaults.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, "owner-1", cfg.OwnerID)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.Equal(t, DefaultFetchLimit, cfg.FetchLimit)
	assert.Equal(t, DefaultTrendMinDays, cfg.TrendMinDays)
	assert.InDelta(t, DefaultTrendThreshold, cfg.TrendThreshold, 0.0001)
	assert.Equal(t, DefaultHorizons, cfg.Horizons)
	assert.True(t, cfg.UseColors)

	// The window should span roughly 30 days ending now.
	assert.InDelta(t, 30*24*time.Hour, cfg.EndTime.Sub(cfg.StartTime), float64(time.Minute))
}

// TestProcessAndValidateRejections verifies each validation gate rejects
// before any fetch would happen.
func TestProcessAndValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{name: "missing owner", mutate: func(in *ConfigRawInput) { in.OwnerIDStr = " " }},
		{name: "bad period", mutate: func(in *ConfigRawInput) { in.Period = "someday" }},
		{name: "bad output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }},
		{name: "bad backend", mutate: func(in *ConfigRawInput) { in.StoreBackend = "oracle" }},
		{name: "zero limit", mutate: func(in *ConfigRawInput) { in.Limit = 0 }},
		{name: "limit too high", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }},
		{name: "zero fetch limit", mutate: func(in *ConfigRawInput) { in.FetchLimit = 0 }},
		{name: "bad precision", mutate: func(in *ConfigRawInput) { in.Precision = 3 }},
		{name: "rating out of range", mutate: func(in *ConfigRawInput) { in.MinRating = 6 }},
		{name: "inverted ratings", mutate: func(in *ConfigRawInput) { in.MinRating = 4; in.MaxRating = 2 }},
		{name: "bad color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }},
		{name: "bad horizon", mutate: func(in *ConfigRawInput) { in.Horizons = "7,-1" }},
		{name: "mysql without connect", mutate: func(in *ConfigRawInput) { in.StoreBackend = "mysql" }},
		{name: "postgres without host", mutate: func(in *ConfigRawInput) {
			in.StoreBackend = "postgresql"
			in.StoreDBConnect = "dbname=records"
		}},
		{name: "start after end", mutate: func(in *ConfigRawInput) {
			in.Start = "2026-08-02T00:00:00Z"
			in.End = "2026-08-01T00:00:00Z"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

// TestProcessAndValidateExplicitWindow verifies explicit boundaries beat the
// period shorthand.
func TestProcessAndValidateExplicitWindow(t *testing.T) {
	input := validInput()
	input.Start = "2026-07-01T00:00:00Z"
	input.End = "2026-07-15T00:00:00Z"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), cfg.StartTime.UTC())
	assert.Equal(t, time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), cfg.EndTime.UTC())
}

// TestProcessAndValidateHorizons verifies horizon list parsing.
func TestProcessAndValidateHorizons(t *testing.T) {
	input := validInput()
	input.Horizons = "7, 30"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []int{7, 30}, cfg.Horizons)
}

// TestPreviousWindow verifies the preceding period has equal length and ends
// exactly where the current one starts.
func TestPreviousWindow(t *testing.T) {
	cfg := &Config{
		StartTime: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}

	prevStart, prevEnd := cfg.PreviousWindow()
	assert.Equal(t, time.Date(2026, 7, 18, 0, 0, 0, 0, time.UTC), prevStart)
	assert.Equal(t, cfg.StartTime, prevEnd)
	assert.Equal(t, cfg.EndTime.Sub(cfg.StartTime), prevEnd.Sub(prevStart))
}

// TestCloneWithTimeWindow verifies clones are deep where it matters.
func TestCloneWithTimeWindow(t *testing.T) {
	cfg := &Config{OwnerID: "owner-1", Horizons: []int{7, 14}}
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	clone := cfg.CloneWithTimeWindow(start, end)
	clone.Horizons[0] = 99

	assert.Equal(t, start, clone.StartTime)
	assert.Equal(t, end, clone.EndTime)
	assert.Equal(t, 7, cfg.Horizons[0], "clone must not share the horizons slice")
	assert.True(t, cfg.StartTime.IsZero(), "original window unchanged")
}

// TestConfigFilter verifies the projection onto a record filter.
func TestConfigFilter(t *testing.T) {
	cfg := &Config{
		OwnerID:    "owner-1",
		Model:      "ft-alpha",
		MinRating:  2,
		FetchLimit: 500,
	}
	f := cfg.Filter()
	assert.Equal(t, "owner-1", f.OwnerID)
	assert.Equal(t, "ft-alpha", f.Model)
	assert.Equal(t, 2, f.MinRating)
	assert.Equal(t, 500, f.Limit)
}

// TestRecordCost verifies token pricing and the zero-cost fallbacks.
func TestRecordCost(t *testing.T) {
	book := staticPriceBook{
		"ft-alpha": {InputPerToken: 0.001, OutputPerToken: 0.002},
	}

	in := int64(1000)
	out := int64(500)
	record := schema.EvaluationRecord{Model: "ft-alpha", InputTokens: &in, OutputTokens: &out}
	assert.InDelta(t, 2.0, RecordCost(&record, book), 0.0001)

	// Unknown model is the not-found sentinel: zero cost.
	unknown := schema.EvaluationRecord{Model: "mystery", InputTokens: &in}
	assert.Zero(t, RecordCost(&unknown, book))

	// Nil token counts cost nothing.
	noTokens := schema.EvaluationRecord{Model: "ft-alpha"}
	assert.Zero(t, RecordCost(&noTokens, book))

	// Nil price book costs nothing.
	assert.Zero(t, RecordCost(&record, nil))
}

// staticPriceBook is a test PriceBook over a fixed map.
type staticPriceBook map[string]ModelPrice

func (b staticPriceBook) ModelPrice(model string) (ModelPrice, bool) {
	p, ok := b[model]
	return p, ok
}
