package recordstore

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/schema"
)

// Demo data pools for seeding.
var (
	seedModels = []string{"gpt-4o", "gpt-4o-mini", "claude-sonnet", "llama-3-70b"}

	seedProviders = map[string]string{
		"gpt-4o":        "openai",
		"gpt-4o-mini":   "openai",
		"claude-sonnet": "anthropic",
		"llama-3-70b":   "meta",
	}

	seedTools = []string{"search", "browse", "code_interpreter", "retrieval"}

	seedErrorTypes = []string{"timeout", "rate_limit", "parse_error", "context_overflow"}

	seedNotes = []string{
		"this is amazing and very helpful",
		"good answer but a bit slow",
		"the response was wrong and confusing",
		"excellent work, exactly what I asked for",
		"incomplete answer, missing the second part",
		"works perfectly, thanks",
		"terrible, it stopped working halfway through",
		"clear and accurate explanation",
		"not helpful at all",
		"better than expected",
		"",
		"",
	}
)

// Seed inserts count synthetic evaluation records for an owner, spread evenly
// over the trailing days window. The generator is deterministic for a given
// seed so demo runs are reproducible.
func Seed(ctx context.Context, store contract.RecordStore, ownerID string, count, days int, seed int64) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("seed count must be positive (received %d)", count)
	}
	if days <= 0 {
		return 0, fmt.Errorf("seed days must be positive (received %d)", days)
	}

	rng := rand.New(rand.NewSource(seed))
	now := time.Now().UTC()
	span := time.Duration(days) * 24 * time.Hour
	step := span / time.Duration(count)

	records := make([]schema.EvaluationRecord, 0, count)
	for i := 0; i < count; i++ {
		model := seedModels[rng.Intn(len(seedModels))]
		createdAt := now.Add(-span + time.Duration(i)*step)

		r := schema.EvaluationRecord{
			ID:        fmt.Sprintf("seed-%d-%d", seed, i),
			OwnerID:   ownerID,
			Rating:    seedRating(rng),
			Notes:     seedNotes[rng.Intn(len(seedNotes))],
			Model:     model,
			Provider:  seedProviders[model],
			CreatedAt: createdAt,
		}

		if rng.Float64() < 0.3 {
			r.ConversationID = fmt.Sprintf("conv-%d", rng.Intn(count/4+1))
		}

		// Most records are evaluated; success tracks the rating
		if rng.Float64() < 0.9 {
			success := r.Rating >= 3
			r.Success = &success
		}

		if rng.Float64() < 0.12 {
			r.ErrorType = seedErrorTypes[rng.Intn(len(seedErrorTypes))]
			r.FallbackUsed = rng.Float64() < 0.5
		}

		for _, tool := range seedTools {
			if rng.Float64() < 0.25 {
				r.ToolCalls = append(r.ToolCalls, schema.ToolCall{
					Name:    tool,
					Success: rng.Float64() < 0.85,
				})
			}
		}

		in := int64(rng.Intn(4000) + 200)
		out := int64(rng.Intn(1500) + 50)
		latency := int64(rng.Intn(8000) + 300)
		r.InputTokens = &in
		r.OutputTokens = &out
		r.LatencyMs = &latency

		records = append(records, r)
	}

	if err := store.InsertRecords(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to insert seed records: %w", err)
	}
	return len(records), nil
}

// seedRating draws a rating skewed toward the top of the scale, with a small
// unrated share.
func seedRating(rng *rand.Rand) int {
	roll := rng.Float64()
	switch {
	case roll < 0.05:
		return 0 // unrated
	case roll < 0.30:
		return 5
	case roll < 0.60:
		return 4
	case roll < 0.80:
		return 3
	case roll < 0.92:
		return 2
	default:
		return 1
	}
}
