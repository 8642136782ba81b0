// Package pricing provides the YAML-backed model price table.
package pricing

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/qualens/qualens/internal/contract"
	"github.com/spf13/viper"
)

//go:embed default_prices.yaml
var defaultPricesYAML []byte

// rawPrice mirrors one model entry in the YAML price table.
type rawPrice struct {
	InputPerToken  float64 `mapstructure:"input_per_token"`
	OutputPerToken float64 `mapstructure:"output_per_token"`
}

// cachedPrice is one resolved lookup. Misses are cached too, so the
// zero-cost warning fires once per model per process.
type cachedPrice struct {
	price contract.ModelPrice
	found bool
}

// Table implements the PriceBook interface over a parsed YAML price table.
// Lookups go through a process-lifetime read-through cache keyed by model id;
// entries are populated lazily and never invalidated.
type Table struct {
	mu     sync.RWMutex
	table  map[string]rawPrice
	cache  map[string]cachedPrice
	logger *slog.Logger
}

var _ contract.PriceBook = &Table{} // Compile-time check

// NewTable loads a price table from the given YAML file, or the embedded
// default table when the path is empty.
func NewTable(path string, logger *slog.Logger) (*Table, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path == "" {
		if err := v.ReadConfig(bytes.NewReader(defaultPricesYAML)); err != nil {
			return nil, fmt.Errorf("failed to parse embedded price table: %w", err)
		}
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read price table %s: %w", path, err)
		}
	}

	var table map[string]rawPrice
	if err := v.UnmarshalKey("models", &table); err != nil {
		return nil, fmt.Errorf("failed to parse price table models: %w", err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("price table has no models section")
	}

	return &Table{
		table:  table,
		cache:  make(map[string]cachedPrice),
		logger: logger,
	}, nil
}

// ModelPrice returns the per-token prices for a model identifier. A model
// missing from the table is reported once as a warning and treated as zero
// cost by callers.
func (t *Table) ModelPrice(model string) (contract.ModelPrice, bool) {
	t.mu.RLock()
	entry, ok := t.cache[model]
	t.mu.RUnlock()
	if ok {
		return entry.price, entry.found
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if entry, ok := t.cache[model]; ok {
		return entry.price, entry.found
	}

	raw, found := t.table[model]
	entry = cachedPrice{found: found}
	if found {
		entry.price = contract.ModelPrice{
			InputPerToken:  raw.InputPerToken,
			OutputPerToken: raw.OutputPerToken,
		}
	} else if t.logger != nil {
		t.logger.Warn("model missing from price table, costs fall back to zero", "model", model)
	}
	t.cache[model] = entry
	return entry.price, entry.found
}

// Models returns the model identifiers the table prices.
func (t *Table) Models() []string {
	models := make([]string, 0, len(t.table))
	for model := range t.table {
		models = append(models, model)
	}
	return models
}
