package contract

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/qualens/qualens/schema"
)

// Default values for configuration.
const (
	DefaultFetchLimit     = 10000
	DefaultResultLimit    = 25
	MaxResultLimit        = 1000
	DefaultPrecision      = 1
	DefaultPeriod         = "30d"
	DefaultTrendMinDays   = 3
	DefaultTrendThreshold = 0.10
)

// DefaultHorizons are the forecast horizons (in days) computed when the user
// does not override them.
var DefaultHorizons = []int{7, 14, 30}

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for an analysis invocation.
// This struct remains the "final, validated" config.
type Config struct {
	OwnerID        string
	StartTime      time.Time
	EndTime        time.Time
	ConversationID string
	Model          string
	MinRating      int
	MaxRating      int

	FetchLimit  int
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
	PriceTable     string // Optional path to a YAML price table

	TrendMinDays   int     // Minimum distinct days before a trend is reported
	TrendThreshold float64 // Fractional change separating improving/declining from stable
	Horizons       []int   // Forecast horizons in days

	logger *slog.Logger
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	OwnerIDStr string

	// Set by server commands that resolve the owner per request, so no tag
	OwnerOptional bool

	// --- Fields from rootCmd.PersistentFlags() ---
	Period         string `mapstructure:"period"`
	Start          string `mapstructure:"start"`
	End            string `mapstructure:"end"`
	Conversation   string `mapstructure:"conversation"`
	Model          string `mapstructure:"model"`
	MinRating      int    `mapstructure:"min-rating"`
	MaxRating      int    `mapstructure:"max-rating"`
	FetchLimit     int    `mapstructure:"fetch-limit"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Detail         bool   `mapstructure:"detail"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	PriceTable     string `mapstructure:"price-table"`

	// --- Fields from trendsCmd.Flags() ---
	TrendMinDays   int     `mapstructure:"min-days"`
	TrendThreshold float64 `mapstructure:"threshold"`

	// --- Fields from predictCmd.Flags() ---
	Horizons string `mapstructure:"horizons"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Horizons != nil {
		clone.Horizons = make([]int, len(c.Horizons))
		copy(clone.Horizons, c.Horizons)
	}
	return &clone
}

// CloneWithTimeWindow creates a copy of the Config and sets the new
// StartTime and EndTime.
func (c *Config) CloneWithTimeWindow(start time.Time, end time.Time) *Config {
	clone := c.Clone()
	clone.StartTime = start
	clone.EndTime = end
	return clone
}

// PreviousWindow returns the equal-length window immediately preceding the
// configured one, for period-over-period comparison.
func (c *Config) PreviousWindow() (time.Time, time.Time) {
	length := c.EndTime.Sub(c.StartTime)
	return c.StartTime.Add(-length), c.StartTime
}

// Filter projects the config onto a record store filter.
func (c *Config) Filter() schema.RecordFilter {
	return schema.RecordFilter{
		OwnerID:        c.OwnerID,
		Start:          c.StartTime,
		End:            c.EndTime,
		ConversationID: c.ConversationID,
		Model:          c.Model,
		MinRating:      c.MinRating,
		MaxRating:      c.MaxRating,
		Limit:          c.FetchLimit,
	}
}

// SetLogger injects the structured logger used by all analyzers.
func (c *Config) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// Log returns the injected logger, or a stderr text logger if none was set.
// Analyzers attach operation name and owner id before logging.
func (c *Config) Log() *slog.Logger {
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return c.logger
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct. Validation failures happen
// before any fetch is issued.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input, time.Now()); err != nil {
		return err
	}
	if err := processTuning(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-time fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Owner validation. Rejected before any fetch. ---
	cfg.OwnerID = strings.TrimSpace(input.OwnerIDStr)
	if cfg.OwnerID == "" && !input.OwnerOptional {
		return fmt.Errorf("owner id is required")
	}

	// --- 1. Transfer simple non-validated fields from input -> cfg ---
	cfg.ConversationID = strings.TrimSpace(input.Conversation)
	cfg.Model = strings.TrimSpace(input.Model)
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.PriceTable = input.PriceTable

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 2. Rating bounds validation ---
	if input.MinRating < 0 || input.MinRating > 5 {
		return fmt.Errorf("min-rating must be between 0 and 5 (received %d)", input.MinRating)
	}
	if input.MaxRating < 0 || input.MaxRating > 5 {
		return fmt.Errorf("max-rating must be between 0 and 5 (received %d)", input.MaxRating)
	}
	if input.MinRating > 0 && input.MaxRating > 0 && input.MinRating > input.MaxRating {
		return fmt.Errorf("min-rating (%d) cannot exceed max-rating (%d)", input.MinRating, input.MaxRating)
	}
	cfg.MinRating = input.MinRating
	cfg.MaxRating = input.MaxRating

	// --- 3. Limit validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.FetchLimit <= 0 {
		return fmt.Errorf("fetch-limit must be greater than 0 (received %d)", input.FetchLimit)
	}
	cfg.FetchLimit = input.FetchLimit

	// --- 4. Precision and Output validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 5. Backend validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	return nil
}

// processTimeRange resolves the analysis window from a period shorthand or
// explicit start/end boundaries. Explicit boundaries win over the period.
func processTimeRange(cfg *Config, input *ConfigRawInput, now time.Time) error {
	period := input.Period
	if period == "" {
		period = DefaultPeriod
	}
	lookback, err := ParsePeriod(period)
	if err != nil {
		return fmt.Errorf("invalid period '%s': %w", input.Period, err)
	}
	cfg.EndTime = now
	cfg.StartTime = now.Add(-lookback)

	parseAbsolute := func(s string) (time.Time, error) {
		return time.Parse(DateTimeFormat, s)
	}

	// --- Process Start Time ---
	if input.Start != "" {
		t, err := parseAbsolute(input.Start)
		if err == nil {
			cfg.StartTime = t
		} else {
			t, relErr := ParseRelativeTime(input.Start, now)
			if relErr != nil {
				return fmt.Errorf("invalid start date format for '%s'. Expected absolute ISO8601 or 'N [units] ago': %v", input.Start, err)
			}
			cfg.StartTime = t
		}
	}

	// --- Process End Time ---
	if input.End != "" {
		t, err := parseAbsolute(input.End)
		if err == nil {
			cfg.EndTime = t
		} else {
			t, relErr := ParseRelativeTime(input.End, now)
			if relErr != nil {
				return fmt.Errorf("invalid end date format for '%s'. Expected absolute ISO8601 or 'N [units] ago': %v", input.End, err)
			}
			cfg.EndTime = t
		}
	}

	// --- Final Validation ---
	if cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)",
			cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}

	return nil
}

// processTuning resolves the analyzer tunables.
func processTuning(cfg *Config, input *ConfigRawInput) error {
	cfg.TrendMinDays = input.TrendMinDays
	if cfg.TrendMinDays <= 0 {
		cfg.TrendMinDays = DefaultTrendMinDays
	}

	cfg.TrendThreshold = input.TrendThreshold
	if cfg.TrendThreshold <= 0 {
		cfg.TrendThreshold = DefaultTrendThreshold
	}

	if input.Horizons == "" {
		cfg.Horizons = append([]int(nil), DefaultHorizons...)
		return nil
	}

	var horizons []int
	for part := range strings.SplitSeq(input.Horizons, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		days, err := strconv.Atoi(part)
		if err != nil || days <= 0 {
			return fmt.Errorf("invalid forecast horizon '%s': must be a positive day count", part)
		}
		horizons = append(horizons, days)
	}
	if len(horizons) == 0 {
		return fmt.Errorf("horizons must name at least one day count")
	}
	cfg.Horizons = horizons

	return nil
}
