package contract

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/huangsam/clio/schema"
)

// Default values for configuration.
const (
	DefaultPrecision    = 1
	DefaultModel        = "gpt-3.5-turbo"
	DefaultTemperature  = 0.7
	DefaultMaxTokens    = 500
	DefaultHistoryTurns = 5
	DefaultAddr         = ":8080"
	DefaultLLMTimeout   = 30 * time.Second
	DefaultFetchTimeout = 10 * time.Second
	DefaultLogLevel     = "info"
	DefaultOllamaURL    = "http://localhost:11434"
	DefaultTopMatches   = 5
	MaxHistoryTurns     = 50
	MaxTokensLimit      = 8192
)

// Default embedding models per provider.
const (
	DefaultOpenAIEmbeddingModel = "text-embedding-3-small"
	DefaultOllamaEmbeddingModel = "nomic-embed-text"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration.
// This struct remains the "final, validated" config.
type Config struct {
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	LLMProvider    schema.LLMProvider
	LLMModel       string
	EmbeddingModel string // Empty selects the provider default
	LLMAPIKey      string // Please use env var as this is plaintext
	LLMBaseURL     string
	Temperature    float32
	MaxTokens      int
	LLMTimeout     time.Duration
	HistoryTurns   int // Prior turns forwarded as context on each chat message

	Category schema.PromptCategory
	Profile  schema.ProfileType

	Addr         string
	AllowOrigins []string // Empty means any origin
	FetchTimeout time.Duration
	LogLevel     string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	LogLevel       string `mapstructure:"log-level"`

	// --- Text generation ---
	LLMProvider    string  `mapstructure:"llm-provider"`
	LLMModel       string  `mapstructure:"llm-model"`
	EmbeddingModel string  `mapstructure:"embedding-model"`
	LLMAPIKey      string  `mapstructure:"llm-api-key"`
	LLMBaseURL     string  `mapstructure:"llm-base-url"`
	Temperature    float64 `mapstructure:"temperature"`
	MaxTokens      int     `mapstructure:"max-tokens"`
	LLMTimeout     string  `mapstructure:"llm-timeout"`
	HistoryTurns   int     `mapstructure:"history"`

	// --- Chat persona ---
	Category string `mapstructure:"category"`
	Profile  string `mapstructure:"coping-profile"`

	// --- Fields from serveCmd.Flags() ---
	Addr         string `mapstructure:"addr"`
	AllowOrigins string `mapstructure:"allow-origins"`
	FetchTimeout string `mapstructure:"fetch-timeout"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.AllowOrigins != nil {
		clone.AllowOrigins = make([]string, len(c.AllowOrigins))
		copy(clone.AllowOrigins, c.AllowOrigins)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreInputs(cfg, input); err != nil {
		return err
	}
	if err := processLLMInputs(cfg, input); err != nil {
		return err
	}
	if err := processChatInputs(cfg, input); err != nil {
		return err
	}
	return processServerInputs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
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

// validateOutputInputs processes the presentation fields.
func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// validateStoreInputs validates the persistence backend configuration.
func validateStoreInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// processLLMInputs validates the text-generation settings.
func processLLMInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.LLMProvider = schema.LLMProvider(strings.ToLower(input.LLMProvider))
	if _, ok := schema.ValidLLMProviders[cfg.LLMProvider]; !ok {
		return fmt.Errorf("invalid llm provider '%s'. must be openai, ollama, anthropic", input.LLMProvider)
	}
	cfg.LLMModel = strings.TrimSpace(input.LLMModel)
	if cfg.LLMModel == "" {
		cfg.LLMModel = DefaultModel
	}
	cfg.EmbeddingModel = strings.TrimSpace(input.EmbeddingModel)
	cfg.LLMAPIKey = input.LLMAPIKey
	cfg.LLMBaseURL = strings.TrimSpace(input.LLMBaseURL)
	if cfg.LLMProvider == schema.OllamaProvider && cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = DefaultOllamaURL
	}

	if input.Temperature < 0 || input.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2 (received %g)", input.Temperature)
	}
	cfg.Temperature = float32(input.Temperature)

	if input.MaxTokens <= 0 || input.MaxTokens > MaxTokensLimit {
		return fmt.Errorf("max-tokens must be greater than 0 and cannot exceed %d (received %d)", MaxTokensLimit, input.MaxTokens)
	}
	cfg.MaxTokens = input.MaxTokens

	timeout, err := parseDurationOr(input.LLMTimeout, DefaultLLMTimeout)
	if err != nil {
		return fmt.Errorf("invalid --llm-timeout: %w", err)
	}
	cfg.LLMTimeout = timeout

	if input.HistoryTurns < 0 || input.HistoryTurns > MaxHistoryTurns {
		return fmt.Errorf("history must be between 0 and %d (received %d)", MaxHistoryTurns, input.HistoryTurns)
	}
	cfg.HistoryTurns = input.HistoryTurns
	return nil
}

// processChatInputs resolves the default prompt category and profile.
func processChatInputs(cfg *Config, input *ConfigRawInput) error {
	category, ok := schema.ParsePromptCategory(input.Category)
	if !ok && input.Category != "" {
		return fmt.Errorf("invalid category '%s'. must be one of %s", input.Category, joinCategories())
	}
	cfg.Category = category

	profile, ok := schema.ParseProfileType(input.Profile)
	if !ok {
		return fmt.Errorf("invalid profile '%s'. must be none, autonomous, impulsive, avoidant, isolative", input.Profile)
	}
	cfg.Profile = profile
	return nil
}

// processServerInputs validates the HTTP surface settings.
func processServerInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Addr = strings.TrimSpace(input.Addr)
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return fmt.Errorf("invalid --addr '%s': %w", input.Addr, err)
	}

	cfg.AllowOrigins = nil
	if input.AllowOrigins != "" {
		for origin := range strings.SplitSeq(input.AllowOrigins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, trimmed)
			}
		}
	}

	timeout, err := parseDurationOr(input.FetchTimeout, DefaultFetchTimeout)
	if err != nil {
		return fmt.Errorf("invalid --fetch-timeout: %w", err)
	}
	cfg.FetchTimeout = timeout
	return nil
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// parseDurationOr parses a Go duration string, falling back when it is empty.
func parseDurationOr(s string, fallback time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive (received %s)", s)
	}
	return d, nil
}

func joinCategories() string {
	names := make([]string, len(schema.AllPromptCategories))
	for i, c := range schema.AllPromptCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
