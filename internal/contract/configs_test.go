package contract

import (
	"testing"
	"time"

	"github.com/huangsam/clio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns raw input matching the flag defaults of the CLI.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:       "text",
		Precision:    DefaultPrecision,
		Color:        "yes",
		StoreBackend: string(schema.SQLiteBackend),
		LLMProvider:  string(schema.OpenAIProvider),
		Temperature:  DefaultTemperature,
		MaxTokens:    DefaultMaxTokens,
		HistoryTurns: DefaultHistoryTurns,
		Category:     string(schema.GeneralCategory),
		Profile:      string(schema.NoProfile),
		Addr:         DefaultAddr,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "invalid precision", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: true},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "rainbow" }, expectError: true},
		{name: "negative width", mutate: func(in *ConfigRawInput) { in.Width = -1 }, expectError: true},
		{name: "invalid backend", mutate: func(in *ConfigRawInput) { in.StoreBackend = "oracle" }, expectError: true},
		{name: "mysql without connection", mutate: func(in *ConfigRawInput) { in.StoreBackend = "mysql" }, expectError: true},
		{name: "invalid provider", mutate: func(in *ConfigRawInput) { in.LLMProvider = "markov" }, expectError: true},
		{name: "temperature too high", mutate: func(in *ConfigRawInput) { in.Temperature = 2.5 }, expectError: true},
		{name: "zero max tokens", mutate: func(in *ConfigRawInput) { in.MaxTokens = 0 }, expectError: true},
		{name: "bad llm timeout", mutate: func(in *ConfigRawInput) { in.LLMTimeout = "soon" }, expectError: true},
		{name: "negative llm timeout", mutate: func(in *ConfigRawInput) { in.LLMTimeout = "-1s" }, expectError: true},
		{name: "history too long", mutate: func(in *ConfigRawInput) { in.HistoryTurns = MaxHistoryTurns + 1 }, expectError: true},
		{name: "invalid category", mutate: func(in *ConfigRawInput) { in.Category = "astrology" }, expectError: true},
		{name: "invalid profile", mutate: func(in *ConfigRawInput) { in.Profile = "extrovert" }, expectError: true},
		{name: "invalid addr", mutate: func(in *ConfigRawInput) { in.Addr = "8080" }, expectError: true},
		{name: "invalid log level", mutate: func(in *ConfigRawInput) { in.LogLevel = "chatty" }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	input := validInput()
	input.LLMProvider = "Ollama"
	input.Category = ""
	input.Profile = "Impulsive"
	input.AllowOrigins = "https://a.example, ,https://b.example"
	input.EmbeddingModel = " nomic-embed-text "

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "nomic-embed-text", cfg.EmbeddingModel)

	assert.Equal(t, schema.OllamaProvider, cfg.LLMProvider)
	assert.Equal(t, DefaultOllamaURL, cfg.LLMBaseURL)
	assert.Equal(t, DefaultModel, cfg.LLMModel)
	assert.Equal(t, DefaultLLMTimeout, cfg.LLMTimeout)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, schema.GeneralCategory, cfg.Category)
	assert.Equal(t, schema.ImpulsiveProfile, cfg.Profile)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
	assert.InDelta(t, DefaultTemperature, cfg.Temperature, 1e-6)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateDurations(t *testing.T) {
	input := validInput()
	input.LLMTimeout = "45s"
	input.FetchTimeout = "2s"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, 45*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 2*time.Second, cfg.FetchTimeout)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		conn        string
		expectError bool
	}{
		{"sqlite needs nothing", schema.SQLiteBackend, "", false},
		{"none needs nothing", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/clio", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/clio", true},
		{"mysql missing db", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=clio", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=clio", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{AllowOrigins: []string{"https://a.example"}, Category: schema.MarketingCategory}
	clone := cfg.Clone()
	clone.AllowOrigins[0] = "https://changed.example"

	assert.Equal(t, "https://a.example", cfg.AllowOrigins[0])
	assert.Equal(t, schema.MarketingCategory, clone.Category)
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "run1"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "run1", profile.Prefix)
}
