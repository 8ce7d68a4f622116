// Package cmd defines the command-line interface for clio.
package cmd

import (
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(archetypesCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(relatedCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(marketingCmd)
	rootCmd.AddCommand(seoCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the user subcommands to the parent user command
	userCmd.AddCommand(userRegisterCmd)
	userCmd.AddCommand(userLoginCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("llm-provider", string(schema.OpenAIProvider), "Text-generation provider: openai or ollama or anthropic")
	rootCmd.PersistentFlags().String("llm-model", contract.DefaultModel, "Model name passed to the provider")
	rootCmd.PersistentFlags().String("embedding-model", "", "Embedding model for the related command (empty = provider default)")
	rootCmd.PersistentFlags().String("llm-api-key", "", "API key for openai or anthropic")
	rootCmd.PersistentFlags().String("llm-base-url", "", "Override the provider endpoint")
	rootCmd.PersistentFlags().Float64("temperature", contract.DefaultTemperature, "Sampling temperature between 0 and 2")
	rootCmd.PersistentFlags().Int("max-tokens", contract.DefaultMaxTokens, "Maximum tokens per reply")
	rootCmd.PersistentFlags().String("llm-timeout", contract.DefaultLLMTimeout.String(), "Timeout of one completion request")
	rootCmd.PersistentFlags().Int("history", contract.DefaultHistoryTurns, "Prior chat turns sent with each message")
	rootCmd.PersistentFlags().String("coping-profile", string(schema.NoProfile), "Coping profile: none or autonomous or impulsive or avoidant or isolative")
	rootCmd.PersistentFlags().String("fetch-timeout", contract.DefaultFetchTimeout.String(), "Timeout of webpage fetches")
	rootCmd.PersistentFlags().String("email", "", "Account email for commands that sign in")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analyzeCmd to Viper
	analyzeCmd.Flags().String("answers", "", "Answers as 'q1=Often,q2=Never,...' (interactive when empty)")
	analyzeCmd.Flags().Bool("save", true, "Store the analysis when a store is configured")
	analyzeCmd.Flags().Bool("narrate", false, "Ask the assistant to explain the result")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}

	// Bind all flags of historyCmd to Viper
	historyCmd.Flags().IntP("limit", "l", 20, "Number of analyses to display (0 = all)")
	if err := viper.BindPFlags(historyCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history flags", err)
	}

	// Bind all flags of chatCmd to Viper
	chatCmd.Flags().String("category", string(schema.GeneralCategory), "Prompt category: general, emotional_support, career_guidance, personal_development, marketing")
	if err := viper.BindPFlags(chatCmd.Flags()); err != nil {
		contract.LogFatal("Error binding chat flags", err)
	}

	// Bind all flags of relatedCmd to Viper
	relatedCmd.Flags().IntP("top", "n", contract.DefaultTopMatches, "Number of recommendations to display (0 = all)")
	if err := viper.BindPFlags(relatedCmd.Flags()); err != nil {
		contract.LogFatal("Error binding related flags", err)
	}

	// Bind all flags of userRegisterCmd to Viper
	userRegisterCmd.Flags().String("name", "", "Display name of the account")
	userRegisterCmd.Flags().String("service", string(schema.EducationService), "Service: education or hhrr or marketing")
	if err := viper.BindPFlags(userRegisterCmd.Flags()); err != nil {
		contract.LogFatal("Error binding user register flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Listen address of the HTTP server")
	serveCmd.Flags().String("allow-origins", "", "Comma-separated CORS origins (empty = any)")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
