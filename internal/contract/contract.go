// Package contract provides interfaces and shared utilities for clio's internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/clio/schema"
)

// Completer is the text-generation boundary.
// Failures are reported through the returned Completion rather than an error.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, messages []schema.ChatTurn) schema.Completion
}

// Embedder turns texts into vectors for relevance ranking, one vector per text in order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// PageFetcher retrieves and summarizes a webpage for the SEO analyzer.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (schema.PageSummary, error)
}

// Store defines the persistence boundary for users, chat rows, analyses and marketing profiles.
// This allows the store to be mocked for testing.
type Store interface {
	// CreateUser inserts a user and returns its id
	CreateUser(ctx context.Context, user schema.UserRecord) (int64, error)

	// GetUserByEmail returns the user with the given email, or ErrNotFound
	GetUserByEmail(ctx context.Context, email string) (schema.UserRecord, error)

	// AppendChatMessage appends one chat row
	AppendChatMessage(ctx context.Context, msg schema.ChatMessageRecord) (int64, error)

	// SaveAnalysis stores a finished analysis together with the raw responses
	SaveAnalysis(ctx context.Context, rec schema.AnalysisRecord) (int64, error)

	// SaveMarketingProfile stores a completed brand and ICP pair
	SaveMarketingProfile(ctx context.Context, rec schema.MarketingProfileRecord) (int64, error)

	// ListAnalyses returns the most recent analyses, newest first
	ListAnalyses(ctx context.Context, limit int) ([]schema.AnalysisRecord, error)

	// ListChatMessages returns the chat rows of a user in insertion order
	ListChatMessages(ctx context.Context, userID int64) ([]schema.ChatMessageRecord, error)

	// GetStatus returns status information about the store
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection
	Close() error
}
