package contract

import (
	"context"

	"github.com/huangsam/clio/schema"
	"github.com/stretchr/testify/mock"
)

// MockCompleter is a mock implementation of Completer for testing.
type MockCompleter struct {
	mock.Mock
}

var _ Completer = &MockCompleter{} // Compile-time check

// Complete implements the Completer interface.
func (m *MockCompleter) Complete(ctx context.Context, systemPrompt string, messages []schema.ChatTurn) schema.Completion {
	args := m.Called(ctx, systemPrompt, messages)
	return args.Get(0).(schema.Completion)
}

// MockPageFetcher is a mock implementation of PageFetcher for testing.
type MockPageFetcher struct {
	mock.Mock
}

var _ PageFetcher = &MockPageFetcher{} // Compile-time check

// Fetch implements the PageFetcher interface.
func (m *MockPageFetcher) Fetch(ctx context.Context, url string) (schema.PageSummary, error) {
	args := m.Called(ctx, url)
	return args.Get(0).(schema.PageSummary), args.Error(1)
}

// MockEmbedder is a mock implementation of Embedder for testing.
type MockEmbedder struct {
	mock.Mock
}

var _ Embedder = &MockEmbedder{} // Compile-time check

// Embed implements the Embedder interface.
func (m *MockEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	args := m.Called(ctx, texts)
	vectors, _ := args.Get(0).([][]float64)
	return vectors, args.Error(1)
}

// MockStore is a mock implementation of Store for testing.
type MockStore struct {
	mock.Mock
}

var _ Store = &MockStore{} // Compile-time check

// CreateUser implements the Store interface.
func (m *MockStore) CreateUser(ctx context.Context, user schema.UserRecord) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

// GetUserByEmail implements the Store interface.
func (m *MockStore) GetUserByEmail(ctx context.Context, email string) (schema.UserRecord, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(schema.UserRecord), args.Error(1)
}

// AppendChatMessage implements the Store interface.
func (m *MockStore) AppendChatMessage(ctx context.Context, msg schema.ChatMessageRecord) (int64, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(int64), args.Error(1)
}

// SaveAnalysis implements the Store interface.
func (m *MockStore) SaveAnalysis(ctx context.Context, rec schema.AnalysisRecord) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

// SaveMarketingProfile implements the Store interface.
func (m *MockStore) SaveMarketingProfile(ctx context.Context, rec schema.MarketingProfileRecord) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

// ListAnalyses implements the Store interface.
func (m *MockStore) ListAnalyses(ctx context.Context, limit int) ([]schema.AnalysisRecord, error) {
	args := m.Called(ctx, limit)
	recs, _ := args.Get(0).([]schema.AnalysisRecord)
	return recs, args.Error(1)
}

// ListChatMessages implements the Store interface.
func (m *MockStore) ListChatMessages(ctx context.Context, userID int64) ([]schema.ChatMessageRecord, error) {
	args := m.Called(ctx, userID)
	msgs, _ := args.Get(0).([]schema.ChatMessageRecord)
	return msgs, args.Error(1)
}

// GetStatus implements the Store interface.
func (m *MockStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the Store interface.
func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
