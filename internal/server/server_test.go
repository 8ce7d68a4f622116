package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/clio/core"
	"github.com/huangsam/clio/internal/auth"
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/internal/datastore"
	"github.com/huangsam/clio/internal/webpage"
	"github.com/huangsam/clio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	srv       *Server
	store     contract.Store
	completer *contract.MockCompleter
	fetcher   *contract.MockPageFetcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := datastore.NewStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	completer := &contract.MockCompleter{}
	fetcher := &contract.MockPageFetcher{}
	authSvc := auth.NewService(store)
	authSvc.Params = auth.HashParams{Time: 1, Memory: 1024, Threads: 1, KeyLength: 32, SaltLength: 16}

	rb := core.DefaultRulebook()
	srv := New(Deps{
		Rulebook: rb,
		Store:    store,
		Auth:     authSvc,
		Chatter:  core.NewChatter(completer, store, nil),
		SEO:      &core.SEOAnalyzer{Fetcher: fetcher, Completer: completer},
	})
	return &testEnv{srv: srv, store: store, completer: completer, fetcher: fetcher}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// login registers a user and returns a bearer token.
func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/register", gin.H{
		"email": "ada@example.com", "password": "s3cret-pass", "name": "Ada", "service": "education",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(t, http.MethodPost, "/api/login", gin.H{"email": "ADA@example.com", "password": "s3cret-pass"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[schema.Session](t, w).Token
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "sqlite", body["store"])
}

func TestCatalogRoutes(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/questions", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]schema.Question](t, w), 18)

	w = env.do(t, http.MethodGet, "/api/archetypes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]schema.Archetype](t, w), 4)

	w = env.do(t, http.MethodGet, "/api/archetypes/Isolative", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, schema.Isolative, decode[schema.Archetype](t, w).Key)

	w = env.do(t, http.MethodGet, "/api/archetypes/stoic", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "unknown archetype")

	w = env.do(t, http.MethodGet, "/api/rules", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]schema.RuleRow](t, w), 18)

	w = env.do(t, http.MethodGet, "/api/prompt?category=emotional_support&profile=avoidant", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		core.SystemPrompt(schema.EmotionalSupportCategory, schema.AvoidantProfile),
		decode[map[string]string](t, w)["prompt"])

	w = env.do(t, http.MethodGet, "/api/prompt?profile=stoic", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyze(t *testing.T) {
	t.Run("anonymous save", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/analyze", gin.H{
			"answers": map[string]string{"q2": "very often", "q3": "Often", "q99": "Often"},
			"save":    true,
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decode[analyzeResponse](t, w)
		assert.Equal(t, schema.Autonomous, body.Result.DominantArchetype)
		assert.Equal(t, 2, body.Responses)
		assert.Greater(t, body.SavedID, int64(0))
		assert.Nil(t, body.Narrative)

		recs, err := env.store.ListAnalyses(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Nil(t, recs[0].UserID)
		assert.Equal(t, schema.VeryOften, recs[0].Responses["q2"])
	})

	t.Run("logged in save with narrative", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.login(t)
		env.completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
			Return(schema.Completed("You lean on solving things yourself.")).Once()

		w := env.do(t, http.MethodPost, "/api/analyze", gin.H{
			"answers": map[string]string{"q11": "Often"},
			"save":    true,
			"narrate": true,
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decode[analyzeResponse](t, w)
		require.NotNil(t, body.Narrative)
		assert.False(t, body.Narrative.Failed)

		recs, err := env.store.ListAnalyses(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		require.NotNil(t, recs[0].UserID)
	})

	t.Run("missing answers", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/analyze", gin.H{}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAccounts(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodGet, "/api/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada@example.com", decode[schema.Session](t, w).Email)

	w = env.do(t, http.MethodPost, "/api/register", gin.H{
		"email": "ada@example.com", "password": "another-pass", "name": "Ada", "service": "hhrr",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/api/register", gin.H{
		"email": "bob@example.com", "password": "short", "name": "Bob", "service": "hhrr",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/login", gin.H{"email": "ada@example.com", "password": "wrong-pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/questions", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "logged out token is rejected")
}

func TestAccountsWithoutStore(t *testing.T) {
	store, err := datastore.NewStore(schema.NoneBackend, "")
	require.NoError(t, err)
	srv := New(Deps{Rulebook: core.DefaultRulebook(), Store: store, Auth: auth.NewService(store)})

	body, _ := json.Marshal(gin.H{"email": "ada@example.com", "password": "s3cret-pass", "name": "Ada", "service": "education"})
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestChat(t *testing.T) {
	t.Run("logged in conversation is persisted", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.login(t)
		env.completer.On("Complete", mock.Anything, core.SystemPrompt(schema.MarketingCategory, schema.NoProfile), mock.Anything).
			Return(schema.Completed("Try a newsletter.")).Once()
		env.completer.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(turns []schema.ChatTurn) bool {
			return len(turns) == 2
		})).Return(schema.Completed("Then measure opens.")).Once()

		w := env.do(t, http.MethodPost, "/api/chat", gin.H{"message": "How do I grow?", "category": "marketing"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		reply := decode[core.ChatReply](t, w)
		assert.Equal(t, "Try a newsletter.", reply.Text)
		assert.True(t, reply.Persisted)

		w = env.do(t, http.MethodPost, "/api/chat", gin.H{"message": "And then?"}, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Then measure opens.", decode[core.ChatReply](t, w).Text)

		msgs, err := env.store.ListChatMessages(context.Background(), 0)
		require.NoError(t, err)
		assert.Len(t, msgs, 4)
		env.completer.AssertExpectations(t)
	})

	t.Run("provider failure is still a reply", func(t *testing.T) {
		env := newTestEnv(t)
		env.completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
			Return(schema.CompletionFailure("timeout"))

		w := env.do(t, http.MethodPost, "/api/chat", gin.H{"message": "hello"}, "")
		require.Equal(t, http.StatusOK, w.Code)
		reply := decode[core.ChatReply](t, w)
		assert.True(t, reply.Failed)
		assert.Equal(t, schema.ServiceUnavailableReply, reply.Text)
		assert.False(t, reply.Persisted, "anonymous chats are not stored")
	})

	t.Run("validation", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/chat", gin.H{"message": "  "}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = env.do(t, http.MethodPost, "/api/chat", gin.H{"message": "hi", "category": "astrology"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSEO(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.On("Fetch", mock.Anything, "https://example.com").
		Return(schema.PageSummary{Title: "Example", WordCount: 42}, nil)
	env.completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(schema.Completed("Add a meta description."))

	w := env.do(t, http.MethodPost, "/api/seo", gin.H{"url": "https://example.com"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env.fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)

	token := env.login(t)
	w = env.do(t, http.MethodPost, "/api/seo", gin.H{"url": "https://example.com"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	analysis := decode[core.SEOAnalysis](t, w)
	require.NotNil(t, analysis.Summary)
	assert.Equal(t, "Example", analysis.Summary.Title)
	assert.Equal(t, "Add a meta description.", analysis.Reply.Text)

	w = env.do(t, http.MethodPost, "/api/seo", gin.H{"url": "ftp://example.com"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSEOInternalURL(t *testing.T) {
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<title>Internal Admin</title><h1>root credentials</h1>"))
	}))
	defer internal.Close()

	env := newTestEnv(t)
	env.srv.deps.SEO.Fetcher = webpage.NewFetcher(time.Second)
	var prompt string
	env.completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			prompt = args.Get(2).([]schema.ChatTurn)[0].Text
		}).
		Return(schema.Completed("Nothing to see."))

	token := env.login(t)
	w := env.do(t, http.MethodPost, "/api/seo", gin.H{"url": internal.URL + "/admin"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	analysis := decode[core.SEOAnalysis](t, w)
	assert.Nil(t, analysis.Summary)
	assert.NotContains(t, w.Body.String(), "Internal Admin")
	assert.Contains(t, prompt, internal.URL)
	assert.NotContains(t, prompt, "Internal Admin")
	assert.NotContains(t, prompt, "root credentials")
}

func TestExpiredSessionDropsChat(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	env.srv.deps.Sessions.TTL = time.Hour
	env.srv.deps.Sessions.Now = func() time.Time { return now }
	env.completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(schema.Completed("Hello again."))

	stale := env.login(t)
	w := env.do(t, http.MethodPost, "/api/chat", gin.H{"message": "hi"}, stale)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, env.srv.chatCount())

	now = now.Add(2 * time.Hour)
	w = env.do(t, http.MethodGet, "/api/me", nil, stale)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/login", gin.H{"email": "ada@example.com", "password": "s3cret-pass"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	fresh := decode[schema.Session](t, w).Token

	w = env.do(t, http.MethodPost, "/api/chat", gin.H{"message": "hi"}, fresh)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, env.srv.chatCount(), "expired conversation is dropped")
	assert.Equal(t, 1, env.srv.deps.Sessions.Len())
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{"Bearer abc", "abc"},
		{"bearer  abc ", "abc"},
		{"Basic abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("Authorization", tt.header)
		assert.Equal(t, tt.expected, bearerToken(c), tt.header)
	}
}
