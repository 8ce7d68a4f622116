// Package server exposes the rulebook, chat, SEO and account operations over HTTP with gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/huangsam/clio/core"
	"github.com/huangsam/clio/internal/auth"
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
	"go.uber.org/zap"
)

// shutdownTimeout bounds how long in-flight requests may finish after the context ends.
const shutdownTimeout = 10 * time.Second

// Deps are the collaborators the HTTP surface is built from.
// Store, Chatter and SEO may be nil, which disables the routes that need them.
type Deps struct {
	Rulebook     *core.Rulebook
	Store        contract.Store
	Auth         *auth.Service
	Sessions     *auth.SessionManager
	Chatter      *core.Chatter
	SEO          *core.SEOAnalyzer
	Logger       *zap.Logger
	AllowOrigins []string // Empty means any origin
}

// Server routes HTTP requests to the clio operations.
type Server struct {
	deps   Deps
	engine *gin.Engine
	logger *zap.Logger

	chatMu sync.Mutex
	chats  map[string]*chatEntry // keyed by session token
}

// chatEntry serializes the messages of one logged-in conversation.
type chatEntry struct {
	mu      sync.Mutex
	session *core.ChatSession
}

// New builds the gin engine and registers every route.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Sessions == nil {
		deps.Sessions = auth.NewSessionManager()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	engine.Use(cors.New(corsConfig(deps.AllowOrigins)))

	s := &Server{
		deps:   deps,
		engine: engine,
		logger: logger,
		chats:  make(map[string]*chatEntry),
	}
	s.routes()
	return s
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	return cfg
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	api.Use(s.loadSession())
	api.GET("/questions", s.handleQuestions)
	api.GET("/archetypes", s.handleArchetypes)
	api.GET("/archetypes/:key", s.handleArchetype)
	api.GET("/rules", s.handleRules)
	api.GET("/prompt", s.handlePrompt)
	api.POST("/analyze", s.handleAnalyze)
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)
	api.POST("/logout", requireSession(), s.handleLogout)
	api.GET("/me", requireSession(), s.handleMe)
	api.POST("/chat", s.handleChat)
	api.POST("/seo", requireSession(), s.handleSEO)
}

// Handler returns the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// chatFor returns the conversation of a logged-in token, creating it on first use.
// Creating a conversation also drops those whose session has expired or been evicted.
func (s *Server) chatFor(token string, userID int64) *chatEntry {
	s.chatMu.Lock()
	defer s.chatMu.Unlock()
	entry, ok := s.chats[token]
	if !ok {
		s.pruneChatsLocked()
		entry = &chatEntry{session: core.NewChatSession(userID, schema.GeneralCategory, schema.NoProfile)}
		s.chats[token] = entry
	}
	return entry
}

func (s *Server) pruneChatsLocked() {
	for token := range s.chats {
		if !s.deps.Sessions.Active(token) {
			delete(s.chats, token)
		}
	}
}

// chatCount returns the number of retained conversations.
func (s *Server) chatCount() int {
	s.chatMu.Lock()
	defer s.chatMu.Unlock()
	return len(s.chats)
}

func (s *Server) dropChat(token string) {
	s.chatMu.Lock()
	defer s.chatMu.Unlock()
	delete(s.chats, token)
}
