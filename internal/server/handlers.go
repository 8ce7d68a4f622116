package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/clio/core"
	"github.com/huangsam/clio/internal/auth"
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
	"go.uber.org/zap"
)

type analyzeRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
	Save    bool              `json:"save"`
	Narrate bool              `json:"narrate"`
}

type analyzeResponse struct {
	schema.AnalysisRenderModel
	SavedID   int64           `json:"saved_id,omitempty"`
	Narrative *core.ChatReply `json:"narrative,omitempty"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Service  string `json:"service" binding:"required"`
}

type userResponse struct {
	ID      int64          `json:"id"`
	Email   string         `json:"email"`
	Name    string         `json:"name"`
	Service schema.Service `json:"service"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type chatRequest struct {
	Message  string `json:"message"`
	Category string `json:"category"`
	Profile  string `json:"profile"`
	Reset    bool   `json:"reset"`
}

type seoRequest struct {
	URL     string `json:"url" binding:"required"`
	Profile string `json:"profile"`
}

func (s *Server) handleHealth(c *gin.Context) {
	status := gin.H{"status": "ok"}
	if s.deps.Store != nil {
		if st, err := s.deps.Store.GetStatus(); err == nil {
			status["store"] = st.Backend
			status["store_connected"] = st.Connected
		}
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Rulebook.Questions())
}

func (s *Server) handleArchetypes(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Rulebook.Archetypes())
}

func (s *Server) handleArchetype(c *gin.Context) {
	key := schema.ArchetypeKey(strings.ToLower(c.Param("key")))
	a, ok := s.deps.Rulebook.Archetype(key)
	if !ok {
		abortError(c, http.StatusNotFound, fmt.Sprintf("unknown archetype %q", key))
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) handleRules(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Rulebook.Rules())
}

func (s *Server) handlePrompt(c *gin.Context) {
	category, profile, err := parseChatOptions(c.Query("category"), c.Query("profile"))
	if err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"profile":  profile,
		"prompt":   core.SystemPrompt(category, profile),
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	resp := make(schema.Response, len(req.Answers))
	for id, label := range req.Answers {
		resp[id] = contract.NormalizeLabel(label)
	}
	result := s.deps.Rulebook.Analyze(resp)
	out := analyzeResponse{AnalysisRenderModel: s.deps.Rulebook.BuildRenderModel(resp, result)}

	if req.Save && s.deps.Store != nil {
		var owner *int64
		if session, ok := currentSession(c); ok {
			owner = &session.UserID
		}
		id, err := s.deps.Store.SaveAnalysis(c.Request.Context(), core.NewAnalysisRecord(resp, result, owner))
		if err != nil {
			s.logger.Warn("failed to save analysis", zap.Error(err))
		} else {
			out.SavedID = id
		}
	}

	if req.Narrate && s.deps.Chatter != nil {
		narrative := s.deps.Chatter.Narrate(c.Request.Context(), s.deps.Rulebook, result)
		out.Narrative = &narrative
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleRegister(c *gin.Context) {
	if s.deps.Auth == nil {
		abortError(c, http.StatusServiceUnavailable, "accounts are disabled")
		return
	}
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	service := schema.Service(strings.ToLower(strings.TrimSpace(req.Service)))
	user, err := s.deps.Auth.Register(c.Request.Context(), req.Email, req.Password, req.Name, service)
	if err != nil {
		s.writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userResponse{ID: user.ID, Email: user.Email, Name: user.Name, Service: user.Service})
}

func (s *Server) handleLogin(c *gin.Context) {
	if s.deps.Auth == nil {
		abortError(c, http.StatusServiceUnavailable, "accounts are disabled")
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	session, err := s.deps.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeAuthError(c, err)
		return
	}
	s.deps.Sessions.Put(session)
	c.JSON(http.StatusOK, session)
}

func (s *Server) handleLogout(c *gin.Context) {
	session, _ := currentSession(c)
	s.deps.Sessions.Delete(session.Token)
	s.dropChat(session.Token)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleMe(c *gin.Context) {
	session, _ := currentSession(c)
	c.JSON(http.StatusOK, session)
}

// writeAuthError maps account errors onto status codes.
func (s *Server) writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		abortError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		abortError(c, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		abortError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, contract.ErrStoreDisabled):
		abortError(c, http.StatusServiceUnavailable, "accounts need a persistent store backend")
	default:
		s.logger.Error("account operation failed", zap.Error(err))
		abortError(c, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleChat(c *gin.Context) {
	if s.deps.Chatter == nil {
		abortError(c, http.StatusServiceUnavailable, "chat is disabled")
		return
	}
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	category, profile, err := parseChatOptions(req.Category, req.Profile)
	if err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}

	// Anonymous callers get a one-message conversation
	entry := &chatEntry{session: core.NewChatSession(0, category, profile)}
	if session, ok := currentSession(c); ok {
		entry = s.chatFor(session.Token, session.UserID)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if req.Reset {
		entry.session.Clear()
	}
	entry.session.Category = category
	entry.session.Profile = profile

	reply, err := s.deps.Chatter.Send(c.Request.Context(), entry.session, req.Message)
	if errors.Is(err, core.ErrEmptyMessage) {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (s *Server) handleSEO(c *gin.Context) {
	if s.deps.SEO == nil {
		abortError(c, http.StatusServiceUnavailable, "seo analysis is disabled")
		return
	}
	var req seoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	profile, ok := schema.ParseProfileType(req.Profile)
	if !ok {
		abortError(c, http.StatusBadRequest, fmt.Sprintf("unknown profile %q", req.Profile))
		return
	}

	analysis, err := s.deps.SEO.Analyze(c.Request.Context(), req.URL, profile)
	if err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// parseChatOptions resolves optional category and profile names.
// Empty names fall back to the general category and no profile.
func parseChatOptions(rawCategory, rawProfile string) (schema.PromptCategory, schema.ProfileType, error) {
	category, ok := schema.ParsePromptCategory(rawCategory)
	if !ok && rawCategory != "" {
		return "", "", fmt.Errorf("unknown category %q", rawCategory)
	}
	profile, ok := schema.ParseProfileType(rawProfile)
	if !ok {
		return "", "", fmt.Errorf("unknown profile %q", rawProfile)
	}
	return category, profile, nil
}
