package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/clio/schema"
	"go.uber.org/zap"
)

// sessionKey is the gin context key of the authenticated session.
const sessionKey = "clio.session"

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// loadSession attaches the session of a known bearer token. Unknown tokens are rejected;
// requests without a token continue anonymously.
func (s *Server) loadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		session, ok := s.deps.Sessions.Get(token)
		if !ok {
			abortError(c, http.StatusUnauthorized, "session is unknown or expired")
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

// requireSession rejects anonymous requests.
func requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentSession(c); !ok {
			abortError(c, http.StatusUnauthorized, "login required")
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) (schema.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return schema.Session{}, false
	}
	session, ok := v.(schema.Session)
	return session, ok
}

func abortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
