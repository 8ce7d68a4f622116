package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
	"go.uber.org/zap"
)

// ErrEmptyMessage is returned when a chat message has no text.
var ErrEmptyMessage = errors.New("chat message is empty")

// maxSessionTurns bounds the history one session keeps; older turns are dropped first.
const maxSessionTurns = 200

// ChatSession is the conversation state owned by the presentation layer.
// It is not safe for concurrent use; each caller keeps its own session.
type ChatSession struct {
	UserID   int64 // 0 for anonymous sessions, which are never persisted
	Category schema.PromptCategory
	Profile  schema.ProfileType
	Prompt   string // Replaces the category prompt when set, as the marketing chat does
	turns    []schema.ChatTurn
}

// NewChatSession starts an empty conversation.
func NewChatSession(userID int64, category schema.PromptCategory, profile schema.ProfileType) *ChatSession {
	return &ChatSession{UserID: userID, Category: category, Profile: profile}
}

// Turns returns a copy of the conversation so far.
func (s *ChatSession) Turns() []schema.ChatTurn {
	return append([]schema.ChatTurn(nil), s.turns...)
}

// Clear drops the conversation history.
func (s *ChatSession) Clear() {
	s.turns = nil
}

// systemPrompt returns the override prompt or the category and profile prompt.
func (s *ChatSession) systemPrompt() string {
	if s.Prompt != "" {
		return s.Prompt
	}
	return SystemPrompt(s.Category, s.Profile)
}

// contextTurns returns the user turns among the last n turns.
func (s *ChatSession) contextTurns(n int) []schema.ChatTurn {
	start := max(len(s.turns)-n, 0)
	var out []schema.ChatTurn
	for _, t := range s.turns[start:] {
		if t.Role == schema.UserRole {
			out = append(out, t)
		}
	}
	return out
}

// ChatReply is what the presentation layer shows after one message.
type ChatReply struct {
	Text      string `json:"text"`
	Failed    bool   `json:"failed"`
	Reason    string `json:"reason,omitempty"`
	Persisted bool   `json:"persisted"`
}

// Chatter sends chat messages through the text-generation boundary and records them.
type Chatter struct {
	Completer    contract.Completer
	Store        contract.Store // optional
	Logger       *zap.Logger    // optional
	HistoryTurns int
	Now          func() time.Time // optional, defaults to time.Now
}

// NewChatter returns a Chatter with the default history window.
func NewChatter(completer contract.Completer, store contract.Store, logger *zap.Logger) *Chatter {
	return &Chatter{
		Completer:    completer,
		Store:        store,
		Logger:       logger,
		HistoryTurns: contract.DefaultHistoryTurns,
	}
}

func (c *Chatter) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Chatter) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Send forwards one user message with the session's system prompt and recent user turns.
// A failed completion is answered with an apology and flagged, never returned as an error.
// Persistence failures only clear Persisted.
func (c *Chatter) Send(ctx context.Context, s *ChatSession, text string) (ChatReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatReply{}, ErrEmptyMessage
	}

	userTurn := schema.ChatTurn{Role: schema.UserRole, Text: text}
	messages := append(s.contextTurns(c.HistoryTurns), userTurn)
	s.turns = append(s.turns, userTurn)

	systemPrompt := s.systemPrompt()
	c.logger().Debug("sending chat message",
		zap.String("category", string(s.Category)),
		zap.String("profile", string(s.Profile)),
		zap.Int("context_turns", len(messages)-1))

	reply := ChatReply{}
	completion := c.Completer.Complete(ctx, systemPrompt, messages)
	if completion.OK() {
		reply.Text = completion.Text
	} else {
		c.logger().Warn("chat completion failed", zap.String("reason", completion.Reason))
		reply.Text = schema.ServiceUnavailableReply
		reply.Failed = true
		reply.Reason = completion.Reason
	}
	s.turns = append(s.turns, schema.ChatTurn{Role: schema.AssistantRole, Text: reply.Text})
	if over := len(s.turns) - maxSessionTurns; over > 0 {
		s.turns = append([]schema.ChatTurn(nil), s.turns[over:]...)
	}

	reply.Persisted = c.persist(ctx, s, text, reply.Text)
	return reply, nil
}

// persist appends both rows of an exchange and reports whether they were stored.
func (c *Chatter) persist(ctx context.Context, s *ChatSession, userText, assistantText string) bool {
	if c.Store == nil || s.UserID == 0 {
		return false
	}
	now := c.now()
	rows := []schema.ChatMessageRecord{
		{UserID: s.UserID, Role: schema.UserRole, Content: userText, Category: s.Category, CreatedAt: now},
		{UserID: s.UserID, Role: schema.AssistantRole, Content: assistantText, Category: s.Category, CreatedAt: now},
	}
	for _, row := range rows {
		if _, err := c.Store.AppendChatMessage(ctx, row); err != nil {
			c.logger().Warn("failed to persist chat message", zap.Int64("user_id", s.UserID), zap.Error(err))
			return false
		}
	}
	return true
}

// Narrate asks the text-generation boundary to describe a finished analysis.
// The prompt uses the personal development category with the dominant archetype as profile.
func (c *Chatter) Narrate(ctx context.Context, r *Rulebook, result schema.AnalysisResult) ChatReply {
	systemPrompt := SystemPrompt(schema.PersonalDevelopmentCategory, schema.ProfileType(result.DominantArchetype))
	messages := []schema.ChatTurn{{Role: schema.UserRole, Text: r.BuildNarrativePrompt(result)}}

	completion := c.Completer.Complete(ctx, systemPrompt, messages)
	if !completion.OK() {
		c.logger().Warn("narrative completion failed", zap.String("reason", completion.Reason))
		return ChatReply{Text: schema.ProcessingErrorReply, Failed: true, Reason: completion.Reason}
	}
	return ChatReply{Text: completion.Text}
}
